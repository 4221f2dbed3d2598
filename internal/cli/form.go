package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/taskhub/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// taskhubHuhTheme styles huh forms with the active palette.
func taskhubHuhTheme() *huh.Theme {
	p := formatter.ActivePalette()
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(p.Header).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(p.Header)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(p.Good)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(p.Fg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(p.Fg).Background(p.Header).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(p.Dim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(p.Header)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(p.Header)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(p.Fg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(p.Dim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(p.Dim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(p.Dim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(p.Dim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(p.Dim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(p.Dim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(p.Dim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(p.Dim)

	return t
}

// dateInput returns a huh.Input for an optional YYYY-MM-DD field.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2026-09-30").
		Value(value).
		Validate(validateOptionalDate)
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalHours(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number of hours")
	}
	return nil
}

// parseDate converts a validated form string to an optional date.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatHours(h float64) string {
	if h == 0 {
		return ""
	}
	return strconv.FormatFloat(h, 'f', -1, 64)
}
