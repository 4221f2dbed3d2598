package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(active.Dim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		inner := StyleHeader.Render(strings.ToUpper(title)) + "\n" + content
		return boxStyle.Render(inner)
	}
	return boxStyle.Render(content)
}

// RelativeDate returns a human-friendly relative date string.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

// RelativeDateFrom returns a human-friendly relative date string measured
// against a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DayLabel renders a timeline day heading such as "Mon, Jan 2".
func DayLabel(day time.Time, now time.Time) string {
	label := day.Format("Mon, Jan 2")
	switch RelativeDateFrom(day, now) {
	case "Today":
		return label + " · Today"
	case "Tomorrow":
		return label + " · Tomorrow"
	}
	return label
}

// RenderProgress renders a bar like ▰▰▰▱▱▱ of the given width for pct in [0,1].
func RenderProgress(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	filled := int(math.Round(pct * float64(width)))
	bar := StyleGood.Render(strings.Repeat("▰", filled)) +
		StyleDim.Render(strings.Repeat("▱", width-filled))
	return bar
}

// Hours formats an hour count compactly: 3 → "3h", 3.5 → "3.5h".
func Hours(h float64) string {
	if h == math.Trunc(h) {
		return fmt.Sprintf("%.0fh", h)
	}
	return fmt.Sprintf("%.1fh", h)
}

// Truncate shortens s to at most width runes, appending an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
