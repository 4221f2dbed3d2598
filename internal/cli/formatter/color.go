package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/taskhub/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette holds the colors one theme preset resolves to.
type Palette struct {
	Accent lipgloss.Color
	Good   lipgloss.Color
	Warn   lipgloss.Color
	Bad    lipgloss.Color
	Dim    lipgloss.Color
	Fg     lipgloss.Color
	Header lipgloss.Color
}

// Theme presets mirror the preference values stored under themePreset.
var palettes = map[string]Palette{
	"ocean": {
		Accent: lipgloss.Color("#83a598"),
		Good:   lipgloss.Color("#8ec07c"),
		Warn:   lipgloss.Color("#fabd2f"),
		Bad:    lipgloss.Color("#fb4934"),
		Dim:    lipgloss.Color("#928374"),
		Fg:     lipgloss.Color("#ebdbb2"),
		Header: lipgloss.Color("#458588"),
	},
	"forest": {
		Accent: lipgloss.Color("#a9b665"),
		Good:   lipgloss.Color("#89b482"),
		Warn:   lipgloss.Color("#d8a657"),
		Bad:    lipgloss.Color("#ea6962"),
		Dim:    lipgloss.Color("#7c6f64"),
		Fg:     lipgloss.Color("#d4be98"),
		Header: lipgloss.Color("#6f8352"),
	},
	"sunset": {
		Accent: lipgloss.Color("#d3869b"),
		Good:   lipgloss.Color("#b8bb26"),
		Warn:   lipgloss.Color("#fe8019"),
		Bad:    lipgloss.Color("#cc241d"),
		Dim:    lipgloss.Color("#a89984"),
		Fg:     lipgloss.Color("#fbf1c7"),
		Header: lipgloss.Color("#d65d0e"),
	},
}

// Styles derived from the active palette. ApplyTheme rebuilds them.
var (
	StyleAccent lipgloss.Style
	StyleGood   lipgloss.Style
	StyleWarn   lipgloss.Style
	StyleBad    lipgloss.Style
	StyleDim    lipgloss.Style
	StyleFg     lipgloss.Style
	StyleHeader lipgloss.Style
	StyleBold   lipgloss.Style

	active   Palette
	darkMode = true
)

func init() {
	ApplyTheme("ocean")
}

// SetDarkMode switches between dark- and light-terminal text colors and
// reapplies the current styles.
func SetDarkMode(on bool) {
	darkMode = on
	rebuild(active)
}

// ApplyTheme switches the package styles to the named preset.
// Unknown presets fall back to ocean.
func ApplyTheme(preset string) {
	p, ok := palettes[preset]
	if !ok {
		p = palettes["ocean"]
	}
	rebuild(p)
}

func rebuild(p Palette) {
	active = p
	if !darkMode {
		// Light terminals need dark text; accent colors keep their hue.
		p.Fg = lipgloss.Color("#3c3836")
		p.Dim = lipgloss.Color("#7c6f64")
	}
	StyleAccent = lipgloss.NewStyle().Foreground(p.Accent)
	StyleGood = lipgloss.NewStyle().Foreground(p.Good)
	StyleWarn = lipgloss.NewStyle().Foreground(p.Warn)
	StyleBad = lipgloss.NewStyle().Foreground(p.Bad)
	StyleDim = lipgloss.NewStyle().Foreground(p.Dim)
	StyleFg = lipgloss.NewStyle().Foreground(p.Fg)
	StyleHeader = lipgloss.NewStyle().Foreground(p.Header).Bold(true)
	StyleBold = lipgloss.NewStyle().Foreground(p.Fg).Bold(true)
}

// ActivePalette returns the palette currently applied.
func ActivePalette() Palette { return active }

// ThemePresets lists the selectable preset names in cycle order.
func ThemePresets() []string { return []string{"ocean", "forest", "sunset"} }

// PriorityStyle maps a task priority to its display style.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleBad
	case domain.PriorityMedium:
		return StyleWarn
	default:
		return StyleDim
	}
}

// PriorityBadge returns a short colored marker such as "!!!" for high priority.
func PriorityBadge(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleBad.Render("!!!")
	case domain.PriorityMedium:
		return StyleWarn.Render(" !!")
	default:
		return StyleDim.Render("  !")
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
