// Package ui provides the visual components of the finchat TUI:
// styles, the answer table, suggestion chips, and message markup.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the active color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// DarkTheme returns the dark color scheme.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#f2f2f2"),
		Primary:    lipgloss.Color("#4db6ac"),
		Accent:     lipgloss.Color("#ffd54f"),
		Muted:      lipgloss.Color("#5c6a82"),
		Border:     lipgloss.Color("#2a3850"),
		IsDark:     true,
	}
}

// LightTheme returns the light color scheme.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#101f38"),
		Primary:    lipgloss.Color("#00796b"),
		Accent:     lipgloss.Color("#bf8f00"),
		Muted:      lipgloss.Color("#8a93a3"),
		Border:     lipgloss.Color("#dce0e5"),
		IsDark:     false,
	}
}

// Styles holds the styled components used by the chat view.
type Styles struct {
	Theme Theme

	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	Prompt    lipgloss.Style
	UserInput lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	Spinner    lipgloss.Style
	Chip       lipgloss.Style
	ChipActive lipgloss.Style
	Confidence lipgloss.Style
}

// NewStyles creates the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Padding(0, 1).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Content: lipgloss.NewStyle().
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		UserInput: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8bc34a")),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e53935")),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffc107")),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Chip: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		ChipActive: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1).
			Bold(true),

		Confidence: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),
	}
}

// DefaultStyles returns the dark style set.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}

// StylesFor returns the style set for a configured theme name.
func StylesFor(theme string) Styles {
	if theme == "light" {
		return NewStyles(LightTheme())
	}
	return DefaultStyles()
}

// RenderDivider renders a horizontal rule of the given width.
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return s.Muted.Render(strings.Repeat("─", width))
}
