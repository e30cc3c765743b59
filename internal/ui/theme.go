package ui

import "github.com/charmbracelet/lipgloss"

// DefaultAccent is used when no accent color is configured.
const DefaultAccent = "62"

// Theme holds the lipgloss styles used by the views.
type Theme struct {
	AppBar    lipgloss.Style
	Heading   lipgloss.Style
	Label     lipgloss.Style
	Selected  lipgloss.Style
	Normal    lipgloss.Style
	Secondary lipgloss.Style
	Category  lipgloss.Style
	Glyph     lipgloss.Style
	Poster    lipgloss.Style
	Error     lipgloss.Style
	Dim       lipgloss.Style
	Spinner   lipgloss.Style
	Help      lipgloss.Style
}

// NewTheme builds a theme around accent, an ANSI color number or hex value.
func NewTheme(accent string) Theme {
	if accent == "" {
		accent = DefaultAccent
	}
	a := lipgloss.Color(accent)

	return Theme{
		AppBar:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(a).Padding(0, 1),
		Heading:   lipgloss.NewStyle().Bold(true),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(a),
		Normal:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Category:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("238")).Padding(0, 1),
		Glyph:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(a).Width(3).Align(lipgloss.Center),
		Poster:    lipgloss.NewStyle().Foreground(a).Width(3).Align(lipgloss.Center),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("196")).Padding(0, 1),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Spinner:   lipgloss.NewStyle().Foreground(a),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
