package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Quality bands
	Poor    lipgloss.Style
	Fair    lipgloss.Style
	Good    lipgloss.Style
	Hint    lipgloss.Style
	Warning lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Path      lipgloss.Style
	Muted     lipgloss.Style
	Separator lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconPoor    string
	IconFair    string
	IconGood    string
	IconHint    string
	IconWarning string
}

// NewStyles creates a Styles instance. When enabled is false, styles return
// text unchanged.
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if !enabled {
		s.IconPoor = "POOR:"
		s.IconFair = "FAIR:"
		s.IconGood = "GOOD:"
		s.IconHint = "-"
		s.IconWarning = "WARN:"
		return s
	}

	s.Poor = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))     // Red
	s.Fair = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))   // Orange
	s.Good = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))    // Green
	s.Hint = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))    // Cyan
	s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow

	s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	s.Path = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	s.IconPoor = "✗"
	s.IconFair = "⚠"
	s.IconGood = "✓"
	s.IconHint = "›"
	s.IconWarning = "⚠"

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Band returns the style and icon for a quality color name ("red",
// "orange" or "green").
func (s *Styles) Band(color string) (lipgloss.Style, string) {
	switch color {
	case "red":
		return s.Poor, s.IconPoor
	case "orange":
		return s.Fair, s.IconFair
	default:
		return s.Good, s.IconGood
	}
}
