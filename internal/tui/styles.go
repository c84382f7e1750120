package tui

import "github.com/charmbracelet/lipgloss"

// Colors used in the picker.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorMuted   = lipgloss.Color("#9CA3AF") // Light gray
	ColorSuccess = lipgloss.Color("#10B981") // Green
)

// Styles holds the styles for the picker.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Default  lipgloss.Style
	Step     lipgloss.Style
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		Subtitle: lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginBottom(1),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 1),
		Normal: lipgloss.NewStyle().
			Padding(0, 1),
		Default: lipgloss.NewStyle().
			Foreground(ColorSuccess),
		Step: lipgloss.NewStyle().
			Foreground(ColorMuted).
			PaddingLeft(4),
		Help: lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1),
		HelpKey: lipgloss.NewStyle().
			Bold(true),
	}
}
