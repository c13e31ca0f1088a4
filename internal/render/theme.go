package render

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the CLI tables use.
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorLavender).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(colorOverlay1)
	posStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	negStyle    = lipgloss.NewStyle().Foreground(colorRed)
	warnStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPeach)
	borderStyle = lipgloss.NewStyle().Foreground(colorSurface2)
)
