package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorFgPrimary = lipgloss.Color("#ABB2BF")
	ColorFgMuted   = lipgloss.Color("#636B78")
	ColorRed       = lipgloss.Color("#E06C75")
	ColorGreen     = lipgloss.Color("#98C379")
	ColorYellow    = lipgloss.Color("#E5C07B")
	ColorBlue      = lipgloss.Color("#61AFEF")
	ColorMagenta   = lipgloss.Color("#C678DD")
	ColorBorder    = lipgloss.Color("#3F4451")
	ColorFocus     = lipgloss.Color("#61AFEF")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true).
			PaddingLeft(1)

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)

	FocusedPaneStyle = PaneStyle.
				BorderForeground(ColorFocus)

	ElapsedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorFgPrimary)

	MessageStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			Italic(true)

	StreakStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	DoneStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			Strikethrough(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

func modeStyle(mode string) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch mode {
	case "Work":
		return style.Foreground(ColorRed)
	case "Break":
		return style.Foreground(ColorGreen)
	default:
		return style.Foreground(ColorFgMuted)
	}
}

func priorityStyle(priority string) lipgloss.Style {
	switch priority {
	case "High":
		return lipgloss.NewStyle().Foreground(ColorRed)
	case "Medium":
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle().Foreground(ColorFgMuted)
	}
}
