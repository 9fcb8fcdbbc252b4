package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/odget-downloader/odget/internal/config"
)

var (
	// Colors (Dracula palette, matching the dark default)
	ColorPrimary   = lipgloss.Color("#bd93f9")
	ColorSecondary = lipgloss.Color("#ff79c6")
	ColorSuccess   = lipgloss.Color("#50fa7b")
	ColorError     = lipgloss.Color("#ff5555")
	ColorWarning   = lipgloss.Color("#ffb86c")
	ColorText      = lipgloss.Color("#f8f8f2")
	ColorSubtext   = lipgloss.Color("#6272a4")
	ColorBorder    = lipgloss.Color("#44475a")

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(DefaultPaddingY, DefaultPaddingX)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(DefaultPaddingY, DefaultPaddingX)

	FocusedPanelStyle = PanelStyle.
				BorderForeground(ColorSecondary)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true)

	ItemStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SubtextStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	StatusErrStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	StatusWarnStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext).
			Padding(DefaultPaddingY, DefaultPaddingX)

	PreviewStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// ConfigureStyles switches to a light palette when the theme setting (or the
// detected terminal background, for the adaptive default) calls for it.
func ConfigureStyles(theme int) {
	light := theme == config.ThemeLight
	if theme == config.ThemeAdaptive {
		light = !termenv.HasDarkBackground()
	}
	if !light {
		return
	}

	ColorText = lipgloss.Color("#282a36")
	ColorSubtext = lipgloss.Color("#44475a")
	ColorBorder = lipgloss.Color("#aaaaaa")

	ItemStyle = ItemStyle.Foreground(ColorText)
	SubtextStyle = SubtextStyle.Foreground(ColorSubtext)
	HelpStyle = HelpStyle.Foreground(ColorSubtext)
	PanelStyle = PanelStyle.BorderForeground(ColorBorder)
	FocusedPanelStyle = PanelStyle.BorderForeground(ColorSecondary)
}
