package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the card's palette. Colors are ANSI 256 codes so the card
// looks the same in most terminals.
type Theme struct {
	Rose      lipgloss.Color
	DeepRose  lipgloss.Color
	Blush     lipgloss.Color
	Sunflower lipgloss.Color
	Sky       lipgloss.Color
	Faint     lipgloss.Color
	Error     lipgloss.Color
	Overlay   lipgloss.Color
}

var DefaultTheme = Theme{
	Rose:      lipgloss.Color("204"),
	DeepRose:  lipgloss.Color("161"),
	Blush:     lipgloss.Color("218"),
	Sunflower: lipgloss.Color("220"),
	Sky:       lipgloss.Color("75"),
	Faint:     lipgloss.Color("245"),
	Error:     lipgloss.Color("196"),
	Overlay:   lipgloss.Color("234"),
}

type styles struct {
	title    lipgloss.Style
	text     lipgloss.Style
	faint    lipgloss.Style
	error    lipgloss.Style
	panel    lipgloss.Style
	timer    lipgloss.Style
	hearts   lipgloss.Style
	yes      lipgloss.Style
	no       lipgloss.Style
	question lipgloss.Style
	dare     lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(theme.DeepRose),
		text:  lipgloss.NewStyle().Foreground(theme.Blush),
		faint: lipgloss.NewStyle().Foreground(theme.Faint),
		error: lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Rose).
			Padding(1, 3),
		timer: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Rose).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.DeepRose).
			Padding(0, 2),
		hearts:   lipgloss.NewStyle().Foreground(theme.Rose),
		yes:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(theme.Rose),
		no:       lipgloss.NewStyle().Foreground(theme.Faint).Border(lipgloss.NormalBorder()).BorderForeground(theme.Faint).Padding(0, 1),
		question: lipgloss.NewStyle().Bold(true).Foreground(theme.Sky),
		dare:     lipgloss.NewStyle().Bold(true).Foreground(theme.Sunflower),
	}
}
