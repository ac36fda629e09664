package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"}
	colorWarn    = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#E5C07B"}
	colorError   = lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#E06C75"}
	colorOK      = lipgloss.AdaptiveColor{Light: "#1E824C", Dark: "#98C379"}
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	selected lipgloss.Style
	keys     lipgloss.Style
	keysMod  lipgloss.Style
	muted    lipgloss.Style
	warn     lipgloss.Style
	errMsg   lipgloss.Style
	ok       lipgloss.Style
	overlay  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		header:   lipgloss.NewStyle().Bold(true).Foreground(colorMuted),
		selected: lipgloss.NewStyle().Reverse(true),
		keys:     lipgloss.NewStyle().Foreground(colorMuted),
		keysMod:  lipgloss.NewStyle().Foreground(colorPrimary),
		muted:    lipgloss.NewStyle().Foreground(colorMuted),
		warn:     lipgloss.NewStyle().Foreground(colorWarn),
		errMsg:   lipgloss.NewStyle().Foreground(colorError),
		ok:       lipgloss.NewStyle().Foreground(colorOK),
		overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2),
	}
}
