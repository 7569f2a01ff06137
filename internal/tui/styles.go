package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/klabast/wb-services/timeline/internal/app"
)

type styles struct {
	Header   lipgloss.Style
	Filters  lipgloss.Style
	Year     lipgloss.Style
	Title    lipgloss.Style
	Excerpt  lipgloss.Style
	Category lipgloss.Style
	Cursor   lipgloss.Style
	Message  lipgloss.Style
	Error    lipgloss.Style
	Modal    lipgloss.Style
}

type palette struct {
	fg, muted, accent, line, errFg lipgloss.Color
}

var palettes = map[app.Theme]palette{
	app.ThemeLight: {fg: "#1f2328", muted: "#656d76", accent: "#0969da", line: "#d0d7de", errFg: "#cf222e"},
	app.ThemeDark:  {fg: "#c9d1d9", muted: "#8b949e", accent: "#58a6ff", line: "#30363d", errFg: "#f87171"},
}

func stylesFor(theme app.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[app.ThemeLight]
	}
	return styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(p.fg).Padding(0, 1),
		Filters:  lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1),
		Year:     lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		Excerpt:  lipgloss.NewStyle().Foreground(p.muted),
		Category: lipgloss.NewStyle().Foreground(p.accent).Italic(true),
		Cursor:   lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		Message:  lipgloss.NewStyle().Foreground(p.muted).Padding(1, 2),
		Error:    lipgloss.NewStyle().Foreground(p.errFg).Padding(1, 2),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Foreground(p.fg).
			Padding(1, 2),
	}
}
