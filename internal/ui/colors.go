package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/quaver/internal/shared"
)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title      lipgloss.Style
	selected   lipgloss.Style
	nowPlaying lipgloss.Style
	queuedNext lipgloss.Style
	status     lipgloss.Style
	help       lipgloss.Style
	err        lipgloss.Style
	panel      lipgloss.Style
}

// NewPalette builds the stylesheet from the theme section of the config.
func NewPalette(theme shared.ThemeConfig) *Palette {
	return &Palette{
		title:      NewBold(theme.Accent).MarginBottom(1),
		selected:   NewStyle(theme.SelectedFg).Background(lipgloss.Color(theme.SelectedBg)),
		nowPlaying: NewBold(theme.NowPlaying),
		queuedNext: NewStyle(theme.QueuedNext),
		status:     NewStyle(theme.Accent),
		help:       NewEm(theme.Help),
		err:        NewBold("#FF0000"),
		panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
