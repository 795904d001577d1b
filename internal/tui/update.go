package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/reflex/internal/media"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Grow):
			m.resize(media.PixelsPerEm)
		case key.Matches(msg, m.keys.Shrink):
			m.resize(-media.PixelsPerEm)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m Model) resize(deltaPx float64) {
	width := m.viewport.Width() + deltaPx
	if width < 0 {
		width = 0
	}
	m.viewport.SetWidth(width)
}
