package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/reflex/internal/config"
	"github.com/alexisbeaulieu97/reflex/internal/media"
	"github.com/alexisbeaulieu97/reflex/internal/style"
)

func newTestModel(t *testing.T, widthEm float64, flags style.Flags) (Model, *media.Viewport) {
	t.Helper()

	viewport := media.NewViewport(widthEm * media.PixelsPerEm)
	m, err := NewModel(flags, nil, viewport, nil)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m, viewport
}

func TestUpdateGrowsAndShrinksViewport(t *testing.T) {
	m, viewport := newTestModel(t, 31, style.Flags{Breakpoints: []string{"sm"}})
	require.Equal(t, "block", m.flex.Render().Style["display"])

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.Nil(t, cmd)
	m = updated.(Model)
	require.Equal(t, 32.0*media.PixelsPerEm, viewport.Width())
	require.Equal(t, "flex", m.flex.Render().Style["display"])
	require.Len(t, m.events.entries, 1)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(Model)
	require.Equal(t, 31.0*media.PixelsPerEm, viewport.Width())
	require.Equal(t, "block", m.flex.Render().Style["display"])
	require.Len(t, m.events.entries, 2)
}

func TestUpdateClampsAtZero(t *testing.T) {
	m, viewport := newTestModel(t, 0, style.Flags{})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	m = updated.(Model)
	require.Zero(t, viewport.Width())
	require.False(t, m.Quitting())
}

func TestUpdateQuits(t *testing.T) {
	m, _ := newTestModel(t, 40, style.Flags{})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	m = updated.(Model)
	require.True(t, m.Quitting())
	require.Empty(t, m.View())
}

func TestEventLogKeepsRecentEntries(t *testing.T) {
	t.Parallel()

	log := &eventLog{}
	for i := 0; i < maxEvents+3; i++ {
		log.add(string(rune('a' + i)))
	}
	require.Len(t, log.entries, maxEvents)
	require.Equal(t, "d", log.entries[0])
}

func TestViewShowsBreakpointsAndDeclarations(t *testing.T) {
	m, _ := newTestModel(t, 40, style.Flags{
		Breakpoints: []string{"md"},
		Gutter:      style.Gutter(1),
		ClassName:   "Row",
	})

	view := m.View()
	require.Contains(t, view, "Flex Row")
	require.Contains(t, view, "40em (640px)")
	require.Contains(t, view, "md*")
	require.Contains(t, view, "(min-width: 32em)")
	require.Contains(t, view, "block")
	require.Contains(t, view, "margin-left")
	require.Contains(t, view, "-8px")
}

func TestViewUsesOverrideBreakpoints(t *testing.T) {
	viewport := media.NewViewport(50 * media.PixelsPerEm)
	m, err := NewModel(style.Flags{Breakpoints: []string{"tablet"}}, &config.Override{
		Breakpoints: map[string]string{"tablet": "(min-width: 48em)"},
	}, viewport, nil)
	require.NoError(t, err)
	defer m.Close()

	view := m.View()
	require.Contains(t, view, "tablet*")
	require.NotContains(t, view, " sm ")
	require.Contains(t, view, "flex")
}

func TestDisplayBadge(t *testing.T) {
	t.Parallel()

	require.Contains(t, DisplayBadge("block"), "block")
	require.Contains(t, DisplayBadge("flex"), "flex")
}
