package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/reflex/internal/config"
	"github.com/alexisbeaulieu97/reflex/internal/flex"
	"github.com/alexisbeaulieu97/reflex/internal/logger"
	"github.com/alexisbeaulieu97/reflex/internal/media"
	"github.com/alexisbeaulieu97/reflex/internal/style"
)

const maxEvents = 5

type keyMap struct {
	Shrink key.Binding
	Grow   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Shrink, k.Grow, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Shrink: key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←", "shrink 1em")),
		Grow:   key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→", "grow 1em")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// eventLog is shared between model copies and the element's renderer.
type eventLog struct {
	entries []string
}

func (l *eventLog) add(entry string) {
	l.entries = append(l.entries, entry)
	if len(l.entries) > maxEvents {
		l.entries = l.entries[len(l.entries)-maxEvents:]
	}
}

// Model is the Bubbletea state of the viewport inspector.
type Model struct {
	flex     *flex.Flex
	handle   flex.Handle
	viewport *media.Viewport
	keys     keyMap
	help     help.Model
	events   *eventLog
	quitting bool
}

// NewModel mounts a Flex element with flags on viewport and wraps it for inspection.
// Call Close once the program exits.
func NewModel(flags style.Flags, override *config.Override, viewport *media.Viewport, log *logger.Logger) (Model, error) {
	events := &eventLog{}
	f := flex.New(flags,
		flex.WithOverride(override),
		flex.WithHost(viewport),
		flex.WithLogger(log),
		flex.WithRenderer(func(out flex.Output) {
			events.add(fmt.Sprintf("%s → display %v", formatWidth(viewport.Width()), out.Style[style.KeyDisplay]))
		}),
	)

	handle, err := f.Mount()
	if err != nil {
		return Model{}, err
	}

	return Model{
		flex:     f,
		handle:   handle,
		viewport: viewport,
		keys:     defaultKeyMap(),
		help:     help.New(),
		events:   events,
	}, nil
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return nil
}

// Close releases the inspected element's subscriptions.
func (m Model) Close() {
	m.handle.Release()
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

func formatWidth(px float64) string {
	return fmt.Sprintf("%gem (%gpx)", px/media.PixelsPerEm, px)
}
