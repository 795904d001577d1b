package media

import (
	"fmt"
	"sync"

	"github.com/alexisbeaulieu97/reflex/internal/logger"
)

// Viewport is a simulated Host whose only media feature is its width.
//
// Listeners are notified synchronously from SetWidth, one at a time and in
// subscription order, never while the viewport's lock is held.
type Viewport struct {
	mu        sync.Mutex
	widthPx   float64
	nextID    uint64
	listeners map[uint64]*listener
	order     []uint64
	parsed    map[string]parsedQuery
	log       *logger.Logger
}

type listener struct {
	query    string
	matched  bool
	onChange func(bool)
}

type parsedQuery struct {
	query Query
	err   error
}

// ViewportOption customises a Viewport.
type ViewportOption func(*Viewport)

// WithViewportLogger sets the logger used for unparsable queries and width changes.
func WithViewportLogger(log *logger.Logger) ViewportOption {
	return func(v *Viewport) {
		v.log = log
	}
}

// NewViewport creates a viewport of the given width in pixels.
func NewViewport(widthPx float64, opts ...ViewportOption) *Viewport {
	v := &Viewport{
		widthPx:   widthPx,
		listeners: make(map[uint64]*listener),
		parsed:    make(map[string]parsedQuery),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.log = v.log.With("component", "viewport")
	return v
}

// ParseViewport creates a viewport from a CSS length such as "40em" or "640px".
func ParseViewport(width string, opts ...ViewportOption) (*Viewport, error) {
	px, err := ParseLength(width)
	if err != nil {
		return nil, fmt.Errorf("viewport width: %w", err)
	}
	if px < 0 {
		return nil, fmt.Errorf("viewport width: %q is negative", width)
	}
	return NewViewport(px, opts...), nil
}

// Width returns the current width in pixels.
func (v *Viewport) Width() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.widthPx
}

// Matches reports whether query matches the current width.
// Queries that cannot be parsed never match.
func (v *Viewport) Matches(query string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.matchesLocked(query)
}

// Subscribe registers onChange for flips of query's match state.
func (v *Viewport) Subscribe(query string, onChange func(bool)) (func(), error) {
	if onChange == nil {
		return nil, fmt.Errorf("subscribe %q: nil callback", query)
	}

	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = &listener{query: query, matched: v.matchesLocked(query), onChange: onChange}
	v.order = append(v.order, id)
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { v.remove(id) })
	}, nil
}

// Listeners returns the number of live subscriptions.
func (v *Viewport) Listeners() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}

// SetWidth resizes the viewport and notifies listeners whose query flipped.
func (v *Viewport) SetWidth(widthPx float64) {
	v.mu.Lock()
	v.widthPx = widthPx
	type pending struct {
		id       uint64
		matched  bool
		onChange func(bool)
	}
	var flipped []pending
	for _, id := range v.order {
		l := v.listeners[id]
		matched := v.matchesLocked(l.query)
		if matched == l.matched {
			continue
		}
		l.matched = matched
		flipped = append(flipped, pending{id: id, matched: matched, onChange: l.onChange})
	}
	v.mu.Unlock()

	v.log.WithFields(map[string]any{"width_px": widthPx, "flipped": len(flipped)}).Debug("viewport resized")

	for _, p := range flipped {
		if !v.live(p.id) {
			continue
		}
		p.onChange(p.matched)
	}
}

func (v *Viewport) live(id uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.listeners[id]
	return ok
}

func (v *Viewport) remove(id uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.listeners, id)
	for i, existing := range v.order {
		if existing == id {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
}

func (v *Viewport) matchesLocked(query string) bool {
	parsed, ok := v.parsed[query]
	if !ok {
		q, err := ParseQuery(query)
		parsed = parsedQuery{query: q, err: err}
		v.parsed[query] = parsed
		if err != nil {
			v.log.With("query", query).Warn(fmt.Sprintf("unparsable media query never matches: %v", err))
		}
	}
	if parsed.err != nil {
		return false
	}
	return parsed.query.Matches(v.widthPx)
}
