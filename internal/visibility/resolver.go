// Package visibility switches a Flex element between display flex and block
// according to which of its declared breakpoints currently match.
package visibility

import (
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/alexisbeaulieu97/reflex/internal/config"
	"github.com/alexisbeaulieu97/reflex/internal/logger"
	"github.com/alexisbeaulieu97/reflex/internal/media"
	"github.com/alexisbeaulieu97/reflex/internal/style"
	reflexerrors "github.com/alexisbeaulieu97/reflex/pkg/errors"
)

// ErrAlreadyAcquired is returned by Acquire while an earlier acquisition is live.
var ErrAlreadyAcquired = errors.New("visibility subscriptions already acquired")

// Option customises a Resolver.
type Option func(*Resolver)

// WithLogger sets the diagnostics logger.
func WithLogger(log *logger.Logger) Option {
	return func(r *Resolver) {
		r.log = log
	}
}

// WithOnChange registers fn to receive the display value after every
// match-state change of a subscribed query.
func WithOnChange(fn func(display string)) Option {
	return func(r *Resolver) {
		r.onChange = fn
	}
}

// Resolver derives the display value of one element.
//
// With no declared breakpoints it is unconstrained: nothing is subscribed and
// the display is always flex. Otherwise it holds the Active Breakpoint Set
// for every configured breakpoint while acquired.
type Resolver struct {
	mu       sync.Mutex
	host     media.Host
	cfg      config.Config
	declared []string
	active   map[string]bool
	acquired bool
	degraded bool
	onChange func(string)
	log      *logger.Logger
}

// New creates a resolver for the declared breakpoint names.
func New(host media.Host, cfg config.Config, breakpoints []string, opts ...Option) *Resolver {
	r := &Resolver{
		host:   host,
		cfg:    cfg.Clone(),
		active: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With("component", "visibility")
	r.declared = r.normalize(breakpoints)
	return r
}

// Constrained reports whether any breakpoint is declared.
func (r *Resolver) Constrained() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.declared) > 0
}

// Acquire subscribes to every configured media query and returns the
// function that releases them. Release is idempotent.
//
// An unconstrained resolver, or one whose host has no media query support,
// acquires nothing and returns a no-op release. If any subscription fails the
// ones already made are released before the error is returned.
func (r *Resolver) Acquire() (release func(), err error) {
	r.mu.Lock()
	if r.acquired {
		r.mu.Unlock()
		return nil, ErrAlreadyAcquired
	}
	if len(r.declared) == 0 || !media.Supported(r.host) {
		r.mu.Unlock()
		return func() {}, nil
	}
	r.acquired = true
	r.mu.Unlock()

	var unsubscribes []func()
	releaseAll := func() {
		for _, unsubscribe := range unsubscribes {
			unsubscribe()
		}
		r.mu.Lock()
		r.acquired = false
		clear(r.active)
		r.mu.Unlock()
	}

	for _, name := range r.cfg.BreakpointNames() {
		query := r.cfg.Breakpoints[name]
		unsubscribe, err := r.host.Subscribe(query, r.listener(name))
		if err != nil {
			releaseAll()
			if errors.Is(err, media.ErrUnsupported) {
				r.mu.Lock()
				r.degraded = true
				r.mu.Unlock()
				r.log.With("query", query).Debug("host lacks media query support, staying unconstrained")
				return func() {}, nil
			}
			return nil, reflexerrors.NewSubscriptionError(query, err)
		}
		unsubscribes = append(unsubscribes, unsubscribe)

		matched := r.host.Matches(query)
		r.mu.Lock()
		r.active[name] = matched
		r.mu.Unlock()
	}

	r.log.WithFields(map[string]any{"subscriptions": len(unsubscribes), "active": r.Active()}).Debug("acquired")

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseAll()
			r.log.Debug("released")
		})
	}, nil
}

func (r *Resolver) listener(name string) func(bool) {
	return func(matched bool) {
		r.mu.Lock()
		if !r.acquired {
			r.mu.Unlock()
			return
		}
		r.active[name] = matched
		display := r.displayLocked()
		onChange := r.onChange
		r.mu.Unlock()

		r.log.WithFields(map[string]any{"breakpoint": name, "matched": matched, "display": display}).
			Debug("breakpoint changed")
		if onChange != nil {
			onChange(display)
		}
	}
}

// Display returns "flex" if any declared breakpoint matches and "block" if
// none does. Unconstrained and headless resolvers always return "flex".
func (r *Resolver) Display() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.displayLocked()
}

func (r *Resolver) displayLocked() string {
	if len(r.declared) == 0 || r.degraded || !media.Supported(r.host) {
		return style.DisplayFlex
	}
	for _, name := range r.declared {
		if r.matchedLocked(name) {
			return style.DisplayFlex
		}
	}
	return style.DisplayBlock
}

// matchedLocked consults the active set while acquired and the host otherwise.
func (r *Resolver) matchedLocked(name string) bool {
	query, ok := r.cfg.Breakpoints[name]
	if !ok {
		return false
	}
	if r.acquired {
		return r.active[name]
	}
	return r.host.Matches(query)
}

// SetBreakpoints replaces the declared breakpoint names. The subscriptions
// already cover every configured query, so only the display is recomputed.
func (r *Resolver) SetBreakpoints(breakpoints []string) string {
	declared := r.normalize(breakpoints)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.declared = declared
	return r.displayLocked()
}

// Active returns the names in the Active Breakpoint Set, sorted.
func (r *Resolver) Active() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.active))
	for _, name := range slices.Sorted(maps.Keys(r.active)) {
		if r.active[name] {
			names = append(names, name)
		}
	}
	return names
}

func (r *Resolver) normalize(breakpoints []string) []string {
	declared := style.Flags{Breakpoints: breakpoints}.BreakpointSet()
	for _, name := range declared {
		if _, ok := r.cfg.Breakpoints[name]; !ok {
			r.log.With("breakpoint", name).Debug("breakpoint flag has no configured media query, never matches")
		}
	}
	return declared
}
