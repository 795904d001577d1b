// Package flex ties configuration, style and visibility resolution together
// for one Flex element and delivers its output to a renderer.
package flex

import (
	"errors"
	"fmt"
	"sync"

	"github.com/alexisbeaulieu97/reflex/internal/config"
	"github.com/alexisbeaulieu97/reflex/internal/logger"
	"github.com/alexisbeaulieu97/reflex/internal/media"
	"github.com/alexisbeaulieu97/reflex/internal/style"
	"github.com/alexisbeaulieu97/reflex/internal/visibility"
)

// ErrMounted is returned by Mount when the element is already live.
var ErrMounted = errors.New("flex element already mounted")

// Output is what the renderer receives for one render.
type Output struct {
	Style     style.Map `json:"style"`
	ClassName string    `json:"className"`
}

// Option customises a Flex.
type Option func(*Flex)

// WithOverride supplies the nearest ancestor's configuration override.
func WithOverride(override *config.Override) Option {
	return func(f *Flex) {
		f.override = override
	}
}

// WithHost sets the environment media queries are evaluated in.
// Without a host the element behaves as in a headless render.
func WithHost(host media.Host) Option {
	return func(f *Flex) {
		f.host = host
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(log *logger.Logger) Option {
	return func(f *Flex) {
		f.log = log
	}
}

// WithRenderer registers the function that receives every new Output
// produced after a flag, configuration or breakpoint change.
func WithRenderer(render func(Output)) Option {
	return func(f *Flex) {
		f.render = render
	}
}

// Flex is one live instance of the flex layout primitive.
type Flex struct {
	mu         sync.Mutex
	flags      style.Flags
	override   *config.Override
	cfg        config.Config
	host       media.Host
	log        *logger.Logger // caller's logger, handed to the resolvers untagged
	flexLog    *logger.Logger
	render     func(Output)
	visibility *visibility.Resolver
	release    func()
	mounted    bool
}

// New creates an element with the given flags.
func New(flags style.Flags, opts ...Option) *Flex {
	f := &Flex{flags: flags}
	for _, opt := range opts {
		opt(f)
	}
	f.flexLog = f.log.With("component", "flex")
	f.cfg = config.Resolve(f.override, config.WithLogger(f.log))
	f.visibility = f.newVisibility()
	return f
}

func (f *Flex) newVisibility() *visibility.Resolver {
	return visibility.New(f.host, f.cfg, f.flags.Breakpoints,
		visibility.WithLogger(f.log),
		visibility.WithOnChange(func(string) { f.deliver() }),
	)
}

// Config returns a copy of the effective configuration.
func (f *Flex) Config() config.Config {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cfg.Clone()
}

// Flags returns the current flags.
func (f *Flex) Flags() style.Flags {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flags
}

// Render computes the current output.
func (f *Flex) Render() Output {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.renderLocked()
}

func (f *Flex) renderLocked() Output {
	computed := style.Compute(f.flags, f.cfg)
	if f.flags.Constrained() {
		computed[style.KeyDisplay] = f.visibility.Display()
	}
	return Output{
		Style:     computed,
		ClassName: style.ClassName(f.flags),
	}
}

// Active returns the breakpoint names currently matching, as seen by this element.
func (f *Flex) Active() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visibility.Active()
}

// Handle releases a mounted element's subscriptions.
type Handle struct {
	once *sync.Once
	f    *Flex
}

// Release tears the element's subscriptions down. It is safe to call more than once.
func (h Handle) Release() {
	if h.f == nil {
		return
	}
	h.once.Do(h.f.unmount)
}

// Mount makes the element live: a constrained element subscribes to its
// media queries until the returned Handle is released. On error nothing
// stays subscribed.
func (f *Flex) Mount() (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.mounted {
		return Handle{}, ErrMounted
	}

	release, err := f.visibility.Acquire()
	if err != nil {
		return Handle{}, fmt.Errorf("mount flex: %w", err)
	}
	f.release = release
	f.mounted = true

	return Handle{once: &sync.Once{}, f: f}, nil
}

func (f *Flex) unmount() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.release != nil {
		f.release()
		f.release = nil
	}
	f.mounted = false
}

// SetFlags replaces the element's flags and delivers the new output.
// Moving between constrained and unconstrained acquires or releases the
// element's subscriptions.
func (f *Flex) SetFlags(flags style.Flags) {
	f.mu.Lock()
	previous := f.flags
	f.flags = flags

	if previous.Constrained() != flags.Constrained() {
		f.rebuildLocked()
	} else {
		f.visibility.SetBreakpoints(flags.Breakpoints)
	}
	f.mu.Unlock()

	f.deliver()
}

// SetOverride replaces the ancestor override, re-resolving the configuration
// and re-subscribing a mounted element to the new breakpoints.
func (f *Flex) SetOverride(override *config.Override) {
	f.mu.Lock()
	f.override = override
	f.cfg = config.Resolve(override, config.WithLogger(f.log))
	f.rebuildLocked()
	f.mu.Unlock()

	f.deliver()
}

// rebuildLocked swaps in a fresh visibility resolver, moving a live
// acquisition over to it.
func (f *Flex) rebuildLocked() {
	if f.release != nil {
		f.release()
		f.release = nil
	}
	f.visibility = f.newVisibility()
	if !f.mounted {
		return
	}

	release, err := f.visibility.Acquire()
	if err != nil {
		f.flexLog.Error(err, "re-acquire breakpoint subscriptions")
		return
	}
	f.release = release
}

func (f *Flex) deliver() {
	f.mu.Lock()
	render := f.render
	out := f.renderLocked()
	f.mu.Unlock()

	if render != nil {
		render(out)
	}
}
