// Package media models the host environment's media query primitives and
// provides a simulated viewport that implements them.
package media

import (
	"errors"
)

// ErrUnsupported is returned by hosts without media query support.
var ErrUnsupported = errors.New("media queries are not supported by this host")

// Host is the environment a Flex element runs in.
type Host interface {
	// Matches reports whether query currently matches.
	Matches(query string) bool
	// Subscribe registers onChange to be called every time the match state
	// of query flips. The returned function removes the registration and
	// is safe to call more than once.
	Subscribe(query string, onChange func(matched bool)) (unsubscribe func(), err error)
}

// Capability is implemented by hosts that can say up front whether they
// evaluate media queries. Supported is the only support gate consulted
// before Acquire; a host that does not implement Capability is assumed
// capable until Subscribe returns ErrUnsupported.
type Capability interface {
	SupportsMediaQueries() bool
}

// Headless is a Host without media query support, such as a server-side render.
type Headless struct{}

// Matches always reports false.
func (Headless) Matches(string) bool {
	return false
}

// Subscribe always fails with ErrUnsupported.
func (Headless) Subscribe(string, func(bool)) (func(), error) {
	return nil, ErrUnsupported
}

// SupportsMediaQueries always reports false.
func (Headless) SupportsMediaQueries() bool {
	return false
}

// Supported reports whether host can evaluate media queries.
func Supported(host Host) bool {
	switch host.(type) {
	case nil, Headless, *Headless:
		return false
	}
	if c, ok := host.(Capability); ok {
		return c.SupportsMediaQueries()
	}
	return true
}
