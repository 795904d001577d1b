package config

import (
	"maps"
	"slices"
)

// Config is the effective configuration used for one resolution.
type Config struct {
	// Scale holds spacing magnitudes indexed by gutter level.
	Scale []float64 `yaml:"scale"`
	// Breakpoints maps a breakpoint name to its media query.
	Breakpoints map[string]string `yaml:"breakpoints"`
}

// Override is a partial configuration supplied by an ancestor.
// A nil field means the ancestor did not set it.
type Override struct {
	Scale       []float64
	Breakpoints map[string]string

	// Problems lists fields dropped while loading the override from a file.
	Problems []FieldProblem
}

// FieldProblem records a top-level override field that could not be decoded.
type FieldProblem struct {
	Field string
	Err   error
}

var (
	defaultScale = []float64{0, 8, 16, 32, 64}

	defaultBreakpoints = map[string]string{
		"sm": "(min-width: 32em)",
		"md": "(min-width: 48em)",
		"lg": "(min-width: 64em)",
	}
)

// Default returns a fresh copy of the process-wide default configuration.
func Default() Config {
	return Config{
		Scale:       slices.Clone(defaultScale),
		Breakpoints: maps.Clone(defaultBreakpoints),
	}
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	return Config{
		Scale:       slices.Clone(c.Scale),
		Breakpoints: maps.Clone(c.Breakpoints),
	}
}

// BreakpointNames returns the configured breakpoint names in sorted order.
func (c Config) BreakpointNames() []string {
	return slices.Sorted(maps.Keys(c.Breakpoints))
}

// Query returns the media query configured for name.
func (c Config) Query(name string) (string, bool) {
	query, ok := c.Breakpoints[name]
	return query, ok
}

// Gutter returns the scale magnitude for a gutter index.
// Index 0, negative indexes and indexes past the end report false.
func (c Config) Gutter(index int) (float64, bool) {
	if index < 1 || index >= len(c.Scale) {
		return 0, false
	}
	return c.Scale[index], true
}
