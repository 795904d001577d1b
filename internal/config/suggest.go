package config

import (
	"github.com/sahilm/fuzzy"
)

// SuggestBreakpoint returns the configured breakpoint name closest to name.
// It reports false when name is already configured or nothing resembles it.
func SuggestBreakpoint(name string, cfg Config) (string, bool) {
	if name == "" {
		return "", false
	}
	if _, ok := cfg.Breakpoints[name]; ok {
		return "", false
	}

	matches := fuzzy.Find(name, cfg.BreakpointNames())
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}
