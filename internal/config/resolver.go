package config

import (
	"maps"
	"slices"

	"github.com/alexisbeaulieu97/reflex/internal/logger"
)

// ResolveOption customises a Resolve call.
type ResolveOption func(*resolveOptions)

type resolveOptions struct {
	log *logger.Logger
}

// WithLogger routes fallback diagnostics to log.
func WithLogger(log *logger.Logger) ResolveOption {
	return func(o *resolveOptions) {
		o.log = log
	}
}

// Resolve merges an ancestor override over the defaults.
//
// The merge is shallow per field: a supplied Breakpoints map replaces the
// default map as a whole. A field that is malformed (empty, negative or
// non-finite scale entries, blank names or queries) is ignored in favour of
// the default and reported as a warning; Resolve never fails. The returned
// Config shares no memory with the override or the defaults.
func Resolve(override *Override, opts ...ResolveOption) Config {
	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.With("component", "config")

	cfg := Default()
	if override == nil {
		return cfg
	}

	for _, problem := range override.Problems {
		log.WithFields(map[string]any{"field": problem.Field, "error": problem.Err.Error()}).
			Warn("override field dropped, using default")
	}

	if override.Scale != nil {
		if err := validateScale(override.Scale); err != nil {
			log.WithFields(map[string]any{"field": "scale", "error": describe("scale", err)}).
				Warn("malformed scale override, using default")
		} else {
			cfg.Scale = slices.Clone(override.Scale)
		}
	}

	if override.Breakpoints != nil {
		if err := validateBreakpoints(override.Breakpoints); err != nil {
			log.WithFields(map[string]any{"field": "breakpoints", "error": describe("breakpoints", err)}).
				Warn("malformed breakpoints override, using default")
		} else {
			cfg.Breakpoints = maps.Clone(override.Breakpoints)
			warnAliases(log, cfg.Breakpoints)
		}
	}

	return cfg
}

// warnAliases reports breakpoint names sharing one media query. They are kept.
func warnAliases(log *logger.Logger, breakpoints map[string]string) {
	seen := make(map[string]string, len(breakpoints))
	for _, name := range slices.Sorted(maps.Keys(breakpoints)) {
		query := breakpoints[name]
		if first, ok := seen[query]; ok {
			log.WithFields(map[string]any{"breakpoint": name, "alias_of": first, "query": query}).
				Debug("breakpoint shares media query with another name")
			continue
		}
		seen[query] = name
	}
}
