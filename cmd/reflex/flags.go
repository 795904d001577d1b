package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/alexisbeaulieu97/reflex/internal/config"
	"github.com/alexisbeaulieu97/reflex/internal/logger"
	"github.com/alexisbeaulieu97/reflex/internal/media"
	"github.com/alexisbeaulieu97/reflex/internal/style"
)

// layoutOptions are the instance flags and environment shared by every command.
type layoutOptions struct {
	wrap        bool
	column      bool
	align       string
	justify     string
	gutter      int
	breakpoints []string
	className   string
	styles      []string
	configPath  string
	width       string
}

func (o *layoutOptions) register(fs *pflag.FlagSet, defaultWidth string) {
	fs.BoolVar(&o.wrap, "wrap", false, "Enable flex-wrap")
	fs.BoolVar(&o.column, "column", false, "Use column direction")
	fs.StringVar(&o.align, "align", "", "align-items: stretch, center, baseline, flex-start or flex-end")
	fs.StringVar(&o.justify, "justify", "", "justify-content: center, space-around, space-between, flex-start or flex-end")
	fs.IntVar(&o.gutter, "gutter", -1, "Gutter index into the spacing scale")
	fs.StringSliceVar(&o.breakpoints, "bp", nil, "Breakpoint the element is visible at (repeatable)")
	fs.StringVar(&o.className, "class", "", "Extra class names")
	fs.StringArrayVar(&o.styles, "style", nil, "Caller style entry as key=value (repeatable)")
	fs.StringVarP(&o.configPath, "config", "c", "", "Override file (.yaml, .yml or .hcl)")
	fs.StringVar(&o.width, "width", defaultWidth, "Viewport width such as 40em or 640px; empty renders headless")
}

// flags converts the command line into validated instance flags.
func (o *layoutOptions) flags() (style.Flags, error) {
	flags := style.Flags{
		Wrap:        o.wrap,
		Column:      o.column,
		Align:       style.Align(o.align),
		Justify:     style.Justify(o.justify),
		Breakpoints: o.breakpoints,
		ClassName:   o.className,
	}
	if o.gutter >= 0 {
		flags.Gutter = style.Gutter(o.gutter)
	}

	if len(o.styles) > 0 {
		flags.Style = make(map[string]any, len(o.styles))
		for _, entry := range o.styles {
			key, value, ok := strings.Cut(entry, "=")
			key = strings.TrimSpace(key)
			if !ok || key == "" {
				return style.Flags{}, fmt.Errorf("style entry %q: want key=value", entry)
			}
			flags.Style[key] = parseStyleValue(strings.TrimSpace(value))
		}
	}

	if err := flags.Validate(); err != nil {
		return style.Flags{}, err
	}
	return flags, nil
}

// parseStyleValue keeps numbers numeric so they render with units.
func parseStyleValue(value string) any {
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	return value
}

func (o *layoutOptions) override() (*config.Override, error) {
	if o.configPath == "" {
		return nil, nil
	}
	return config.LoadOverride(o.configPath)
}

func (o *layoutOptions) host(log *logger.Logger) (media.Host, *media.Viewport, error) {
	if strings.TrimSpace(o.width) == "" {
		return media.Headless{}, nil, nil
	}
	viewport, err := media.ParseViewport(o.width, media.WithViewportLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return viewport, viewport, nil
}

// reportUnknownBreakpoints logs declared names missing from cfg, with a suggestion when one is close.
func reportUnknownBreakpoints(log *logger.Logger, flags style.Flags, cfg config.Config) {
	for _, name := range flags.BreakpointSet() {
		if _, ok := cfg.Query(name); ok {
			continue
		}
		fields := map[string]any{"breakpoint": name}
		if suggestion, ok := config.SuggestBreakpoint(name, cfg); ok {
			fields["suggestion"] = suggestion
		}
		log.WithFields(fields).Debug("breakpoint is not configured and never matches")
	}
}
