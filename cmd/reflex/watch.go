package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/reflex/internal/flex"
	"github.com/alexisbeaulieu97/reflex/internal/logger"
	"github.com/alexisbeaulieu97/reflex/internal/style"
	"github.com/alexisbeaulieu97/reflex/pkg/diff"
)

type watchOptions struct {
	layout layoutOptions
	format string
	diff   bool
}

func newWatchCmd(root *rootFlags) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-resolve every time the override file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(opts.layout.configPath) == "" {
				return fmt.Errorf("--config is required")
			}
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			log, err := root.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runWatch(cmd.Context(), cmd.OutOrStdout(), opts, log, nil)
		},
	}

	opts.layout.register(cmd.Flags(), "")
	cmd.Flags().StringVarP(&opts.format, "format", "o", formatCSS, "Output format: json, css or table")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "After the first render, print only a diff of the declarations")

	return cmd
}

// runWatch prints the resolved output once, then again after every change to
// the override file, until ctx is done. ready, when non-nil, is closed once
// the watcher is in place.
func runWatch(ctx context.Context, w io.Writer, opts *watchOptions, log *logger.Logger, ready chan<- struct{}) error {
	path, err := filepath.Abs(opts.layout.configPath)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors replace files on save, so watch the directory and filter by name.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	var (
		previous []string
		renders  int
	)
	emit := func() {
		out, err := resolveOnce(&opts.layout, log)
		if err != nil {
			log.Error(err, "resolve after override change")
			return
		}
		renders++
		current := declarationLines(out)
		if opts.diff && previous != nil {
			patch := diff.Unified(previous, current, fmt.Sprintf("render %d", renders-1), fmt.Sprintf("render %d", renders))
			if patch == "" {
				log.Debug("override change left the output unchanged")
			} else if _, err := io.WriteString(w, patch); err != nil {
				log.Error(err, "write diff")
			}
		} else if err := writeOutput(w, opts.format, out); err != nil {
			log.Error(err, "write output")
		}
		previous = current
	}

	emit()
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.With("op", event.Op.String()).Debug("override file changed")
			emit()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error(err, "watch override file")
		}
	}
}

func declarationLines(out flex.Output) []string {
	decls := style.Declarations(out.Style)
	lines := make([]string, 0, len(decls)+1)
	lines = append(lines, "class: "+out.ClassName)
	for _, decl := range decls {
		lines = append(lines, decl.Property+": "+decl.Value)
	}
	return lines
}
