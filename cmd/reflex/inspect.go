package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/reflex/internal/logger"
	"github.com/alexisbeaulieu97/reflex/internal/media"
	"github.com/alexisbeaulieu97/reflex/internal/tui"
)

func newInspectCmd(root *rootFlags) *cobra.Command {
	opts := &layoutOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Resize a simulated viewport and watch the element's style respond",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("inspect needs an interactive terminal; use 'reflex resolve' instead")
			}
			// The TUI owns the terminal, so diagnostics are discarded unless verbose.
			log := logger.Nop()
			if root.verbose {
				var err error
				if log, err = root.newLogger(cmd.ErrOrStderr()); err != nil {
					return err
				}
			}
			return runInspect(opts, log)
		},
	}

	opts.register(cmd.Flags(), "40em")

	return cmd
}

func runInspect(opts *layoutOptions, log *logger.Logger) error {
	flags, err := opts.flags()
	if err != nil {
		return newCommandError("inspect", "reading layout flags", err, "Run 'reflex inspect --help' for accepted values.")
	}

	override, err := opts.override()
	if err != nil {
		return newCommandError("inspect", "loading override file", err, "Check the file exists and is valid YAML or HCL.")
	}

	_, viewport, err := opts.host(log)
	if err != nil {
		return newCommandError("inspect", "parsing viewport width", err, "Use a length such as 40em or 640px.")
	}
	if viewport == nil {
		viewport = media.NewViewport(0, media.WithViewportLogger(log))
	}

	model, err := tui.NewModel(flags, override, viewport, log)
	if err != nil {
		return newCommandError("inspect", "mounting element", err, "")
	}
	defer model.Close()

	_, err = tea.NewProgram(model).Run()
	return err
}
