package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/reflex/internal/logger"
)

type rootFlags struct {
	verbose   bool
	logFormat string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "reflex",
		Short:         "reflex resolves flexbox layout flags into inline styles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: console or json (default console on a terminal)")

	cmd.AddCommand(newResolveCmd(flags))
	cmd.AddCommand(newWatchCmd(flags))
	cmd.AddCommand(newInspectCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newLogger builds the command logger writing to w.
func (f *rootFlags) newLogger(w io.Writer) (*logger.Logger, error) {
	level := "warn"
	if f.verbose {
		level = "debug"
	}

	var humanReadable bool
	switch f.logFormat {
	case "":
		humanReadable = isTerminal(w)
	case "console":
		humanReadable = true
	case "json":
		humanReadable = false
	default:
		return nil, fmt.Errorf("unknown log format %q (want console or json)", f.logFormat)
	}

	return logger.New(logger.Options{Level: level, HumanReadable: humanReadable, Writer: w})
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
