package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/reflex/internal/flex"
	"github.com/alexisbeaulieu97/reflex/internal/logger"
	"github.com/alexisbeaulieu97/reflex/internal/style"
)

const (
	formatJSON  = "json"
	formatCSS   = "css"
	formatTable = "table"
)

type resolveOptions struct {
	layout layoutOptions
	format string
}

func newResolveCmd(root *rootFlags) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve layout flags into a style object and class list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := root.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runResolve(cmd.OutOrStdout(), opts, log)
		},
	}

	opts.layout.register(cmd.Flags(), "")
	cmd.Flags().StringVarP(&opts.format, "format", "o", formatJSON, "Output format: json, css or table")

	return cmd
}

func runResolve(w io.Writer, opts *resolveOptions, log *logger.Logger) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	out, err := resolveOnce(&opts.layout, log)
	if err != nil {
		return err
	}
	return writeOutput(w, opts.format, out)
}

// resolveOnce mounts a Flex element for the options, renders it and releases it.
func resolveOnce(opts *layoutOptions, log *logger.Logger) (flex.Output, error) {
	flags, err := opts.flags()
	if err != nil {
		return flex.Output{}, newCommandError("resolve", "reading layout flags", err, "Run 'reflex resolve --help' for accepted values.")
	}

	override, err := opts.override()
	if err != nil {
		return flex.Output{}, newCommandError("resolve", "loading override file", err, "Check the file exists and is valid YAML or HCL.")
	}

	host, _, err := opts.host(log)
	if err != nil {
		return flex.Output{}, newCommandError("resolve", "parsing viewport width", err, "Use a length such as 40em or 640px.")
	}

	f := flex.New(flags, flex.WithOverride(override), flex.WithHost(host), flex.WithLogger(log))
	reportUnknownBreakpoints(log, flags, f.Config())

	handle, err := f.Mount()
	if err != nil {
		return flex.Output{}, newCommandError("resolve", "subscribing to breakpoints", err, "")
	}
	defer handle.Release()

	return f.Render(), nil
}

func validateFormat(format string) error {
	switch format {
	case formatJSON, formatCSS, formatTable:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, formatJSON, formatCSS, formatTable)
	}
}

func writeOutput(w io.Writer, format string, out flex.Output) error {
	switch format {
	case formatCSS:
		_, err := fmt.Fprintf(w, "class=%q style=%q\n", out.ClassName, style.Inline(out.Style))
		return err
	case formatTable:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "PROPERTY\tVALUE\n")
		for _, decl := range style.Declarations(out.Style) {
			fmt.Fprintf(tw, "%s\t%s\n", decl.Property, decl.Value)
		}
		fmt.Fprintf(tw, "class\t%s\n", strings.TrimSpace(out.ClassName))
		return tw.Flush()
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}
}
