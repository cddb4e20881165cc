// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/golangee/jsxml/config"
	"github.com/golangee/jsxml/token"
	"github.com/golangee/jsxml/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jsxml",
		Short: "Compile markup with embedded scripts into a web page",
		Long: `jsxml reads a markup document whose <script type="jsx"> elements contain an
instruction tree, generates JavaScript for them and assembles a Svelte page
that is built into a static site.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")
	root.PersistentFlags().String("config", config.Filename, "project file")

	root.AddCommand(newCompileCmd(), newParseCmd(), newVersionCmd())

	return root
}

func main() {
	root := newRootCmd()

	if err := root.ExecuteContext(context.Background()); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// setup applies the persistent flags before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}

	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return errors.New("unknown color mode %q", mode)
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}

	if verbose {
		cmd.SetContext(tlog.ContextWithSpan(cmd.Context(), tlog.Root()))
	}

	return nil
}

// loadConfig reads the project file named by the --config flag.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	tlog.SpanFromContext(cmd.Context()).Printw("config", "path", path, "found", config.Exists(path), "project", cfg.Project.Dir)

	return cfg, nil
}

func printError(w io.Writer, err error) {
	var posErr *token.PosError
	if errors.As(err, &posErr) {
		fmt.Fprintln(w, posErr.Explain())
	}

	color.New(color.FgRed).Fprintln(w, "error:", err)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
