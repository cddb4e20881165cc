// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/golangee/jsxml/bundle"
	"github.com/golangee/jsxml/config"
	"github.com/golangee/jsxml/markup"
	"github.com/golangee/jsxml/page"
)

// defaultOutDir receives the build if no destination is given.
const defaultOutDir = "out"

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile --src FILE [--dest FILE.html]",
		Short: "Compile a document into a page and build it",
		Args:  cobra.NoArgs,
		RunE:  runCompile,
	}

	cmd.Flags().StringP("src", "s", "", "source file path")
	cmd.Flags().StringP("dest", "d", "", "destination file path, default is ./"+defaultOutDir+"/<src name>.html")
	cmd.Flags().Bool("no-build", false, "only write the page component, skip the build")

	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	srcFlag, err := cmd.Flags().GetString("src")
	if err != nil {
		return err
	}

	destFlag, err := cmd.Flags().GetString("dest")
	if err != nil {
		return err
	}

	noBuild, err := cmd.Flags().GetBool("no-build")
	if err != nil {
		return err
	}

	src, dest, err := resolvePaths(srcFlag, destFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := compile(cmd.Context(), cfg, src, dest, noBuild); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "Compiled successfully!")

	return nil
}

// compile writes the page component for src into the project and, unless noBuild is set,
// builds the project and publishes it to dest.
func compile(ctx context.Context, cfg config.Config, src string, dest bundle.Dest, noBuild bool) error {
	tr := tlog.SpanFromContext(ctx)

	f, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "open source")
	}

	defer f.Close()

	doc, err := markup.Parse(src, f)
	if err != nil {
		return err
	}

	p, err := page.Build(ctx, doc)
	if err != nil {
		return errors.Wrap(err, "%v", src)
	}

	pagePath := cfg.Project.PagePath()

	if err := p.WriteFile(pagePath); err != nil {
		return err
	}

	tr.Printw("page written", "path", pagePath)

	if noBuild {
		return nil
	}

	builder := bundle.Builder{Dir: cfg.Project.Dir, Command: cfg.Project.Command}

	if err := builder.Build(ctx); err != nil {
		return err
	}

	if err := bundle.Publish(cfg.Project.OutputPath(), dest, cfg.Project.Entry); err != nil {
		return err
	}

	tr.Printw("published", "dest", dest.Path())

	return nil
}

// resolvePaths turns the flag values into an absolute source path and a destination.
// Without dest the page goes to ./out/<src name>.html.
func resolvePaths(src, dest string) (string, bundle.Dest, error) {
	if src == "" {
		return "", bundle.Dest{}, errors.New("a source file must be provided")
	}

	src, err := filepath.Abs(src)
	if err != nil {
		return "", bundle.Dest{}, errors.Wrap(err, "source path")
	}

	if dest == "" {
		dir, err := filepath.Abs(defaultOutDir)
		if err != nil {
			return "", bundle.Dest{}, errors.Wrap(err, "destination path")
		}

		name := filepath.Base(src)

		return src, bundle.Dest{Dir: dir, Filename: strings.TrimSuffix(name, filepath.Ext(name)) + ".html"}, nil
	}

	dest, err = filepath.Abs(dest)
	if err != nil {
		return "", bundle.Dest{}, errors.Wrap(err, "destination path")
	}

	if filepath.Ext(dest) != ".html" {
		return "", bundle.Dest{}, errors.New("destination file can only be html, got %v", filepath.Base(dest))
	}

	return src, bundle.Dest{Dir: filepath.Dir(dest), Filename: filepath.Base(dest)}, nil
}
