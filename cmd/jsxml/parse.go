// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/golangee/jsxml"
	"github.com/golangee/jsxml/ast"
	"github.com/golangee/jsxml/encoder"
	"github.com/golangee/jsxml/markup"
	"github.com/golangee/jsxml/page"
)

// Output formats of the parse command.
const (
	formatJSON    = "json"
	formatMsgpack = "msgpack"
	formatJS      = "js"
)

// fileResult holds the scripts of one document.
type fileResult struct {
	File    string      `json:"file" msgpack:"file"`
	Scripts []*ast.Dump `json:"scripts" msgpack:"scripts"`
	Code    []string    `json:"-" msgpack:"-"`
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] FILE...",
		Short: "Print the instruction trees or the generated code of documents",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runParse,
	}

	cmd.Flags().String("format", formatJSON, "output format (json|msgpack|js)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	switch format {
	case formatJSON, formatMsgpack, formatJS:
	default:
		return errors.New("unknown format: %v", format)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	results, err := parseFiles(cmd.Context(), args, jobs)
	if err != nil {
		return err
	}

	return writeResults(cmd.OutOrStdout(), results, format)
}

// parseFiles processes the files concurrently. Results keep the order of paths.
func parseFiles(ctx context.Context, paths []string, jobs int) ([]*fileResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*fileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res, err := parseFile(gctx, path)
			if err != nil {
				return errors.Wrap(err, "%v", path)
			}

			// each goroutine owns its own index
			results[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func parseFile(ctx context.Context, path string) (*fileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	doc, err := markup.Parse(path, f)
	if err != nil {
		return nil, err
	}

	res := &fileResult{File: path, Scripts: []*ast.Dump{}}

	tr := tlog.SpanFromContext(ctx)

	for _, s := range page.JSXScripts(doc) {
		tree, err := jsxml.Ingest(s, jsxml.OnDropped(func(n *markup.Node) {
			tr.Printw("element dropped", "name", n.Name, "pos", n.Begin().String())
		}))
		if err != nil {
			return nil, err
		}

		res.Scripts = append(res.Scripts, tree.Dump())
		res.Code = append(res.Code, encoder.Emit(tree))
	}

	tr.Printw("parsed", "file", path, "scripts", len(res.Scripts))

	return res, nil
}

func writeResults(w io.Writer, results []*fileResult, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return errors.Wrap(err, "encode %v", r.File)
			}
		}
	case formatMsgpack:
		enc := msgpack.NewEncoder(w)

		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return errors.Wrap(err, "encode %v", r.File)
			}
		}
	case formatJS:
		for _, r := range results {
			if _, err := io.WriteString(w, "// "+r.File+"\n"); err != nil {
				return err
			}

			for _, code := range r.Code {
				if _, err := io.WriteString(w, code+"\n"); err != nil {
					return err
				}
			}
		}
	default:
		return errors.New("unknown format: %v", format)
	}

	return nil
}
