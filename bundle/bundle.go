// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package bundle runs the external component build and publishes its output.
package bundle

import (
	"context"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

// ErrBuildFailed is returned when the build command exits unsuccessfully.
var ErrBuildFailed = errors.New("could not compile, check for errors")

// DefaultEntry is the file the build produces as the page entry point.
const DefaultEntry = "index.html"

// DefaultCommand returns the package manager invocation that builds the project.
func DefaultCommand() []string {
	if runtime.GOOS == "windows" {
		return []string{"npm.cmd", "run", "build"}
	}

	return []string{"npm", "run", "build"}
}

// Builder runs a build command inside a project directory.
type Builder struct {
	// Dir is the project directory the command runs in.
	Dir string
	// Command is the program and its arguments. DefaultCommand is used if empty.
	Command []string
}

// Build runs the command and waits for it. Its output is discarded.
func (b Builder) Build(ctx context.Context) error {
	command := b.Command
	if len(command) == 0 {
		command = DefaultCommand()
	}

	tlog.SpanFromContext(ctx).Printw("build", "dir", b.Dir, "command", command)

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = b.Dir

	if err := cmd.Run(); err != nil {
		tlog.SpanFromContext(ctx).Printw("build failed", "err", err)

		return errors.Wrap(ErrBuildFailed, "run %v", command[0])
	}

	return nil
}

// Dest is where a build is published.
type Dest struct {
	Dir      string
	Filename string
}

// Path returns the published entry file.
func (d Dest) Path() string {
	return filepath.Join(d.Dir, d.Filename)
}

// Publish replaces the contents of dest.Dir with the tree below buildDir and renames
// the entry file to dest.Filename. dest.Dir is created if it does not exist.
func Publish(buildDir string, dest Dest, entry string) error {
	if entry == "" {
		entry = DefaultEntry
	}

	if err := clearDir(dest.Dir); err != nil {
		return err
	}

	if err := copyTree(buildDir, dest.Dir); err != nil {
		return errors.Wrap(err, "copy build")
	}

	if dest.Filename == "" || dest.Filename == entry {
		return nil
	}

	if err := os.Rename(filepath.Join(dest.Dir, entry), dest.Path()); err != nil {
		return errors.Wrap(err, "rename entry")
	}

	return nil
}

// clearDir removes everything inside dir or creates it.
func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create destination")
		}

		return nil
	}

	if err != nil {
		return errors.Wrap(err, "read destination")
	}

	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return errors.Wrap(err, "clear destination")
		}
	}

	return nil
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		return copyFile(path, target)
	})
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}

	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	defer func() {
		if e := out.Close(); err == nil {
			err = e
		}
	}()

	_, err = io.Copy(out, in)

	return err
}
