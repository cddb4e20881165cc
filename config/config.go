// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package config loads the optional jsxml.toml project file.
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"
	"tlog.app/go/errors"

	"github.com/golangee/jsxml/version"
)

// Filename is the default name of the project file.
const Filename = "jsxml.toml"

// Config is the content of a project file.
type Config struct {
	// Requires is the minimal tool version, e.g. "0.3" or "v0.3.1".
	Requires string  `toml:"requires"`
	Project  Project `toml:"project"`
}

// Project describes the component project the page is built in.
type Project struct {
	// Dir is the project directory.
	Dir string `toml:"dir"`
	// Page is the path of the generated component, relative to Dir.
	Page string `toml:"page"`
	// Output is the build output directory, relative to Dir.
	Output string `toml:"output"`
	// Entry is the name of the entry file inside Output.
	Entry string `toml:"entry"`
	// Command builds the project. Empty means the package manager default.
	Command []string `toml:"command"`
}

// Default returns the configuration used without a project file.
func Default() Config {
	return Config{
		Project: Project{
			Dir:    "compiler",
			Page:   filepath.Join("src", "routes", "+page.svelte"),
			Output: "build",
			Entry:  "index.html",
		},
	}
}

// PagePath returns the path of the generated component.
func (p Project) PagePath() string {
	return filepath.Join(p.Dir, p.Page)
}

// OutputPath returns the path of the build output directory.
func (p Project) OutputPath() string {
	return filepath.Join(p.Dir, p.Output)
}

// Load reads the project file at path on top of Default. A missing file is not an error.
// Unknown keys and empty project paths are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	meta, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	if err != nil {
		return Config{}, errors.Wrap(err, "%v", path)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}

		return Config{}, errors.New("%v: unknown keys: %v", path, strings.Join(keys, ", "))
	}

	for _, key := range []string{"dir", "page", "output", "entry"} {
		if meta.IsDefined("project", key) && strings.TrimSpace(cfg.Project.value(key)) == "" {
			return Config{}, errors.New("%v: [project].%v must not be empty", path, key)
		}
	}

	if meta.IsDefined("project", "command") && len(cfg.Project.Command) == 0 {
		return Config{}, errors.New("%v: [project].command must not be empty", path)
	}

	if err := cfg.Check(version.Canonical()); err != nil {
		return Config{}, errors.Wrap(err, "%v", path)
	}

	return cfg, nil
}

func (p Project) value(key string) string {
	switch key {
	case "dir":
		return p.Dir
	case "page":
		return p.Page
	case "output":
		return p.Output
	case "entry":
		return p.Entry
	default:
		return ""
	}
}

// Check verifies that the tool version current satisfies Requires.
func (c Config) Check(current string) error {
	if c.Requires == "" {
		return nil
	}

	required := "v" + strings.TrimPrefix(c.Requires, "v")
	if !semver.IsValid(required) {
		return errors.New("invalid version requirement %q", c.Requires)
	}

	if semver.Compare(current, required) < 0 {
		return errors.New("requires jsxml %v or newer, this is %v", semver.Canonical(required), current)
	}

	return nil
}

// Exists reports whether a project file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
