// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package version holds the build information of the jsxml tool.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
	"golang.org/x/mod/semver"
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the tool, without the leading v.
	Version = "0.3.0"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Canonical returns Version in the form golang.org/x/mod/semver expects, e.g. v0.3.0.
func Canonical() string {
	return "v" + strings.TrimPrefix(Version, "v")
}

// Colored renders Version with one color per component. Pre-release and build suffixes
// are kept uncolored.
func Colored() string {
	v := Canonical()
	if !semver.IsValid(v) {
		return Version
	}

	core := strings.TrimPrefix(semver.Canonical(v), "v")
	suffix := ""

	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, suffix = core[:i], core[i:]
	}

	parts := strings.SplitN(core, ".", 3)

	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2]) + suffix
}

// String returns the version line printed by the tool.
func String() string {
	s := "jsxml " + Colored()

	if GitCommit != "" {
		s += " (" + GitCommit + ")"
	}

	if BuildDate != "" {
		s += " built " + BuildDate
	}

	return s
}
