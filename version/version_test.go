// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColored(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()

	color.NoColor = true

	tests := []struct {
		version string
		want    string
	}{
		{"0.3.0", "0.3.0"},
		{"v1.2.3", "1.2.3"},
		{"1.2", "1.2.0"},
		{"1.0.0-beta.1", "1.0.0-beta.1"},
		{"not a version", "not a version"},
	}

	for _, tt := range tests {
		Version = tt.version
		if got := Colored(); got != tt.want {
			t.Errorf("Colored(%q) = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	origVersion, origCommit, origDate, origNoColor := Version, GitCommit, BuildDate, color.NoColor
	defer func() { Version, GitCommit, BuildDate, color.NoColor = origVersion, origCommit, origDate, origNoColor }()

	color.NoColor = true
	Version, GitCommit, BuildDate = "1.0.0", "abc123", "2024-01-15"

	if got, want := String(), "jsxml 1.0.0 (abc123) built 2024-01-15"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCanonical(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "v2.0.0"
	if got := Canonical(); got != "v2.0.0" {
		t.Errorf("Canonical() = %q", got)
	}
}
