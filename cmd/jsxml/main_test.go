// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const greeter = `<html>
<head>
	<script type="jsx">
		<func><sign name="greet"><param name="n"/></sign>
		<block><return><lit type="string">hi </lit><op>+</op><var name="n"/></return></block></func>
	</script>
</head>
<body><p><call name="greet"><lit type="string">you</lit></call></p></body>
</html>
`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--color", "off"}, args...))

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestResolvePaths(t *testing.T) {
	src, dest, err := resolvePaths("pages/app.xml", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(src))
	assert.Equal(t, "app.html", dest.Filename)
	assert.Equal(t, defaultOutDir, filepath.Base(dest.Dir))

	_, dest, err = resolvePaths("app.xml", filepath.Join("site", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "index.html", dest.Filename)
	assert.Equal(t, "site", filepath.Base(dest.Dir))

	_, _, err = resolvePaths("", "")
	assert.ErrorContains(t, err, "a source file must be provided")

	_, _, err = resolvePaths("app.xml", "site/index.htm")
	assert.ErrorContains(t, err, "destination file can only be html")
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, filepath.Join(dir, "a.xml"), greeter)
	second := writeFile(t, filepath.Join(dir, "b.xml"), `<html><body><script type="jsx"><log><lit>1</lit></log></script></body></html>`)
	empty := writeFile(t, filepath.Join(dir, "c.xml"), `<html><body/></html>`)

	results, err := parseFiles(context.Background(), []string{first, second, empty}, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, first, results[0].File)
	assert.Equal(t, []string{"\nfunction greet(n) {\nreturn \"hi \"+n\n}\n"}, results[0].Code)
	assert.Equal(t, []string{"console.log(1)"}, results[1].Code)
	assert.Empty(t, results[2].Scripts)
}

func TestParseFilesError(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, filepath.Join(dir, "bad.xml"), `<script type="jsx"><block></script>`)
	good := writeFile(t, filepath.Join(dir, "good.xml"), `<script type="jsx"/>`)

	_, err := parseFiles(context.Background(), []string{good, bad}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.xml")
}

func TestParseCommand(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "greeter.xml"), greeter)

	out, err := execute(t, "parse", "--format", "js", path)
	require.NoError(t, err)
	assert.Equal(t, "// "+path+"\n\nfunction greet(n) {\nreturn \"hi \"+n\n}\n\n", out)

	out, err = execute(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "Signature"`)
	assert.Contains(t, out, `"name": "greet"`)

	out, err = execute(t, "parse", "--format", "msgpack", path)
	require.NoError(t, err)

	var decoded fileResult
	require.NoError(t, msgpack.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, path, decoded.File)
	require.Len(t, decoded.Scripts, 1)
	assert.Equal(t, "Script", decoded.Scripts[0].Kind)

	_, err = execute(t, "parse", "--format", "yaml", path)
	assert.ErrorContains(t, err, "unknown format")
}

func TestCompileNoBuild(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "greeter.xml"), greeter)
	project := filepath.Join(dir, "web")
	cfg := writeFile(t, filepath.Join(dir, "jsxml.toml"), "[project]\ndir = '"+project+"'\n")

	out, err := execute(t, "--config", cfg, "compile", "-s", src, "--no-build")
	require.NoError(t, err)
	assert.Contains(t, out, "Compiled successfully!")

	data, err := os.ReadFile(filepath.Join(project, "src", "routes", "+page.svelte"))
	require.NoError(t, err)
	assert.Equal(t, "<script>\nimport Cli from \"./Cli.svelte\";\nfunction greet(n) {\nreturn \"hi \"+n\n}\n</script>"+
		`<p>{greet("you")}</p>`, string(data))
}

func TestCompile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "greeter.xml"), greeter)
	project := filepath.Join(dir, "web")
	cfg := writeFile(t, filepath.Join(dir, "jsxml.toml"), strings.Join([]string{
		"[project]",
		"dir = '" + project + "'",
		`command = ["sh", "-c", "mkdir -p build && cp src/routes/+page.svelte build/index.html"]`,
	}, "\n"))
	dest := filepath.Join(dir, "site", "greeter.html")

	_, err := execute(t, "--config", cfg, "compile", "-s", src, "-d", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<p>{greet("you")}</p>`)
}

func TestCompileMissingSource(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "compile")
	assert.ErrorContains(t, err, "a source file must be provided")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "jsxml "))
}

func TestPrintError(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "bad.xml"), "<script>\n<block>\n</blok>\n</script>")

	_, err := execute(t, "parse", path)
	require.Error(t, err)

	var buf bytes.Buffer
	printError(&buf, err)
	assert.Contains(t, buf.String(), "</blok>")
	assert.Contains(t, buf.String(), "error:")
}
