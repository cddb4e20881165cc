// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package page

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"

	"github.com/golangee/jsxml"
	"github.com/golangee/jsxml/markup"
)

const document = `<?xml version="1.0"?>
<html>
<head>
	<title>ignored</title>
	<script src="https://cdn.example.org/x.js"></script>
	<script type="jsx">
		<func>
			<sign name="greet"><param name="n"/></sign>
			<block><return><lit type="string">hi</lit></return></block>
		</func>
	</script>
</head>
<body>
	<h1 class="title">Hello</h1>
	<!-- form -->
	<input bind="name" onchange="update"/>
	<button onclick="go">Go</button>
	<cli main="main"/>
	<p><call name="greet"><param name="name"/></call></p>
	<p>a > b</p>
	<script type="jsx">
		<func><sign name="main"><meta type="cli-main"/></sign><block/></func>
	</script>
</body>
</html>
`

func build(t *testing.T, text string) *Page {
	t.Helper()

	doc, err := markup.Parse("page_test.xml", strings.NewReader(text))
	require.NoError(t, err)

	p, err := Build(context.Background(), doc)
	require.NoError(t, err)

	return p
}

func TestBuild(t *testing.T) {
	p := build(t, document)

	assert.Equal(t, 2, p.Scripts)
	assert.Equal(t, "\nfunction greet(n) {\nreturn \"hi\"\n}\n"+
		"\nfunction main(__writeToCli,__readFromCli) {\n\n}\n", p.Code)
	assert.Len(t, p.HeadScripts, 1)
	assert.Len(t, p.Body, 6)
}

func TestWrite(t *testing.T) {
	p := build(t, document)

	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))

	want := "<script>\nimport Cli from \"./Cli.svelte\";" + p.Code + "</script>" +
		"<svelte:head><script src=\"https://cdn.example.org/x.js\"></script></svelte:head>\n" +
		`<h1 class="title">Hello</h1>` +
		`<input bind:value="{name}" on:change="{update}"/>` +
		`<button on:click="{go}">Go</button>` +
		`<Cli main="{main}"></Cli>` +
		`<p>{greet(name)}</p>` +
		`<p>a > b</p>`

	assert.Equal(t, want, buf.String())
}

func TestWriteWithoutScripts(t *testing.T) {
	p := build(t, `<html><body><div id="x">text</div></body></html>`)

	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))

	assert.Equal(t, `<div id="x">text</div>`, buf.String())
}

func TestBuildNestedSections(t *testing.T) {
	p := build(t, `<html><body><div><head><script type="jsx"><func><sign name="f"/><block/></func></script></head>`+
		`<body><b>x</b></body></div></body></html>`)

	assert.Equal(t, 1, p.Scripts)
	assert.Equal(t, "\nfunction f() {\n\n}\n", p.Code)

	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))

	assert.Equal(t, "<script>\nimport Cli from \"./Cli.svelte\";\nfunction f() {\n\n}\n</script><div><b>x</b></div>", buf.String())
}

func TestBuildFirstSectionsOnly(t *testing.T) {
	p := build(t, `<root><page><body><i>first</i></body><head><script src="a.js"></script></head></page>`+
		`<body><i>second</i></body><head><script src="b.js"></script></head></root>`)

	require.Len(t, p.HeadScripts, 1)
	assert.Equal(t, "a.js", p.HeadScripts[0].Attr[0].Val)

	require.Len(t, p.Body, 1)
	assert.Equal(t, "first", p.Body[0].FirstChild.Data)
}

func TestCallArguments(t *testing.T) {
	tests := []struct {
		name string
		call string
		want string
	}{
		{"no arguments", `<call name="f"/>`, "<p>{f()}</p>"},
		{"params", `<call name="f"><param name="a"/><param name="b"/></call>`, "<p>{f(a,b)}</p>"},
		{"literals", `<call name="f"><lit>1</lit><lit type="string">x</lit></call>`, `<p>{f(1,"x")}</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := build(t, "<html><body><p>"+tt.call+"</p></body></html>")

			var buf bytes.Buffer
			require.NoError(t, p.Write(&buf))

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRewriteAttribute(t *testing.T) {
	tests := []struct {
		element, key, value string
		wantKey, wantVal    string
	}{
		{"input", "bind", "name", "bind:value", "{name}"},
		{"div", "bind", "name", "bind", "name"},
		{"button", "onclick", "go", "on:click", "{go}"},
		{"div", "on", "x", "on", "x"},
		{"a", "href", "/", "href", "/"},
	}

	for _, tt := range tests {
		a := rewriteAttribute(tt.element, tt.key, tt.value)
		assert.Equal(t, tt.wantKey, a.Key)
		assert.Equal(t, tt.wantVal, a.Val)
	}
}

func TestBuildMissingLiteral(t *testing.T) {
	doc, err := markup.Parse("bad.xml", strings.NewReader(`<html><body><script type="jsx"><lit/></script></body></html>`))
	require.NoError(t, err)

	_, err = Build(context.Background(), doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jsxml.ErrMissingLiteralValue))
}

func TestWriteFile(t *testing.T) {
	p := build(t, `<html><body><b>x</b></body></html>`)

	path := filepath.Join(t.TempDir(), "src", "routes", "+page.svelte")
	require.NoError(t, p.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<b>x</b>", string(data))
}

func TestJSXScripts(t *testing.T) {
	doc, err := markup.Parse("scripts.xml", strings.NewReader(document))
	require.NoError(t, err)

	scripts := JSXScripts(doc)
	require.Len(t, scripts, 2)
	assert.Equal(t, "func", scripts[0].Children[0].Name)
	assert.Equal(t, 21, scripts[1].Begin().Line)
}
