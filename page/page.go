// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package page turns a parsed markup document into a Svelte page component.
package page

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/golangee/jsxml"
	"github.com/golangee/jsxml/encoder"
	"github.com/golangee/jsxml/markup"
)

// Element names and attribute values that carry meaning in a source document.
const (
	ScriptElement = "script"
	CliElement    = "cli"
	CallElement   = "call"
	HeadElement   = "head"
	BodyElement   = "body"

	// ScriptTypeJSX marks a script element whose content is an instruction tree.
	ScriptTypeJSX = "jsx"

	// CliComponent is the component a cli element is rendered as.
	CliComponent = "Cli"
)

// Page is the assembled component.
type Page struct {
	// Code is the generated code of all jsx scripts in document order.
	Code string
	// Scripts is the number of jsx scripts Code was generated from.
	Scripts int
	// HeadScripts are all other script elements, rendered into svelte:head.
	HeadScripts []*html.Node
	// Body holds the converted children of the body element.
	Body []*html.Node
}

// Build assembles the page from a document. The document is searched for the first head
// and the first body element, without looking inside either of them. Everything outside
// of them is ignored. Head or body elements nested deeper are unwrapped and only their
// content is kept.
// Script elements are collected from both. Elements left out of a jsx script are logged
// to the span in ctx.
func Build(ctx context.Context, doc *markup.Node) (*Page, error) {
	b := builder{ctx: ctx, page: &Page{}}

	head, body := sections(doc)

	if head != nil {
		// head content other than scripts is not part of the component
		if _, err := b.children(head); err != nil {
			return nil, errors.Wrap(err, "head")
		}
	}

	if body != nil {
		nodes, err := b.children(body)
		if err != nil {
			return nil, errors.Wrap(err, "body")
		}

		b.page.Body = nodes
	}

	b.page.Code = string(b.code)

	tlog.SpanFromContext(ctx).Printw("page assembled", "scripts", b.page.Scripts, "head_scripts", len(b.page.HeadScripts), "body_nodes", len(b.page.Body))

	return b.page, nil
}

// sections returns the first head and the first body element in pre-order.
// The walk does not descend into either of them.
func sections(doc *markup.Node) (head, body *markup.Node) {
	var walk func(n *markup.Node)
	walk = func(n *markup.Node) {
		if n.IsNode() {
			switch n.Name {
			case HeadElement:
				if head == nil {
					head = n
				}

				return
			case BodyElement:
				if body == nil {
					body = n
				}

				return
			}
		}

		for _, c := range n.Children {
			walk(c)
		}
	}

	walk(doc)

	return head, body
}

type builder struct {
	ctx  context.Context
	page *Page
	code []byte
}

func (b *builder) children(parent *markup.Node) ([]*html.Node, error) {
	var res []*html.Node

	for _, c := range parent.Children {
		if c.IsNode() && (c.Name == HeadElement || c.Name == BodyElement) {
			nested, err := b.children(c)
			if err != nil {
				return nil, err
			}

			res = append(res, nested...)

			continue
		}

		n, err := b.node(c)
		if err != nil {
			return nil, err
		}

		if n != nil {
			res = append(res, n)
		}
	}

	return res, nil
}

// node converts a single source node. A nil result without error means the node
// does not appear in the body.
func (b *builder) node(src *markup.Node) (*html.Node, error) {
	switch {
	case src.IsComment():
		return nil, nil
	case src.IsText():
		return &html.Node{Type: html.TextNode, Data: *src.Text}, nil
	}

	switch src.Name {
	case ScriptElement:
		return nil, b.script(src)
	case CliElement:
		el := &html.Node{Type: html.ElementNode, Data: CliComponent}
		if v, ok := src.Attributes.Lookup("main"); ok {
			el.Attr = append(el.Attr, html.Attribute{Key: "main", Val: "{" + v + "}"})
		}

		return el, nil
	case CallElement:
		return b.call(src)
	}

	el := &html.Node{Type: html.ElementNode, Data: src.Name}

	for _, a := range src.Attributes.List() {
		el.Attr = append(el.Attr, rewriteAttribute(src.Name, a.Key, a.Value))
	}

	children, err := b.children(src)
	if err != nil {
		return nil, err
	}

	for _, c := range children {
		el.AppendChild(c)
	}

	return el, nil
}

// rewriteAttribute maps the binding shorthands to their component syntax.
func rewriteAttribute(element, key, value string) html.Attribute {
	switch {
	case key == "bind" && element == "input":
		return html.Attribute{Key: "bind:value", Val: "{" + value + "}"}
	case len(key) > 2 && strings.HasPrefix(key, "on"):
		return html.Attribute{Key: "on:" + key[2:], Val: "{" + value + "}"}
	default:
		return html.Attribute{Key: key, Val: value}
	}
}

func (b *builder) script(src *markup.Node) error {
	if typ, _ := src.Attributes.Lookup("type"); typ != ScriptTypeJSX {
		el := &html.Node{Type: html.ElementNode, Data: ScriptElement}

		for _, a := range src.Attributes.List() {
			el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Value})
		}

		if text, ok := src.FirstText(); ok {
			el.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		}

		b.page.HeadScripts = append(b.page.HeadScripts, el)

		return nil
	}

	tree, err := jsxml.Ingest(src, jsxml.OnDropped(b.dropped))
	if err != nil {
		return errors.Wrap(err, "script at %v", src.Begin())
	}

	b.code = encoder.AppendScript(b.code, tree)
	b.page.Scripts++

	return nil
}

// call renders a call element as an expression block, e.g. {greet(name)}.
func (b *builder) call(src *markup.Node) (*html.Node, error) {
	tree, err := jsxml.Ingest(src, jsxml.OnDropped(b.dropped))
	if err != nil {
		return nil, errors.Wrap(err, "call at %v", src.Begin())
	}

	return &html.Node{Type: html.RawNode, Data: "{" + encoder.Emit(tree) + "}"}, nil
}

func (b *builder) dropped(n *markup.Node) {
	tlog.SpanFromContext(b.ctx).Printw("element dropped", "name", n.Name, "pos", n.Begin().String())
}

// Write writes the component: the script block, one svelte:head per head script and the body.
func (p *Page) Write(w io.Writer) error {
	var buf bytes.Buffer

	if p.Scripts > 0 {
		buf.WriteString("<script>\n")
		buf.WriteString(`import Cli from "./Cli.svelte";`)
		buf.WriteString(p.Code)
		buf.WriteString("</script>")
	}

	for _, s := range p.HeadScripts {
		buf.WriteString("<svelte:head>")

		if err := html.Render(&buf, s); err != nil {
			return errors.Wrap(err, "render head script")
		}

		buf.WriteString("</svelte:head>\n")
	}

	var body bytes.Buffer

	for _, n := range p.Body {
		if err := html.Render(&body, n); err != nil {
			return errors.Wrap(err, "render body")
		}
	}

	// expressions like {a > b} must reach the component compiler unescaped
	buf.WriteString(strings.ReplaceAll(body.String(), "&gt;", ">"))

	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "write page")
	}

	return nil
}

// WriteFile writes the component to path, creating missing directories.
func (p *Page) WriteFile(path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create page directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create page")
	}

	defer func() {
		if e := f.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "close page")
		}
	}()

	return p.Write(f)
}

// JSXScripts returns all jsx script elements below n in document order.
func JSXScripts(n *markup.Node) []*markup.Node {
	var res []*markup.Node

	if n.IsNode() && n.Name == ScriptElement {
		if typ, _ := n.Attributes.Lookup("type"); typ == ScriptTypeJSX {
			return append(res, n)
		}
	}

	for _, c := range n.Children {
		res = append(res, JSXScripts(c)...)
	}

	return res
}
