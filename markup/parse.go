// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package markup

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/net/html"
	"tlog.app/go/errors"

	"github.com/golangee/jsxml/token"
)

// Parse reads a whole markup document and returns its tree. The returned node is named
// DocumentName and holds the top-level nodes as children.
// Whitespace-only text is dropped and entities in text and attribute values are decoded.
// CDATA sections become text nodes with their content taken literally.
// Processing instructions and other <!...> directives are skipped.
func Parse(filename string, r io.Reader) (*Node, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read %v", filename)
	}

	src := string(buf)
	doc := &document{}

	if err := markupParser.ParseString(filename, src, doc); err != nil {
		return nil, errors.Wrap(err, "parse markup")
	}

	root := NewNode(DocumentName)
	root.Range.BeginPos = token.Pos{File: filename, Line: 1, Col: 1}

	b := builder{filename: filename, src: src}

	children, err := b.contents(doc.Nodes)
	if err != nil {
		return nil, err
	}

	root.AddChildren(children...)

	if len(doc.Nodes) > 0 {
		root.Range.EndPos = b.pos(doc.Nodes[len(doc.Nodes)-1].EndPos)
	}

	return root, nil
}

const (
	cdataOpen  = "<![CDATA["
	cdataClose = "]]>"
)

// builder turns the grammar structs into the generic tree.
type builder struct {
	filename string
	src      string
}

func (b *builder) contents(list []*content) ([]*Node, error) {
	var nodes []*Node

	for _, c := range list {
		switch {
		case c.Comment != nil:
			text := strings.TrimSuffix(strings.TrimPrefix(*c.Comment, "<!--"), "-->")
			n := NewCommentNode(strings.TrimSpace(text))
			n.Range = b.position(c.Pos, c.EndPos)
			nodes = append(nodes, n)
		case c.Text != nil:
			if strings.TrimSpace(*c.Text) == "" {
				continue
			}

			nodes = b.appendText(nodes, html.UnescapeString(*c.Text), c)
		case c.CData != nil:
			nodes = b.appendText(nodes, strings.TrimSuffix(strings.TrimPrefix(*c.CData, cdataOpen), cdataClose), c)
		case c.Element != nil:
			n, err := b.element(c.Element)
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, n)
		}
	}

	return nodes, nil
}

// appendText adds text as a new node or, if the last node is text as well, joins both
// so that a CDATA section and its surrounding text form a single node.
func (b *builder) appendText(nodes []*Node, text string, c *content) []*Node {
	if len(nodes) > 0 && nodes[len(nodes)-1].IsText() {
		last := nodes[len(nodes)-1]
		*last.Text += text
		last.Range.EndPos = b.pos(c.EndPos)

		return nodes
	}

	n := NewTextNode(text)
	n.Range = b.position(c.Pos, c.EndPos)

	return append(nodes, n)
}

func (b *builder) element(e *element) (*Node, error) {
	n := NewNode(e.Name)
	n.Range = b.position(e.Pos, e.EndPos)

	for _, a := range e.Attributes {
		attr := Attribute{
			Key:   a.Key,
			Range: b.position(a.Pos, a.EndPos),
		}

		if a.Value != nil {
			attr.Value = html.UnescapeString(unquote(*a.Value))
		}

		if n.Attributes.Set(attr) {
			return nil, token.NewPosError(attr.Range, "attribute '"+a.Key+"' defined twice").SetSource(b.src)
		}
	}

	if e.Body.Open == nil {
		return n, nil
	}

	if closing := e.Body.Open.Close; closing.Name != e.Name {
		return nil, token.NewPosError(b.position(closing.Pos, closing.EndPos),
			"closing tag '"+closing.Name+"' does not match",
			token.NewErrDetail(token.NewNode(b.pos(e.Pos), b.pos(e.Pos)), "element '"+e.Name+"' opened here"),
		).SetSource(b.src).SetHint("close the element with </" + e.Name + ">")
	}

	children, err := b.contents(e.Body.Open.Children)
	if err != nil {
		return nil, err
	}

	n.AddChildren(children...)

	return n, nil
}

func (b *builder) pos(p lexer.Position) token.Pos {
	return token.Pos{
		File:   b.filename,
		Line:   p.Line,
		Col:    p.Column,
		Offset: p.Offset,
	}
}

func (b *builder) position(begin, end lexer.Position) token.Position {
	return token.Position{
		BeginPos: b.pos(begin),
		EndPos:   b.pos(end),
	}
}

// unquote removes the surrounding quotes of an attribute value, if any.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}

	return s
}
