// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package jsxml

import (
	"fmt"

	"tlog.app/go/errors"

	"github.com/golangee/jsxml/ast"
	"github.com/golangee/jsxml/markup"
)

// ErrMissingLiteralValue is returned when a literal or operator element has no text content.
var ErrMissingLiteralValue = errors.New("missing literal value")

// IngestError is an error that occurred while converting a markup element into a script node.
type IngestError struct {
	Node     *markup.Node
	Detail   string
	wrapping error
}

func NewIngestError(node *markup.Node, detail string, wrapping error) *IngestError {
	return &IngestError{
		Node:     node,
		Detail:   detail,
		wrapping: wrapping,
	}
}

func (e *IngestError) Error() string {
	msg := fmt.Sprintf("cannot ingest '%s', %s", e.Node.Name, e.Detail)

	if begin := e.Node.Begin(); begin.Line > 0 {
		msg = begin.String() + ": " + msg
	}

	if e.wrapping != nil {
		msg += ": " + e.wrapping.Error()
	}

	return msg
}

func (e *IngestError) Unwrap() error {
	return e.wrapping
}

// IngestOption configures Ingest.
type IngestOption func(in *ingester)

// OnDropped registers a function which is called with the root of every element subtree
// that is left out because its name is not a known instruction label.
// Text and comment nodes are left out silently.
func OnDropped(f func(n *markup.Node)) IngestOption {
	return func(in *ingester) {
		in.dropped = f
	}
}

// Ingest converts the markup tree rooted at src into a script tree.
// Elements with unknown names are left out together with all their descendants,
// even if those use known names. If src itself is unknown, the result is nil without error.
// Attributes are read only for the kinds that declare them and absent ones stay empty.
func Ingest(src *markup.Node, opts ...IngestOption) (*ast.Node, error) {
	in := ingester{}
	for _, opt := range opts {
		opt(&in)
	}

	return in.node(src)
}

type ingester struct {
	dropped func(n *markup.Node)
}

func (in *ingester) node(src *markup.Node) (*ast.Node, error) {
	if src == nil {
		return nil, nil
	}

	kind := ast.KindUnknown
	if src.IsNode() {
		kind = ast.ParseKind(src.Name)
	}

	if kind == ast.KindUnknown {
		if in.dropped != nil && src.IsNode() {
			in.dropped(src)
		}

		return nil, nil
	}

	instruction, err := in.instruction(kind, src)
	if err != nil {
		return nil, err
	}

	node := ast.NewNode(instruction)

	for _, child := range src.Children {
		c, err := in.node(child)
		if err != nil {
			return nil, err
		}

		if c != nil {
			node.AddChildren(c)
		}
	}

	return node, nil
}

func (in *ingester) instruction(kind ast.Kind, src *markup.Node) (ast.Instruction, error) {
	var value string

	if kind == ast.KindLit || kind == ast.KindOp {
		text, ok := src.FirstText()
		if !ok {
			return nil, NewIngestError(src, "text content required", ErrMissingLiteralValue)
		}

		value = text
	}

	return ast.NewInstruction(kind, func(key string) string {
		if key == ast.AttrValue {
			return value
		}

		v, _ := src.Attributes.Lookup(key)

		return v
	}), nil
}
