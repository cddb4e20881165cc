// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package markup

import "github.com/golangee/jsxml/token"

// DocumentName is the name of the node returned by Parse. It can never collide with
// an element name.
const DocumentName = "#document"

// Node is a node in the generic markup tree.
// For element nodes Text and Comment will always be nil.
// For text nodes Children and Name will be empty and Text will be set.
// For comment nodes Children and Name will be empty and only Comment will be set.
type Node struct {
	Name       string
	Text       *string
	Comment    *string
	Attributes AttributeList
	Children   []*Node
	// Range will span all tokens that were processed to build this node.
	Range token.Position
}

// NewNode creates a new element node.
func NewNode(name string) *Node {
	return &Node{
		Name:       name,
		Attributes: NewAttributeList(),
	}
}

// NewTextNode creates a node that will only contain text.
func NewTextNode(text string) *Node {
	return &Node{
		Text: &text,
	}
}

// NewCommentNode creates a node that will only contain a comment.
func NewCommentNode(comment string) *Node {
	return &Node{
		Comment: &comment,
	}
}

// AddChildren adds children to a node and can be used builder-style.
func (n *Node) AddChildren(children ...*Node) *Node {
	n.Children = append(n.Children, children...)

	return n
}

// AddAttribute adds an attribute to a node and can be used builder-style.
func (n *Node) AddAttribute(key, value string) *Node {
	n.Attributes.Set(Attribute{
		Key:   key,
		Value: value,
	})

	return n
}

// IsText returns true if this node is a text only node.
// Only one of IsText, IsComment, IsNode should be true.
func (n *Node) IsText() bool {
	return n.Text != nil
}

// IsComment returns true if this node is a comment node.
// Only one of IsText, IsComment, IsNode should be true.
func (n *Node) IsComment() bool {
	return n.Comment != nil
}

// IsNode returns true if this is an element (or the document).
// Only one of IsText, IsComment, IsNode should be true.
func (n *Node) IsNode() bool {
	return !n.IsText() && !n.IsComment()
}

// FirstText returns the text of the first child, if that child is a text node.
func (n *Node) FirstText() (string, bool) {
	if len(n.Children) == 0 || !n.Children[0].IsText() {
		return "", false
	}

	return *n.Children[0].Text, true
}

// Find returns the first element named name in pre-order, including n itself, or nil.
func (n *Node) Find(name string) *Node {
	if n.IsNode() && n.Name == name {
		return n
	}

	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}

	return nil
}

// Begin implements token.Node.
func (n *Node) Begin() token.Pos {
	return n.Range.BeginPos
}

// End implements token.Node.
func (n *Node) End() token.Pos {
	return n.Range.EndPos
}
