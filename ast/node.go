// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

// Node is a node of the script syntax tree. A node exclusively owns its children and
// keeps no reference to its parent. Nodes are built once and are not mutated afterwards.
type Node struct {
	Instruction Instruction
	Children    []*Node
}

// NewNode creates a node without children.
func NewNode(in Instruction) *Node {
	return &Node{Instruction: in}
}

// AddChildren adds children to a node and can be used builder-style.
func (n *Node) AddChildren(children ...*Node) *Node {
	n.Children = append(n.Children, children...)

	return n
}

// Kind returns the kind of the node's instruction.
func (n *Node) Kind() Kind {
	if n == nil || n.Instruction == nil {
		return KindUnknown
	}

	return n.Instruction.Kind()
}

// Attributes returns the attribute view of the instruction. Only the keys declared for the
// kind can appear. An empty value is left out, so a source attribute written as name=""
// looks the same as a missing one. The map may be empty but never nil.
func (n *Node) Attributes() map[string]string {
	attrs := make(map[string]string)

	if n.Instruction != nil {
		n.Instruction.attributes(attrs)
	}

	return attrs
}

// Dump is a plain representation of a tree for encoders and test comparisons.
type Dump struct {
	Kind       string            `json:"kind" msgpack:"kind"`
	Attributes map[string]string `json:"attributes,omitempty" msgpack:"attributes,omitempty"`
	Children   []*Dump           `json:"children,omitempty" msgpack:"children,omitempty"`
}

// Dump converts the tree rooted at n.
func (n *Node) Dump() *Dump {
	d := &Dump{
		Kind: n.Kind().String(),
	}

	if attrs := n.Attributes(); len(attrs) > 0 {
		d.Attributes = attrs
	}

	for _, c := range n.Children {
		d.Children = append(d.Children, c.Dump())
	}

	return d
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}

	count := 1
	for _, c := range n.Children {
		count += c.Count()
	}

	return count
}
