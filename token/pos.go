// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import "strconv"

// Node contains access to the start and end positions of a markup construct.
type Node interface {
	Begin() Pos
	End() Pos
}

// A Pos describes a resolved position within a file.
type Pos struct {
	// File contains the file path as given to the parser.
	File string
	// Line denotes the one-based line number in the denoted File.
	Line int
	// Col denotes the one-based column number in the denoted Line.
	Col int
	// Offset is the zero-based byte offset into the file.
	Offset int
}

// String returns the content in the "file:line:col" format.
func (p Pos) String() string {
	return p.File + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// Position spans from BeginPos to EndPos and implements Node.
type Position struct {
	BeginPos Pos
	EndPos   Pos
}

func (p Position) Begin() Pos {
	return p.BeginPos
}

func (p Position) End() Pos {
	return p.EndPos
}

// NewNode creates a Node from two positions.
func NewNode(begin, end Pos) Node {
	return Position{BeginPos: begin, EndPos: end}
}
