// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrDetail annotates a single position of a PosError.
type ErrDetail struct {
	Node    Node
	Message string
}

func NewErrDetail(node Node, msg string) ErrDetail {
	return ErrDetail{
		Node:    node,
		Message: msg,
	}
}

// PosError is a markup error pointing at one or more places in the source. Use Explain
// to render it for a terminal.
type PosError struct {
	Details []ErrDetail
	Cause   error
	Hint    string
	// Source is the document text. If empty, Explain reads the file named by the first detail.
	Source string
}

// NewPosError creates a new PosError with the given root cause and optional details.
func NewPosError(node Node, msg string, details ...ErrDetail) *PosError {
	tmp := append([]ErrDetail{}, ErrDetail{
		Node:    node,
		Message: msg,
	})
	tmp = append(tmp, details...)

	return &PosError{
		Details: tmp,
	}
}

func (p *PosError) SetCause(err error) *PosError {
	p.Cause = err
	return p
}

func (p *PosError) SetHint(str string) *PosError {
	p.Hint = str
	return p
}

func (p *PosError) SetSource(src string) *PosError {
	p.Source = src
	return p
}

func (p *PosError) Unwrap() error {
	return p.Cause
}

func (p *PosError) firstDetail() ErrDetail {
	if len(p.Details) > 0 {
		return p.Details[0]
	}

	return ErrDetail{}
}

func (p *PosError) Error() string {
	first := p.firstDetail()

	msg := first.Message
	if first.Node != nil {
		msg = first.Node.Begin().String() + ": " + msg
	}

	if p.Cause == nil {
		return msg
	}

	return msg + ": " + p.Cause.Error()
}

// lines returns the source lines for the given node.
func (p *PosError) lines(n Node) []string {
	if p.Source != "" {
		return strings.Split(p.Source, "\n")
	}

	buf, err := os.ReadFile(n.Begin().File)
	if err != nil {
		return nil
	}

	return strings.Split(string(buf), "\n")
}

// posLine returns the line from lines which fits to the given pos.
func posLine(lines []string, pos Pos) string {
	no := pos.Line - 1
	if no < 0 || no >= len(lines) {
		return ""
	}

	return lines[no]
}

// Explain renders the error for a terminal. Each detail quotes its line of the document
// below the file position and underlines the tag it points at. The hint comes last.
func (p *PosError) Explain() string {
	g := gutter{}

	for _, detail := range p.Details {
		g.width = max(g.width, len(strconv.Itoa(detail.Node.Begin().Line)))
	}

	sb := &strings.Builder{}

	for i, detail := range p.Details {
		begin := detail.Node.Begin()

		if i == 0 || begin.File != p.Details[i-1].Node.Begin().File {
			sb.WriteString(begin.String())
			sb.WriteString("\n")
		}

		g.empty(sb)
		g.quote(sb, begin.Line, posLine(p.lines(detail.Node), begin))
		g.underline(sb, detail)

		if i < len(p.Details)-1 {
			sb.WriteString(strings.Repeat(" ", g.width))
			sb.WriteString("...\n")
		}
	}

	if p.Hint != "" {
		g.empty(sb)
		fmt.Fprintf(sb, "%*s = hint: %s\n", g.width, "", p.Hint)
	}

	return sb.String()
}

// gutter is the line number column left of quoted source lines.
type gutter struct {
	width int
}

func (g gutter) empty(sb *strings.Builder) {
	fmt.Fprintf(sb, "%*s |\n", g.width, "")
}

func (g gutter) quote(sb *strings.Builder, line int, text string) {
	fmt.Fprintf(sb, "%*d |%s\n", g.width, line, text)
}

// underline marks the tag of detail with carets. A tag spanning lines or a single
// column gets a short arrow instead.
func (g gutter) underline(sb *strings.Builder, detail ErrDetail) {
	begin, end := detail.Node.Begin(), detail.Node.End()

	fmt.Fprintf(sb, "%*s |", g.width, "")
	sb.WriteString(strings.Repeat(" ", max(begin.Col-1, 0)))

	if width := end.Col - begin.Col; end.Line == begin.Line && width > 1 {
		sb.WriteString(strings.Repeat("^", width))
		sb.WriteString(" ")
	} else {
		sb.WriteString("^~~~ ")
	}

	sb.WriteString(detail.Message)
	sb.WriteString("\n")
}
