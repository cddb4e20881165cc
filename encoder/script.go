// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package encoder

import (
	"github.com/nikandfor/hacked/hfmt"

	"github.com/golangee/jsxml/ast"
)

// separator delimits arguments and parameters inside grouping kinds.
const separator = ','

// cliParams are the channel parameters injected into a CLI entry point.
const cliParams = "__writeToCli,__readFromCli"

// Emit renders the script tree rooted at root as JavaScript source.
// Output follows document order and the whitespace of the templates is kept verbatim.
// A nil root renders as the empty string.
func Emit(root *ast.Node) string {
	return string(AppendScript(nil, root))
}

// AppendScript appends the rendering of n to b and returns the extended buffer.
// A nil n leaves b unchanged.
func AppendScript(b []byte, n *ast.Node) []byte {
	if n == nil {
		return b
	}

	return appendNode(b, n, false)
}

// appendNode renders open text, children and close text of n. listed is true when n is an
// item of a grouping parent which inserts the separators itself.
func appendNode(b []byte, n *ast.Node, listed bool) []byte {
	b = appendOpen(b, n.Instruction, listed)

	if n.Kind().Grouping() {
		b = appendJoined(b, n)
	} else {
		for _, c := range n.Children {
			b = appendNode(b, c, false)
		}
	}

	return appendClose(b, n.Instruction)
}

// appendJoined renders the children of a grouping node as one separated list.
// Empty items are skipped and the list never ends with a separator.
func appendJoined(b []byte, n *ast.Node) []byte {
	start := len(b)

	var prev ast.Instruction

	for _, c := range n.Children {
		mark := len(b)

		if prev != nil && separated(n.Kind(), prev, c.Instruction) {
			b = append(b, separator)
		}

		item := len(b)

		b = appendNode(b, c, true)
		if len(b) == item {
			b = b[:mark]
			continue
		}

		prev = c.Instruction
	}

	// an item may still end with a separator of its own text
	if len(b) > start && b[len(b)-1] == separator {
		b = b[:len(b)-1]
	}

	return b
}

// separated reports whether a separator goes between two adjacent items of a k list.
func separated(k ast.Kind, prev, cur ast.Instruction) bool {
	if producesSeparator(prev) {
		return true
	}

	if !k.ListsArguments() {
		return false
	}

	return !isOp(prev) && !isOp(cur)
}

func producesSeparator(in ast.Instruction) bool {
	switch in := in.(type) {
	case ast.Param:
		return true
	case ast.Meta:
		return in.CLIMain()
	default:
		return false
	}
}

func isOp(in ast.Instruction) bool {
	_, ok := in.(ast.Op)
	return ok
}

func appendOpen(b []byte, in ast.Instruction, listed bool) []byte {
	switch in := in.(type) {
	case ast.Func:
		if in.Async() {
			return append(b, "\nasync function "...)
		}

		return append(b, "\nfunction "...)
	case ast.Signature:
		return hfmt.Appendf(b, "%s(", in.Name)
	case ast.Meta:
		if !in.CLIMain() {
			return b
		}

		if listed {
			return append(b, cliParams...)
		}

		return append(b, cliParams+","...)
	case ast.Param:
		if listed {
			return append(b, in.Name...)
		}

		return hfmt.Appendf(b, "%s,", in.Name)
	case ast.Block:
		return append(b, " {\n"...)
	case ast.DeclVar:
		return hfmt.Appendf(b, "let %s", in.Name)
	case ast.Lit:
		if in.Quoted() {
			return hfmt.Appendf(b, `"%s"`, in.Value)
		}

		return append(b, in.Value...)
	case ast.Parens, ast.Cond:
		return append(b, '(')
	case ast.Op:
		return append(b, in.Value...)
	case ast.Var:
		return append(b, in.Name...)
	case ast.Assign:
		return append(b, '=')
	case ast.If:
		return append(b, "if "...)
	case ast.ElseIf:
		return append(b, "else if "...)
	case ast.Else:
		return append(b, "else "...)
	case ast.While:
		return append(b, "while "...)
	case ast.Return:
		return append(b, "return "...)
	case ast.Break:
		return append(b, "break"...)
	case ast.Read:
		return append(b, "await __readFromCli("...)
	case ast.Write:
		return append(b, "__writeToCli("...)
	case ast.Log:
		return append(b, "console.log("...)
	case ast.Call:
		return hfmt.Appendf(b, "%s(", in.Name)
	case ast.For:
		return append(b, "for "...)
	case ast.Init:
		return append(b, "(\n"...)
	case ast.Incr:
		return hfmt.Appendf(b, "\n; %s+=", in.Name)
	default:
		// Script and anything unknown
		return b
	}
}

func appendClose(b []byte, in ast.Instruction) []byte {
	switch in.(type) {
	case ast.Signature, ast.Parens, ast.Cond, ast.Read, ast.Write, ast.Log, ast.Call, ast.Incr:
		return append(b, ')')
	case ast.Block:
		return append(b, "\n}\n"...)
	case ast.DeclVar:
		return append(b, '\n')
	case ast.Init:
		return append(b, "; "...)
	default:
		return b
	}
}
