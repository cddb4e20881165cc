// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

// Attribute keys of the script vocabulary.
const (
	AttrName  = "name"
	AttrType  = "type"
	AttrValue = "value"
)

// LitTypeString is the literal type which is rendered as a quoted string.
const LitTypeString = "string"

// MetaCLIMain marks a function as the entry point of a CLI component.
const MetaCLIMain = "cli-main"

// FuncAsync marks a function as asynchronous.
const FuncAsync = "async"

// Instruction is the closed set of script instructions. Each kind has exactly one
// implementation in this package and carries only the attributes of its kind.
type Instruction interface {
	Kind() Kind
	attributes(m map[string]string)
}

func put(m map[string]string, key, value string) {
	if value != "" {
		m[key] = value
	}
}

// Script is the root of a script tree.
type Script struct{}

func (Script) Kind() Kind                   { return KindScript }
func (Script) attributes(map[string]string) {}

// Func declares a function. Type "async" makes it asynchronous.
type Func struct {
	Type string
}

func (Func) Kind() Kind { return KindFunc }

func (f Func) attributes(m map[string]string) { put(m, AttrType, f.Type) }

// Async reports whether the function is declared asynchronous.
func (f Func) Async() bool {
	return f.Type == FuncAsync
}

// Signature holds the function name, parameters are its children.
type Signature struct {
	Name string
}

func (Signature) Kind() Kind { return KindSignature }

func (s Signature) attributes(m map[string]string) { put(m, AttrName, s.Name) }

// Meta is a marker inside a signature.
type Meta struct {
	Type string
}

func (Meta) Kind() Kind { return KindMeta }

func (mt Meta) attributes(m map[string]string) { put(m, AttrType, mt.Type) }

// CLIMain reports whether the marker injects the CLI channel parameters.
func (mt Meta) CLIMain() bool {
	return mt.Type == MetaCLIMain
}

// Param is a single function parameter.
type Param struct {
	Name string
}

func (Param) Kind() Kind { return KindParam }

func (p Param) attributes(m map[string]string) { put(m, AttrName, p.Name) }

// Block is a braced statement list.
type Block struct{}

func (Block) Kind() Kind                   { return KindBlock }
func (Block) attributes(map[string]string) {}

type If struct{}

func (If) Kind() Kind                   { return KindIf }
func (If) attributes(map[string]string) {}

type ElseIf struct{}

func (ElseIf) Kind() Kind                   { return KindElseIf }
func (ElseIf) attributes(map[string]string) {}

type Else struct{}

func (Else) Kind() Kind                   { return KindElse }
func (Else) attributes(map[string]string) {}

// Cond is the parenthesized condition of if, else-if and while.
type Cond struct{}

func (Cond) Kind() Kind                   { return KindCond }
func (Cond) attributes(map[string]string) {}

type For struct{}

func (For) Kind() Kind                   { return KindFor }
func (For) attributes(map[string]string) {}

// Init is the initialization part of a for loop.
type Init struct{}

func (Init) Kind() Kind                   { return KindInit }
func (Init) attributes(map[string]string) {}

// Incr is the increment part of a for loop, adding its children to the named variable.
type Incr struct {
	Name string
}

func (Incr) Kind() Kind { return KindIncr }

func (i Incr) attributes(m map[string]string) { put(m, AttrName, i.Name) }

type While struct{}

func (While) Kind() Kind                   { return KindWhile }
func (While) attributes(map[string]string) {}

type Return struct{}

func (Return) Kind() Kind                   { return KindReturn }
func (Return) attributes(map[string]string) {}

// Var references a variable.
type Var struct {
	Name string
}

func (Var) Kind() Kind { return KindVar }

func (v Var) attributes(m map[string]string) { put(m, AttrName, v.Name) }

type Assign struct{}

func (Assign) Kind() Kind                   { return KindAssign }
func (Assign) attributes(map[string]string) {}

// DeclVar declares a variable, its children form the initial value.
type DeclVar struct {
	Name string
}

func (DeclVar) Kind() Kind { return KindDeclVar }

func (d DeclVar) attributes(m map[string]string) { put(m, AttrName, d.Name) }

// Lit is a literal value. Only literals of type "string" are quoted when rendered.
type Lit struct {
	Value string
	Type  string
}

func (Lit) Kind() Kind { return KindLit }

func (l Lit) attributes(m map[string]string) {
	put(m, AttrValue, l.Value)
	put(m, AttrType, l.Type)
}

// Quoted reports whether the literal is rendered as a string.
func (l Lit) Quoted() bool {
	return l.Type == LitTypeString
}

// Op is an operator token which is rendered verbatim.
type Op struct {
	Value string
	Type  string
}

func (Op) Kind() Kind { return KindOp }

func (o Op) attributes(m map[string]string) {
	put(m, AttrValue, o.Value)
	put(m, AttrType, o.Type)
}

// Parens groups an expression.
type Parens struct{}

func (Parens) Kind() Kind                   { return KindParens }
func (Parens) attributes(map[string]string) {}

// Call invokes the named function with its children as arguments.
type Call struct {
	Name string
}

func (Call) Kind() Kind { return KindCall }

func (c Call) attributes(m map[string]string) { put(m, AttrName, c.Name) }

// Read awaits a line from the CLI channel.
type Read struct{}

func (Read) Kind() Kind                   { return KindRead }
func (Read) attributes(map[string]string) {}

// Write sends its children to the CLI channel.
type Write struct{}

func (Write) Kind() Kind                   { return KindWrite }
func (Write) attributes(map[string]string) {}

type Break struct{}

func (Break) Kind() Kind                   { return KindBreak }
func (Break) attributes(map[string]string) {}

// Log writes its children to the console.
type Log struct{}

func (Log) Kind() Kind                   { return KindLog }
func (Log) attributes(map[string]string) {}

// NewInstruction creates the instruction of kind k from an attribute lookup. Keys that are
// not declared for k are never consulted. It returns nil for KindUnknown.
func NewInstruction(k Kind, attr func(key string) string) Instruction {
	switch k {
	case KindScript:
		return Script{}
	case KindFunc:
		return Func{Type: attr(AttrType)}
	case KindSignature:
		return Signature{Name: attr(AttrName)}
	case KindMeta:
		return Meta{Type: attr(AttrType)}
	case KindParam:
		return Param{Name: attr(AttrName)}
	case KindBlock:
		return Block{}
	case KindIf:
		return If{}
	case KindElseIf:
		return ElseIf{}
	case KindElse:
		return Else{}
	case KindCond:
		return Cond{}
	case KindFor:
		return For{}
	case KindInit:
		return Init{}
	case KindIncr:
		return Incr{Name: attr(AttrName)}
	case KindWhile:
		return While{}
	case KindReturn:
		return Return{}
	case KindVar:
		return Var{Name: attr(AttrName)}
	case KindAssign:
		return Assign{}
	case KindDeclVar:
		return DeclVar{Name: attr(AttrName)}
	case KindLit:
		return Lit{Value: attr(AttrValue), Type: attr(AttrType)}
	case KindOp:
		return Op{Value: attr(AttrValue), Type: attr(AttrType)}
	case KindParens:
		return Parens{}
	case KindCall:
		return Call{Name: attr(AttrName)}
	case KindRead:
		return Read{}
	case KindWrite:
		return Write{}
	case KindBreak:
		return Break{}
	case KindLog:
		return Log{}
	default:
		return nil
	}
}

// declaredAttributes returns the attribute keys an instruction of kind k may carry.
func declaredAttributes(k Kind) []string {
	switch k {
	case KindFunc, KindMeta:
		return []string{AttrType}
	case KindSignature, KindParam, KindIncr, KindVar, KindDeclVar, KindCall:
		return []string{AttrName}
	case KindLit, KindOp:
		return []string{AttrValue, AttrType}
	default:
		return nil
	}
}
