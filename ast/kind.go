// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

// Kind is the syntactic category of a script instruction.
type Kind int

// Instruction kinds. KindUnknown is the catch-all for labels outside the vocabulary.
const (
	KindUnknown Kind = iota
	KindScript
	KindFunc
	KindSignature
	KindMeta
	KindParam
	KindBlock
	KindIf
	KindElseIf
	KindElse
	KindCond
	KindFor
	KindInit
	KindIncr
	KindWhile
	KindReturn
	KindVar
	KindAssign
	KindDeclVar
	KindLit
	KindOp
	KindParens
	KindCall
	KindRead
	KindWrite
	KindBreak
	KindLog

	kindCount
)

var kindInfo = [kindCount]struct {
	label string
	name  string
}{
	KindUnknown:   {"", "Unknown"},
	KindScript:    {"script", "Script"},
	KindFunc:      {"func", "Func"},
	KindSignature: {"sign", "Signature"},
	KindMeta:      {"meta", "Meta"},
	KindParam:     {"param", "Param"},
	KindBlock:     {"block", "Block"},
	KindIf:        {"if", "If"},
	KindElseIf:    {"elif", "ElseIf"},
	KindElse:      {"else", "Else"},
	KindCond:      {"cond", "Cond"},
	KindFor:       {"for", "For"},
	KindInit:      {"init", "Init"},
	KindIncr:      {"incr", "Incr"},
	KindWhile:     {"while", "While"},
	KindReturn:    {"return", "Return"},
	KindVar:       {"var", "Var"},
	KindAssign:    {"assign", "Assign"},
	KindDeclVar:   {"declvar", "DeclVar"},
	KindLit:       {"lit", "Lit"},
	KindOp:        {"op", "Op"},
	KindParens:    {"parentheses", "Parens"},
	KindCall:      {"call", "Call"},
	KindRead:      {"read-cli", "Read"},
	KindWrite:     {"write-cli", "Write"},
	KindBreak:     {"break", "Break"},
	KindLog:       {"log", "Log"},
}

var kindsByLabel = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for _, k := range Kinds() {
		m[k.Label()] = k
	}

	return m
}()

// ParseKind maps a markup element name to its kind. The match is exact and case-sensitive,
// every other name yields KindUnknown.
func ParseKind(label string) Kind {
	return kindsByLabel[label]
}

// Kinds returns all known kinds, without KindUnknown.
func Kinds() []Kind {
	res := make([]Kind, 0, kindCount-1)
	for k := KindScript; k < kindCount; k++ {
		res = append(res, k)
	}

	return res
}

func (k Kind) valid() bool {
	return k >= 0 && k < kindCount
}

// Label returns the element name used for this kind in source documents.
func (k Kind) Label() string {
	if !k.valid() {
		return ""
	}

	return kindInfo[k].label
}

func (k Kind) String() string {
	if !k.valid() {
		return "Unknown"
	}

	return kindInfo[k].name
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Grouping reports whether the children of k are enclosed in a bracket pair and must not
// end with a separator.
func (k Kind) Grouping() bool {
	switch k {
	case KindSignature, KindParens, KindCond, KindRead, KindWrite, KindLog, KindCall, KindIncr:
		return true
	default:
		return false
	}
}

// ListsArguments reports whether each operand child of k is a separate argument or parameter.
func (k Kind) ListsArguments() bool {
	switch k {
	case KindSignature, KindCall, KindRead, KindWrite, KindLog:
		return true
	default:
		return false
	}
}
