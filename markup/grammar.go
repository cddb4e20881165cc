// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package markup

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/alecthomas/participle/v2/lexer/stateful"
)

const (
	// sName matches element and attribute names like "lit", "read-cli" or "bind:value".
	sName = `[a-zA-Z_][\w:.-]*`

	// sQuoted denotes an attribute value in double or single quotes.
	sQuoted = `"[^"]*"|'[^']*'`
)

// markupLexer switches into the Tag state after a '<' or '</' and back after '>' or '/>',
// so that text content is never split into tag tokens.
var markupLexer = stateful.Must(stateful.Rules{
	"Root": {
		{"Comment", `(?s)<!--.*?-->`, nil},
		{"ProcInst", `(?s)<\?.*?\?>`, nil},
		{"CData", `(?s)<!\[CDATA\[.*?\]\]>`, nil},
		{"Directive", `<![^>]*>`, nil},
		{"Close", `</`, stateful.Push("Tag")},
		{"Open", `<`, stateful.Push("Tag")},
		{"Text", `[^<]+`, nil},
	},
	"Tag": {
		{"Whitespace", `\s+`, nil},
		{"Name", sName, nil},
		{"Assign", `=`, nil},
		{"String", sQuoted, nil},
		{"End", `/?>`, stateful.Pop()},
	},
})

var markupParser = participle.MustBuild(&document{},
	participle.Lexer(markupLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

type document struct {
	Nodes []*content `@@*`
}

type content struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Comment *string  `  @Comment`
	Ignored *string  `| @(ProcInst | Directive)`
	CData   *string  `| @CData`
	Text    *string  `| @Text`
	Element *element `| @@`
}

type element struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Name       string       `"<" @Name`
	Attributes []*attribute `@@*`
	Body       *elementBody `@@`
}

type attribute struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Key    string  `@Name`
	Value  *string `( "=" @(String | Name) )?`
}

type elementBody struct {
	SelfClosed bool      `  @"/>"`
	Open       *openBody `| @@`
}

type openBody struct {
	Children []*content `">" @@*`
	Close    *closeTag  `@@`
}

type closeTag struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string `"</" @Name ">"`
}
