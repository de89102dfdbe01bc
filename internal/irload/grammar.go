// Copyright (c) 2024 The Falcon Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.
// Package irload loads the textual LLIR subset loom's engine understands:
// plain-text functions, blocks, and instructions close to real LLVM IR
// syntax, restricted to the opcode set spec.md names. original_source
// (original_source/src/lib.rs) loads real LLVM bitcode through inkwell, a
// cgo-only LLVM binding with no idiomatic Go equivalent in the reference
// corpus; loom instead defines its own small grammar and parses it with
// the teacher pack's own stateful-lexer/struct-tag parser combinator
// (grounded on kanso-lang-kanso/grammar/lexer.go and parser.go).
package irload

import "github.com/alecthomas/participle/v2/lexer"

var llirLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `;[^\n]*`, nil},
		{"IntType", `i[0-9]+`, nil},
		{"Number", `-?[0-9]+`, nil},
		{"Ident", `[A-Za-z_][A-Za-z0-9_]*`, nil},
		{"Punct", `[%@(),{}:=\[\]]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})

// File is the root of a parsed LLIR source file: an ordered list of
// function definitions.
type File struct {
	Functions []*FunctionDecl `@@*`
}

type FunctionDecl struct {
	Pos        lexer.Position
	VoidReturn bool             `"define" ( @"void"`
	ReturnType string           `  | @IntType )`
	Name       string           `"@" @Ident "("`
	Params     []*ParamDecl     `[ @@ { "," @@ } ] ")" "{"`
	Blocks     []*BlockDecl     `@@* "}"`
}

type ParamDecl struct {
	Type string `@IntType`
	Name string `"%" @Ident`
}

type BlockDecl struct {
	Label        string             `@Ident ":"`
	Instructions []*InstructionDecl `@@*`
}

type InstructionDecl struct {
	Pos    lexer.Position
	Result string     `[ "%" @Ident "=" ]`
	Add    *BinOpDecl `( "add" @@`
	Sub    *BinOpDecl `| "sub" @@`
	ICmp   *ICmpDecl  `| "icmp" @@`
	ZExt   *ZExtDecl  `| "zext" @@`
	Phi    *PhiDecl   `| "phi" @@`
	Br     *BrDecl    `| "br" @@`
	Ret    *RetDecl   `| "ret" @@`
	Other  *OtherDecl `| @@ )`
}

type OperandDecl struct {
	Const *string `(  @Number`
	Ref   *string ` | "%" @Ident )`
}

type BinOpDecl struct {
	Type  string       `@IntType`
	Left  *OperandDecl `@@ ","`
	Right *OperandDecl `@@`
}

type ICmpDecl struct {
	Pred  string       `@Ident`
	Type  string       `@IntType`
	Left  *OperandDecl `@@ ","`
	Right *OperandDecl `@@`
}

type ZExtDecl struct {
	FromType string       `@IntType`
	Value    *OperandDecl `@@`
	ToType   string       `"to" @IntType`
}

type PhiIncomingDecl struct {
	Value *OperandDecl `"[" @@ ","`
	Pred  string       `@Ident "]"`
}

type PhiDecl struct {
	Type      string             `@IntType`
	Incomings []*PhiIncomingDecl `@@ { "," @@ }`
}

type BrDecl struct {
	CondType   *string      `( @IntType`
	Cond       *OperandDecl `  @@ "," "label" "%"`
	TrueLabel  string       `  @Ident "," "label" "%"`
	FalseLabel string       `  @Ident`
	TargetOnly string       `| "label" "%" @Ident )`
}

type RetDecl struct {
	Void  bool         `( @"void"`
	Type  string       `| @IntType`
	Value *OperandDecl `  @@ )`
}

// OtherDecl is the catch-all for any mnemonic loom's engine doesn't
// implement. It captures just enough shape — a type and a comma-separated
// operand list — to cover the common case of an unrecognized binary or
// unary instruction, which is all spec.md's unsupported-opcode scenarios
// need: the loader only has to name the opcode, not translate it.
type OtherDecl struct {
	Mnemonic string         `@Ident`
	Type     *string        `[ @IntType ]`
	Operands []*OperandDecl `[ @@ { "," @@ } ]`
}
