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
// Package tgt is the output-side AST: the structured, TGT-flavored function
// body the reconstruction engine builds up line by line, and its rendering
// to source text. Grounded on original_source's CairoFunction/
// CairoFunctionBody/CairoFunctionSignature/CairoParameter triad
// (original_source/src/builder/function/mod.rs), which is itself a
// line-buffer builder rather than a real expression tree — loom keeps that
// shape since the reconstruction engine emits structured control flow by
// pushing already-rendered lines, not by building and later printing
// sub-expressions.
package tgt

import "strings"

// Parameter is one rendered function parameter, "name: type".
type Parameter struct {
	Name string
	Type string
}

func (p Parameter) String() string { return p.Name + ": " + p.Type }

// Signature is a function's rendered name, parameter list, and return type.
type Signature struct {
	Name       string
	Parameters []Parameter
	ReturnType string
}

func (s Signature) String() string {
	parts := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		parts[i] = p.String()
	}
	return "pub fn " + s.Name + "(" + strings.Join(parts, ", ") + ") -> " + s.ReturnType
}

// Body is the function's rendered statements, one per line, in emission
// order. The reconstruction engine appends to this as it walks blocks; it
// never edits a previously pushed line.
type Body struct {
	lines []string
}

func (b *Body) Push(line string) { b.lines = append(b.lines, line) }

func (b *Body) String() string { return strings.Join(b.lines, "\n") }

// Function is one translated function, ready to render.
type Function struct {
	Signature Signature
	Body      Body
}

func (f *Function) PushLine(line string) { f.Body.Push(line) }

func (f *Function) String() string {
	return f.Signature.String() + " {\n" + f.Body.String() + "\n}"
}

// Functions is an ordered list of translated functions, rendered with a
// blank line between each.
type Functions []*Function

func (fs Functions) String() string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return strings.Join(parts, "\n\n")
}
