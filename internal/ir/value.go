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
package ir

// ValueHandle is the unique identity of an SSA value that participates in
// the per-function variable name map (spec.md §3): a parameter or an
// instruction result. Constants are never map keys — they render directly
// wherever they're encountered (spec.md §4.6).
type ValueHandle interface {
	valueHandle()
	HandleID() int
}

// Param is a function parameter.
type Param struct {
	ID    int
	Name  string
	Width int
}

func (*Param) valueHandle()    {}
func (p *Param) HandleID() int { return p.ID }

// Operand is a use: either a reference to another value (instruction result
// or parameter) or an immediate constant, never both. spec.md §3: "Operands
// are either a reference to another instruction's result, a reference to a
// function parameter, or an integer constant with explicit bit-width."
type Operand struct {
	Ref   ValueHandle
	Const *ConstInt
}

func RefOperand(v ValueHandle) Operand { return Operand{Ref: v} }
func ConstOperand(c ConstInt) Operand  { return Operand{Const: &c} }
func (o Operand) IsConst() bool        { return o.Const != nil }
