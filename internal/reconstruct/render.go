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
package reconstruct

import "loom/internal/ir"

// renderType maps an ir.Type to its TGT spelling: i1 renders as "bool" the
// same way a pre-declared i1 subscope variable renders as "false" rather
// than "0_i1" (zeroLiteral), everything else keeps its LLIR-style "i<W>"
// spelling, and the unit type renders as "()".
func renderType(t ir.Type) string {
	if t.IsBool() {
		return "bool"
	}
	return t.String()
}

// resolveOperand renders an operand: a constant renders directly, a
// reference resolves through the name table.
func resolveOperand(ctx *FunctionContext, op ir.Operand) string {
	if op.IsConst() {
		return op.Const.Render()
	}
	return ctx.Names.Resolve(op.Ref)
}
