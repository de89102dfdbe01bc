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
// Package ir is the read-only data model for LLIR: modules, functions, basic
// blocks, and instructions. It mirrors the shape of real LLVM IR closely
// enough for the reconstruction engine to treat it as "the well-known LLVM IR
// dialect" the specification describes, restricted to the opcode set loom
// actually understands.
package ir

import "fmt"

// Type is an integer type of a given bit width, or the unit type for a
// function with no return value. LLIR carries no other scalar kinds in the
// opcode subset loom supports.
type Type struct {
	Width  int
	IsUnit bool
}

func IntType(width int) Type { return Type{Width: width} }

var UnitType = Type{IsUnit: true}

func (t Type) IsBool() bool { return !t.IsUnit && t.Width == 1 }

func (t Type) String() string {
	if t.IsUnit {
		return "()"
	}
	return fmt.Sprintf("i%d", t.Width)
}
