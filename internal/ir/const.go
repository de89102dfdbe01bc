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

import (
	"math/big"
	"strconv"
)

// ConstInt is an arbitrary-precision integer constant with an explicit bit
// width. LLIR carries type information on every value; spec.md's example 2
// uses an i128 constant, ruling out a plain machine int. No arbitrary-
// precision library appears anywhere in the reference corpus, so this is a
// deliberate standard-library exception (see DESIGN.md).
type ConstInt struct {
	Value *big.Int
	Width int
}

func NewConstInt(v *big.Int, width int) ConstInt {
	return ConstInt{Value: v, Width: width}
}

// Render renders the constant per spec.md §4.5: "<k>_i<W>", with the width
// suffix mandatory and a leading '-' for negative values. Width-1 (i1)
// constants render as TGT bool literals instead, a supplement recorded in
// DESIGN.md: a pre-declared "let mut x = false;" can only ever be reassigned
// from a same-shaped literal.
func (c ConstInt) Render() string {
	if c.Width == 1 {
		if c.Value.Sign() == 0 {
			return "false"
		}
		return "true"
	}
	return c.Value.String() + "_i" + strconv.Itoa(c.Width)
}
