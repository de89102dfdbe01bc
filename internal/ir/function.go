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

// Function is a single LLIR function: a name, typed parameters, a return
// type, and a list of basic blocks in declaration order. Blocks[0] is
// always the entry block, per spec.md §2.
type Function struct {
	Name       string
	Params     []*Param
	ReturnType Type
	Blocks     []*BasicBlock
}

func (f *Function) Entry() *BasicBlock {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// BlockByName looks up one of f's blocks by its label. Used by the loader
// when resolving branch targets and phi predecessors, which are written as
// label references in the textual form.
func (f *Function) BlockByName(name string) *BasicBlock {
	for _, b := range f.Blocks {
		if b.Name == name {
			return b
		}
	}
	return nil
}
