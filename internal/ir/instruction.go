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

// Instruction is a single LLIR instruction. Like the teacher's SSA Value
// (y1yang0-falcon/src/compile/ssa/hir.go), opcode-specific payloads that
// don't fit the common Operands slice are carried in Sym, typed per-opcode:
//
//   - OpICmp:  Sym is ICmpPred
//   - OpBr:    Sym is *BrInfo
//   - OpPhi:   Sym is []PhiIncoming
//   - OpOther: Sym is string, the raw unsupported mnemonic
type Instruction struct {
	ID       int
	Name     string // source name, empty if unnamed (gets a synthesized var{k})
	Op       Op
	Type     Type
	Operands []Operand
	Sym      interface{}
	Block    *BasicBlock
}

func (*Instruction) valueHandle()    {}
func (i *Instruction) HandleID() int { return i.ID }

// BrInfo is the Sym payload of an OpBr instruction. Cond is nil for an
// unconditional branch, in which case Targets has exactly one entry.
// Otherwise Targets has exactly two: Targets[0] is the "then" successor
// (operand order, per spec.md §4.1), Targets[1] the "else" successor.
type BrInfo struct {
	Cond    *Operand
	Targets []*BasicBlock
}

func (b *BrInfo) IsConditional() bool { return b.Cond != nil }

// PhiIncoming is one (value, predecessor) pair of an OpPhi instruction.
type PhiIncoming struct {
	Value Operand
	Pred  *BasicBlock
}

// Incomings returns the phi's incoming pairs, or nil if inst isn't a phi.
func (i *Instruction) Incomings() []PhiIncoming {
	if i.Op != OpPhi {
		return nil
	}
	in, _ := i.Sym.([]PhiIncoming)
	return in
}

// Predicate returns the instruction's comparison predicate; only valid for
// OpICmp.
func (i *Instruction) Predicate() ICmpPred {
	p, _ := i.Sym.(ICmpPred)
	return p
}

// Branch returns the instruction's branch payload; only valid for OpBr.
func (i *Instruction) Branch() *BrInfo {
	b, _ := i.Sym.(*BrInfo)
	return b
}

// OtherMnemonic returns the raw opcode text for an unsupported instruction;
// only valid for OpOther.
func (i *Instruction) OtherMnemonic() string {
	s, _ := i.Sym.(string)
	return s
}
