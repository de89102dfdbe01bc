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

// Op identifies an LLIR instruction's opcode. Mirrors the Op enum pattern of
// the teacher's SSA value (y1yang0-falcon/src/compile/ssa/hir.go), restricted
// to the opcode set spec.md names as supported, plus OpOther as a catch-all
// for everything else, which the engine silently skips rather than rejects.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpICmp
	OpZExt
	OpBr
	OpPhi
	OpReturn
	OpOther
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpICmp:
		return "icmp"
	case OpZExt:
		return "zext"
	case OpBr:
		return "br"
	case OpPhi:
		return "phi"
	case OpReturn:
		return "ret"
	case OpOther:
		return "<other>"
	}
	return "<unknown>"
}

// ICmpPred is an integer-comparison predicate, named as in real LLVM IR.
type ICmpPred int

const (
	ICmpEQ ICmpPred = iota
	ICmpNE
	ICmpULT
	ICmpULE
	ICmpUGT
	ICmpUGE
	ICmpSLT
	ICmpSLE
	ICmpSGT
	ICmpSGE
)

var icmpMnemonics = map[string]ICmpPred{
	"eq":  ICmpEQ,
	"ne":  ICmpNE,
	"ult": ICmpULT,
	"ule": ICmpULE,
	"ugt": ICmpUGT,
	"uge": ICmpUGE,
	"slt": ICmpSLT,
	"sle": ICmpSLE,
	"sgt": ICmpSGT,
	"sge": ICmpSGE,
}

// ParseICmpPred resolves an LLVM-style predicate mnemonic ("eq", "slt", ...).
func ParseICmpPred(mnemonic string) (ICmpPred, bool) {
	p, ok := icmpMnemonics[mnemonic]
	return p, ok
}

// TGTOperator renders the predicate as the TGT comparison operator. LLIR's
// signed/unsigned distinction collapses: TGT integers have plain arithmetic
// semantics in this engine, and spec.md's non-goal list never asks the
// engine to preserve signedness in the emitted comparison.
func (p ICmpPred) TGTOperator() string {
	switch p {
	case ICmpEQ:
		return "=="
	case ICmpNE:
		return "!="
	case ICmpULT, ICmpSLT:
		return "<"
	case ICmpULE, ICmpSLE:
		return "<="
	case ICmpUGT, ICmpSGT:
		return ">"
	case ICmpUGE, ICmpSGE:
		return ">="
	}
	return "?"
}
