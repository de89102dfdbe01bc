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
package irload

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
	"github.com/pkg/errors"

	"loom/internal/diag"
	"loom/internal/ir"
)

var parser = participle.MustBuild[File](
	participle.Lexer(llirLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)

// Load reads and parses the LLIR source at path and lowers it into an
// ir.Module. A parse failure is reported with a kanso-style caret pointing
// at the offending line (kanso-lang-kanso/grammar/parser.go) before being
// wrapped as a diag.LoadError.
func Load(path string) (*ir.Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.NewLoadError(path, errors.Wrap(err, "reading IR source"))
	}

	file, err := parser.ParseString(path, string(src))
	if err != nil {
		reportParseError(string(src), err)
		return nil, diag.NewLoadError(path, err)
	}

	mod := &ir.Module{}
	for _, fd := range file.Functions {
		fn, err := lowerFunction(fd)
		if err != nil {
			return nil, err
		}
		mod.Functions = append(mod.Functions, fn)
	}
	return mod, nil
}

func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}
	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}
	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"
	color.Red("syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}

func parseWidth(t string) (int, error) {
	w, err := strconv.Atoi(strings.TrimPrefix(t, "i"))
	if err != nil {
		return 0, errors.Wrapf(err, "malformed integer type %q", t)
	}
	return w, nil
}

// lowering carries the symbol tables a function's second pass needs once
// every block and named value exists from the first.
type lowering struct {
	fn          *ir.Function
	blockByName map[string]*ir.BasicBlock
	valueByName map[string]ir.ValueHandle
}

func lowerFunction(fd *FunctionDecl) (*ir.Function, error) {
	fn := &ir.Function{Name: fd.Name}
	if fd.VoidReturn {
		fn.ReturnType = ir.UnitType
	} else {
		w, err := parseWidth(fd.ReturnType)
		if err != nil {
			return nil, err
		}
		fn.ReturnType = ir.IntType(w)
	}

	lw := &lowering{fn: fn, blockByName: map[string]*ir.BasicBlock{}, valueByName: map[string]ir.ValueHandle{}}

	for i, pd := range fd.Params {
		w, err := parseWidth(pd.Type)
		if err != nil {
			return nil, err
		}
		p := &ir.Param{ID: i, Name: pd.Name, Width: w}
		fn.Params = append(fn.Params, p)
		lw.valueByName[pd.Name] = p
	}

	nextID := 0
	for _, bd := range fd.Blocks {
		b := &ir.BasicBlock{ID: len(fn.Blocks), Name: bd.Label, Func: fn}
		fn.Blocks = append(fn.Blocks, b)
		lw.blockByName[bd.Label] = b
		for _, id := range bd.Instructions {
			op, typ, err := classify(id)
			if err != nil {
				return nil, errors.Wrapf(err, "function %s", fn.Name)
			}
			inst := &ir.Instruction{ID: nextID, Name: id.Result, Op: op, Type: typ, Block: b}
			nextID++
			b.Instructions = append(b.Instructions, inst)
			if id.Result != "" {
				lw.valueByName[id.Result] = inst
			}
		}
	}

	for _, bd := range fd.Blocks {
		b := lw.blockByName[bd.Label]
		for i, id := range bd.Instructions {
			if err := lw.fill(b.Instructions[i], id); err != nil {
				return nil, errors.Wrapf(err, "function %s, block %s", fn.Name, bd.Label)
			}
		}
	}

	return fn, nil
}

func classify(id *InstructionDecl) (ir.Op, ir.Type, error) {
	switch {
	case id.Add != nil:
		w, err := parseWidth(id.Add.Type)
		return ir.OpAdd, ir.IntType(w), err
	case id.Sub != nil:
		w, err := parseWidth(id.Sub.Type)
		return ir.OpSub, ir.IntType(w), err
	case id.ICmp != nil:
		return ir.OpICmp, ir.IntType(1), nil
	case id.ZExt != nil:
		w, err := parseWidth(id.ZExt.ToType)
		return ir.OpZExt, ir.IntType(w), err
	case id.Phi != nil:
		w, err := parseWidth(id.Phi.Type)
		return ir.OpPhi, ir.IntType(w), err
	case id.Br != nil:
		return ir.OpBr, ir.UnitType, nil
	case id.Ret != nil:
		return ir.OpReturn, ir.UnitType, nil
	case id.Other != nil:
		return ir.OpOther, ir.UnitType, nil
	}
	return 0, ir.Type{}, diag.NewInternalInvariant("instruction matched no grammar alternative")
}

func (lw *lowering) resolveOperand(od *OperandDecl, width int) (ir.Operand, error) {
	if od.Const != nil {
		v, ok := new(big.Int).SetString(*od.Const, 10)
		if !ok {
			return ir.Operand{}, diag.NewInternalInvariant("malformed integer literal %q", *od.Const)
		}
		return ir.ConstOperand(ir.NewConstInt(v, width)), nil
	}
	v, ok := lw.valueByName[*od.Ref]
	if !ok {
		return ir.Operand{}, &diag.MalformedIR{Function: lw.fn.Name, Detail: "reference to undefined value %" + *od.Ref}
	}
	return ir.RefOperand(v), nil
}

func (lw *lowering) resolveBlock(name string) (*ir.BasicBlock, error) {
	b, ok := lw.blockByName[name]
	if !ok {
		return nil, &diag.MalformedIR{Function: lw.fn.Name, Detail: "branch to undefined label " + name}
	}
	return b, nil
}

// fill resolves inst's operands and Sym payload during the second pass,
// once every block and named value in the function is known — a loop's
// backedge phi incoming, for instance, names a value defined later in the
// file than the phi itself.
func (lw *lowering) fill(inst *ir.Instruction, id *InstructionDecl) error {
	switch {
	case id.Add != nil:
		return lw.fillBinary(inst, id.Add.Left, id.Add.Right)
	case id.Sub != nil:
		return lw.fillBinary(inst, id.Sub.Left, id.Sub.Right)
	case id.ICmp != nil:
		pred, ok := ir.ParseICmpPred(id.ICmp.Pred)
		if !ok {
			return &diag.MalformedIR{Function: lw.fn.Name, Detail: "unknown icmp predicate " + id.ICmp.Pred}
		}
		w, err := parseWidth(id.ICmp.Type)
		if err != nil {
			return err
		}
		if err := lw.fillBinaryWidth(inst, id.ICmp.Left, id.ICmp.Right, w); err != nil {
			return err
		}
		inst.Sym = pred
		return nil
	case id.ZExt != nil:
		w, err := parseWidth(id.ZExt.FromType)
		if err != nil {
			return err
		}
		op, err := lw.resolveOperand(id.ZExt.Value, w)
		if err != nil {
			return err
		}
		inst.Operands = []ir.Operand{op}
		return nil
	case id.Phi != nil:
		w, err := parseWidth(id.Phi.Type)
		if err != nil {
			return err
		}
		var incs []ir.PhiIncoming
		for _, pi := range id.Phi.Incomings {
			op, err := lw.resolveOperand(pi.Value, w)
			if err != nil {
				return err
			}
			pred, err := lw.resolveBlock(pi.Pred)
			if err != nil {
				return err
			}
			incs = append(incs, ir.PhiIncoming{Value: op, Pred: pred})
		}
		inst.Sym = incs
		return nil
	case id.Br != nil:
		return lw.fillBranch(inst, id.Br)
	case id.Ret != nil:
		if id.Ret.Void {
			return nil
		}
		w, err := parseWidth(id.Ret.Type)
		if err != nil {
			return err
		}
		op, err := lw.resolveOperand(id.Ret.Value, w)
		if err != nil {
			return err
		}
		inst.Operands = []ir.Operand{op}
		return nil
	case id.Other != nil:
		inst.Sym = id.Other.Mnemonic
		return nil
	}
	return diag.NewInternalInvariant("instruction matched no grammar alternative during fill")
}

func (lw *lowering) fillBinary(inst *ir.Instruction, left, right *OperandDecl) error {
	return lw.fillBinaryWidth(inst, left, right, inst.Type.Width)
}

func (lw *lowering) fillBinaryWidth(inst *ir.Instruction, left, right *OperandDecl, width int) error {
	l, err := lw.resolveOperand(left, width)
	if err != nil {
		return err
	}
	r, err := lw.resolveOperand(right, width)
	if err != nil {
		return err
	}
	inst.Operands = []ir.Operand{l, r}
	return nil
}

func (lw *lowering) fillBranch(inst *ir.Instruction, bd *BrDecl) error {
	if bd.Cond == nil {
		target, err := lw.resolveBlock(bd.TargetOnly)
		if err != nil {
			return err
		}
		inst.Sym = &ir.BrInfo{Targets: []*ir.BasicBlock{target}}
		return nil
	}
	w, err := parseWidth(*bd.CondType)
	if err != nil {
		return err
	}
	cond, err := lw.resolveOperand(bd.Cond, w)
	if err != nil {
		return err
	}
	trueB, err := lw.resolveBlock(bd.TrueLabel)
	if err != nil {
		return err
	}
	falseB, err := lw.resolveBlock(bd.FalseLabel)
	if err != nil {
		return err
	}
	inst.Sym = &ir.BrInfo{Cond: &cond, Targets: []*ir.BasicBlock{trueB, falseB}}
	return nil
}
