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
package reconstruct_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loom/internal/ir"
	"loom/internal/reconstruct"
)

func mkAdd(id int, name string, a, b ir.Operand, w int) *ir.Instruction {
	return &ir.Instruction{ID: id, Name: name, Op: ir.OpAdd, Type: ir.IntType(w), Operands: []ir.Operand{a, b}}
}

func TestRunSimpleAdd(t *testing.T) {
	fn := &ir.Function{Name: "add", ReturnType: ir.IntType(32)}
	a := &ir.Param{ID: 0, Name: "a", Width: 32}
	b := &ir.Param{ID: 1, Name: "b", Width: 32}
	fn.Params = []*ir.Param{a, b}

	entry := &ir.BasicBlock{ID: 0, Name: "entry", Func: fn}
	sum := mkAdd(0, "sum", ir.RefOperand(a), ir.RefOperand(b), 32)
	ret := &ir.Instruction{ID: 1, Op: ir.OpReturn, Operands: []ir.Operand{ir.RefOperand(sum)}}
	entry.Instructions = []*ir.Instruction{sum, ret}
	fn.Blocks = []*ir.BasicBlock{entry}
	sum.Block, ret.Block = entry, entry

	out, err := reconstruct.Run(fn)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "pub fn add(a: i32, b: i32) -> i32 {")
	assert.Contains(t, text, "let sum = a + b;")
	assert.Contains(t, text, "return sum;")
}

func TestRunIncrementI128Constant(t *testing.T) {
	fn := &ir.Function{Name: "increment", ReturnType: ir.IntType(128)}
	a := &ir.Param{ID: 0, Name: "a", Width: 128}
	fn.Params = []*ir.Param{a}

	entry := &ir.BasicBlock{ID: 0, Name: "entry", Func: fn}
	one := ir.ConstOperand(ir.NewConstInt(big.NewInt(1), 128))
	sum := mkAdd(0, "sum", ir.RefOperand(a), one, 128)
	ret := &ir.Instruction{ID: 1, Op: ir.OpReturn, Operands: []ir.Operand{ir.RefOperand(sum)}}
	entry.Instructions = []*ir.Instruction{sum, ret}
	fn.Blocks = []*ir.BasicBlock{entry}
	sum.Block, ret.Block = entry, entry

	out, err := reconstruct.Run(fn)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "i128")
	assert.Contains(t, text, "1_i128")
}

func TestRunSingleBlockReturn(t *testing.T) {
	fn := &ir.Function{Name: "identity", ReturnType: ir.IntType(32)}
	a := &ir.Param{ID: 0, Name: "a", Width: 32}
	fn.Params = []*ir.Param{a}
	entry := &ir.BasicBlock{ID: 0, Name: "entry", Func: fn}
	ret := &ir.Instruction{ID: 0, Op: ir.OpReturn, Operands: []ir.Operand{ir.RefOperand(a)}}
	entry.Instructions = []*ir.Instruction{ret}
	ret.Block = entry
	fn.Blocks = []*ir.BasicBlock{entry}

	out, err := reconstruct.Run(fn)
	require.NoError(t, err)
	assert.Equal(t, "pub fn identity(a: i32) -> i32 {\nreturn a;\n}", out.String())
}

func TestRunEmptyParamUnitFunction(t *testing.T) {
	fn := &ir.Function{Name: "noop", ReturnType: ir.UnitType}
	entry := &ir.BasicBlock{ID: 0, Name: "entry", Func: fn}
	ret := &ir.Instruction{ID: 0, Op: ir.OpReturn}
	entry.Instructions = []*ir.Instruction{ret}
	ret.Block = entry
	fn.Blocks = []*ir.BasicBlock{entry}

	out, err := reconstruct.Run(fn)
	require.NoError(t, err)
	text := out.String()
	assert.Contains(t, text, "pub fn noop() -> ()")
	assert.Contains(t, text, "return;")
}

func TestRunUnsupportedOpcode(t *testing.T) {
	fn := &ir.Function{Name: "weird", ReturnType: ir.IntType(32)}
	entry := &ir.BasicBlock{ID: 0, Name: "entry", Func: fn}
	mul := &ir.Instruction{ID: 0, Name: "m", Op: ir.OpOther, Sym: "mul", Type: ir.IntType(32)}
	ret := &ir.Instruction{ID: 1, Op: ir.OpReturn, Operands: []ir.Operand{ir.RefOperand(mul)}}
	entry.Instructions = []*ir.Instruction{mul, ret}
	mul.Block, ret.Block = entry, entry
	fn.Blocks = []*ir.BasicBlock{entry}

	out, err := reconstruct.Run(fn)
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "mul")
	assert.Equal(t, "pub fn weird() -> i32 {\nreturn m;\n}", out.String())
}

// fibLoop builds a single-block loop computing a Fibonacci-style
// recurrence, with curr and next as interdependent phis where next's
// result feeds curr's incoming value — the self-referential "annoying
// phi" case (original_source/src/builder/function/preprocessing.rs).
func fibLoop(t *testing.T) *ir.Function {
	t.Helper()
	fn := &ir.Function{Name: "fib", ReturnType: ir.IntType(32)}
	bound := &ir.Param{ID: 0, Name: "bound", Width: 32}
	fn.Params = []*ir.Param{bound}

	entry := &ir.BasicBlock{ID: 0, Name: "entry", Func: fn}
	header := &ir.BasicBlock{ID: 1, Name: "header", Func: fn}
	exit := &ir.BasicBlock{ID: 2, Name: "exit", Func: fn}
	fn.Blocks = []*ir.BasicBlock{entry, header, exit}

	entry.Instructions = []*ir.Instruction{
		{ID: 0, Op: ir.OpBr, Sym: &ir.BrInfo{Targets: []*ir.BasicBlock{header}}, Block: entry},
	}

	curr := &ir.Instruction{ID: 1, Name: "curr", Op: ir.OpPhi, Type: ir.IntType(32), Block: header}
	next := &ir.Instruction{ID: 2, Name: "next", Op: ir.OpPhi, Type: ir.IntType(32), Block: header}
	sum := mkAdd(3, "sum", ir.RefOperand(curr), ir.RefOperand(next), 32)
	sum.Block = header
	cmp := &ir.Instruction{ID: 4, Name: "cmp", Op: ir.OpICmp, Type: ir.IntType(1), Block: header,
		Operands: []ir.Operand{ir.RefOperand(curr), ir.RefOperand(bound)}, Sym: ir.ICmpSGE}
	condOp := ir.RefOperand(cmp)
	br := &ir.Instruction{ID: 5, Op: ir.OpBr, Block: header,
		Sym: &ir.BrInfo{Cond: &condOp, Targets: []*ir.BasicBlock{exit, header}}}

	curr.Sym = []ir.PhiIncoming{
		{Value: ir.ConstOperand(ir.NewConstInt(big.NewInt(0), 32)), Pred: entry},
		{Value: ir.RefOperand(next), Pred: header},
	}
	next.Sym = []ir.PhiIncoming{
		{Value: ir.ConstOperand(ir.NewConstInt(big.NewInt(1), 32)), Pred: entry},
		{Value: ir.RefOperand(sum), Pred: header},
	}

	header.Instructions = []*ir.Instruction{curr, next, sum, cmp, br}

	exit.Instructions = []*ir.Instruction{
		{ID: 6, Op: ir.OpReturn, Operands: []ir.Operand{ir.RefOperand(curr)}, Block: exit},
	}
	return fn
}

func TestRunFibLoopShadowsSelfReferentialPhi(t *testing.T) {
	fn := fibLoop(t)
	out, err := reconstruct.Run(fn)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "loop {")
	assert.Contains(t, text, "};")
	assert.Contains(t, text, "let mut curr = 0_i32;")
	assert.Contains(t, text, "let mut next = 0_i32;")
	assert.Contains(t, text, "next_temp")
	assert.Contains(t, text, "next = next_temp;")
	assert.Contains(t, text, "if cmp {\nbreak;\n}")
	assert.Contains(t, text, "return curr;")
}

// assertBraceBalance counts '{' and '}' across text and fails if they
// don't match — the scope-balance invariant spec.md §8 names.
func assertBraceBalance(t *testing.T, text string) {
	t.Helper()
	opens := strings.Count(text, "{")
	closes := strings.Count(text, "}")
	assert.Equal(t, opens, closes, "unbalanced braces in:\n%s", text)
}

// diamondIf builds a plain non-loop if/else: entry branches to a then-arm
// and an else-arm, both of which fall into a real join block that phis the
// two arms' results together.
func diamondIf(t *testing.T) *ir.Function {
	t.Helper()
	fn := &ir.Function{Name: "max", ReturnType: ir.IntType(32)}
	a := &ir.Param{ID: 0, Name: "a", Width: 32}
	b := &ir.Param{ID: 1, Name: "b", Width: 32}
	fn.Params = []*ir.Param{a, b}

	entry := &ir.BasicBlock{ID: 0, Name: "entry", Func: fn}
	thenB := &ir.BasicBlock{ID: 1, Name: "then_block", Func: fn}
	elseB := &ir.BasicBlock{ID: 2, Name: "else_block", Func: fn}
	join := &ir.BasicBlock{ID: 3, Name: "join", Func: fn}
	fn.Blocks = []*ir.BasicBlock{entry, thenB, elseB, join}

	cmp := &ir.Instruction{ID: 0, Name: "cmp", Op: ir.OpICmp, Type: ir.IntType(1), Block: entry,
		Operands: []ir.Operand{ir.RefOperand(a), ir.RefOperand(b)}, Sym: ir.ICmpSGT}
	condOp := ir.RefOperand(cmp)
	entryBr := &ir.Instruction{ID: 1, Op: ir.OpBr, Block: entry,
		Sym: &ir.BrInfo{Cond: &condOp, Targets: []*ir.BasicBlock{thenB, elseB}}}
	entry.Instructions = []*ir.Instruction{cmp, entryBr}

	thenBr := &ir.Instruction{ID: 2, Op: ir.OpBr, Block: thenB, Sym: &ir.BrInfo{Targets: []*ir.BasicBlock{join}}}
	thenB.Instructions = []*ir.Instruction{thenBr}

	elseBr := &ir.Instruction{ID: 3, Op: ir.OpBr, Block: elseB, Sym: &ir.BrInfo{Targets: []*ir.BasicBlock{join}}}
	elseB.Instructions = []*ir.Instruction{elseBr}

	result := &ir.Instruction{ID: 4, Name: "result", Op: ir.OpPhi, Type: ir.IntType(32), Block: join}
	result.Sym = []ir.PhiIncoming{
		{Value: ir.RefOperand(a), Pred: thenB},
		{Value: ir.RefOperand(b), Pred: elseB},
	}
	ret := &ir.Instruction{ID: 5, Op: ir.OpReturn, Operands: []ir.Operand{ir.RefOperand(result)}, Block: join}
	join.Instructions = []*ir.Instruction{result, ret}

	return fn
}

func TestRunDiamondIfElse(t *testing.T) {
	fn := diamondIf(t)
	out, err := reconstruct.Run(fn)
	require.NoError(t, err)

	text := out.String()
	assertBraceBalance(t, text)
	assert.Contains(t, text, "if !cmp {")
	assert.Contains(t, text, "} else {")
	assert.Contains(t, text, "return result;")

	lines := strings.Split(text, "\n")
	require.NotEmpty(t, lines)
	last := strings.TrimSpace(lines[len(lines)-2])
	assert.Equal(t, "return result;", last, "return must land at the outermost scope, not nested inside an if/else arm")
}

// ifNoElse builds the common "if with no else" shape: the conditional's
// false edge rejoins the join block directly, so there is no real
// else-arm block at all.
func ifNoElse(t *testing.T) *ir.Function {
	t.Helper()
	fn := &ir.Function{Name: "clampPositive", ReturnType: ir.IntType(32)}
	a := &ir.Param{ID: 0, Name: "a", Width: 32}
	fn.Params = []*ir.Param{a}

	entry := &ir.BasicBlock{ID: 0, Name: "entry", Func: fn}
	thenB := &ir.BasicBlock{ID: 1, Name: "then_block", Func: fn}
	join := &ir.BasicBlock{ID: 2, Name: "join", Func: fn}
	fn.Blocks = []*ir.BasicBlock{entry, thenB, join}

	zero := ir.ConstOperand(ir.NewConstInt(big.NewInt(0), 32))
	cmp := &ir.Instruction{ID: 0, Name: "cmp", Op: ir.OpICmp, Type: ir.IntType(1), Block: entry,
		Operands: []ir.Operand{ir.RefOperand(a), zero}, Sym: ir.ICmpSGT}
	condOp := ir.RefOperand(cmp)
	entryBr := &ir.Instruction{ID: 1, Op: ir.OpBr, Block: entry,
		Sym: &ir.BrInfo{Cond: &condOp, Targets: []*ir.BasicBlock{thenB, join}}}
	entry.Instructions = []*ir.Instruction{cmp, entryBr}

	thenBr := &ir.Instruction{ID: 2, Op: ir.OpBr, Block: thenB, Sym: &ir.BrInfo{Targets: []*ir.BasicBlock{join}}}
	thenB.Instructions = []*ir.Instruction{thenBr}

	result := &ir.Instruction{ID: 3, Name: "result", Op: ir.OpPhi, Type: ir.IntType(32), Block: join}
	result.Sym = []ir.PhiIncoming{
		{Value: ir.RefOperand(a), Pred: thenB},
		{Value: zero, Pred: entry},
	}
	ret := &ir.Instruction{ID: 4, Op: ir.OpReturn, Operands: []ir.Operand{ir.RefOperand(result)}, Block: join}
	join.Instructions = []*ir.Instruction{result, ret}

	return fn
}

func TestRunIfWithNoElse(t *testing.T) {
	fn := ifNoElse(t)
	out, err := reconstruct.Run(fn)
	require.NoError(t, err)

	text := out.String()
	assertBraceBalance(t, text)
	assert.Contains(t, text, "if !cmp {")
	assert.NotContains(t, text, "} else {", "an if with no else must not open an else scope")
	assert.Contains(t, text, "return result;")

	lines := strings.Split(text, "\n")
	require.NotEmpty(t, lines)
	last := strings.TrimSpace(lines[len(lines)-2])
	assert.Equal(t, "return result;", last, "return must land at the outermost scope, not nested inside the if arm")
}
