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
package cfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loom/internal/cfg"
	"loom/internal/ir"
)

// straightLine builds entry -> mid -> exit, all unconditional.
func straightLine() *ir.Function {
	fn := &ir.Function{Name: "f"}
	entry := &ir.BasicBlock{ID: 0, Name: "entry", Func: fn}
	mid := &ir.BasicBlock{ID: 1, Name: "mid", Func: fn}
	exit := &ir.BasicBlock{ID: 2, Name: "exit", Func: fn}
	entry.Instructions = []*ir.Instruction{{Op: ir.OpBr, Sym: &ir.BrInfo{Targets: []*ir.BasicBlock{mid}}}}
	mid.Instructions = []*ir.Instruction{{Op: ir.OpBr, Sym: &ir.BrInfo{Targets: []*ir.BasicBlock{exit}}}}
	exit.Instructions = []*ir.Instruction{{Op: ir.OpReturn}}
	fn.Blocks = []*ir.BasicBlock{entry, mid, exit}
	return fn
}

// selfLoop builds a single block that conditionally branches to itself and
// to an exit block.
func selfLoop() *ir.Function {
	fn := &ir.Function{Name: "loopfn"}
	entry := &ir.BasicBlock{ID: 0, Name: "entry", Func: fn}
	header := &ir.BasicBlock{ID: 1, Name: "header", Func: fn}
	exit := &ir.BasicBlock{ID: 2, Name: "exit", Func: fn}
	entry.Instructions = []*ir.Instruction{{Op: ir.OpBr, Sym: &ir.BrInfo{Targets: []*ir.BasicBlock{header}}}}
	cond := ir.RefOperand(&ir.Param{ID: 0, Name: "done"})
	header.Instructions = []*ir.Instruction{{Op: ir.OpBr, Sym: &ir.BrInfo{Cond: &cond, Targets: []*ir.BasicBlock{exit, header}}}}
	exit.Instructions = []*ir.Instruction{{Op: ir.OpReturn}}
	fn.Blocks = []*ir.BasicBlock{entry, header, exit}
	return fn
}

func TestGraphBuildAdjacency(t *testing.T) {
	fn := straightLine()
	g := cfg.Build(fn)
	assert.Equal(t, []*ir.BasicBlock{fn.Blocks[1]}, g.SuccessorsOf(fn.Blocks[0]))
	assert.Equal(t, []*ir.BasicBlock{fn.Blocks[0]}, g.PredecessorsOf(fn.Blocks[1]))
	assert.Empty(t, g.SuccessorsOf(fn.Blocks[2]))
}

func TestDomTreeStraightLine(t *testing.T) {
	fn := straightLine()
	g := cfg.Build(fn)
	dom := cfg.BuildDomTree(g)
	entry, mid, exit := fn.Blocks[0], fn.Blocks[1], fn.Blocks[2]

	assert.True(t, dom.Dominates(entry, exit))
	assert.True(t, dom.Dominates(mid, exit))
	assert.False(t, dom.Dominates(exit, entry))
	assert.True(t, dom.StrictlyDominates(entry, mid))
	assert.False(t, dom.StrictlyDominates(entry, entry))
}

func TestLoopHeadersSelfEdge(t *testing.T) {
	fn := selfLoop()
	g := cfg.Build(fn)
	headers := cfg.LoopHeaders(g)

	assert.True(t, headers[fn.Blocks[1]])
	assert.False(t, headers[fn.Blocks[0]])
	assert.False(t, headers[fn.Blocks[2]])
}

func TestLoopHeadersNoFalsePositiveOnStraightLine(t *testing.T) {
	fn := straightLine()
	g := cfg.Build(fn)
	headers := cfg.LoopHeaders(g)
	assert.Empty(t, headers)
}

func TestFindJoinBlockStraightLine(t *testing.T) {
	fn := straightLine()
	g := cfg.Build(fn)
	join := cfg.FindJoinBlock(g)
	assert.Same(t, fn.Blocks[2], join)
}

func TestFindJoinBlockIfElse(t *testing.T) {
	fn := &ir.Function{Name: "f"}
	entry := &ir.BasicBlock{ID: 0, Name: "entry", Func: fn}
	thenB := &ir.BasicBlock{ID: 1, Name: "then", Func: fn}
	elseB := &ir.BasicBlock{ID: 2, Name: "els", Func: fn}
	join := &ir.BasicBlock{ID: 3, Name: "join", Func: fn}

	cond := ir.RefOperand(&ir.Param{ID: 0, Name: "c"})
	entry.Instructions = []*ir.Instruction{{Op: ir.OpBr, Sym: &ir.BrInfo{Cond: &cond, Targets: []*ir.BasicBlock{thenB, elseB}}}}
	thenB.Instructions = []*ir.Instruction{{Op: ir.OpBr, Sym: &ir.BrInfo{Targets: []*ir.BasicBlock{join}}}}
	elseB.Instructions = []*ir.Instruction{{Op: ir.OpBr, Sym: &ir.BrInfo{Targets: []*ir.BasicBlock{join}}}}
	join.Instructions = []*ir.Instruction{{Op: ir.OpReturn}}
	fn.Blocks = []*ir.BasicBlock{entry, thenB, elseB, join}

	g := cfg.Build(fn)
	assert.Same(t, join, cfg.FindJoinBlock(g))
}
