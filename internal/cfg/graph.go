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
// Package cfg derives control-flow structure from an ir.Function: successor
// and predecessor adjacency, a dominator tree, strongly connected components
// for loop detection, and the join-block heuristic used by the reconstruction
// engine to know where an if/else rejoins. Adapted from the teacher's
// y1yang0-falcon/src/compile/ssa package (domtree.go, loop.go), generalized
// from falcon's own SSA Block/Func types to ir.BasicBlock/ir.Function.
package cfg

import "loom/internal/ir"

// Graph is the successor/predecessor adjacency of a function's blocks,
// built once and shared by the dominance, loop, and join-block analyses.
type Graph struct {
	Func  *ir.Function
	Succs map[*ir.BasicBlock][]*ir.BasicBlock
	Preds map[*ir.BasicBlock][]*ir.BasicBlock
}

// Build walks fn's blocks and wires up successor/predecessor adjacency from
// each block's terminator, mirroring falcon's Block.WireTo used during SSA
// construction (y1yang0-falcon/src/compile/ssa/hir.go).
func Build(fn *ir.Function) *Graph {
	g := &Graph{
		Func:  fn,
		Succs: make(map[*ir.BasicBlock][]*ir.BasicBlock, len(fn.Blocks)),
		Preds: make(map[*ir.BasicBlock][]*ir.BasicBlock, len(fn.Blocks)),
	}
	for _, b := range fn.Blocks {
		g.Succs[b] = b.Successors()
	}
	for _, b := range fn.Blocks {
		for _, s := range g.Succs[b] {
			g.Preds[s] = append(g.Preds[s], b)
		}
	}
	return g
}

func (g *Graph) SuccessorsOf(b *ir.BasicBlock) []*ir.BasicBlock   { return g.Succs[b] }
func (g *Graph) PredecessorsOf(b *ir.BasicBlock) []*ir.BasicBlock { return g.Preds[b] }
