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
package cfg

import (
	"loom/internal/ir"
	"loom/internal/util"
)

// tarjanState is the bookkeeping for one run of Tarjan's SCC algorithm,
// following the classic recursive-DFS shape the teacher uses for its own
// traversals (y1yang0-falcon/src/compile/ssa/loop.go). onStack membership
// uses the teacher's generic Set (y1yang0-falcon/src/utils/set.go, adapted
// in internal/util) rather than a bare bool map.
type tarjanState struct {
	g       *Graph
	index   int
	indexOf map[*ir.BasicBlock]int
	lowlink map[*ir.BasicBlock]int
	onStack *util.Set[*ir.BasicBlock]
	stack   []*ir.BasicBlock
	sccs    [][]*ir.BasicBlock
}

// StronglyConnectedComponents returns g's blocks partitioned into SCCs,
// grounded on original_source's use of petgraph's tarjan_scc
// (original_source/src/builder/function/preprocessing.rs).
func StronglyConnectedComponents(g *Graph) [][]*ir.BasicBlock {
	st := &tarjanState{
		g:       g,
		indexOf: make(map[*ir.BasicBlock]int),
		lowlink: make(map[*ir.BasicBlock]int),
		onStack: util.NewSet[*ir.BasicBlock](),
	}
	for _, b := range g.Func.Blocks {
		if _, seen := st.indexOf[b]; !seen {
			st.strongconnect(b)
		}
	}
	return st.sccs
}

func (st *tarjanState) strongconnect(v *ir.BasicBlock) {
	st.indexOf[v] = st.index
	st.lowlink[v] = st.index
	st.index++
	st.stack = append(st.stack, v)
	st.onStack.Add(v)

	for _, w := range st.g.SuccessorsOf(v) {
		if _, seen := st.indexOf[w]; !seen {
			st.strongconnect(w)
			if st.lowlink[w] < st.lowlink[v] {
				st.lowlink[v] = st.lowlink[w]
			}
		} else if st.onStack.Contains(w) {
			if st.indexOf[w] < st.lowlink[v] {
				st.lowlink[v] = st.indexOf[w]
			}
		}
	}

	if st.lowlink[v] == st.indexOf[v] {
		var scc []*ir.BasicBlock
		for {
			n := len(st.stack) - 1
			w := st.stack[n]
			st.stack = st.stack[:n]
			st.onStack.Remove(w)
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		st.sccs = append(st.sccs, scc)
	}
}

// hasSelfEdge reports whether b branches to itself.
func hasSelfEdge(g *Graph, b *ir.BasicBlock) bool {
	for _, s := range g.SuccessorsOf(b) {
		if s == b {
			return true
		}
	}
	return false
}

// LoopHeaders returns the set of blocks that head a loop, per spec.md §4.2's
// rule ported directly from preprocess_function: an SCC of size > 1
// contributes the first member of its listing, which is the first block
// popped off the Tarjan stack (the SCC member discovered last, not
// necessarily the block the loop is entered through), and any block with a self-edge
// is a loop header regardless of its SCC's size. Nested and irreducible
// loops aren't distinguished (see DESIGN.md Open Question decisions) —
// every block in the set is simply "a loop".
func LoopHeaders(g *Graph) map[*ir.BasicBlock]bool {
	headers := make(map[*ir.BasicBlock]bool)
	for _, scc := range StronglyConnectedComponents(g) {
		if len(scc) > 1 || hasSelfEdge(g, scc[0]) {
			headers[scc[0]] = true
		}
	}
	return headers
}
