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

import "loom/internal/ir"

// DomTree is a block's dominance relation, computed by the same iterative
// fixpoint algorithm as the teacher's BuildDomTree
// (y1yang0-falcon/src/compile/ssa/domtree.go): O(n^2), but n is a function's
// block count, which is small in practice.
type DomTree struct {
	Graph *Graph
	Dom   map[*ir.BasicBlock][]*ir.BasicBlock
}

// Dominates reports whether a dom b: every path from the entry block to b
// passes through a.
func (dt *DomTree) Dominates(a, b *ir.BasicBlock) bool {
	for _, d := range dt.Dom[b] {
		if d == a {
			return true
		}
	}
	return false
}

// StrictlyDominates reports a sdom b: a dom b and a != b.
func (dt *DomTree) StrictlyDominates(a, b *ir.BasicBlock) bool {
	return a != b && dt.Dominates(a, b)
}

func intersect(a, b []*ir.BasicBlock) []*ir.BasicBlock {
	if len(a) > len(b) {
		a, b = b, a
	}
	res := make([]*ir.BasicBlock, 0, len(a))
	for _, x := range a {
		for _, y := range b {
			if x == y {
				res = append(res, x)
				break
			}
		}
	}
	return res
}

func union(a, b []*ir.BasicBlock) []*ir.BasicBlock {
	seen := make(map[*ir.BasicBlock]bool, len(a)+len(b))
	for _, x := range a {
		seen[x] = true
	}
	for _, x := range b {
		seen[x] = true
	}
	res := make([]*ir.BasicBlock, 0, len(seen))
	for x := range seen {
		res = append(res, x)
	}
	return res
}

// BuildDomTree computes the dominator tree for g's function.
func BuildDomTree(g *Graph) *DomTree {
	fn := g.Func
	entry := fn.Entry()
	dom := make(map[*ir.BasicBlock][]*ir.BasicBlock, len(fn.Blocks))
	dom[entry] = []*ir.BasicBlock{entry}
	for _, b := range fn.Blocks {
		if b == entry {
			continue
		}
		dom[b] = fn.Blocks
	}

	changed := true
	for changed {
		changed = false
		for _, b := range fn.Blocks {
			if b == entry {
				continue
			}
			preds := g.PredecessorsOf(b)
			var newdom []*ir.BasicBlock
			if len(preds) > 0 {
				newdom = dom[preds[0]]
				for _, p := range preds[1:] {
					newdom = intersect(newdom, dom[p])
				}
			}
			newdom = union(newdom, []*ir.BasicBlock{b})
			if len(newdom) != len(dom[b]) {
				changed = true
				dom[b] = newdom
			}
		}
	}
	return &DomTree{Graph: g, Dom: dom}
}
