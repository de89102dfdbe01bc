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

// reachable returns the set of blocks reachable from from, inclusive, by a
// plain BFS over g's successor edges. Backed by the teacher's generic Set
// (y1yang0-falcon/src/utils/set.go, adapted in internal/util).
func reachable(g *Graph, from *ir.BasicBlock) *util.Set[*ir.BasicBlock] {
	seen := util.NewSet[*ir.BasicBlock]()
	seen.Add(from)
	queue := []*ir.BasicBlock{from}
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		for _, s := range g.SuccessorsOf(b) {
			if seen.Add(s) {
				queue = append(queue, s)
			}
		}
	}
	return seen
}

// FindJoinBlock returns the block that every other block in the function can
// reach, the point where an if/else's two arms (and a loop's body and its
// exit) necessarily rejoin. Ported from original_source's all-pairs
// has_path_connecting scan (original_source/src/builder/function/
// preprocessing.rs): every candidate target is tested against every other
// block, and since Rust's HashSet iteration order there is unspecified, the
// original keeps overwriting return_block on each match — last candidate
// that satisfies the all-paths-lead condition wins. This port iterates
// blocks in declaration order and preserves that same last-match-wins
// behavior so a function with more than one valid join candidate (e.g. a
// block with no successors other than the true sink) resolves the same way.
func FindJoinBlock(g *Graph) *ir.BasicBlock {
	blocks := g.Func.Blocks
	reach := make(map[*ir.BasicBlock]*util.Set[*ir.BasicBlock], len(blocks))
	for _, b := range blocks {
		reach[b] = reachable(g, b)
	}

	var join *ir.BasicBlock
	for _, target := range blocks {
		allLead := true
		for _, source := range blocks {
			if source == target {
				continue
			}
			if !reach[source].Contains(target) {
				allLead = false
				break
			}
		}
		if allLead {
			join = target
		}
	}
	return join
}
