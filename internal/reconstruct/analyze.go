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
package reconstruct

import (
	"loom/internal/cfg"
	"loom/internal/ir"
)

// Analyze runs the CFG-level analyses a function needs before scope
// planning and emission: successor/predecessor adjacency, loop headers, the
// join block, and the phi pre-pass that finds self-referential phis needing
// a shadow variable. Grounded on preprocess_function
// (original_source/src/builder/function/preprocessing.rs).
func Analyze(fn *ir.Function) *FunctionContext {
	g := cfg.Build(fn)
	ctx := &FunctionContext{
		Func:        fn,
		Graph:       g,
		Dom:         cfg.BuildDomTree(g),
		LoopHeaders: cfg.LoopHeaders(g),
		JoinBlock:   cfg.FindJoinBlock(g),
		ShadowPhis:  make(map[*ir.Instruction]string),
		Names:       NewNameResolver(),
		IfBlocks:    make(map[*ir.BasicBlock]ir.Operand),
		ElseBlocks:  make(map[*ir.BasicBlock]bool),
	}
	analyzePhis(ctx)
	return ctx
}

func analyzePhis(ctx *FunctionContext) {
	seenPred := make(map[*ir.BasicBlock]bool)
	for _, b := range ctx.Func.Blocks {
		results := make(map[*ir.Instruction]bool)
		incomingRefs := make(map[*ir.Instruction]bool)
		for _, phi := range b.Phis() {
			results[phi] = true
			for _, inc := range phi.Incomings() {
				if !seenPred[inc.Pred] {
					seenPred[inc.Pred] = true
					ctx.PhiPredBlocks = append(ctx.PhiPredBlocks, inc.Pred)
				}
				if ref, ok := inc.Value.Ref.(*ir.Instruction); ok {
					incomingRefs[ref] = true
				}
			}
		}
		for phi := range results {
			if incomingRefs[phi] {
				ctx.ShadowPhis[phi] = ctx.Names.Resolve(phi) + "_temp"
			}
		}
	}
}
