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

import "loom/internal/ir"

// PlanScopes derives each block's BlockRole from CFG shape alone: a
// conditional branch's two targets become the if-arm and else-arm of a
// conditional, and any block in LoopHeaders becomes a loop header. This
// generalizes prepare_new_scopes (original_source/src/builder/function/
// preprocessing.rs), which discovers if_blocks/else_blocks incrementally
// while walking — doing it upfront lets PreDeclareLines plan both arms of
// a conditional together (see DESIGN.md's scope-role-classification
// decision, and its else-arm predeclare decision, which fixes
// prepare_new_scopes's own acknowledged TODO about else-arm variables
// being declared in the wrong scope). A branch
// target equal to the function's join block never gets a subscope role:
// an "if" whose false edge rejoins the join block directly has no real
// else-arm, and the join block itself is never a subscope.
func PlanScopes(ctx *FunctionContext) {
	ctx.Roles = make(map[*ir.BasicBlock]BlockRole)
	for _, b := range ctx.Func.Blocks {
		if ctx.LoopHeaders[b] {
			continue
		}
		term := b.Terminator()
		if term == nil || term.Op != ir.OpBr {
			continue
		}
		br := term.Branch()
		if !br.IsConditional() || len(br.Targets) != 2 {
			continue
		}
		thenB, elseB := br.Targets[0], br.Targets[1]
		hasElse := elseB != ctx.JoinBlock
		if thenB != ctx.JoinBlock {
			ctx.Roles[thenB] = BlockRole{IsIfArm: true, Cond: *br.Cond, Partner: elseB, HasElse: hasElse}
		}
		if hasElse {
			ctx.Roles[elseB] = BlockRole{IsElseArm: true, Cond: *br.Cond, Partner: thenB}
		}
	}
	for b := range ctx.LoopHeaders {
		role := ctx.Roles[b]
		role.IsLoopHeader = true
		ctx.Roles[b] = role
	}
}

// zeroLiteral is the pre-declared initial value for a subscope variable of
// type t: i1 becomes a bool literal, everything else a zero-valued
// constant of its own width (prepare_new_scopes's ty == "i1" special case).
func zeroLiteral(t ir.Type) string {
	if t.IsBool() {
		return "false"
	}
	return "0_" + t.String()
}

// PreDeclareLines returns the "let mut ... = 0;" lines block b's subscope
// needs: one per non-terminator instruction result, phis included — a
// phi's persisted value must survive loop re-entry or scope exit exactly
// like any other subscope variable. A self-referential phi's per-pass
// shadow ("_temp") is not part of this: it's a fresh local each pass,
// never predeclared (see emit.go). Resolving each name here also fixes its
// entry in ctx.Names; Emit drops the "let" on every assignment in a block
// whose role IsSubscope, not by looking names up.
func PreDeclareLines(ctx *FunctionContext, b *ir.BasicBlock) []string {
	var lines []string
	for _, inst := range b.Instructions {
		if inst.Op == ir.OpBr || inst.Op == ir.OpReturn {
			continue
		}
		name := ctx.Names.Resolve(inst)
		lines = append(lines, "let mut "+name+" = "+zeroLiteral(inst.Type)+";")
	}
	return lines
}
