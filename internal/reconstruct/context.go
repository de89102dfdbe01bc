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
// Package reconstruct turns a loaded ir.Function's control-flow graph back
// into structured TGT source: if/else, loop, and straight-line code in
// place of branches and phis. The four-stage pipeline (analyze, plan, emit,
// names) generalizes original_source's CairoFunctionBuilder
// (original_source/src/builder/function/*.rs) from a single mutable
// builder object threaded through one recursive-feeling linear pass into
// explicit stages operating over a shared FunctionContext, in the idiom of
// the teacher's own multi-pass SSA pipeline
// (y1yang0-falcon/src/compile/ssa/optimize.go's Context-object style).
package reconstruct

import (
	"loom/internal/cfg"
	"loom/internal/ir"
)

// BlockRole is a block's statically derived place in the reconstructed
// control flow. Computed purely from CFG shape (analyze.go, plan.go),
// independent of the IfBlocks/ElseBlocks maps the emitter populates only
// for introspection — see DESIGN.md's scope-role-classification decision.
type BlockRole struct {
	IsLoopHeader bool
	IsIfArm      bool
	IsElseArm    bool
	Cond         ir.Operand
	Partner      *ir.BasicBlock

	// HasElse is true on an if-arm's role when its conditional branch's
	// other target is a real else-arm rather than the function's join
	// block — an "if" with no "else" at all, since the branch's false
	// edge rejoins the join block directly.
	HasElse bool
}

func (r BlockRole) IsSubscope() bool { return r.IsLoopHeader || r.IsIfArm || r.IsElseArm }

// FunctionContext carries every analysis result the planner and emitter
// need while translating one function.
type FunctionContext struct {
	Func        *ir.Function
	Graph       *cfg.Graph
	Dom         *cfg.DomTree
	LoopHeaders map[*ir.BasicBlock]bool
	JoinBlock   *ir.BasicBlock
	Roles       map[*ir.BasicBlock]BlockRole

	// PhiPredBlocks lists, in first-discovered order, every block that
	// appears as a phi's incoming predecessor anywhere in the function —
	// these get an "is_from_<block>" tracking boolean (spec.md §4.4).
	PhiPredBlocks []*ir.BasicBlock

	// ShadowPhis maps a self-referential phi to its shadow variable name:
	// a phi whose own result is consumed as another phi's incoming value
	// in the same block needs its update deferred, since the consumer
	// wants the value from the previous pass through the block, not the
	// one just computed (original_source/src/builder/function/
	// preprocessing.rs's "annoying phi" comment).
	ShadowPhis map[*ir.Instruction]string

	Names *NameResolver

	// IfBlocks and ElseBlocks are populated during Emit, mirroring
	// spec.md §3's description of these as emitter-populated maps kept
	// for introspection and testing, not consulted for role decisions.
	IfBlocks   map[*ir.BasicBlock]ir.Operand
	ElseBlocks map[*ir.BasicBlock]bool
}
