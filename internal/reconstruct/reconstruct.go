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
	"loom/internal/ir"
	"loom/internal/tgt"
)

// Run translates one LLIR function into its TGT equivalent, running the
// four-stage pipeline: analyze the CFG, plan scopes, then emit.
func Run(fn *ir.Function) (*tgt.Function, error) {
	ctx := Analyze(fn)
	PlanScopes(ctx)
	return Emit(ctx)
}
