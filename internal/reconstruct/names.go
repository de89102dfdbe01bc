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
	"strconv"
	"strings"

	"loom/internal/ir"
)

// NameResolver maps ir.ValueHandles to their rendered TGT variable name. An
// unnamed result gets a synthesized "var{k}" the first time it's resolved,
// generalizing original_source's per-call "result"/"left"/"right" fallbacks
// (original_source/src/builder/function/binary.rs) into one counter shared
// across the whole function so synthesized names never collide.
type NameResolver struct {
	names map[ir.ValueHandle]string
}

func NewNameResolver() *NameResolver {
	return &NameResolver{names: make(map[ir.ValueHandle]string)}
}

// sanitize strips everything but alphanumerics and underscore, the same
// filter original_source's get_name applies to a source identifier.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve returns v's rendered name, synthesizing and caching one if v has
// no usable source name. A synthesized name is "var{k}" where k is the
// map's cardinality at the moment of synthesis (spec.md §4.6), so named and
// unnamed values interleaving through the same function still produce
// distinct, order-dependent identifiers rather than a separately-counted
// sequence.
func (nr *NameResolver) Resolve(v ir.ValueHandle) string {
	if name, ok := nr.names[v]; ok {
		return name
	}
	name := sanitize(rawName(v))
	if name == "" {
		name = "var" + strconv.Itoa(len(nr.names))
	}
	nr.names[v] = name
	return name
}

func rawName(v ir.ValueHandle) string {
	switch t := v.(type) {
	case *ir.Param:
		return t.Name
	case *ir.Instruction:
		return t.Name
	}
	return ""
}

// blockName is the is_from_<name> suffix and loop/if source reference for
// b, sanitized the same way a value name is.
func blockName(b *ir.BasicBlock) string {
	return sanitize(b.Name)
}
