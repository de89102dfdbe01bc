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
// Package diag holds the engine's error taxonomy and structured logging.
// Errors are always returned, never the teacher's panic-based Assert/Fatal
// (y1yang0-falcon/src/utils/util.go) — this is a library embedded in a
// driver pipeline, not a standalone compiler process, so an error from one
// function must not bring down translation of the rest of the module.
// Assert is kept for the narrow case of a genuinely unreachable state,
// mirroring the teacher's ShouldNotReachHere.
package diag

import (
	"fmt"

	"github.com/pkg/errors"
)

// LoadError wraps a failure to read, parse or lex the textual LLIR source,
// annotated with Pos (irload.Load passes the source file's path).
type LoadError struct {
	Pos string
	err error
}

func NewLoadError(pos string, cause error) *LoadError {
	return &LoadError{Pos: pos, err: errors.WithStack(cause)}
}

func (e *LoadError) Error() string { return e.Pos + ": " + e.err.Error() }
func (e *LoadError) Unwrap() error { return e.err }

// UnsupportedOpcode reports an instruction opcode the engine doesn't know
// how to translate (spec.md's Non-goals: anything beyond add/sub/icmp/
// zext/br/phi/ret is out of scope, but a load should not abort the whole
// module over one function using it).
type UnsupportedOpcode struct {
	Function string
	Block    string
	Mnemonic string
}

func (e *UnsupportedOpcode) Error() string {
	return fmt.Sprintf("unsupported opcode %q in %s/%s", e.Mnemonic, e.Function, e.Block)
}

// MalformedIR reports IR that loaded successfully but violates a structural
// invariant the reconstruction engine depends on. The loader returns it for
// a branch or phi predecessor naming an unknown label, a reference to an
// undefined value, and an unknown icmp predicate; phi incoming counts and
// block terminators are not checked.
type MalformedIR struct {
	Function string
	Detail   string
}

func (e *MalformedIR) Error() string {
	return "malformed IR in " + e.Function + ": " + e.Detail
}

// InternalInvariant reports a bug in loom itself: a code path the analysis
// should have made unreachable. Carries a stack trace via pkg/errors so it
// can be logged with enough context to fix, without panicking the process.
type InternalInvariant struct {
	err error
}

func NewInternalInvariant(format string, args ...interface{}) *InternalInvariant {
	return &InternalInvariant{err: errors.Errorf(format, args...)}
}

func (e *InternalInvariant) Error() string { return "internal invariant violated: " + e.err.Error() }
func (e *InternalInvariant) Unwrap() error { return e.err }

// Assert panics if cond is false. Reserved for states that would indicate a
// bug in an earlier analysis pass having already run successfully — e.g. a
// lookup into a map the same pass just populated. Never used for anything
// an untrusted input file can trigger; those paths return InternalInvariant
// or MalformedIR instead.
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(errors.Errorf(format, args...))
	}
}
