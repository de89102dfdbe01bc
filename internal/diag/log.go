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
package diag

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewLogger builds the engine's structured logger. Production builds log
// JSON to stderr; callers that want human-readable output during
// development can swap in zap.NewDevelopment themselves.
func NewLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

// RunID mints a correlation ID for one driver invocation, attached to every
// log line it emits so concurrent per-function translations (internal/
// driver runs these through an errgroup) can be told apart in the output.
func RunID() string {
	return uuid.NewString()
}
