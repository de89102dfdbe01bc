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
// Package driver is the module-level orchestrator: it loads an LLIR source
// file and translates every function it contains into TGT, concurrently,
// while preserving the source's function order in the output (spec.md §6).
// The fan-out/fan-in shape is grounded on golang-tools'
// go/packages/internal/linecount, the pack's own errgroup.Group usage for
// bounded, result-collecting concurrency.
package driver

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"loom/internal/diag"
	"loom/internal/irload"
	"loom/internal/reconstruct"
	"loom/internal/tgt"
)

// maxConcurrency bounds how many functions translate at once, the same way
// linecount.go caps filesystem parallelism with g.SetLimit.
const maxConcurrency = 8

// Compile loads path and translates every function in it, returning the
// results in source order regardless of completion order.
func Compile(ctx context.Context, path string) (tgt.Functions, error) {
	logger, err := diag.NewLogger()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	defer logger.Sync()

	runID := diag.RunID()
	logger = logger.With(zap.String("run_id", runID))

	mod, err := irload.Load(path)
	if err != nil {
		logger.Error("failed to load IR", zap.Error(err))
		return nil, err
	}

	out := make(tgt.Functions, len(mod.Functions))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	for i, fn := range mod.Functions {
		i, fn := i, fn
		g.Go(func() error {
			translated, err := reconstruct.Run(fn)
			if err != nil {
				logger.Error("failed to translate function",
					zap.String("function", fn.Name), zap.Error(err))
				return err
			}
			out[i] = translated
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	warnDuplicateNames(logger, out)
	return out, nil
}

// warnDuplicateNames logs when two functions in the module render to the
// same TGT name (spec.md's supplemented duplicate-name warning) — loom
// still emits both, since picking a winner isn't this engine's call to
// make.
func warnDuplicateNames(logger *zap.Logger, fns tgt.Functions) {
	seen := make(map[string]bool, len(fns))
	for _, fn := range fns {
		name := fn.Signature.Name
		if seen[name] {
			logger.Warn("duplicate TGT function name", zap.String("name", name))
			continue
		}
		seen[name] = true
	}
}
