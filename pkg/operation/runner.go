// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 OperationRunner executes operations
type OperationRunner struct {
	async bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(async bool) *OperationRunner {
	return &OperationRunner{
		async: async,
	}
}

// 🏃 Run executes the operations and returns the first error
func (r *OperationRunner) Run(ctx context.Context, ops ...Operation) error {
	if r.async && len(ops) > 1 {
		return r.runAsync(ctx, ops)
	}
	return r.runSync(ctx, ops)
}

// 🔄 runSync runs operations in order, stopping at the first failure
func (r *OperationRunner) runSync(ctx context.Context, ops []Operation) error {
	for i, op := range ops {
		if err := op.Execute(ctx); err != nil {
			return errors.Errorf("executing operation %d: %w", i, err)
		}
	}
	return nil
}

// ⚡ runAsync runs every operation in its own goroutine. The first failure
// cancels the context passed to the others.
func (r *OperationRunner) runAsync(ctx context.Context, ops []Operation) error {
	zerolog.Ctx(ctx).Debug().Int("operations", len(ops)).Msg("running operations concurrently")

	g, gctx := errgroup.WithContext(ctx)
	for i, op := range ops {
		i, op := i, op
		g.Go(func() error {
			if err := op.Execute(gctx); err != nil {
				return errors.Errorf("executing operation %d: %w", i, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return nil
}
