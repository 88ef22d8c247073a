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

	"github.com/walteh/homepatch/pkg/config"
	"github.com/walteh/homepatch/pkg/document"
	"github.com/walteh/homepatch/pkg/text"
)

// 🎯 Operation is a unit of work run by an OperationRunner
type Operation interface {
	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 🔧 Options configures a patch operation
type Options struct {
	// Target is the source/destination pair to patch
	Target config.Target

	// Rules are applied in order
	Rules []text.ReplacementRule

	// Replacer applies the rules. Defaults to text.SimpleTextReplacer.
	Replacer text.TextReplacer

	// Save controls how the destination is written
	Save document.SaveOptions

	// DryRun computes the patch and compares it with the destination without writing
	DryRun bool
}

// 🏗️ BaseOperation holds what every operation shares
type BaseOperation struct {
	Options
}

// 🏭 NewBaseOperation fills in defaults for opts
func NewBaseOperation(opts Options) BaseOperation {
	if opts.Replacer == nil {
		opts.Replacer = text.NewSimpleTextReplacer()
	}
	return BaseOperation{Options: opts}
}

// 🗂️ FromConfig builds one patch operation per configured target
func FromConfig(cfg *config.Config, dryRun bool) []*PatchOperation {
	ops := make([]*PatchOperation, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		ops = append(ops, NewPatchOperation(Options{
			Target: t,
			Rules:  cfg.Rules,
			Save: document.SaveOptions{
				Atomic: cfg.Atomic,
				Backup: cfg.Backup,
			},
			DryRun: dryRun,
		}))
	}
	return ops
}

// Operations converts patch operations for an OperationRunner
func Operations[T Operation](ops []T) []Operation {
	out := make([]Operation, 0, len(ops))
	for _, op := range ops {
		out = append(out, op)
	}
	return out
}
