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
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/homepatch/pkg/config"
	"github.com/walteh/homepatch/pkg/diff"
	"github.com/walteh/homepatch/pkg/document"
	"github.com/walteh/homepatch/pkg/log"
	"github.com/walteh/homepatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📋 Report is what a patch operation did to its target
type Report struct {
	Target config.Target

	// Result holds the patched content and per-rule counts
	Result *text.ReplacementResult

	// Current is the destination content before the operation. Only read on dry runs.
	Current string

	// DestinationExists reports whether the destination existed. Only set on dry runs.
	DestinationExists bool

	// Written is true once the destination has been replaced
	Written bool
}

// Patched returns the patched content
func (r *Report) Patched() string {
	return string(r.Result.ModifiedContent)
}

// Changed reports whether the destination differs from the patched content.
// Only meaningful on dry runs.
func (r *Report) Changed() bool {
	return !r.DestinationExists || r.Current != r.Patched()
}

// Diff renders the difference between the destination and the patched content
func (r *Report) Diff() string {
	return diff.Unified(r.Target.Destination, r.Target.Destination+" (patched)", r.Current, r.Patched())
}

// 🩹 NewPatchOperation creates a new patch operation
func NewPatchOperation(opts Options) *PatchOperation {
	return &PatchOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// 🩹 PatchOperation reads the target source, applies the rules in order and
// replaces the destination with the result
type PatchOperation struct {
	BaseOperation

	report *Report
}

// Report returns the outcome of the last successful Execute
func (op *PatchOperation) Report() *Report {
	return op.report
}

// 🏃 Execute runs the patch operation. Nothing is written unless the source
// loads and every rule applies.
func (op *PatchOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().
		Str("source", op.Target.Source).
		Str("destination", op.Target.Destination).
		Logger()
	ctx = logger.WithContext(ctx)

	logger.Debug().Int("rules", len(op.Rules)).Bool("dry_run", op.DryRun).Msg("patching target")

	src, err := document.Load(ctx, op.Target.Source)
	if err != nil {
		return errors.Errorf("loading source: %w", err)
	}

	result, err := op.Replacer.ReplaceString(ctx, op.Target.Destination, src.Content, op.Rules)
	if err != nil {
		return errors.Errorf("applying rules: %w", err)
	}

	report := &Report{Target: op.Target, Result: result}

	if op.DryRun {
		if err := op.readCurrent(ctx, report); err != nil {
			return err
		}
	} else {
		dst := &document.Document{Path: op.Target.Destination, Content: string(result.ModifiedContent)}
		if err := document.Save(ctx, dst, op.Save); err != nil {
			return errors.Errorf("saving destination: %w", err)
		}
		report.Written = true
	}

	op.report = report
	op.logReport(ctx, report)

	return nil
}

// readCurrent loads the destination for comparison. A missing destination is not an error.
func (op *PatchOperation) readCurrent(ctx context.Context, report *Report) error {
	current, err := document.Load(ctx, op.Target.Destination)
	switch {
	case err == nil:
		report.Current = current.Content
		report.DestinationExists = true
	case errors.Is(err, document.ErrNotFound):
		report.DestinationExists = false
	default:
		return errors.Errorf("reading destination: %w", err)
	}
	return nil
}

func (op *PatchOperation) logReport(ctx context.Context, report *Report) {
	console := log.FromContext(ctx)

	ruleOps := make([]log.RuleOperation, 0, len(report.Result.Applied))
	for i, applied := range report.Result.Applied {
		ruleOps = append(ruleOps, log.RuleOperation{
			Index:   i + 1,
			Name:    applied.Rule.Label(),
			Count:   applied.Count,
			Skipped: applied.Skipped,
		})
	}

	console.LogTargetOperation(ctx, log.TargetOperation{
		Source:      op.Target.Source,
		Destination: op.Target.Destination,
		DryRun:      op.DryRun,
	}, ruleOps)

	name := filepath.Base(op.Target.Destination)
	switch {
	case report.Written:
		console.Successf("%s has been fixed and written.", name)
	case !report.Changed():
		console.Infof("%s is up to date", name)
	case !report.DestinationExists:
		console.Warningf("%s does not exist yet and would be created", name)
	default:
		stats := diff.Summarize(diff.Lines(report.Current, report.Patched()))
		console.Warningf("%s would change (+%d -%d lines)", name, stats.Added, stats.Removed)
	}
}
