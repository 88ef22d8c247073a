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

package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/homepatch/cmd/homepatch/opts"
	"github.com/walteh/homepatch/pkg/log"
	"github.com/walteh/homepatch/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// ErrOutOfDate is returned by check --exit-code when a destination would change
var ErrOutOfDate = errors.Base("destination is out of date")

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	var exitCode bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show what apply would change without writing",
		Long: `Check runs the same rules as apply but leaves every file alone.
It will:
1. Read the source file
2. Apply every replacement rule in order
3. Print a diff against the current destination`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "check").Logger().WithContext(cmd.Context())

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			console := log.FromContext(ctx)
			console.Header(fmt.Sprintf("checking %d target(s) against %d rules", len(cfg.Targets), len(cfg.Rules)))

			ops := operation.FromConfig(cfg, true)
			if err := operation.NewRunner(false).Run(ctx, operation.Operations(ops)...); err != nil {
				return errors.Errorf("checking: %w", err)
			}

			changed := 0
			for _, op := range ops {
				report := op.Report()
				if !report.Changed() {
					continue
				}
				changed++
				console.LogNewline()
				console.Print(report.Diff())
			}

			if changed > 0 && exitCode {
				return errors.WithStack(ErrOutOfDate)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit with an error when a destination would change")

	return cmd
}
