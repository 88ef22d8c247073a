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
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/homepatch/cmd/homepatch/opts"
	"github.com/walteh/homepatch/pkg/config"
	"github.com/walteh/homepatch/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	var atomic, backup, async bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Patch the destination from its backup",
		Long: `Apply rebuilds each destination from its source.
It will:
1. Read the source file
2. Apply every replacement rule in order
3. Replace the destination with the result`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "apply").Logger().WithContext(cmd.Context())

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("atomic") {
				cfg.Atomic = atomic
			}
			if flags.Changed("backup") {
				cfg.Backup = backup
			}
			if flags.Changed("async") {
				cfg.Async = async
			}

			return RunApply(ctx, cfg)
		},
	}

	cmd.Flags().BoolVar(&atomic, "atomic", false, "write through a temp file and rename it into place")
	cmd.Flags().BoolVar(&backup, "backup", false, "keep <destination>.bak before overwriting")
	cmd.Flags().BoolVar(&async, "async", false, "patch targets concurrently")

	return cmd
}

// 🩹 RunApply patches every target in cfg
func RunApply(ctx context.Context, cfg *config.Config) error {
	ops := operation.FromConfig(cfg, false)
	if err := operation.NewRunner(cfg.Async).Run(ctx, operation.Operations(ops)...); err != nil {
		return errors.Errorf("patching: %w", err)
	}
	return nil
}
