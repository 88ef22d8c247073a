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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/homepatch/cmd/homepatch/commands"
	"github.com/walteh/homepatch/cmd/homepatch/opts"
	"github.com/walteh/homepatch/pkg/log"
)

// newRootCmd creates the root command. Running it without a subcommand is apply.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "homepatch",
		Short: "Rebuild HomePage.tsx from its backup",
		Long: `homepatch reads src/components/HomePage.backup.tsx, applies a fixed,
ordered list of literal replacements and writes src/components/HomePage.tsx.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(setupLogging(cmd, rootOpts, stderr))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.LoadConfig(cmd.Context())
			if err != nil {
				return err
			}
			return commands.RunApply(cmd.Context(), cfg)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addRootFlags(cmd, rootOpts)

	cmd.AddCommand(
		commands.NewApplyCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		commands.NewRulesCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (.yaml, .json or .hcl); built-in rules when empty")
	cmd.PersistentFlags().StringVarP(&o.Workdir, "workdir", "w", ".", "frontend root the default paths are relative to")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false, "print each target and rule outcome")
}

// setupLogging attaches a zerolog logger writing to stderr and a console
// reporter writing to the command output
func setupLogging(cmd *cobra.Command, o *opts.RootOpts, stderr io.Writer) context.Context {
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().
		Logger()

	ctx := zlog.WithContext(cmd.Context())
	console := log.New(cmd.OutOrStdout(), zlog)
	console.SetVerbose(o.Verbose || o.Debug)
	return log.NewContext(ctx, console)
}
