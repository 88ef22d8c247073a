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
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/homepatch/cmd/homepatch/opts"
	"github.com/walteh/homepatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the replacement rules in the order they run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.LoadConfig(cmd.Context())
			if err != nil {
				return err
			}

			table, err := RenderRules(cfg.Rules)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	return cmd
}

// 📋 RenderRules renders rules as a table. Patterns are quoted so leading
// whitespace stays visible.
func RenderRules(rules []text.ReplacementRule) (string, error) {
	data := pterm.TableData{{"#", "Name", "From", "To", "Files"}}
	for i, r := range rules {
		files := r.FileFilterGlob
		if files == "" {
			files = "*"
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.Label(),
			strconv.Quote(r.FromText),
			strconv.Quote(r.ToText),
			files,
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering rules: %w", err)
	}
	return out, nil
}
