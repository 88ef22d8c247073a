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

package opts

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/homepatch/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string // optional; built-in defaults are used when empty
	Workdir    string // frontend root the default paths are relative to
	Debug      bool
	Verbose    bool // print every target and rule, not just the outcome
}

// ConfigPath returns the config file path, resolved against Workdir when relative
func (o *RootOpts) ConfigPath() string {
	if o.ConfigFile == "" || filepath.IsAbs(o.ConfigFile) {
		return o.ConfigFile
	}
	return filepath.Join(o.workdir(), o.ConfigFile)
}

func (o *RootOpts) workdir() string {
	if o.Workdir == "" {
		return "."
	}
	return o.Workdir
}

// 🎯 LoadConfig loads the config file, or the built-in defaults when none is set
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	path := o.ConfigPath()
	if path == "" {
		cfg := config.Default(o.workdir())
		if err := cfg.Validate(); err != nil {
			return nil, errors.Errorf("validating default config: %w", err)
		}
		zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("using built-in config")
		return cfg, nil
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("location", cfg.Location()).Str("config", cfg.String()).Msg("using config file")
	return cfg, nil
}
