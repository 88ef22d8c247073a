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

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/walteh/homepatch/pkg/rules"
	"github.com/walteh/homepatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Target is one source file patched into one destination file
type Target struct {
	Source      string
	Destination string
}

// String returns a string representation of the target
func (t Target) String() string {
	return t.Source + " -> " + t.Destination
}

// 📚 Config represents the complete configuration
type Config struct {
	Targets []Target               // Files to patch
	Rules   []text.ReplacementRule // Ordered replacement rules
	Atomic  bool                   // Write through a temp file and rename
	Backup  bool                   // Keep <destination>.bak before overwriting
	Async   bool                   // Patch targets concurrently

	location string // file the config was loaded from, empty for defaults
}

// 🏭 Default returns the built-in configuration with paths resolved against workdir
func Default(workdir string) *Config {
	if workdir == "" {
		workdir = "."
	}
	return &Config{
		Targets: []Target{{
			Source:      filepath.Join(workdir, rules.DefaultSource),
			Destination: filepath.Join(workdir, rules.DefaultDestination),
		}},
		Rules: rules.HomePage(),
	}
}

// Location returns the path the config was loaded from
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks if the configuration is valid and cleans its paths
func (cfg *Config) Validate() error {
	if len(cfg.Targets) == 0 {
		return errors.Errorf("at least one target is required")
	}

	seen := make(map[string]int, len(cfg.Targets))
	for i := range cfg.Targets {
		t := &cfg.Targets[i]
		if strings.TrimSpace(t.Source) == "" {
			return errors.Errorf("target %d: source is required", i)
		}
		if strings.TrimSpace(t.Destination) == "" {
			return errors.Errorf("target %d: destination is required", i)
		}

		t.Source = filepath.Clean(t.Source)
		t.Destination = filepath.Clean(t.Destination)

		if t.Source == t.Destination {
			return errors.Errorf("target %d: source and destination must differ (%s)", i, t.Source)
		}
		if j, ok := seen[t.Destination]; ok {
			return errors.Errorf("target %d: destination %s already used by target %d", i, t.Destination, j)
		}
		seen[t.Destination] = i
	}

	// targets must not feed each other or the result depends on run order
	for i, t := range cfg.Targets {
		if j, ok := seen[t.Source]; ok {
			return errors.Errorf("target %d: source %s is the destination of target %d", i, t.Source, j)
		}
	}

	if err := text.NewSimpleTextReplacer().ValidateRules(cfg.Rules); err != nil {
		return errors.Errorf("validating rules: %w", err)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	targets := make([]string, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		targets = append(targets, t.String())
	}
	return fmt.Sprintf("%s (%d rules)", strings.Join(targets, ", "), len(cfg.Rules))
}
