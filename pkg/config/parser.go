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
	"context"

	"github.com/walteh/homepatch/pkg/rules"
	"github.com/walteh/homepatch/pkg/text"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// fileConfig is the on-disk shape shared by the YAML and JSON parsers
type fileConfig struct {
	Targets         []fileTarget `json:"targets" yaml:"targets"`
	Rules           []fileRule   `json:"rules,omitempty" yaml:"rules,omitempty"`
	UseDefaultRules *bool        `json:"use_default_rules,omitempty" yaml:"use_default_rules,omitempty"`
	Atomic          bool         `json:"atomic,omitempty" yaml:"atomic,omitempty"`
	Backup          bool         `json:"backup,omitempty" yaml:"backup,omitempty"`
	Async           bool         `json:"async,omitempty" yaml:"async,omitempty"`
}

type fileTarget struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
}

type fileRule struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Old  string `json:"old" yaml:"old"`
	New  string `json:"new" yaml:"new"`
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// toConfig converts the on-disk shape to a Config. The built-in rules run
// first when use_default_rules is set, or when no rules are given at all.
func (fc *fileConfig) toConfig() *Config {
	cfg := &Config{
		Atomic: fc.Atomic,
		Backup: fc.Backup,
		Async:  fc.Async,
	}

	for _, t := range fc.Targets {
		cfg.Targets = append(cfg.Targets, Target{Source: t.Source, Destination: t.Destination})
	}

	useDefaults := len(fc.Rules) == 0
	if fc.UseDefaultRules != nil {
		useDefaults = *fc.UseDefaultRules
	}
	if useDefaults {
		cfg.Rules = append(cfg.Rules, rules.HomePage()...)
	}

	for _, r := range fc.Rules {
		cfg.Rules = append(cfg.Rules, text.ReplacementRule{
			Name:           r.Name,
			FromText:       r.Old,
			ToText:         r.New,
			FileFilterGlob: r.File,
		})
	}

	return cfg
}
