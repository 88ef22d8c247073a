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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/homepatch/pkg/rules"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL
//
//	target {
//	  source      = "src/components/HomePage.backup.tsx"
//	  destination = "src/components/HomePage.tsx"
//	}
//
//	rule "consent label" {
//	  old  = "Andorinha Marketing"
//	  new  = "Andorinha Audiovisual"
//	  file = "**/*.tsx"
//	}
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "homepatch.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Variables usable from expressions in the file
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_source":      cty.StringVal(rules.DefaultSource),
			"default_destination": cty.StringVal(rules.DefaultDestination),
		},
	}

	type hclConfig struct {
		Targets []struct {
			Source      string `hcl:"source"`
			Destination string `hcl:"destination"`
		} `hcl:"target,block"`
		Rules []struct {
			Name string `hcl:"name,label"`
			Old  string `hcl:"old"`
			New  string `hcl:"new"`
			File string `hcl:"file,optional"`
		} `hcl:"rule,block"`
		UseDefaultRules *bool `hcl:"use_default_rules,optional"`
		Atomic          bool  `hcl:"atomic,optional"`
		Backup          bool  `hcl:"backup,optional"`
		Async           bool  `hcl:"async,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	fc := fileConfig{
		UseDefaultRules: hclCfg.UseDefaultRules,
		Atomic:          hclCfg.Atomic,
		Backup:          hclCfg.Backup,
		Async:           hclCfg.Async,
	}
	for _, t := range hclCfg.Targets {
		fc.Targets = append(fc.Targets, fileTarget{Source: t.Source, Destination: t.Destination})
	}
	for _, r := range hclCfg.Rules {
		fc.Rules = append(fc.Rules, fileRule{Name: r.Name, Old: r.Old, New: r.New, File: r.File})
	}

	return fc.toConfig(), nil
}
