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

package text

import (
	"context"
	"io"
)

// 🔄 ReplacementRule defines a single literal text replacement
type ReplacementRule struct {
	// Name is a short label used when reporting the rule
	Name string

	// FromText is the literal text to replace
	FromText string

	// ToText is the replacement text
	ToText string

	// FileFilterGlob restricts the rule to matching paths. Empty matches every path.
	FileFilterGlob string
}

// Label returns the rule name, falling back to its pattern
func (r ReplacementRule) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.FromText
}

// 📊 RuleResult records what a single rule did
type RuleResult struct {
	Rule    ReplacementRule
	Count   int  // occurrences replaced
	Skipped bool // filtered out by FileFilterGlob
}

// 📦 ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if the content changed
	WasModified bool

	// ReplacementCount is the number of replacements made across all rules
	ReplacementCount int

	// Applied holds one entry per rule, in rule order
	Applied []RuleResult

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// 🎯 TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies rules, in order, to everything read from content
	ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ReplaceString applies the rules whose glob matches path to content
	ReplaceString(ctx context.Context, path string, content string, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}
