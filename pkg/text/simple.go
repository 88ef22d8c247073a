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
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var _ TextReplacer = (*SimpleTextReplacer)(nil)

// SimpleTextReplacer implements TextReplacer using literal, left-to-right,
// non-overlapping string replacement
type SimpleTextReplacer struct{}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}
	return r.ReplaceString(ctx, "", string(data), rules)
}

// ReplaceString implements TextReplacer.ReplaceString. Every rule is attempted
// against the output of the one before it, whether or not earlier rules matched.
func (r *SimpleTextReplacer) ReplaceString(ctx context.Context, file string, content string, rules []ReplacementRule) (*ReplacementResult, error) {
	logger := zerolog.Ctx(ctx)

	result := &ReplacementResult{
		OriginalContent: []byte(content),
		Applied:         make([]RuleResult, 0, len(rules)),
	}

	current := content
	for i, rule := range rules {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("applying rule %d: %w", i, err)
		}

		// strings.ReplaceAll with an empty pattern inserts between every rune
		if rule.FromText == "" {
			return nil, errors.Errorf("rule %d: from_text is required", i)
		}

		if !matchesFile(rule.FileFilterGlob, file) {
			logger.Debug().Str("rule", rule.Label()).Str("file", file).Msg("rule skipped by file filter")
			result.Applied = append(result.Applied, RuleResult{Rule: rule, Skipped: true})
			continue
		}

		count := strings.Count(current, rule.FromText)
		if count > 0 {
			current = strings.ReplaceAll(current, rule.FromText, rule.ToText)
			result.ReplacementCount += count
		}

		logger.Debug().Str("rule", rule.Label()).Int("count", count).Msg("rule applied")
		result.Applied = append(result.Applied, RuleResult{Rule: rule, Count: count})
	}

	result.ModifiedContent = []byte(current)
	result.WasModified = current != content
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
		if rule.FileFilterGlob != "" && !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return errors.Errorf("rule %d: invalid file_filter_glob %q", i, rule.FileFilterGlob)
		}
	}
	return nil
}

// matchesFile reports whether a rule with the given glob applies to file.
// An empty glob or an empty file always matches. Globs without a slash are
// also tried against the base name.
func matchesFile(glob, file string) bool {
	if glob == "" || file == "" {
		return true
	}

	file = strings.ReplaceAll(file, `\`, "/")
	if ok, err := doublestar.Match(glob, file); err == nil && ok {
		return true
	}
	if !strings.Contains(glob, "/") {
		ok, err := doublestar.Match(glob, path.Base(file))
		return err == nil && ok
	}
	return false
}
