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

package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnified_Equal(t *testing.T) {
	assert.Empty(t, Unified("a", "b", "same\n", "same\n"))
	assert.Empty(t, Unified("a", "b", "", ""))
}

func TestUnified_SingleChange(t *testing.T) {
	old := "<main>\n< section>\n</section >\n</main>\n"
	new := "<main>\n<section>\n</section>\n</main>\n"

	got := Unified("HomePage.tsx", "HomePage.tsx (patched)", old, new)

	want := strings.Join([]string{
		"--- HomePage.tsx",
		"+++ HomePage.tsx (patched)",
		"@@ -1,4 +1,4 @@",
		" <main>",
		"-< section>",
		"-</section >",
		"+<section>",
		"+</section>",
		" </main>",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestUnified_SeparateHunks(t *testing.T) {
	var oldLines, newLines []string
	for i := 1; i <= 20; i++ {
		oldLines = append(oldLines, fmt.Sprintf("line %d", i))
		newLines = append(newLines, fmt.Sprintf("line %d", i))
	}
	newLines[1] = "changed 2"
	newLines[17] = "changed 18"

	got := Unified("a", "b", strings.Join(oldLines, "\n")+"\n", strings.Join(newLines, "\n")+"\n")

	assert.Equal(t, 2, strings.Count(got, "@@ -"), "changes far apart should produce two hunks")
	assert.Contains(t, got, "@@ -1,5 +1,5 @@")
	assert.Contains(t, got, "@@ -15,6 +15,6 @@")
	assert.Contains(t, got, "-line 2\n+changed 2\n")
	assert.Contains(t, got, "-line 18\n+changed 18\n")
	assert.NotContains(t, got, " line 10\n")
}

func TestUnified_MissingTrailingNewline(t *testing.T) {
	got := Unified("a", "b", "x\n", "x\ny")
	assert.Contains(t, got, "+y\n\\ No newline at end of file\n")
}

func TestLines_Summarize(t *testing.T) {
	lines := Lines("a\nb\nc\n", "a\nB\nc\nd\n")

	stats := Summarize(lines)
	assert.Equal(t, 2, stats.Added)
	assert.Equal(t, 1, stats.Removed)

	require.NotEmpty(t, lines)
	assert.Equal(t, Equal, lines[0].Kind)
	assert.Equal(t, "a", lines[0].Text)
	assert.True(t, lines[0].EOL)
}

func numberedLines(n int) []string {
	lines := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	return lines
}

func TestUnified_MergesHunksWithinTwiceContext(t *testing.T) {
	oldLines := numberedLines(20)
	newLines := numberedLines(20)
	newLines[1] = "changed 2"
	newLines[8] = "changed 9"

	got := Unified("a", "b", strings.Join(oldLines, "\n")+"\n", strings.Join(newLines, "\n")+"\n")

	assert.Equal(t, 1, strings.Count(got, "@@ -"), "six unchanged lines between changes should share a hunk")
	assert.Contains(t, got, "@@ -1,12 +1,12 @@")
	assert.Contains(t, got, " line 5\n line 6\n")
}

func TestLines_ManyLines(t *testing.T) {
	oldLines := numberedLines(25)
	newLines := numberedLines(25)
	newLines[1] = "changed 2"

	lines := Lines(strings.Join(oldLines, "\n")+"\n", strings.Join(newLines, "\n")+"\n")

	assert.Equal(t, Stats{Added: 1, Removed: 1}, Summarize(lines))
	require.Len(t, lines, 26)
	assert.Equal(t, Line{Kind: Delete, Text: "line 2", EOL: true}, lines[1])
	assert.Equal(t, Line{Kind: Insert, Text: "changed 2", EOL: true}, lines[2])
	for _, l := range lines[3:] {
		assert.Equal(t, Equal, l.Kind, "line %q", l.Text)
	}
}

func TestLines_RepeatedLines(t *testing.T) {
	old := strings.Repeat("  </div>\n", 12) + "end\n"
	new := strings.Repeat("  </div>\n", 11) + "end\n"

	lines := Lines(old, new)

	assert.Equal(t, Stats{Removed: 1}, Summarize(lines))
	assert.Len(t, lines, 13)
}
