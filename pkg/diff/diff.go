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

// Package diff renders a line diff of a patch for review before it is written.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around each change
const DefaultContext = 3

// Kind marks a diff line as kept, removed or added
type Kind byte

const (
	Equal  Kind = ' '
	Delete Kind = '-'
	Insert Kind = '+'
)

// Line is one line of a diff
type Line struct {
	Kind Kind
	Text string // without the trailing newline
	EOL  bool   // false for a last line with no trailing newline
}

// Stats summarises a diff
type Stats struct {
	Added   int
	Removed int
}

// Lines computes a line diff of oldText and newText
func Lines(oldText, newText string) []Line {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	var table lineTable
	a := table.encode(oldText)
	b := table.encode(newText)

	var out []Line
	for _, d := range dmp.DiffMainRunes(a, b, false) {
		var kind Kind
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			kind = Delete
		case diffmatchpatch.DiffInsert:
			kind = Insert
		default:
			kind = Equal
		}
		for _, r := range d.Text {
			l := table.lines[table.indexOf(r)]
			out = append(out, Line{Kind: kind, Text: strings.TrimSuffix(l, "\n"), EOL: strings.HasSuffix(l, "\n")})
		}
	}
	return out
}

// lineTable assigns every distinct line its own rune so the diff runs over
// whole lines. Surrogate code points are skipped since they do not survive a
// round trip through string.
type lineTable struct {
	lines []string
	ids   map[string]rune
}

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

func (t *lineTable) encode(text string) []rune {
	if t.ids == nil {
		t.ids = make(map[string]rune)
	}

	parts := splitLines(text)
	out := make([]rune, 0, len(parts))
	for _, l := range parts {
		r, ok := t.ids[l]
		if !ok {
			r = t.runeFor(len(t.lines))
			t.ids[l] = r
			t.lines = append(t.lines, l)
		}
		out = append(out, r)
	}
	return out
}

// runeFor maps a line index to its rune, starting at 1 and stepping over surrogates
func (t *lineTable) runeFor(i int) rune {
	r := rune(i + 1)
	if r >= surrogateMin {
		r += surrogateMax - surrogateMin + 1
	}
	return r
}

func (t *lineTable) indexOf(r rune) int {
	if r > surrogateMax {
		r -= surrogateMax - surrogateMin + 1
	}
	return int(r) - 1
}

// Summarize counts added and removed lines
func Summarize(lines []Line) Stats {
	var s Stats
	for _, l := range lines {
		switch l.Kind {
		case Insert:
			s.Added++
		case Delete:
			s.Removed++
		}
	}
	return s
}

// Unified renders a unified diff with DefaultContext lines of context.
// It returns an empty string when the texts are equal.
func Unified(oldName, newName, oldText, newText string) string {
	if oldText == newText {
		return ""
	}

	lines := Lines(oldText, newText)

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n+++ %s\n", oldName, newName)
	for _, h := range hunks(lines, DefaultContext) {
		writeHunk(&buf, lines, h)
	}
	return buf.String()
}

type hunk struct {
	start, end int // half-open range into lines
}

// hunks groups changed lines, merging groups separated by at most 2*context
// unchanged lines
func hunks(lines []Line, context int) []hunk {
	var out []hunk
	for i := 0; i < len(lines); i++ {
		if lines[i].Kind == Equal {
			continue
		}

		start := max(0, i-context)
		last := i
		for j := i + 1; j < len(lines) && j <= last+2*context+1; j++ {
			if lines[j].Kind != Equal {
				last = j
			}
		}
		end := min(len(lines), last+context+1)

		out = append(out, hunk{start: start, end: end})
		i = last
	}
	return out
}

func writeHunk(buf *strings.Builder, lines []Line, h hunk) {
	oldStart, newStart := 1, 1
	for _, l := range lines[:h.start] {
		if l.Kind != Insert {
			oldStart++
		}
		if l.Kind != Delete {
			newStart++
		}
	}

	oldLen, newLen := 0, 0
	for _, l := range lines[h.start:h.end] {
		if l.Kind != Insert {
			oldLen++
		}
		if l.Kind != Delete {
			newLen++
		}
	}

	fmt.Fprintf(buf, "@@ -%s +%s @@\n", span(oldStart, oldLen), span(newStart, newLen))
	for _, l := range lines[h.start:h.end] {
		buf.WriteByte(byte(l.Kind))
		buf.WriteString(l.Text)
		buf.WriteByte('\n')
		if !l.EOL {
			buf.WriteString("\\ No newline at end of file\n")
		}
	}
}

func span(start, length int) string {
	if length == 0 {
		return fmt.Sprintf("%d,0", start-1)
	}
	if length == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, length)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.SplitAfter(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
