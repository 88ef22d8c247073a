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

package rules_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/homepatch/pkg/rules"
	"github.com/walteh/homepatch/pkg/text"
)

const homePageFixture = `export default function HomePage() {
  return (
    <main className="min-h-screen">
      < section className="hero">
        <div className="absolute inset-0">
          {/* <Particles
            className="absolute inset-0"
            quantity={100}
          /> */}
        </div>
      </section >
      <section className="contact">
        <label htmlFor="consent">
          Aceito receber contato da Andorinha Marketing *
        </label>
      </section >
    </main >
  );
}
`

const homePageFixed = `export default function HomePage() {
  return (
    <main className="min-h-screen">
      <section className="hero">
        <div className="absolute inset-0">
          <Particles
            className="absolute inset-0"
            quantity={100}
          />
        </div>
      </section>
      <section className="contact">
        <label htmlFor="consent">
          Aceito receber contato da Andorinha Audiovisual *
        </label>
      </section>
    </main>
  );
}
`

func apply(t *testing.T, content string) *text.ReplacementResult {
	t.Helper()
	result, err := text.NewSimpleTextReplacer().ReplaceString(context.Background(), rules.DefaultDestination, content, rules.HomePage())
	require.NoError(t, err)
	return result
}

func TestHomePage_Order(t *testing.T) {
	r := rules.HomePage()
	require.Len(t, r, 8)

	want := [][2]string{
		{"</section >", "</section>"},
		{"</main >", "</main>"},
		{"< section", "<section"},
		{"{/* <Particles", "<Particles"},
		{"/> */}", "/>"},
		{"          {/* <Particles", "          <Particles"},
		{"          /> */}", "          />"},
		{"Aceito receber contato da Andorinha Marketing *", "Aceito receber contato da Andorinha Audiovisual *"},
	}
	for i, w := range want {
		assert.Equal(t, w[0], r[i].FromText, "rule %d pattern", i)
		assert.Equal(t, w[1], r[i].ToText, "rule %d replacement", i)
		assert.Empty(t, r[i].FileFilterGlob, "rule %d glob", i)
	}

	require.NoError(t, text.NewSimpleTextReplacer().ValidateRules(r))
}

func TestHomePage_ReturnsFreshSlice(t *testing.T) {
	a := rules.HomePage()
	a[0].ToText = "mutated"
	assert.Equal(t, "</section>", rules.HomePage()[0].ToText)
}

func TestHomePage_Cases(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		notWant string
	}{
		{
			name:    "closing_section_tag",
			input:   `<section className="x"></section >`,
			want:    `<section className="x"></section>`,
			notWant: "</section >",
		},
		{
			name:    "opening_section_tag",
			input:   `< section className="y">`,
			want:    `<section className="y">`,
			notWant: "< section",
		},
		{
			name:    "closing_main_tag",
			input:   `<main></main >`,
			want:    `<main></main>`,
			notWant: "</main >",
		},
		{
			name:    "commented_particles",
			input:   `{/* <Particles count={5} /> */}`,
			want:    `<Particles count={5} />`,
			notWant: "{/*",
		},
		{
			name:    "consent_label",
			input:   `<span>Aceito receber contato da Andorinha Marketing *</span>`,
			want:    `<span>Aceito receber contato da Andorinha Audiovisual *</span>`,
			notWant: "Andorinha Marketing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(apply(t, tt.input).ModifiedContent)
			assert.Contains(t, got, tt.want)
			assert.NotContains(t, got, tt.notWant)
		})
	}
}

func TestHomePage_BrandOutsideLabelIsKept(t *testing.T) {
	input := "Andorinha Marketing\nAceito receber contato da Andorinha Marketing *\n"
	got := string(apply(t, input).ModifiedContent)

	assert.Equal(t, 1, strings.Count(got, "Andorinha Marketing"))
	assert.Contains(t, got, rules.ConsentLabelAudiovisual)
}

func TestHomePage_Fixture(t *testing.T) {
	result := apply(t, homePageFixture)

	assert.Equal(t, homePageFixed, string(result.ModifiedContent))
	assert.True(t, result.WasModified)

	counts := make([]int, 0, len(result.Applied))
	for _, a := range result.Applied {
		counts = append(counts, a.Count)
	}
	assert.Equal(t, []int{2, 1, 1, 1, 1, 0, 0, 1}, counts)
}

func TestHomePage_Idempotent(t *testing.T) {
	once := apply(t, homePageFixture)
	twice := apply(t, string(once.ModifiedContent))

	assert.Equal(t, string(once.ModifiedContent), string(twice.ModifiedContent))
	assert.False(t, twice.WasModified)
	assert.Zero(t, twice.ReplacementCount)
}

func TestHomePage_NoPatterns(t *testing.T) {
	input := "<section>\n  <Particles />\n</section>\n"
	result := apply(t, input)

	assert.Equal(t, input, string(result.ModifiedContent))
	assert.False(t, result.WasModified)
	assert.Zero(t, result.ReplacementCount)
}
