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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/homepatch/cmd/homepatch/commands"
	"github.com/walteh/homepatch/pkg/document"
)

const backupFixture = `<main>
  < section className="hero">
    {/* <Particles quantity={100} /> */}
  </section >
  <label>Aceito receber contato da Andorinha Marketing *</label>
</main >
`

const fixedFixture = `<main>
  <section className="hero">
    <Particles quantity={100} />
  </section>
  <label>Aceito receber contato da Andorinha Audiovisual *</label>
</main>
`

type testEnv struct {
	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func (e *testEnv) source() string {
	return filepath.Join(e.dir, "src", "components", "HomePage.backup.tsx")
}

func (e *testEnv) destination() string {
	return filepath.Join(e.dir, "src", "components", "HomePage.tsx")
}

func (e *testEnv) run(args ...string) error {
	e.stdout.Reset()
	e.stderr.Reset()
	return run(context.Background(), append([]string{"--workdir", e.dir}, args...), e.stdout, e.stderr)
}

func newTestEnv(t *testing.T, source *string) *testEnv {
	t.Helper()

	color.NoColor = true
	pterm.DisableColor()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableColor()
	})

	env := &testEnv{dir: t.TempDir(), stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	require.NoError(t, os.MkdirAll(filepath.Dir(env.source()), 0o755))
	if source != nil {
		require.NoError(t, os.WriteFile(env.source(), []byte(*source), 0o644))
	}
	return env
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func ptr(s string) *string { return &s }

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "root_defaults_to_apply"},
		{name: "apply_command", args: []string{"apply"}},
		{name: "apply_atomic", args: []string{"apply", "--atomic"}},
		{name: "apply_async", args: []string{"apply", "--async"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, ptr(backupFixture))

			require.NoError(t, env.run(tt.args...))

			assert.Equal(t, fixedFixture, readFile(t, env.destination()))
			assert.Equal(t, backupFixture, readFile(t, env.source()))
			assert.Equal(t, "✅ HomePage.tsx has been fixed and written.\n", env.stdout.String())
			assert.Empty(t, env.stderr.String())
		})
	}
}

func TestApply_Verbose(t *testing.T) {
	env := newTestEnv(t, ptr(backupFixture))

	require.NoError(t, env.run("apply", "--verbose"))

	out := env.stdout.String()
	assert.Contains(t, out, "[patching ")
	assert.Contains(t, out, "close section tag")
	assert.Contains(t, out, "consent label brand")
	assert.Contains(t, out, "HomePage.tsx has been fixed and written.")
}

func TestApply_Backup(t *testing.T) {
	env := newTestEnv(t, ptr(backupFixture))
	require.NoError(t, os.WriteFile(env.destination(), []byte("old"), 0o644))

	require.NoError(t, env.run("apply", "--backup"))

	assert.Equal(t, fixedFixture, readFile(t, env.destination()))
	assert.Equal(t, "old", readFile(t, env.destination()+".bak"))
}

func TestApply_MissingSource(t *testing.T) {
	env := newTestEnv(t, nil)

	err := env.run()
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrNotFound)
	assert.Contains(t, env.stderr.String(), "❌")
	assert.NotContains(t, env.stdout.String(), "has been fixed")
	assert.NoFileExists(t, env.destination())
}

func TestApply_ConfigFile(t *testing.T) {
	env := newTestEnv(t, ptr("hello world"))

	cfg := `
targets:
  - source: src/components/HomePage.backup.tsx
    destination: src/components/HomePage.tsx
rules:
  - name: greeting
    old: hello
    new: goodbye
`
	require.NoError(t, os.WriteFile(filepath.Join(env.dir, "homepatch.yaml"), []byte(cfg), 0o644))

	require.NoError(t, env.run("--config", "homepatch.yaml"))

	assert.Equal(t, "goodbye world", readFile(t, env.destination()))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name        string
		existing    *string
		args        []string
		wantErr     error
		wantStdout  string
		wantNoDiff  bool
		wantMissing bool
	}{
		{
			name:        "missing_destination",
			args:        []string{"check"},
			wantStdout:  "would be created",
			wantMissing: true,
		},
		{
			name:       "stale_destination",
			existing:   ptr(backupFixture),
			args:       []string{"check"},
			wantStdout: "+++ ",
		},
		{
			name:       "stale_destination_exit_code",
			existing:   ptr(backupFixture),
			args:       []string{"check", "--exit-code"},
			wantErr:    commands.ErrOutOfDate,
			wantStdout: "-  </section >",
		},
		{
			name:       "up_to_date_exit_code",
			existing:   ptr(fixedFixture),
			args:       []string{"check", "--exit-code"},
			wantStdout: "is up to date",
			wantNoDiff: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, ptr(backupFixture))
			if tt.existing != nil {
				require.NoError(t, os.WriteFile(env.destination(), []byte(*tt.existing), 0o644))
			}

			err := env.run(tt.args...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Contains(t, env.stdout.String(), tt.wantStdout)
			if tt.wantNoDiff {
				assert.NotContains(t, env.stdout.String(), "+++ ")
			}

			if tt.wantMissing {
				assert.NoFileExists(t, env.destination())
			} else {
				assert.Equal(t, *tt.existing, readFile(t, env.destination()), "check must not write")
			}
		})
	}
}

func TestCheck_LongFile(t *testing.T) {
	var b strings.Builder
	b.WriteString("<main>\n")
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&b, "  <p>line %d</p>\n", i)
	}
	b.WriteString("  </section >\n</main >\n")
	source := b.String()

	env := newTestEnv(t, ptr(source))
	require.NoError(t, os.WriteFile(env.destination(), []byte(source), 0o644))

	require.NoError(t, env.run("check"))

	out := env.stdout.String()
	assert.Contains(t, out, "homepatch • checking 1 target(s)")
	assert.Contains(t, out, "@@ -11,5 +11,5 @@\n")
	assert.Contains(t, out, "   <p>line 12</p>\n")
	assert.Contains(t, out, "-  </section >\n")
	assert.Contains(t, out, "+  </section>\n")
	assert.Contains(t, out, "+</main>\n")
	assert.NotContains(t, out, "+  <p>")
	assert.NotContains(t, out, "-  <p>")
	assert.Equal(t, source, readFile(t, env.destination()))
}

func TestRules(t *testing.T) {
	env := newTestEnv(t, nil)

	require.NoError(t, env.run("rules"))

	out := env.stdout.String()
	for _, name := range []string{
		"close section tag",
		"close main tag",
		"open section tag",
		"uncomment particles open",
		"uncomment particles close",
		"uncomment indented particles open",
		"uncomment indented particles close",
		"consent label brand",
	} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, `"</section >"`)
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t, nil)

	require.NoError(t, env.run("version"))
	assert.Contains(t, env.stdout.String(), "homepatch version info")

	require.NoError(t, env.run("version", "--json"))
	var info VersionInfo
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &info))
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestUnknownArgs(t *testing.T) {
	env := newTestEnv(t, ptr(backupFixture))

	require.Error(t, env.run("extra"))
	assert.NoFileExists(t, env.destination())
}
