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
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "echor.json", []byte(`{"echo": {"omit_newline": true}}`), 0o644))

	opts := newRoot(fsys)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := opts.Command()
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	code := opts.Execute(context.Background())
	return code, stdout.String(), stderr.String()
}

func TestEchor(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStdout string
	}{
		{name: "one_arg", args: []string{"Hello there"}, wantStdout: "Hello there\n"},
		{name: "two_args", args: []string{"Hello", "there"}, wantStdout: "Hello there\n"},
		{name: "keeps_inner_spacing", args: []string{"Hello  there", " x"}, wantStdout: "Hello  there  x\n"},
		{name: "omit_newline", args: []string{"-n", "Hello", "there"}, wantStdout: "Hello there"},
		{name: "omit_newline_after_text", args: []string{"Hello", "-n"}, wantStdout: "Hello"},
		{name: "dash_dash_keeps_flags_as_text", args: []string{"--", "-n"}, wantStdout: "-n\n"},
		{name: "config", args: []string{"--config", "echor.json", "hi"}, wantStdout: "hi"},
		{name: "flag_beats_config", args: []string{"--config", "echor.json", "-n=false", "hi"}, wantStdout: "hi\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := run(t, tt.args...)
			assert.Equal(t, 0, code, "stderr: %s", stderr)
			assert.Equal(t, tt.wantStdout, stdout)
		})
	}
}

func TestEchorNoText(t *testing.T) {
	code, stdout, stderr := run(t)
	assert.Equal(t, 2, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "echor: requires at least 1 arg(s), only received 0")
	assert.Contains(t, stderr, "Usage:")
}
