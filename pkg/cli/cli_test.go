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

package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/textr/pkg/report"
	"github.com/walteh/textr/pkg/source"
)

type run struct {
	code   int
	stdout string
	stderr string
}

func newTestRoot(t *testing.T, fsys afero.Fs, fn RunFunc) *RootOpts {
	t.Helper()
	cmd := &cobra.Command{
		Use:  "tool [FILE]...",
		Args: cobra.MaximumNArgs(3),
	}
	o := NewRoot(cmd, fsys)
	o.AddSourceFlags()
	cmd.Flags().Bool("flag", false, "a flag")
	cmd.RunE = o.RunE(fn)
	return o
}

func execute(o *RootOpts, args ...string) run {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := o.Command()
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(""))
	code := o.Execute(context.Background())
	return run{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestExecute(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name       string
		args       []string
		fn         RunFunc
		wantCode   int
		wantStderr []string
	}{
		{
			name:     "success",
			fn:       func(ctx context.Context, args []string) error { return nil },
			wantCode: ExitOK,
		},
		{
			name:       "unknown_flag",
			args:       []string{"--nope"},
			fn:         func(ctx context.Context, args []string) error { return nil },
			wantCode:   ExitUsage,
			wantStderr: []string{"tool: unknown flag: --nope", "Usage:"},
		},
		{
			name:       "too_many_args",
			args:       []string{"a", "b", "c", "d"},
			fn:         func(ctx context.Context, args []string) error { return nil },
			wantCode:   ExitUsage,
			wantStderr: []string{"accepts at most 3 arg(s)", "Usage:"},
		},
		{
			name: "plain_error",
			fn: func(ctx context.Context, args []string) error {
				return errors.New("reading input: boom")
			},
			wantCode:   ExitFailure,
			wantStderr: []string{"tool: reading input: boom"},
		},
		{
			name: "reported_failures",
			fn: func(ctx context.Context, args []string) error {
				report.FromContext(ctx).SourceError("x", errors.New("x: missing"))
				return nil
			},
			wantCode:   ExitFailure,
			wantStderr: []string{"tool: x: missing"},
		},
		{
			name: "exit_error_with_code",
			fn: func(ctx context.Context, args []string) error {
				return &ExitError{Code: 7}
			},
			wantCode: 7,
		},
		{
			name:       "missing_config",
			args:       []string{"--config", "/nope.yaml"},
			fn:         func(ctx context.Context, args []string) error { return nil },
			wantCode:   ExitFailure,
			wantStderr: []string{"tool: loading config: reading config file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestRoot(t, afero.NewMemMapFs(), tt.fn)
			got := execute(o, tt.args...)

			assert.Equal(t, tt.wantCode, got.code, "stderr: %s", got.stderr)
			for _, want := range tt.wantStderr {
				assert.Contains(t, got.stderr, want)
			}
			if tt.wantStderr == nil {
				assert.Empty(t, got.stderr)
			}
		})
	}
}

func TestExecuteVersion(t *testing.T) {
	o := newTestRoot(t, afero.NewMemMapFs(), func(ctx context.Context, args []string) error { return nil })
	got := execute(o, "--version")

	assert.Equal(t, ExitOK, got.code)
	assert.True(t, strings.HasPrefix(got.stdout, "tool (textr) "), got.stdout)
	assert.Contains(t, got.stdout, "go:       go")
}

func TestVersionInfoFormat(t *testing.T) {
	tests := []struct {
		name string
		info VersionInfo
		want string
	}{
		{
			name: "release_build",
			info: VersionInfo{
				Version:   "v1.2.0",
				GoVersion: "go1.23.5",
				Platform:  "linux/amd64",
				Revision:  "0123456789abcdef0123",
				Time:      "2025-02-01T10:00:00Z",
			},
			want: "wcr (textr) v1.2.0\n" +
				"revision: 0123456789ab\n" +
				"built:    2025-02-01T10:00:00Z\n" +
				"go:       go1.23.5 linux/amd64\n",
		},
		{
			name: "dirty_tree",
			info: VersionInfo{Version: "dev", GoVersion: "go1.23.5", Platform: "darwin/arm64", Revision: "abc123", Modified: true},
			want: "headr (textr) dev\n" +
				"revision: abc123-dirty\n" +
				"go:       go1.23.5 darwin/arm64\n",
		},
		{
			name: "no_vcs_stamp",
			info: VersionInfo{Version: "dev", GoVersion: "go1.23.5", Platform: "linux/arm64"},
			want: "catr (textr) dev\n" +
				"go:       go1.23.5 linux/arm64\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := strings.Fields(tt.want)[0]
			assert.Equal(t, tt.want, tt.info.Format(prog))
		})
	}
}

func TestStylingFollowsColor(t *testing.T) {
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})

	for _, noColor := range []bool{true, false} {
		color.NoColor = noColor
		o := newTestRoot(t, afero.NewMemMapFs(), func(ctx context.Context, args []string) error { return nil })
		got := execute(o)

		require.Equal(t, ExitOK, got.code, got.stderr)
		assert.Equal(t, noColor, pterm.RawOutput, "no color %v", noColor)
	}
}

func TestChangedAndConfig(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/cfg.yaml", []byte("source:\n  expand_globs: true\n  ignore: [\"*.bin\"]\n"), 0o644))

	var (
		flagChanged bool
		resolver    *source.Resolver
	)
	var o *RootOpts
	o = newTestRoot(t, fsys, func(ctx context.Context, args []string) error {
		flagChanged = o.Changed("flag")
		resolver = o.Resolver()
		return nil
	})

	got := execute(o, "--config", "/cfg.yaml", "--flag", "--ignore", "*.tmp")
	require.Equal(t, ExitOK, got.code, got.stderr)

	assert.True(t, flagChanged)
	require.NotNil(t, resolver)
	assert.True(t, resolver.ExpandGlobs)
	assert.Equal(t, []string{"*.bin", "*.tmp"}, resolver.Ignore)
	assert.Equal(t, "/cfg.yaml", o.Config.Location())
}

func TestGlobFlagOverridesConfig(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/cfg.json", []byte(`{"source": {"expand_globs": true}}`), 0o644))

	var resolver *source.Resolver
	var o *RootOpts
	o = newTestRoot(t, fsys, func(ctx context.Context, args []string) error {
		resolver = o.Resolver()
		return nil
	})

	got := execute(o, "--config", "/cfg.json", "--glob=false")
	require.Equal(t, ExitOK, got.code, got.stderr)
	assert.False(t, resolver.ExpandGlobs)
}

func TestDebugLogging(t *testing.T) {
	o := newTestRoot(t, afero.NewMemMapFs(), func(ctx context.Context, args []string) error { return nil })
	got := execute(o, "--debug")

	assert.Equal(t, ExitOK, got.code)
	assert.Contains(t, got.stderr, "command initialized")
}

func TestExitErrorMessage(t *testing.T) {
	assert.Equal(t, "exit status 3", (&ExitError{Code: 3}).Error())

	inner := errors.New("inner")
	err := &ExitError{Code: 1, Err: inner}
	assert.Equal(t, "inner", err.Error())
	assert.ErrorIs(t, err, inner)

	usage := &UsageError{Err: inner}
	assert.Equal(t, "inner", usage.Error())
	assert.ErrorIs(t, usage, inner)
}
