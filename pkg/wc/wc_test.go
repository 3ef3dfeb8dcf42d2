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

package wc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/textr/pkg/count"
	"github.com/walteh/textr/pkg/report"
	"github.com/walteh/textr/pkg/source"
)

const (
	fox    = "The quick brown fox\njumps over\nthe lazy dog\n"
	lyrics = "I don't want the world.\nI just want your half.\r\n"
)

type harness struct {
	counter *Counter
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	rep     *report.Reporter
}

func newHarness(t *testing.T, m Metrics, stdin io.Reader) *harness {
	t.Helper()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "fox.txt", []byte(fox), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "lyrics.txt", []byte(lyrics), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "empty.txt", nil, 0o644))

	h := &harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	h.rep = report.New(h.stderr, "wcr", zerolog.Nop())

	emitter, err := NewEmitter("text", h.stdout, Select(m))
	require.NoError(t, err)

	h.counter, err = NewCounter(Options{
		Resolver: source.NewResolver(fsys, stdin),
		Reporter: h.rep,
		Emitter:  emitter,
	})
	require.NoError(t, err)
	return h
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestCounterRun(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name       string
		metrics    Metrics
		stdin      string
		files      []string
		wantOut    []string
		wantErr    []string
		wantTotal  count.Record
		wantFailed int
	}{
		{
			name:      "single_file_default_metrics",
			files:     []string{"fox.txt"},
			wantOut:   []string{"       3       9      44 fox.txt"},
			wantTotal: count.Record{Lines: 3, Words: 9, Bytes: 44, Chars: 44},
		},
		{
			name:      "words_only_no_total",
			metrics:   Metrics{Words: true},
			files:     []string{"fox.txt"},
			wantOut:   []string{"       9 fox.txt"},
			wantTotal: count.Record{Lines: 3, Words: 9, Bytes: 44, Chars: 44},
		},
		{
			name:      "stdin_has_no_label",
			metrics:   Metrics{Lines: true, Chars: true},
			stdin:     lyrics,
			files:     []string{"-"},
			wantOut:   []string{"       2      48"},
			wantTotal: count.Record{Lines: 2, Words: 10, Bytes: 48, Chars: 48},
		},
		{
			name:  "two_files_with_total",
			files: []string{"fox.txt", "lyrics.txt"},
			wantOut: []string{
				"       3       9      44 fox.txt",
				"       2      10      48 lyrics.txt",
				"       5      19      92 total",
			},
			wantTotal: count.Record{Lines: 5, Words: 19, Bytes: 92, Chars: 92},
		},
		{
			name:  "missing_file_is_skipped",
			files: []string{"fox.txt", "missing.txt", "lyrics.txt"},
			wantOut: []string{
				"       3       9      44 fox.txt",
				"       2      10      48 lyrics.txt",
				"       5      19      92 total",
			},
			wantErr:    []string{"wcr: missing.txt: file does not exist"},
			wantTotal:  count.Record{Lines: 5, Words: 19, Bytes: 92, Chars: 92},
			wantFailed: 1,
		},
		{
			name:    "empty_file",
			files:   []string{"empty.txt"},
			wantOut: []string{"       0       0       0 empty.txt"},
		},
		{
			name:    "all_metrics",
			metrics: Metrics{Lines: true, Words: true, Bytes: true, Chars: true},
			files:   []string{"lyrics.txt"},
			wantOut: []string{"       2      10      48      48 lyrics.txt"},
			wantTotal: count.Record{
				Lines: 2, Words: 10, Bytes: 48, Chars: 48,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.metrics, strings.NewReader(tt.stdin))

			total, err := h.counter.Run(context.Background(), tt.files)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOut, lines(h.stdout.String()))
			if tt.wantErr == nil {
				assert.Empty(t, h.stderr.String())
			} else {
				assert.Equal(t, tt.wantErr, lines(h.stderr.String()))
			}
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantFailed, h.rep.Failures())
		})
	}
}

func TestCounterRunReadError(t *testing.T) {
	boom := errors.New("boom")
	stdin := io.MultiReader(strings.NewReader("abc\n"), iotest.ErrReader(boom))
	h := newHarness(t, Metrics{}, stdin)

	_, err := h.counter.Run(context.Background(), []string{"fox.txt", "-", "lyrics.txt"})
	require.Error(t, err)

	var readErr *source.ReadError
	assert.ErrorAs(t, err, &readErr)
	assert.ErrorIs(t, err, boom)

	// The first source was emitted, nothing after the failure.
	assert.Equal(t, []string{"       3       9      44 fox.txt"}, lines(h.stdout.String()))
	assert.Equal(t, 0, h.rep.Failures())
}

func TestNewCounterValidation(t *testing.T) {
	_, err := NewCounter(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolver is required")

	_, err = NewCounter(Options{Resolver: source.NewResolver(afero.NewMemMapFs(), nil)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reporter is required")

	_, err = NewCounter(Options{
		Resolver: source.NewResolver(afero.NewMemMapFs(), nil),
		Reporter: report.New(io.Discard, "wcr", zerolog.Nop()),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emitter is required")
}
