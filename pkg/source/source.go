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

package source

import (
	"context"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// Stdin is the token that names standard input.
const Stdin = "-"

// 📂 Resolver turns source tokens into readable streams
type Resolver struct {
	fs    afero.Fs
	stdin io.Reader

	// ExpandGlobs makes Expand resolve tokens holding glob patterns.
	ExpandGlobs bool
	// Ignore drops expanded names matching any of these doublestar patterns.
	Ignore []string
}

// 🏭 NewResolver creates a resolver reading files from fsys and "-" from stdin
func NewResolver(fsys afero.Fs, stdin io.Reader) *Resolver {
	return &Resolver{
		fs:    fsys,
		stdin: stdin,
	}
}

// Label is the name shown next to a source in output; empty for stdin.
func Label(name string) string {
	if name == Stdin {
		return ""
	}
	return name
}

// 📖 Open returns a stream for name. Closing the stdin stream is a no-op.
func (r *Resolver) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	logger := zerolog.Ctx(ctx)

	if name == Stdin {
		logger.Debug().Msg("reading standard input")
		return io.NopCloser(r.stdin), nil
	}

	f, err := r.fs.Open(name)
	if err != nil {
		return nil, errors.WithStack(&OpenError{Name: name, Err: err})
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.WithStack(&OpenError{Name: name, Err: err})
	}
	if info.IsDir() {
		f.Close()
		return nil, errors.WithStack(&OpenError{Name: name, Err: &fs.PathError{Op: "read", Path: name, Err: errIsDir}})
	}

	logger.Debug().Str("file", name).Int64("size", info.Size()).Msg("opened source")
	return f, nil
}

var errIsDir = errors.New("is a directory")

// 🔍 Expand applies glob expansion and ignore patterns to names. A pattern
// that matches nothing is kept as is so that opening it reports the failure.
func (r *Resolver) Expand(ctx context.Context, names []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	var out []string
	for _, name := range names {
		if name == Stdin {
			out = append(out, name)
			continue
		}

		matches := []string{name}
		if r.ExpandGlobs && hasMeta(name) {
			found, err := r.glob(name)
			if err != nil {
				return nil, errors.Errorf("expanding %q: %w", name, err)
			}
			if len(found) > 0 {
				matches = found
			}
			logger.Debug().Str("pattern", name).Int("matches", len(found)).Msg("expanded glob")
		}

		for _, m := range matches {
			if r.shouldIgnore(ctx, m) {
				continue
			}
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *Resolver) glob(pattern string) ([]string, error) {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))

	// BasePathFs rejects every name under a "." base
	scoped := r.fs
	if base != "." {
		scoped = afero.NewBasePathFs(r.fs, filepath.FromSlash(base))
	}

	found, err := doublestar.Glob(afero.NewIOFS(scoped), rest)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(found))
	for _, f := range found {
		out = append(out, filepath.Join(filepath.FromSlash(base), filepath.FromSlash(f)))
	}
	return out, nil
}

func (r *Resolver) shouldIgnore(ctx context.Context, name string) bool {
	for _, pattern := range r.Ignore {
		matched, err := doublestar.Match(pattern, filepath.ToSlash(name))
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("file", name).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("file", name).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

func hasMeta(name string) bool {
	return strings.ContainsAny(name, "*?[{")
}
