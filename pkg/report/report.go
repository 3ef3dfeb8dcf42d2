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

package report

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎯 Reporter writes user facing diagnostics to the console and mirrors them
// into the structured log
type Reporter struct {
	prog     string
	zlog     zerolog.Logger
	console  io.Writer
	mu       sync.Mutex
	failures int
}

// 🏭 New creates a reporter prefixing every message with prog
func New(console io.Writer, prog string, zlog zerolog.Logger) *Reporter {
	return &Reporter{
		prog:    prog,
		zlog:    zlog,
		console: console,
	}
}

type contextKey struct{}

// 🎯 FromContext gets the reporter from context
func FromContext(ctx context.Context) *Reporter {
	r, ok := ctx.Value(contextKey{}).(*Reporter)
	if !ok {
		panic("reporter not found in context")
	}
	return r
}

// 🎯 NewContext adds the reporter to context
func NewContext(ctx context.Context, r *Reporter) context.Context {
	return context.WithValue(ctx, contextKey{}, r)
}

func (r *Reporter) prefix() string {
	return color.New(color.FgRed, color.Bold).Sprint(r.prog + ":")
}

// 📝 SourceError reports a source that could not be processed. Processing is
// expected to continue; the failure is remembered for the exit status.
func (r *Reporter) SourceError(name string, err error) {
	r.SourceErrorf(name, err, "%v", err)
}

// 📝 SourceErrorf is SourceError with a custom console message.
func (r *Reporter) SourceErrorf(name string, err error, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures++
	fmt.Fprintf(r.console, "%s %s\n", r.prefix(), fmt.Sprintf(format, args...))
	r.zlog.Debug().Str("source", name).Err(err).Msg("source failed")
}

// 📝 Fatal reports an error that ends the invocation
func (r *Reporter) Fatal(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.console, "%s %v\n", r.prefix(), err)
	r.zlog.Debug().Err(err).Msg("fatal error")
}

// 📝 Usage reports a usage error followed by the usage text
func (r *Reporter) Usage(err error, usage string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.console, "%s %v\n", r.prefix(), err)
	fmt.Fprintln(r.console)
	fmt.Fprint(r.console, usage)
	r.zlog.Debug().Err(err).Msg("usage error")
}

// Failures is the number of sources reported through SourceError.
func (r *Reporter) Failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures
}
