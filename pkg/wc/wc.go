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

// Package wc aggregates per-source counts and renders them in wc style.
package wc

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textr/pkg/count"
	"github.com/walteh/textr/pkg/report"
	"github.com/walteh/textr/pkg/source"
)

// 🔧 Options contains the collaborators of a Counter
type Options struct {
	Resolver *source.Resolver
	Reporter *report.Reporter
	Emitter  Emitter
}

// 🧮 Counter counts a list of sources in order and keeps the running total
type Counter struct {
	resolver *source.Resolver
	reporter *report.Reporter
	emitter  Emitter
}

// 🏭 NewCounter creates a counter with the given options
func NewCounter(opts Options) (*Counter, error) {
	if opts.Resolver == nil {
		return nil, errors.Errorf("resolver is required")
	}
	if opts.Reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}
	if opts.Emitter == nil {
		return nil, errors.Errorf("emitter is required")
	}
	return &Counter{
		resolver: opts.Resolver,
		reporter: opts.Reporter,
		emitter:  opts.Emitter,
	}, nil
}

// 🏃 Run counts every source, emits its record, and emits the total when
// more than one source was given. Sources that fail to open are reported and
// skipped. A read error stops the run.
func (c *Counter) Run(ctx context.Context, names []string) (count.Record, error) {
	logger := zerolog.Ctx(ctx)

	var total count.Record
	for _, name := range names {
		rec, err := c.countOne(ctx, name)
		if err != nil {
			var openErr *source.OpenError
			if errors.As(err, &openErr) {
				c.reporter.SourceError(name, openErr)
				continue
			}
			if flushErr := c.emitter.Flush(); flushErr != nil {
				logger.Debug().Err(flushErr).Msg("flushing output after read error")
			}
			return total, err
		}

		if err := c.emitter.Emit(source.Label(name), rec); err != nil {
			return total, errors.Errorf("writing output: %w", err)
		}
		total = total.Add(rec)
	}

	if len(names) > 1 {
		if err := c.emitter.Total(total); err != nil {
			return total, errors.Errorf("writing output: %w", err)
		}
	}

	if err := c.emitter.Flush(); err != nil {
		return total, errors.Errorf("writing output: %w", err)
	}
	return total, nil
}

func (c *Counter) countOne(ctx context.Context, name string) (count.Record, error) {
	rc, err := c.resolver.Open(ctx, name)
	if err != nil {
		return count.Record{}, err
	}
	defer rc.Close()

	rec, err := count.Reader(rc)
	if err != nil {
		return count.Record{}, errors.Errorf("%s: %w", name, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", name).
		Int64("lines", rec.Lines).
		Int64("words", rec.Words).
		Int64("bytes", rec.Bytes).
		Int64("chars", rec.Chars).
		Msg("counted source")
	return rec, nil
}
