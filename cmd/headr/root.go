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
	"bufio"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textr/pkg/cli"
	"github.com/walteh/textr/pkg/head"
	"github.com/walteh/textr/pkg/report"
	"github.com/walteh/textr/pkg/source"
)

// newRoot creates the headr command reading files from fsys
func newRoot(fsys afero.Fs) *cli.RootOpts {
	var (
		lines int64
		bytes int64
	)

	cmd := &cobra.Command{
		Use:   "headr [FILE]...",
		Short: "Print the first part of files",
		Long: `headr prints the first 10 lines of each FILE. With more than one FILE
each part is preceded by a header naming the file. With no FILE, or when FILE
is -, standard input is read.

A negative line count prints every line except the last ones.`,
		Args: cobra.ArbitraryArgs,
	}
	opts := cli.NewRoot(cmd, fsys)
	opts.AddSourceFlags()

	cmd.Flags().Int64VarP(&lines, "lines", "n", head.DefaultLines, "number of lines; negative prints all but the last N")
	cmd.Flags().Int64VarP(&bytes, "bytes", "c", 0, "number of bytes")
	cmd.MarkFlagsMutuallyExclusive("lines", "bytes")

	cmd.RunE = opts.RunE(func(ctx context.Context, args []string) error {
		mode, err := resolveMode(opts, lines, bytes)
		if err != nil {
			return err
		}
		return runHead(ctx, opts, mode, args)
	})

	return opts
}

// headMode says what to copy from each source; bytes wins when set.
type headMode struct {
	lines int64
	bytes int64
}

func resolveMode(opts *cli.RootOpts, lines, bytes int64) (headMode, error) {
	defaults := opts.Config.HeadDefaults()

	switch {
	case opts.Changed("bytes"):
		if bytes < 1 {
			return headMode{}, &cli.UsageError{Err: errors.Errorf("invalid byte count %d: must be at least 1", bytes)}
		}
		return headMode{bytes: bytes}, nil
	case opts.Changed("lines"):
		return headMode{lines: lines}, nil
	case defaults.Bytes != nil:
		return headMode{bytes: *defaults.Bytes}, nil
	case defaults.Lines != nil:
		return headMode{lines: *defaults.Lines}, nil
	default:
		return headMode{lines: lines}, nil
	}
}

func runHead(ctx context.Context, opts *cli.RootOpts, mode headMode, args []string) error {
	logger := zerolog.Ctx(ctx)

	if len(args) == 0 {
		args = []string{source.Stdin}
	}

	resolver := opts.Resolver()
	names, err := resolver.Expand(ctx, args)
	if err != nil {
		return &cli.UsageError{Err: err}
	}

	out := bufio.NewWriter(opts.Command().OutOrStdout())
	defer out.Flush()

	for i, name := range names {
		rc, err := resolver.Open(ctx, name)
		if err != nil {
			var openErr *source.OpenError
			if errors.As(err, &openErr) {
				report.FromContext(ctx).SourceError(name, openErr)
				continue
			}
			return err
		}

		if len(names) > 1 {
			sep := ""
			if i > 0 {
				sep = "\n"
			}
			fmt.Fprintf(out, "%s==> %s <==\n", sep, name)
		}

		logger.Debug().Str("source", name).Int64("lines", mode.lines).Int64("bytes", mode.bytes).Msg("copying head")
		if mode.bytes > 0 {
			err = head.Bytes(rc, out, mode.bytes)
		} else {
			err = head.Lines(rc, out, mode.lines)
		}
		rc.Close()
		if err != nil {
			return errors.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
