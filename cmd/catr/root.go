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

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textr/pkg/cat"
	"github.com/walteh/textr/pkg/cli"
	"github.com/walteh/textr/pkg/report"
	"github.com/walteh/textr/pkg/source"
)

// newRoot creates the catr command reading files from fsys
func newRoot(fsys afero.Fs) *cli.RootOpts {
	var (
		number         bool
		numberNonblank bool
	)

	cmd := &cobra.Command{
		Use:   "catr [FILE]...",
		Short: "Concatenate files to standard output",
		Long: `catr copies each FILE to standard output, optionally numbering lines.
With no FILE, or when FILE is -, standard input is read.`,
		Args: cobra.ArbitraryArgs,
	}
	opts := cli.NewRoot(cmd, fsys)
	opts.AddSourceFlags()

	cmd.Flags().BoolVarP(&number, "number", "n", false, "number all output lines")
	cmd.Flags().BoolVarP(&numberNonblank, "number-nonblank", "b", false, "number nonempty output lines")
	cmd.MarkFlagsMutuallyExclusive("number", "number-nonblank")

	cmd.RunE = opts.RunE(func(ctx context.Context, args []string) error {
		return runCat(ctx, opts, resolveMode(opts, number, numberNonblank), args)
	})

	return opts
}

// resolveMode picks the numbering mode; config applies only when no
// numbering flag was given.
func resolveMode(opts *cli.RootOpts, number, numberNonblank bool) cat.Mode {
	if !opts.Changed("number") && !opts.Changed("number-nonblank") {
		defaults := opts.Config.CatDefaults()
		number, numberNonblank = defaults.Number, defaults.NumberNonblank
	}

	switch {
	case numberNonblank:
		return cat.NumberNonBlank
	case number:
		return cat.Number
	default:
		return cat.None
	}
}

func runCat(ctx context.Context, opts *cli.RootOpts, mode cat.Mode, args []string) error {
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

	for _, name := range names {
		rc, err := resolver.Open(ctx, name)
		if err != nil {
			var openErr *source.OpenError
			if errors.As(err, &openErr) {
				report.FromContext(ctx).SourceErrorf(name, openErr, "Failed to open %s: %s", name, openErr.Reason())
				continue
			}
			return err
		}

		logger.Debug().Str("source", name).Stringer("mode", mode).Msg("copying source")
		err = cat.Copy(rc, out, mode)
		rc.Close()
		if err != nil {
			return errors.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
