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

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textr/pkg/cli"
	"github.com/walteh/textr/pkg/config"
	"github.com/walteh/textr/pkg/report"
	"github.com/walteh/textr/pkg/source"
	"github.com/walteh/textr/pkg/wc"
)

type wcFlags struct {
	metrics wc.Metrics
	format  string
}

// newRoot creates the wcr command reading files from fsys
func newRoot(fsys afero.Fs) *cli.RootOpts {
	var flags wcFlags

	cmd := &cobra.Command{
		Use:   "wcr [FILE]...",
		Short: "Print line, word and byte counts for each file",
		Long: `wcr prints line, word, byte and character counts for each FILE and a
total line when more than one FILE is given. With no FILE, or when FILE is -,
standard input is read.

Without -l, -w, -c or -m the line, word and byte counts are shown.`,
		Args: cobra.ArbitraryArgs,
	}
	opts := cli.NewRoot(cmd, fsys)
	opts.AddSourceFlags()

	cmd.Flags().BoolVarP(&flags.metrics.Lines, "lines", "l", false, "show line count")
	cmd.Flags().BoolVarP(&flags.metrics.Words, "words", "w", false, "show word count")
	cmd.Flags().BoolVarP(&flags.metrics.Bytes, "bytes", "c", false, "show byte count")
	cmd.Flags().BoolVarP(&flags.metrics.Chars, "chars", "m", false, "show character count")
	cmd.Flags().StringVar(&flags.format, "format", config.FormatText, "output format: text, json, yaml or table")
	cmd.MarkFlagsMutuallyExclusive("bytes", "chars")

	cmd.RunE = opts.RunE(func(ctx context.Context, args []string) error {
		return runWC(ctx, opts, flags, args)
	})

	return opts
}

// applyDefaults fills in config values for flags not given on the command line
func applyDefaults(opts *cli.RootOpts, flags wcFlags) (wcFlags, error) {
	defaults := opts.Config.WCDefaults()

	explicit := false
	for _, name := range []string{"lines", "words", "bytes", "chars"} {
		explicit = explicit || opts.Changed(name)
	}
	if !explicit {
		flags.metrics = wc.Metrics{
			Lines: defaults.Lines,
			Words: defaults.Words,
			Bytes: defaults.Bytes,
			Chars: defaults.Chars,
		}
	}
	if !opts.Changed("format") && defaults.Format != "" {
		flags.format = defaults.Format
	}

	if flags.metrics.Bytes && flags.metrics.Chars {
		return flags, &cli.UsageError{Err: errors.Errorf("bytes and chars cannot both be shown")}
	}
	return flags, nil
}

func runWC(ctx context.Context, opts *cli.RootOpts, flags wcFlags, args []string) error {
	flags, err := applyDefaults(opts, flags)
	if err != nil {
		return err
	}

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

	emitter, err := wc.NewEmitter(flags.format, out, wc.Select(flags.metrics))
	if err != nil {
		return &cli.UsageError{Err: err}
	}

	counter, err := wc.NewCounter(wc.Options{
		Resolver: resolver,
		Reporter: report.FromContext(ctx),
		Emitter:  emitter,
	})
	if err != nil {
		return errors.Errorf("creating counter: %w", err)
	}

	if _, err := counter.Run(ctx, names); err != nil {
		return err
	}
	return nil
}
