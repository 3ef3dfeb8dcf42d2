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
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/walteh/textr/pkg/cli"
)

// newRoot creates the echor command; fsys is only used for --config
func newRoot(fsys afero.Fs) *cli.RootOpts {
	var omitNewline bool

	cmd := &cobra.Command{
		Use:   "echor [-n] TEXT...",
		Short: "Print arguments separated by spaces",
		Args:  cobra.MinimumNArgs(1),
	}
	opts := cli.NewRoot(cmd, fsys)

	cmd.Flags().BoolVarP(&omitNewline, "omit-newline", "n", false, "do not print the trailing newline")

	cmd.RunE = opts.RunE(func(ctx context.Context, args []string) error {
		if !opts.Changed("omit-newline") {
			omitNewline = opts.Config.EchoDefaults().OmitNewline
		}

		ending := "\n"
		if omitNewline {
			ending = ""
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), strings.Join(args, " ")+ending)
		return err
	})

	return opts
}
