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

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/walteh/textr/pkg/cli"
)

func newRoot(fsys afero.Fs) *cli.RootOpts {
	cmd := &cobra.Command{
		Use:                "false",
		Short:              "Do nothing, unsuccessfully",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
	}
	opts := cli.NewRoot(cmd, fsys)

	cmd.RunE = opts.RunE(func(ctx context.Context, args []string) error {
		return &cli.ExitError{Code: cli.ExitFailure}
	})

	return opts
}
