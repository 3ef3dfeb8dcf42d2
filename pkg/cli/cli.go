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

// Package cli holds the command plumbing shared by every textr tool: flags,
// logging, configuration, reporting and exit codes.
package cli

import (
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textr/pkg/config"
	"github.com/walteh/textr/pkg/report"
	"github.com/walteh/textr/pkg/source"
)

// RunFunc is the body of a command. It runs after flags, logging and config
// are set up.
type RunFunc func(ctx context.Context, args []string) error

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool

	Fs       afero.Fs
	Config   *config.Config
	Reporter *report.Reporter

	glob    bool
	ignore  []string
	cmd     *cobra.Command
	started bool
}

// 🏗️ NewRoot wires the shared flags and hooks into cmd. Files named on the
// command line and the config file are read from fsys.
func NewRoot(cmd *cobra.Command, fsys afero.Fs) *RootOpts {
	o := &RootOpts{
		Fs:     fsys,
		Config: &config.Config{},
		cmd:    cmd,
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.Version = GetVersionInfo().Version
	cmd.SetVersionTemplate(FormatVersion(cmd.Name()))
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	addRootFlags(cmd, o)

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		ctx, err := o.setup(cmd.Context())
		if err != nil {
			return &ExitError{Code: ExitFailure, Err: err}
		}
		cmd.SetContext(ctx)
		return nil
	}

	return o
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *RootOpts) {
	cmd.PersistentFlags().StringVar(&o.ConfigFile, "config", "", "defaults file (.hcl, .yaml, .yml or .json)")
	cmd.PersistentFlags().BoolVar(&o.Debug, "debug", false, "enable debug logging")
}

// AddSourceFlags adds the flags controlling how file operands are resolved
func (o *RootOpts) AddSourceFlags() {
	o.cmd.Flags().BoolVar(&o.glob, "glob", false, "expand glob patterns (including **) in file operands")
	o.cmd.Flags().StringSliceVar(&o.ignore, "ignore", nil, "skip files matching these glob patterns")
}

// Command is the root command these options belong to.
func (o *RootOpts) Command() *cobra.Command {
	return o.cmd
}

// setupLogging configures zerolog based on flags
func (o *RootOpts) setupLogging(w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = w
	})
	return zerolog.New(out).Level(level).With().Timestamp().Str("cmd", o.cmd.Name()).Logger()
}

func (o *RootOpts) setup(ctx context.Context) (context.Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := o.setupLogging(o.cmd.ErrOrStderr())
	ctx = logger.WithContext(ctx)

	setupStyling()

	o.Reporter = report.New(o.cmd.ErrOrStderr(), o.cmd.Name(), logger)
	ctx = report.NewContext(ctx, o.Reporter)

	cfg, err := config.Load(ctx, o.Fs, o.ConfigFile)
	if err != nil {
		return ctx, errors.Errorf("loading config: %w", err)
	}
	o.Config = cfg

	logger.Debug().Str("config", cfg.Location()).Msg("command initialized")
	return ctx, nil
}

// setupStyling keeps pterm output plain whenever fatih/color is plain: no TTY
// on stdout or NO_COLOR set.
func setupStyling() {
	if color.NoColor {
		pterm.DisableStyling()
		return
	}
	pterm.EnableStyling()
}

// Changed reports whether the named flag was given on the command line.
func (o *RootOpts) Changed(name string) bool {
	return changed(o.cmd.Flags(), name)
}

func changed(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}

// 📂 Resolver builds the source resolver from config and flags, flags first.
func (o *RootOpts) Resolver() *source.Resolver {
	defaults := o.Config.SourceDefaults()

	r := source.NewResolver(o.Fs, o.cmd.InOrStdin())
	r.ExpandGlobs = defaults.ExpandGlobs
	if o.Changed("glob") {
		r.ExpandGlobs = o.glob
	}
	r.Ignore = append(append([]string{}, defaults.Ignore...), o.ignore...)
	return r
}

// 🏃 RunE adapts fn to cobra. When sources were reported as failed the
// command exits with ExitFailure.
func (o *RootOpts) RunE(fn RunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		o.started = true

		if err := fn(cmd.Context(), args); err != nil {
			return err
		}
		if o.Reporter != nil && o.Reporter.Failures() > 0 {
			return &ExitError{Code: ExitFailure}
		}
		return nil
	}
}

// 🚀 Execute runs the command and returns the process exit code
func (o *RootOpts) Execute(ctx context.Context) int {
	err := o.cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	rep := o.Reporter
	if rep == nil {
		rep = report.New(o.cmd.ErrOrStderr(), o.cmd.Name(), zerolog.Nop())
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			rep.Fatal(exitErr.Err)
		}
		return exitErr.Code
	}

	var usageErr *UsageError
	if !o.started || errors.As(err, &usageErr) {
		rep.Usage(err, o.cmd.UsageString())
		return ExitUsage
	}

	rep.Fatal(err)
	return ExitFailure
}
