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
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/walteh/snip/pkg/config"
	"github.com/walteh/snip/pkg/diff"
	"github.com/walteh/snip/pkg/fileio"
	"github.com/walteh/snip/pkg/gitguard"
	"github.com/walteh/snip/pkg/log"
	"github.com/walteh/snip/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the flags of the root command
type rootOpts struct {
	configFile   string
	dir          string
	debug        bool
	dryRun       bool
	diffFormat   string
	backup       bool
	requireClean bool
	async        bool
}

// addRootFlags adds the root command flags
func addRootFlags(flags *pflag.FlagSet, o *rootOpts) {
	flags.StringVarP(&o.configFile, "config", "c", config.DefaultPath, "config file path (optional, built-in target when absent)")
	flags.StringVarP(&o.dir, "dir", "C", ".", "directory target paths are relative to")
	flags.BoolVarP(&o.debug, "debug", "d", false, "enable debug logging")
	flags.BoolVarP(&o.dryRun, "dry-run", "n", false, "print the change instead of writing it")
	flags.StringVar(&o.diffFormat, "diff-format", string(diff.FormatUnified), "dry run diff format: unified or inline")
	flags.BoolVar(&o.backup, "backup", false, "write a timestamped copy before rewriting")
	flags.BoolVar(&o.requireClean, "require-clean", false, "refuse to rewrite files with uncommitted git changes")
	flags.BoolVar(&o.async, "async", false, "process targets concurrently")
}

// setupLogging builds the diagnostic logger, which never writes to stdout
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: color.NoColor}).Level(level).With().Timestamp().Logger()
}

// newRootCmd creates the snip command
func newRootCmd() *cobra.Command {
	o := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "snip",
		Short: "Remove a marker-bounded section from a source file",
		Long: `snip removes a section from a text file in place.

The section starts at the start marker (or the fallback marker when the start
marker is absent) and ends after the first line, at or after the end marker,
whose trimmed text ends with the terminator. If either boundary is missing the
file is left untouched and snip reports that the section was not found.

Without a config file snip rewrites src/types/document.ts with the built-in
markers.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o)
		},
	}

	addRootFlags(cmd.Flags(), o)
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(ctx context.Context, cmd *cobra.Command, o *rootOpts) (*config.Config, error) {
	path := o.configFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(o.dir, path)
	}

	var cfg *config.Config
	var err error
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(ctx, path)
	} else {
		cfg, err = config.LoadOrDefault(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("backup") {
		cfg.Backup = o.backup
	}
	if cmd.Flags().Changed("require-clean") {
		cfg.RequireClean = o.requireClean
	}
	if cmd.Flags().Changed("async") {
		cfg.Async = o.async
	}

	return cfg, nil
}

// run executes every configured target
func run(cmd *cobra.Command, o *rootOpts) error {
	logger := setupLogging(cmd.ErrOrStderr(), o.debug)
	ctx := logger.WithContext(cmd.Context())
	ctx = log.NewContext(ctx, log.New(cmd.OutOrStdout(), logger))

	cfg, err := loadConfig(ctx, cmd, o)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	logger.Debug().Stringer("config", cfg).Msg("configuration loaded")

	format, err := diff.ParseFormat(o.diffFormat)
	if err != nil {
		return err
	}

	opts := operation.Options{
		Files:  fileio.New(o.dir),
		DryRun: o.dryRun,
		Backup: cfg.Backup,
	}
	if o.dryRun {
		opts.Renderer = diff.NewRenderer(format, !color.NoColor)
	}
	if cfg.RequireClean {
		opts.Guard = gitguard.New()
	}

	ops, err := operation.Plan(ctx, cfg, opts)
	if err != nil {
		return errors.Errorf("planning: %w", err)
	}

	return operation.NewRunner(&logger, cfg.Async).Run(ctx, operation.Operations(ops)...)
}

func init() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}
