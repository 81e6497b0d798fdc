// Dupecheck
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Dupecheck.
//
// Dupecheck is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dupecheck is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dupecheck.  If not, see <http://www.gnu.org/licenses/>.

package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/ZaparooProject/dupecheck/internal/telemetry"
	"github.com/ZaparooProject/dupecheck/pkg/config"
	"github.com/ZaparooProject/dupecheck/pkg/helpers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type Flags struct {
	Dir       *string
	Config    *string
	Output    *string
	Report    *string
	Threshold *int
	Debug     *bool
	Version   *bool
}

// SetupFlags defines the dupecheck flags on fs.
func SetupFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		Dir: fs.String(
			"dir",
			"",
			"directory containing the input CSV files",
		),
		Config: fs.String(
			"config",
			"",
			"path to config file (default: "+config.CfgFile+" in the input directory)",
		),
		Output: fs.String(
			"output",
			"",
			"combined output file, relative to the input directory",
		),
		Report: fs.String(
			"report",
			"",
			"write a duplicate group report to this file",
		),
		Threshold: fs.Int(
			"threshold",
			0,
			"similarity score a pair must exceed to be duplicates (0-100)",
		),
		Debug: fs.Bool(
			"debug",
			false,
			"enable debug logging",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
}

func isFlagPassed(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// LoadConfig loads the config file and applies any flags passed on the
// command line on top of it. fs must already be parsed.
//
//nolint:gocritic // config struct copied for immutability
func LoadConfig(
	afs afero.Fs,
	fs *flag.FlagSet,
	f *Flags,
	defaults config.Values,
) (*config.Instance, error) {
	// the default config file lives in the input directory
	if isFlagPassed(fs, "dir") {
		defaults.Input.Dir = *f.Dir
	}

	cfg, err := config.NewConfig(afs, *f.Config, defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if isFlagPassed(fs, "dir") {
		cfg.SetInputDir(*f.Dir)
	}
	if isFlagPassed(fs, "output") {
		cfg.SetOutputFile(*f.Output)
	}
	if isFlagPassed(fs, "report") {
		cfg.SetReportFile(*f.Report)
	}
	if isFlagPassed(fs, "threshold") {
		cfg.SetThreshold(*f.Threshold)
	}
	if *f.Debug {
		cfg.SetDebugLogging(true)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Setup initializes logging and the user config, then enables error
// reporting if configured. Every log line carries runID.
//
//nolint:gocritic // config struct copied for immutability
func Setup(
	afs afero.Fs,
	fs *flag.FlagSet,
	f *Flags,
	defaults config.Values,
	writers []io.Writer,
	runID string,
) (*config.Instance, error) {
	if err := helpers.InitLogging(helpers.LogDir(), writers); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg, err := LoadConfig(afs, fs, f, defaults)
	if err != nil {
		return nil, err
	}

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Initialize error reporting (opt-in)
	if err := telemetry.Init(
		cfg.ErrorReporting(),
		cfg.ErrorReportingDSN(),
		runID,
		config.AppVersion,
	); err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}

	log.Logger = log.With().Str("run_id", runID).Logger()
	log.Info().Str("version", config.AppVersion).Str("config", cfg.Path()).Msg("dupecheck starting")

	return cfg, nil
}
