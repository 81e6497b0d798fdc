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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ZaparooProject/dupecheck/internal/telemetry"
	"github.com/ZaparooProject/dupecheck/pkg/cli"
	"github.com/ZaparooProject/dupecheck/pkg/config"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		telemetry.Flush()
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags(flag.CommandLine)
	flag.Parse()

	if *flags.Version {
		_, _ = fmt.Printf("%s v%s\n", config.AppName, config.AppVersion)
		return nil
	}

	fs := afero.NewOsFs()
	cfg, err := cli.Setup(
		fs, flag.CommandLine, flags, config.BaseDefaults,
		[]io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}},
		uuid.NewString(),
	)
	if err != nil {
		return err
	}
	defer telemetry.Close()

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	res, err := cli.NewRunner(fs, cfg, clockwork.NewRealClock()).Run()
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		return err
	}

	duplicates := 0
	for _, s := range res.Stats {
		duplicates += s.Duplicates
	}
	_, _ = fmt.Printf(
		"%d datasets, %d records, %d duplicates in %d groups, written to %s\n",
		len(res.Stats), len(res.Combined), duplicates, len(res.Groups), cfg.OutputPath(),
	)
	return nil
}
