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
	"fmt"

	"github.com/ZaparooProject/dupecheck/pkg/aggregate"
	"github.com/ZaparooProject/dupecheck/pkg/config"
	"github.com/ZaparooProject/dupecheck/pkg/dataset"
	"github.com/ZaparooProject/dupecheck/pkg/dedup"
	"github.com/ZaparooProject/dupecheck/pkg/similarity"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Runner performs one duplicate detection pass over the configured input
// directory.
type Runner struct {
	fs    afero.Fs
	cfg   *config.Instance
	clock clockwork.Clock
}

func NewRunner(fs afero.Fs, cfg *config.Instance, clock clockwork.Clock) *Runner {
	return &Runner{
		fs:    fs,
		cfg:   cfg,
		clock: clock,
	}
}

func layoutFor(cols config.Columns) dataset.Layout {
	return dataset.Layout{
		ID:     cols.ID,
		Text:   cols.Text,
		Status: cols.Status,
		Group:  cols.Group,
	}
}

// Run loads every dataset, groups duplicates within each one and writes
// the combined output, plus the group report when one is configured.
// Nothing is written if any input fails to load.
func (r *Runner) Run() (aggregate.Result, error) {
	dir := r.cfg.InputDir()
	outputPath := r.cfg.OutputPath()
	reportPath := r.cfg.ReportPath()

	exclude := []string{outputPath}
	if reportPath != "" {
		exclude = append(exclude, reportPath)
	}

	paths, err := dataset.Discover(r.fs, dir, r.cfg.InputExtension(), exclude...)
	if err != nil {
		return aggregate.Result{}, err
	}
	if len(paths) == 0 {
		return aggregate.Result{}, fmt.Errorf("%w in %s", dataset.ErrNoInputs, dir)
	}
	log.Info().Int("files", len(paths)).Str("dir", dir).Msg("found input files")

	layout := layoutFor(r.cfg.Columns())
	datasets := make([]dataset.Dataset, 0, len(paths))
	for _, path := range paths {
		ds, err := dataset.Load(r.fs, path, layout)
		if err != nil {
			return aggregate.Result{}, fmt.Errorf("failed to load dataset: %w", err)
		}
		datasets = append(datasets, ds)
	}

	scorer := similarity.NewTokenSort(similarity.Options{
		ForceASCII:     r.cfg.ForceASCII(),
		FoldDiacritics: r.cfg.FoldDiacritics(),
	})
	grouper := dedup.NewGrouper(scorer, r.cfg.Threshold())
	res := aggregate.New(grouper, r.clock).Process(datasets)

	if err := dataset.WriteCombined(r.fs, outputPath, res.Header, res.Combined, layout); err != nil {
		return aggregate.Result{}, err
	}
	log.Info().Str("file", outputPath).Int("records", len(res.Combined)).Msg("wrote combined output")

	if reportPath != "" {
		rows := make([]dataset.ReportRow, 0, len(res.Groups))
		for _, g := range res.Groups {
			rows = append(rows, dataset.NewReportRow(g.Dataset, g.GroupSummary))
		}
		if err := dataset.WriteReport(r.fs, reportPath, rows); err != nil {
			return aggregate.Result{}, err
		}
		log.Info().Str("file", reportPath).Int("groups", len(rows)).Msg("wrote group report")
	}

	return res, nil
}
