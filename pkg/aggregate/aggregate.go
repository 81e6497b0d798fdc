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

// Package aggregate runs duplicate grouping over a batch of datasets and
// combines the results into one output sequence.
package aggregate

import (
	"time"

	"github.com/ZaparooProject/dupecheck/pkg/dataset"
	"github.com/ZaparooProject/dupecheck/pkg/dedup"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// DatasetStats summarises the grouping of one dataset.
type DatasetStats struct {
	Name        string
	Records     int
	Duplicates  int
	Watched     int
	Groups      int
	// Comparisons counts the pairs actually scored.
	Comparisons int
	Elapsed     time.Duration
}

// Group is a duplicate group tagged with the dataset it came from.
type Group struct {
	Dataset string
	dedup.GroupSummary
}

type Result struct {
	// Header is the header of the last dataset processed.
	Header []string
	// Grouped holds every processed record, including those with an
	// empty ID.
	Grouped []dedup.Record
	// Combined is Grouped without the records that have an empty ID.
	Combined []dedup.Record
	Stats    []DatasetStats
	Groups   []Group
}

type Aggregator struct {
	grouper *dedup.Grouper
	clock   clockwork.Clock
}

func New(grouper *dedup.Grouper, clock clockwork.Clock) *Aggregator {
	return &Aggregator{
		grouper: grouper,
		clock:   clock,
	}
}

// Process groups each dataset on its own, so records from different
// datasets are never compared, then concatenates the results in dataset
// order. The header schema of the inputs is assumed to be identical and
// is not checked.
func (a *Aggregator) Process(datasets []dataset.Dataset) Result {
	var res Result

	for i := range datasets {
		ds := &datasets[i]
		log.Info().Str("dataset", ds.Name).Int("records", len(ds.Records)).Msg("analyzing dataset")

		start := a.clock.Now()
		grouped, stats := a.grouper.Group(ds.Records)
		elapsed := a.clock.Since(start)

		groups := dedup.Summarize(grouped)
		counts := dedup.CountStatuses(grouped)

		dsStats := DatasetStats{
			Name:        ds.Name,
			Records:     len(grouped),
			Duplicates:  counts.Duplicate,
			Watched:     counts.Watched,
			Groups:      len(groups),
			Comparisons: stats.Comparisons,
			Elapsed:     elapsed,
		}
		res.Stats = append(res.Stats, dsStats)

		for _, g := range groups {
			res.Groups = append(res.Groups, Group{Dataset: ds.Name, GroupSummary: g})
		}

		res.Grouped = append(res.Grouped, grouped...)
		res.Header = ds.Header

		log.Info().
			Str("dataset", ds.Name).
			Int("duplicates", dsStats.Duplicates).
			Int("groups", dsStats.Groups).
			Int("comparisons", dsStats.Comparisons).
			Dur("elapsed", elapsed).
			Msg("dataset analyzed")
	}

	res.Combined = Filter(res.Grouped)
	return res
}

// Filter drops records whose ID is empty.
func Filter(records []dedup.Record) []dedup.Record {
	out := make([]dedup.Record, 0, len(records))
	for i := range records {
		if records[i].ID == "" {
			continue
		}
		out = append(out, records[i])
	}
	return out
}
