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

// Package dedup groups near-duplicate records within a single dataset.
//
// Grouping is a single forward pass. Each unprocessed record in turn
// becomes an anchor, is marked watched, and is compared against every
// record that is still unprocessed. Matches above the threshold join the
// anchor's group, keyed by the anchor's ID. Records resolved earlier are
// never compared again, so groups are not transitively closed: if A
// matches B and B matches C but A does not match C, C is left out of A's
// group when A is processed first.
package dedup

import (
	"github.com/rs/zerolog/log"
)

// DefaultThreshold is the score a pair must exceed to count as duplicates.
const DefaultThreshold = 70

// Scorer compares record texts. Normalize is called once per record and
// Ratio receives the normalized forms.
type Scorer interface {
	Normalize(text string) string
	Ratio(a, b string) int
}

// Stats counts the work done by one Group call.
type Stats struct {
	Anchors     int
	Comparisons int
	Matches     int
}

type Grouper struct {
	scorer    Scorer
	threshold int
}

// NewGrouper returns a Grouper that treats pairs scoring strictly above
// threshold as duplicates.
func NewGrouper(scorer Scorer, threshold int) *Grouper {
	return &Grouper{
		scorer:    scorer,
		threshold: threshold,
	}
}

func (g *Grouper) Threshold() int {
	return g.threshold
}

// Group returns a copy of records with statuses and group IDs assigned.
// The input slice is left untouched. Records that arrive already resolved
// are carried over as they are and take no part in the pass.
func (g *Grouper) Group(records []Record) ([]Record, Stats) {
	out := make([]Record, len(records))
	copy(out, records)

	keys := make([]string, len(out))
	for i := range out {
		if !out[i].Resolved() {
			keys[i] = g.scorer.Normalize(out[i].Text)
			// only a match in this pass gives an unprocessed record a group
			out[i].GroupID = ""
		}
	}

	var stats Stats
	for i := range out {
		if out[i].Resolved() {
			continue
		}

		// marking the anchor first keeps it out of its own inner loop
		out[i].advance(Watched)
		stats.Anchors++

		for j := range out {
			if out[j].Resolved() {
				continue
			}

			stats.Comparisons++
			ratio := g.scorer.Ratio(keys[i], keys[j])
			if ratio <= g.threshold {
				continue
			}

			log.Debug().
				Str("anchor", out[i].ID).
				Str("candidate", out[j].ID).
				Int("ratio", ratio).
				Msg("duplicate found")

			out[i].markDuplicate(out[i].ID)
			out[j].markDuplicate(out[i].ID)
			stats.Matches++
		}
	}

	return out, stats
}
