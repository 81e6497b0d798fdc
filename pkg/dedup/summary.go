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

package dedup

// GroupSummary describes one duplicate group.
type GroupSummary struct {
	GroupID string
	// MemberIDs lists the IDs of every record in the group, in dataset order.
	MemberIDs []string
}

func (g GroupSummary) Size() int {
	return len(g.MemberIDs)
}

// Summarize collects the duplicate groups in records, ordered by the first
// appearance of each group. Duplicates without a group ID are skipped.
func Summarize(records []Record) []GroupSummary {
	index := make(map[string]int)
	var groups []GroupSummary

	for i := range records {
		rec := &records[i]
		if rec.Status != Duplicate || rec.GroupID == "" {
			continue
		}
		pos, ok := index[rec.GroupID]
		if !ok {
			pos = len(groups)
			index[rec.GroupID] = pos
			groups = append(groups, GroupSummary{GroupID: rec.GroupID})
		}
		groups[pos].MemberIDs = append(groups[pos].MemberIDs, rec.ID)
	}

	return groups
}

// Counts tallies records by status.
type Counts struct {
	Unprocessed int
	Watched     int
	Duplicate   int
}

func CountStatuses(records []Record) Counts {
	var c Counts
	for i := range records {
		switch records[i].Status {
		case Unprocessed:
			c.Unprocessed++
		case Watched:
			c.Watched++
		case Duplicate:
			c.Duplicate++
		}
	}
	return c
}
