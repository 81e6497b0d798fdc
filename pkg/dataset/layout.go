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

package dataset

import (
	"fmt"

	"github.com/ZaparooProject/dupecheck/pkg/dedup"
)

// Layout gives the zero-based column positions of the fields the grouper
// reads and writes. All other columns pass through untouched.
type Layout struct {
	ID     int
	Text   int
	Status int
	Group  int
}

// DefaultLayout matches the tweet exports the tool was written for.
var DefaultLayout = Layout{
	ID:     0,
	Text:   7,
	Status: 13,
	Group:  14,
}

// width is the minimum number of columns a row needs.
func (l Layout) width() int {
	return max(l.ID, l.Text, l.Status, l.Group) + 1
}

// Check verifies that every layout column exists in header.
func (l Layout) Check(header []string) error {
	if len(header) < l.width() {
		return fmt.Errorf(
			"%w: header has %d columns, layout needs %d",
			ErrMissingColumn, len(header), l.width(),
		)
	}
	return nil
}

// Decode builds a record from a data row.
func (l Layout) Decode(row []string) (dedup.Record, error) {
	if len(row) < l.width() {
		return dedup.Record{}, fmt.Errorf(
			"%w: row has %d columns, layout needs %d",
			ErrMissingColumn, len(row), l.width(),
		)
	}

	status, err := dedup.ParseStatus(row[l.Status])
	if err != nil {
		return dedup.Record{}, fmt.Errorf("status column %d: %w", l.Status, err)
	}

	rec := dedup.Record{
		ID:     row[l.ID],
		Text:   row[l.Text],
		Status: status,
		Fields: row,
	}
	// a group cell only means something next to a duplicate status
	if status == dedup.Duplicate {
		rec.GroupID = row[l.Group]
	}
	return rec, nil
}

// Encode returns the record's row with its status and group ID written
// back into their columns. The record's own Fields slice is not modified.
func (l Layout) Encode(rec *dedup.Record) []string {
	row := make([]string, max(len(rec.Fields), l.width()))
	copy(row, rec.Fields)
	row[l.ID] = rec.ID
	row[l.Text] = rec.Text
	row[l.Status] = rec.Status.String()
	row[l.Group] = rec.GroupID
	return row
}
