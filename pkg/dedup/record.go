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

import (
	"errors"
	"fmt"
	"strings"
)

// Status tracks where a record is in the grouping pass.
type Status int

const (
	// Unprocessed records have not been compared yet.
	Unprocessed Status = iota
	// Watched records were anchors that matched nothing.
	Watched
	// Duplicate records belong to a duplicate group.
	Duplicate
)

// Serialised forms, as they appear in the status column of a dataset.
const (
	UnprocessedText = "FALSE"
	WatchedText     = "watched"
	DuplicateText   = "True"
)

var ErrUnknownStatus = errors.New("unknown duplicate status")

func (s Status) String() string {
	switch s {
	case Watched:
		return WatchedText
	case Duplicate:
		return DuplicateText
	default:
		return UnprocessedText
	}
}

// ParseStatus reads a status cell. Matching is case-insensitive and an
// empty cell counts as unprocessed.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false":
		return Unprocessed, nil
	case "watched":
		return Watched, nil
	case "true":
		return Duplicate, nil
	default:
		return Unprocessed, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// canAdvance reports whether a record may move from s to next. Statuses
// only move forward and a resolved duplicate stays resolved.
func (s Status) canAdvance(next Status) bool {
	switch s {
	case Unprocessed:
		return next == Watched || next == Duplicate
	case Watched:
		return next == Duplicate
	default:
		return false
	}
}

// Record is one row of a dataset as seen by the grouper. Fields holds the
// complete original row and is never modified here.
type Record struct {
	ID      string
	Text    string
	GroupID string
	Fields  []string
	Status  Status
}

// Resolved reports whether the record has left the unprocessed state.
func (r *Record) Resolved() bool {
	return r.Status != Unprocessed
}

func (r *Record) advance(next Status) {
	if r.Status.canAdvance(next) {
		r.Status = next
	}
}

// markDuplicate puts r into the group anchored by groupID.
func (r *Record) markDuplicate(groupID string) {
	r.advance(Duplicate)
	r.GroupID = groupID
}
