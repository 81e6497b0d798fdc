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
	"strings"

	"github.com/ZaparooProject/dupecheck/pkg/dedup"
	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
)

// MemberSeparator joins member IDs in a report row.
const MemberSeparator = ";"

// ReportRow is one duplicate group in the group report.
type ReportRow struct {
	Dataset   string `csv:"dataset"`
	GroupID   string `csv:"group_id"`
	Size      int    `csv:"size"`
	MemberIDs string `csv:"member_ids"`
}

func NewReportRow(datasetName string, group dedup.GroupSummary) ReportRow {
	return ReportRow{
		Dataset:   datasetName,
		GroupID:   group.GroupID,
		Size:      group.Size(),
		MemberIDs: strings.Join(group.MemberIDs, MemberSeparator),
	}
}

// WriteReport writes one CSV row per duplicate group to path.
func WriteReport(fs afero.Fs, path string, rows []ReportRow) error {
	file, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", path, err)
	}

	if err := gocsv.Marshal(&rows, file); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to marshal report %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close report file %s: %w", path, err)
	}
	return nil
}
