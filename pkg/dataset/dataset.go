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

// Package dataset reads tweet datasets from CSV files and writes the
// combined, annotated result back out. It is the only package that
// touches the filesystem for data.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/dupecheck/pkg/dedup"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var (
	ErrNoInputs      = errors.New("no input files found")
	ErrMissingHeader = errors.New("missing header row")
	ErrMissingColumn = errors.New("missing expected column")
)

// RowError reports a malformed row. Row 0 is the header; data rows count
// from 1.
type RowError struct {
	Err  error
	Path string
	Row  int
}

func (e *RowError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: header: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: row %d: %v", e.Path, e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Dataset is the ordered content of one input file.
type Dataset struct {
	Name    string
	Header  []string
	Records []dedup.Record
}

// Discover lists the files directly inside dir whose extension matches ext
// (case-insensitive), sorted by name. Subdirectories are not entered and
// any path in exclude is skipped.
func Discover(fs afero.Fs, dir, ext string, exclude ...string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}

	skip := make(map[string]struct{}, len(exclude))
	for _, p := range exclude {
		skip[filepath.Clean(p)] = struct{}{}
	}

	// afero.ReadDir returns entries sorted by filename
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, ok := skip[filepath.Clean(path)]; ok {
			log.Debug().Str("file", path).Msg("skipping excluded file")
			continue
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// Load reads one CSV dataset. Every data row must have as many columns as
// the header, and the header must cover every column in layout.
func Load(fs afero.Fs, path string, layout Layout) (Dataset, error) {
	file, err := fs.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("file", path).Msg("failed to close dataset")
		}
	}()

	reader := gocsv.DefaultCSVReader(file)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{}, &RowError{Path: path, Row: 0, Err: ErrMissingHeader}
	}
	if err != nil {
		return Dataset{}, &RowError{Path: path, Row: 0, Err: err}
	}
	if err := layout.Check(header); err != nil {
		return Dataset{}, &RowError{Path: path, Row: 0, Err: err}
	}

	ds := Dataset{
		Name:   path,
		Header: header,
	}

	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, &RowError{Path: path, Row: row, Err: err}
		}

		rec, err := layout.Decode(fields)
		if err != nil {
			return Dataset{}, &RowError{Path: path, Row: row, Err: err}
		}
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

// WriteCombined writes header followed by every record to path, replacing
// any existing file.
func WriteCombined(fs afero.Fs, path string, header []string, records []dedup.Record, layout Layout) error {
	file, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	writer := gocsv.DefaultCSVWriter(file)
	if err := writer.Write(header); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for i := range records {
		if err := writer.Write(layout.Encode(&records[i])); err != nil {
			_ = file.Close()
			return fmt.Errorf("failed to write record %q to %s: %w", records[i].ID, path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to flush output file %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", path, err)
	}
	return nil
}
