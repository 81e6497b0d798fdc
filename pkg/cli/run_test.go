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
	"testing"

	"github.com/ZaparooProject/dupecheck/pkg/config"
	"github.com/ZaparooProject/dupecheck/pkg/dataset"
	"github.com/ZaparooProject/dupecheck/pkg/dedup"
	"github.com/ZaparooProject/dupecheck/pkg/testing/helpers"
	"github.com/gocarina/gocsv"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T, fs afero.Fs, report string) *config.Instance {
	t.Helper()
	defaults := config.BaseDefaults
	defaults.Input.Dir = "/data"
	defaults.Output.Report = report
	cfg, err := config.NewConfig(fs, "", defaults)
	require.NoError(t, err)
	return cfg
}

func writeScenario(t *testing.T, h *helpers.FSHelper) {
	t.Helper()
	require.NoError(t, h.WriteDataset("/data/a.csv", helpers.TweetHeader(),
		helpers.TweetRow("1", "breaking news flood city"),
		helpers.TweetRow("2", "flood city breaking news"),
		helpers.TweetRow("3", "completely unrelated text here"),
	))
	require.NoError(t, h.WriteDataset("/data/b.csv", helpers.TweetHeader(),
		helpers.TweetRow("", "bridge closed downtown"),
		helpers.TweetRow("4", "evacuate the valley now"),
	))
}

func TestRun_Scenario(t *testing.T) {
	t.Parallel()

	h := helpers.NewMemoryFS()
	writeScenario(t, h)

	res, err := NewRunner(h.Fs, newConfig(t, h.Fs, ""), clockwork.NewFakeClock()).Run()
	require.NoError(t, err)

	require.Len(t, res.Grouped, 5)
	require.Len(t, res.Combined, 4)
	require.Len(t, res.Stats, 2)
	assert.Equal(t, "/data/a.csv", res.Stats[0].Name)
	assert.Equal(t, "/data/b.csv", res.Stats[1].Name)

	rows, err := h.ReadCSV("/data/finaldata.csv")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, helpers.TweetHeader(), rows[0])

	got := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		got = append(got, []string{row[0], row[13], row[14]})
	}
	assert.Equal(t, [][]string{
		{"1", "True", "1"},
		{"2", "True", "1"},
		{"3", "watched", ""},
		{"4", "watched", ""},
	}, got)

	assert.False(t, h.FileExists("/data/groups.csv"))
}

func TestRun_WritesReport(t *testing.T) {
	t.Parallel()

	h := helpers.NewMemoryFS()
	writeScenario(t, h)

	_, err := NewRunner(h.Fs, newConfig(t, h.Fs, "groups.csv"), clockwork.NewFakeClock()).Run()
	require.NoError(t, err)

	data, err := h.ReadFile("/data/groups.csv")
	require.NoError(t, err)

	var rows []dataset.ReportRow
	require.NoError(t, gocsv.UnmarshalBytes(data, &rows))
	assert.Equal(t, []dataset.ReportRow{
		{Dataset: "/data/a.csv", GroupID: "1", Size: 2, MemberIDs: "1;2"},
	}, rows)
}

func TestRun_SkipsPreviousOutput(t *testing.T) {
	t.Parallel()

	h := helpers.NewMemoryFS()
	writeScenario(t, h)
	cfg := newConfig(t, h.Fs, "groups.csv")

	_, err := NewRunner(h.Fs, cfg, clockwork.NewFakeClock()).Run()
	require.NoError(t, err)
	first, err := h.ReadFile("/data/finaldata.csv")
	require.NoError(t, err)

	res, err := NewRunner(h.Fs, cfg, clockwork.NewFakeClock()).Run()
	require.NoError(t, err)
	second, err := h.ReadFile("/data/finaldata.csv")
	require.NoError(t, err)

	require.Len(t, res.Stats, 2, "output and report are not read back as inputs")
	assert.Equal(t, first, second)
}

func TestRun_KeepsPriorResolutions(t *testing.T) {
	t.Parallel()

	h := helpers.NewMemoryFS()
	prior := helpers.TweetRow("2", "flood city breaking news")
	prior[13] = "True"
	prior[14] = "77"
	require.NoError(t, h.WriteDataset("/data/a.csv", helpers.TweetHeader(),
		helpers.TweetRow("1", "breaking news flood city"),
		prior,
	))

	res, err := NewRunner(h.Fs, newConfig(t, h.Fs, ""), clockwork.NewFakeClock()).Run()
	require.NoError(t, err)

	require.Len(t, res.Combined, 2)
	assert.Equal(t, dedup.Watched, res.Combined[0].Status)
	assert.Empty(t, res.Combined[0].GroupID)
	assert.Equal(t, dedup.Duplicate, res.Combined[1].Status)
	assert.Equal(t, "77", res.Combined[1].GroupID)
}

func TestRun_NoInputs(t *testing.T) {
	t.Parallel()

	h := helpers.NewMemoryFS()
	require.NoError(t, h.WriteFile("/data/notes.txt", []byte("nothing here")))

	_, err := NewRunner(h.Fs, newConfig(t, h.Fs, ""), clockwork.NewFakeClock()).Run()

	require.ErrorIs(t, err, dataset.ErrNoInputs)
	assert.Contains(t, err.Error(), "/data")
}

func TestRun_MissingInputDir(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()

	_, err := NewRunner(fs, newConfig(t, fs, ""), clockwork.NewFakeClock()).Run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input directory /data")
}

func TestRun_MalformedRowWritesNothing(t *testing.T) {
	t.Parallel()

	h := helpers.NewMemoryFS()
	writeScenario(t, h)
	require.NoError(t, h.WriteDataset("/data/c.csv", helpers.TweetHeader(),
		helpers.TweetRow("5", "fine"),
		helpers.TweetRow("6", "short")[:10],
	))

	_, err := NewRunner(h.Fs, newConfig(t, h.Fs, ""), clockwork.NewFakeClock()).Run()

	require.Error(t, err)
	var rowErr *dataset.RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, "/data/c.csv", rowErr.Path)
	assert.Equal(t, 2, rowErr.Row)
	assert.False(t, h.FileExists("/data/finaldata.csv"))
}

func TestRun_OutputWriteFailure(t *testing.T) {
	t.Parallel()

	h := helpers.NewMemoryFS()
	writeScenario(t, h)
	ro := afero.NewReadOnlyFs(h.Fs)

	_, err := NewRunner(ro, newConfig(t, ro, ""), clockwork.NewFakeClock()).Run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file /data/finaldata.csv")
}

func TestRun_CustomColumns(t *testing.T) {
	t.Parallel()

	h := helpers.NewMemoryFS()
	header := []string{"text", "id", "dup", "grp"}
	require.NoError(t, h.WriteDataset("/data/a.csv", header,
		[]string{"storm hits coast", "a", "FALSE", ""},
		[]string{"coast hits storm", "b", "", ""},
	))
	require.NoError(t, h.CreateConfigFile("/data/dupecheck.toml", `
[columns]
id = 1
text = 0
status = 2
group = 3
`))

	defaults := config.BaseDefaults
	defaults.Input.Dir = "/data"
	cfg, err := config.NewConfig(h.Fs, "", defaults)
	require.NoError(t, err)

	_, err = NewRunner(h.Fs, cfg, clockwork.NewFakeClock()).Run()
	require.NoError(t, err)

	rows, err := h.ReadCSV("/data/finaldata.csv")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		header,
		{"storm hits coast", "a", "True", "a"},
		{"coast hits storm", "b", "True", "a"},
	}, rows)
}
