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

package aggregate

import (
	"testing"

	"github.com/ZaparooProject/dupecheck/pkg/dataset"
	"github.com/ZaparooProject/dupecheck/pkg/dedup"
	"github.com/ZaparooProject/dupecheck/pkg/similarity"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAggregator() *Aggregator {
	scorer := similarity.NewTokenSort(similarity.DefaultOptions)
	return New(dedup.NewGrouper(scorer, dedup.DefaultThreshold), clockwork.NewFakeClock())
}

func ds(name string, header []string, recs ...dedup.Record) dataset.Dataset {
	return dataset.Dataset{Name: name, Header: header, Records: recs}
}

func rec(id, text string) dedup.Record {
	return dedup.Record{ID: id, Text: text}
}

func ids(records []dedup.Record) []string {
	out := make([]string, len(records))
	for i := range records {
		out[i] = records[i].ID
	}
	return out
}

func TestProcess_Scenario(t *testing.T) {
	t.Parallel()

	header := []string{"id", "text"}
	res := newAggregator().Process([]dataset.Dataset{
		ds("floods.csv", header,
			rec("1", "breaking news flood city"),
			rec("2", "flood city breaking news"),
			rec("3", "completely unrelated text here"),
		),
	})

	assert.Equal(t, header, res.Header)
	require.Len(t, res.Combined, 3)
	assert.Equal(t, "1", res.Combined[0].GroupID)
	assert.Equal(t, "1", res.Combined[1].GroupID)
	assert.Equal(t, dedup.Watched, res.Combined[2].Status)
	assert.Empty(t, res.Combined[2].GroupID)

	require.Len(t, res.Groups, 1)
	assert.Equal(t, "floods.csv", res.Groups[0].Dataset)
	assert.Equal(t, []string{"1", "2"}, res.Groups[0].MemberIDs)

	require.Len(t, res.Stats, 1)
	assert.Equal(t, DatasetStats{
		Name:        "floods.csv",
		Records:     3,
		Duplicates:  2,
		Watched:     1,
		Groups:      1,
		Comparisons: 2,
	}, res.Stats[0])
}

func TestProcess_DatasetIsolation(t *testing.T) {
	t.Parallel()

	res := newAggregator().Process([]dataset.Dataset{
		ds("a.csv", nil, rec("1", "flood city breaking news")),
		ds("b.csv", nil, rec("2", "flood city breaking news")),
	})

	require.Len(t, res.Combined, 2)
	for _, r := range res.Combined {
		assert.Equal(t, dedup.Watched, r.Status)
		assert.Empty(t, r.GroupID)
	}
	assert.Empty(t, res.Groups)
}

func TestProcess_OrderAndHeader(t *testing.T) {
	t.Parallel()

	res := newAggregator().Process([]dataset.Dataset{
		ds("a.csv", []string{"first"}, rec("a1", "storm"), rec("a2", "rain")),
		ds("b.csv", []string{"second"}, rec("b1", "bridge"), rec("b2", "closed")),
	})

	assert.Equal(t, []string{"a1", "a2", "b1", "b2"}, ids(res.Combined))
	assert.Equal(t, []string{"second"}, res.Header)
	require.Len(t, res.Stats, 2)
	assert.Equal(t, "a.csv", res.Stats[0].Name)
	assert.Equal(t, "b.csv", res.Stats[1].Name)
}

func TestProcess_EmptyIDFiltered(t *testing.T) {
	t.Parallel()

	res := newAggregator().Process([]dataset.Dataset{
		ds("a.csv", nil,
			rec("1", "storm warning"),
			rec("", "bridge closed"),
			rec("3", "evacuate now"),
		),
	})

	require.Len(t, res.Grouped, 3)
	assert.Empty(t, res.Grouped[1].ID)
	assert.Equal(t, dedup.Watched, res.Grouped[1].Status)
	assert.Equal(t, []string{"1", "3"}, ids(res.Combined))
}

func TestProcess_DoesNotMutateDatasets(t *testing.T) {
	t.Parallel()

	in := []dataset.Dataset{
		ds("a.csv", nil, rec("1", "flood city"), rec("2", "city flood")),
	}

	res := newAggregator().Process(in)

	assert.Equal(t, dedup.Unprocessed, in[0].Records[0].Status)
	assert.Equal(t, dedup.Duplicate, res.Grouped[0].Status)
}

func TestProcess_NoDatasets(t *testing.T) {
	t.Parallel()

	res := newAggregator().Process(nil)

	assert.Nil(t, res.Header)
	assert.Empty(t, res.Grouped)
	assert.Empty(t, res.Combined)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	in := []dedup.Record{rec("", "a"), rec("1", "b"), rec(" ", "c"), rec("", "d")}

	assert.Equal(t, []string{"1", " "}, ids(Filter(in)))
}
