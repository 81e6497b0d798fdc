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

package similarity

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// tweetWords is a small vocabulary so generated texts overlap often.
var tweetWords = []string{
	"flood", "city", "breaking", "news", "storm", "rescue", "water",
	"rising", "help", "evacuate", "bridge", "closed", "rain", "warning",
}

func tweetGen() *rapid.Generator[[]string] {
	return rapid.SliceOfN(rapid.SampledFrom(tweetWords), 0, 8)
}

// TestPropertyRatioBounds verifies every score lies in [0, 100].
func TestPropertyRatioBounds(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.String().Draw(t, "a")
		b := rapid.String().Draw(t, "b")

		score := TokenSortRatio(a, b)
		if score < 0 || score > 100 {
			t.Fatalf("score %d out of range for %q, %q", score, a, b)
		}
	})
}

// TestPropertyRatioSymmetric verifies argument order does not matter.
func TestPropertyRatioSymmetric(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.String().Draw(t, "a")
		b := rapid.String().Draw(t, "b")

		if TokenSortRatio(a, b) != TokenSortRatio(b, a) {
			t.Fatalf("asymmetric score for %q, %q", a, b)
		}
	})
}

// TestPropertySelfScoreIsMax verifies a text always fully matches itself.
func TestPropertySelfScoreIsMax(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.String().Draw(t, "a")

		if score := TokenSortRatio(a, a); score != 100 {
			t.Fatalf("self score %d for %q", score, a)
		}
	})
}

// TestPropertyWordOrderIgnored verifies any permutation of the same words
// scores 100.
func TestPropertyWordOrderIgnored(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		words := tweetGen().Draw(t, "words")
		shuffled := rapid.Permutation(words).Draw(t, "shuffled")

		a := strings.Join(words, " ")
		b := strings.Join(shuffled, " ")
		if score := TokenSortRatio(a, b); score != 100 {
			t.Fatalf("score %d for permutation %q / %q", score, a, b)
		}
	})
}

// TestPropertyNormalizeIdempotent verifies normalizing twice changes nothing.
func TestPropertyNormalizeIdempotent(t *testing.T) {
	t.Parallel()
	ts := NewTokenSort(DefaultOptions)
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")

		once := ts.Normalize(s)
		if twice := ts.Normalize(once); twice != once {
			t.Fatalf("normalize not idempotent: %q → %q → %q", s, once, twice)
		}
	})
}
