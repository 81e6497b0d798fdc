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

// Package similarity scores how alike two short texts are, ignoring word
// order. Scores are integers in [0, 100].
package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Options controls how texts are preprocessed before they are compared.
type Options struct {
	// ForceASCII drops every non-ASCII rune, so "café" becomes "caf".
	// remaining non-ASCII runes.
	ForceASCII bool
	// FoldDiacritics strips combining marks before anything else, so
	// "café" becomes "cafe" and survives ForceASCII.
	FoldDiacritics bool
}

// DefaultOptions drops non-ASCII runes without folding diacritics.
var DefaultOptions = Options{
	ForceASCII: true,
}

// TokenSort computes the token-sort ratio: both texts are cleaned,
// split on whitespace, and their tokens sorted before the edit-distance
// ratio is taken. Word order therefore never affects the score.
type TokenSort struct {
	opts Options
}

func NewTokenSort(opts Options) *TokenSort {
	return &TokenSort{opts: opts}
}

// Normalize returns the sorted-token form of text that Ratio compares.
//
// Example:
//
//	Normalize("Flood in the CITY!") → "city flood in the"
func (t *TokenSort) Normalize(text string) string {
	tokens := strings.Fields(preprocess(text, t.opts))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Ratio compares two already normalized strings.
func (*TokenSort) Ratio(a, b string) int {
	return Ratio(a, b)
}

// Score normalizes both texts and returns their ratio.
func (t *TokenSort) Score(a, b string) int {
	return Ratio(t.Normalize(a), t.Normalize(b))
}

// TokenSortRatio scores two texts using DefaultOptions.
func TokenSortRatio(a, b string) int {
	return NewTokenSort(DefaultOptions).Score(a, b)
}

// Ratio returns 100 * (total - distance) / total, rounded half away from
// zero, where total is the combined rune length of a and b and distance is
// the Levenshtein distance with substitutions costing a deletion plus an
// insertion. Two empty strings score 100; one empty string scores 0.
func Ratio(a, b string) int {
	lenA := utf8.RuneCountInString(a)
	lenB := utf8.RuneCountInString(b)
	total := lenA + lenB

	if total == 0 {
		return 100
	}
	if lenA == 0 || lenB == 0 {
		return 0
	}
	if a == b {
		return 100
	}

	distance := edlib.LCSEditDistance(a, b)
	return int(math.Round(100 * float64(total-distance) / float64(total)))
}
