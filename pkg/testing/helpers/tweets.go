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

package helpers

// TweetHeader is the column layout of the tweet exports used in tests.
// Text is column 7, duplicate status 13 and group ID 14.
func TweetHeader() []string {
	return []string{
		"id", "created_at", "user", "user_id", "lang", "retweets", "favorites",
		"text", "lat", "lon", "place", "source", "url", "duplicate", "group",
	}
}

// TweetRow builds an unprocessed row for TweetHeader.
func TweetRow(id, text string) []string {
	return []string{
		id, "2016-04-10 12:00:00", "user" + id, "10" + id, "en", "0", "0",
		text, "", "", "", "web", "", "FALSE", "",
	}
}
