// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package view

import (
	"github.com/mattn/go-runewidth"
)

const (
	// columnPadding is added to the widest cell of each column
	columnPadding = 2

	// MaxValueWidth caps the width of the value column; longer values are truncated on display
	MaxValueWidth = 80
)

// Widths holds the display width, in terminal cells, of each column
type Widths [4]int

// ColumnWidths sizes each column to its widest cell or header, plus padding. The value column is
// capped at MaxValueWidth.
func ColumnWidths(rows []Row) Widths {
	var w Widths
	for i, h := range Headers {
		w[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i, f := range r.fields() {
			if n := runewidth.StringWidth(f); n > w[i] {
				w[i] = n
			}
		}
	}
	for i := range w {
		w[i] += columnPadding
	}
	if w[3] > MaxValueWidth {
		w[3] = MaxValueWidth
	}
	return w
}

// truncate shortens s to fit in width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
