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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Output formats understood by Render
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatTSV   = "tsv"
)

// Render writes rows to w in the given format
func Render(w io.Writer, format string, rows []Row) error {
	switch format {
	case "", FormatTable:
		return RenderTable(w, rows)
	case FormatJSON:
		return RenderJSON(w, rows)
	case FormatTSV:
		return RenderTSV(w, rows)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// RenderTable writes rows as a bordered table with alternating row shading. Values wider than
// MaxValueWidth are truncated.
func RenderTable(w io.Writer, rows []Row) error {
	widths := ColumnWidths(rows)
	re := lipgloss.NewRenderer(w)

	header := re.NewStyle().Bold(true).Padding(0, 1)
	even := re.NewStyle().Padding(0, 1).Background(lipgloss.AdaptiveColor{Light: "252", Dark: "236"})
	odd := re.NewStyle().Padding(0, 1)

	cells := make([][]string, len(rows))
	for i, r := range rows {
		f := r.fields()
		f[3] = truncate(f[3], MaxValueWidth-columnPadding)
		cells[i] = f[:]
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(re.NewStyle().Faint(true)).
		Headers(Headers[:]...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				s = header
			case row%2 == 0:
				s = even
			default:
				s = odd
			}
			return s.Width(widths[col])
		})

	_, err := fmt.Fprintln(w, t.String())
	return err
}

// RenderJSON writes rows as an indented JSON array
func RenderJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// RenderTSV writes a header line and one tab separated line per row. Tabs inside cells are
// replaced by spaces.
func RenderTSV(w io.Writer, rows []Row) error {
	clean := strings.NewReplacer("\t", " ")
	if _, err := fmt.Fprintln(w, strings.Join(Headers[:], "\t")); err != nil {
		return err
	}
	for _, r := range rows {
		f := r.fields()
		for i := range f {
			f[i] = clean.Replace(f[i])
		}
		if _, err := fmt.Fprintln(w, strings.Join(f[:], "\t")); err != nil {
			return err
		}
	}
	return nil
}
