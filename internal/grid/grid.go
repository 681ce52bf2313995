// Package grid models a sheet as a rectangular array of string cells and
// converts raw CSV text into that shape.
package grid

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// Grid is an ordered sequence of rows of string cells. Indices are 0-based.
// Rows may be ragged; Cell returns "" for any out-of-range access so callers
// never need bounds checks.
type Grid [][]string

// NumRows returns the number of rows in the grid.
func (g Grid) NumRows() int { return len(g) }

// Row returns the row at index i, or nil when out of range.
func (g Grid) Row(i int) []string {
	if i < 0 || i >= len(g) {
		return nil
	}
	return g[i]
}

// Cell returns the cell at (row, col), or "" when out of range.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// RowIsEmpty reports whether every cell in row i is blank after trimming.
func (g Grid) RowIsEmpty(i int) bool {
	for _, c := range g.Row(i) {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// FromCSV parses raw CSV text into a Grid.
//
// Sheet exports use blank rows as structural markers (block terminators), so
// unlike a bare csv.Reader loop this parser keeps empty lines as empty rows.
// The text is first split into logical records (tracking quote state so a
// quoted field may span physical lines), then each record is parsed
// individually. Empty trailing fields are preserved.
func FromCSV(text string) (Grid, error) {
	text = strings.TrimPrefix(text, "\xef\xbb\xbf")

	var g Grid
	for i, record := range splitRecords(text) {
		if record == "" {
			g = append(g, []string{})
			continue
		}
		r := csv.NewReader(strings.NewReader(record))
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		fields, err := r.Read()
		if err != nil {
			return nil, fmt.Errorf("parsing CSV record %d: %w", i+1, err)
		}
		g = append(g, fields)
	}
	return g, nil
}

// splitRecords splits CSV text into logical records, keeping lines joined
// while inside a quoted field. A trailing newline does not produce an extra
// empty record.
func splitRecords(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var records []string
	var pending string
	open := false
	for _, line := range lines {
		if open {
			pending += "\n" + line
		} else {
			pending = line
		}
		if strings.Count(pending, `"`)%2 == 1 {
			open = true
			continue
		}
		open = false
		records = append(records, pending)
	}
	if open {
		records = append(records, pending)
	}
	return records
}
