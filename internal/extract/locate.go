package extract

import (
	"strconv"
	"strings"
	"time"

	"repertoire/internal/grid"
)

// Hand-maintained sheets drift, so positions are recovered by locating
// anchor cells and deriving offsets from them. Each locator returns
// (position, ok) and callers early-return on absence.

// findRow scans rows [0, maxRows) and returns the index of the first row for
// which pred returns true. maxRows <= 0 scans the whole grid.
func findRow(g grid.Grid, maxRows int, pred func(row []string) bool) (int, bool) {
	limit := g.NumRows()
	if maxRows > 0 && maxRows < limit {
		limit = maxRows
	}
	for i := 0; i < limit; i++ {
		if pred(g.Row(i)) {
			return i, true
		}
	}
	return 0, false
}

// findCellInRow returns the first column in row whose cell satisfies pred.
func findCellInRow(row []string, pred func(cell string) bool) (int, bool) {
	for col, cell := range row {
		if pred(cell) {
			return col, true
		}
	}
	return 0, false
}

// containsAny reports whether the normalized label form of s contains any of
// the marker tokens.
func containsAny(s string, markers ...string) bool {
	n := normalizeLabel(s)
	for _, m := range markers {
		if strings.Contains(n, m) {
			return true
		}
	}
	return false
}

// flattenHeader lowercases a header cell and joins embedded line breaks so
// multi-line headers match single-line markers.
func flattenHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// isMarked reports whether a cell is an affirmative assignment mark.
func isMarked(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "✓", "yes", "oui":
		return true
	}
	return false
}

// isYes reports whether a cell is an affirmative yes/oui answer.
func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "oui":
		return true
	}
	return false
}

// dateLayouts covers the formats seen in exported sheets: ISO, French and US
// slash forms, and spelled-out dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// parseDate attempts generic date parsing and returns the calendar date
// portion in ISO form. ok is false when the cell is not a parseable date.
func parseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// parseDays parses a days-elapsed cell. Non-numeric values yield nil, never
// zero.
func parseDays(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
