package extract

import (
	"strings"
	"unicode"

	"repertoire/internal/grid"
	"repertoire/internal/models"
)

// nonMemberLabels are section/summary labels that show up in the name column
// of hand-edited rosters and must never become members.
var nonMemberLabels = []string{
	"total", "opening", "entree", "entry", "song", "songs",
	"praise", "louange", "worship", "adoration", "language", "langue", "chart",
}

// isRoleValue reports whether a role cell matches a recognized role family.
func isRoleValue(s string) bool {
	return containsAny(s, "chanteur", "chanteuse", "singer", "musicien", "musician", "membre", "member")
}

func isNumericOnly(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isDenylisted(name string) bool {
	n := normalizeLabel(name)
	for _, label := range nonMemberLabels {
		if n == label {
			return true
		}
	}
	return false
}

// locateMemberColumns finds the roster header. Strategy 1 scans the first 20
// rows for a cell carrying the member marker; the role column is the first
// role-type marker in the same row, defaulting to the column right of the
// name. Strategy 2 falls back to the legacy fixed layout (header row 1,
// name col 0, role col 1).
func locateMemberColumns(g grid.Grid) (headerRow, nameCol, roleCol int) {
	row, ok := findRow(g, 20, func(row []string) bool {
		_, found := findCellInRow(row, func(c string) bool { return containsAny(c, "membre", "member") })
		return found
	})
	if !ok {
		return 1, 0, 1
	}

	nameCol, _ = findCellInRow(g.Row(row), func(c string) bool { return containsAny(c, "membre", "member") })
	roleCol, ok = findCellInRow(g.Row(row), func(c string) bool {
		return containsAny(c, "group", "fonction", "function", "type", "role")
	})
	if !ok {
		roleCol = nameCol + 1
	}
	return row, nameCol, roleCol
}

// extractMembers recovers the roster. Leading blank rows are skipped; once a
// name has been seen, a fully blank name+role row terminates the block so
// trailing summary rows are never read as members. Duplicates under name
// equivalence keep the first occurrence.
func (p *Parser) extractMembers(g grid.Grid, ds *models.Dataset) {
	headerRow, nameCol, roleCol := locateMemberColumns(g)

	started := false
	for rowIdx := headerRow + 1; rowIdx < g.NumRows(); rowIdx++ {
		name := strings.TrimSpace(g.Cell(rowIdx, nameCol))
		role := strings.TrimSpace(g.Cell(rowIdx, roleCol))

		if name == "" && role == "" {
			if started {
				break
			}
			continue
		}
		started = true

		if name == "" {
			continue
		}
		// Stray repeated header row inside the block.
		if containsAny(name, "membre", "member") {
			continue
		}
		if isNumericOnly(name) || isDenylisted(name) {
			continue
		}
		// A present but unrecognized role means the row is not member data.
		if role != "" && !isRoleValue(role) {
			continue
		}

		dup := false
		for _, m := range ds.Members {
			if SameName(m.Name, name) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}

		if role == "" {
			role = models.DefaultRole
		}
		ds.Members = append(ds.Members, models.Member{Name: name, Role: role})
	}
}
