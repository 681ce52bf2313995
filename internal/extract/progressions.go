package extract

import (
	"strings"

	"repertoire/internal/grid"
	"repertoire/internal/models"
)

// progressionKey normalizes a title cell into its map key: line breaks
// flattened, trailing colon stripped, lowercased.
func progressionKey(title string) string {
	t := strings.Join(strings.Fields(title), " ")
	t = strings.TrimSuffix(t, ":")
	return strings.ToLower(strings.TrimSpace(t))
}

// extractProgressions walks a two-column progressions grid as a state
// machine: a non-empty column-A cell starts a new title, column-B lines
// accumulate under the current title, and a commit joins them with newlines.
// A title that accumulated no lines is not stored.
func (p *Parser) extractProgressions(g grid.Grid, ds *models.Dataset) {
	var currentTitle string
	var lines []string

	commit := func() {
		if currentTitle == "" || len(lines) == 0 {
			return
		}
		ds.Progressions[currentTitle] = strings.Join(lines, "\n")
	}

	for rowIdx := 0; rowIdx < g.NumRows(); rowIdx++ {
		colA := strings.TrimSpace(g.Cell(rowIdx, 0))
		colB := strings.TrimSpace(g.Cell(rowIdx, 1))

		if colA != "" {
			if strings.ToLower(colA) == "titles" {
				continue
			}
			commit()
			currentTitle = progressionKey(colA)
			lines = nil
			if colB != "" {
				lines = append(lines, colB)
			}
			continue
		}

		if colB != "" {
			lines = append(lines, colB)
		}
	}

	commit()
}
