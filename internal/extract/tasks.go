package extract

import (
	"strings"

	"repertoire/internal/grid"
	"repertoire/internal/models"
)

// Task sheet layout is fixed: member names across row 2 starting at column
// 2, task names down column 1 from row 3.
const (
	taskHeaderRow    = 2
	taskNameCol      = 1
	taskMemberColMin = 2
	taskDataRowMin   = 3
)

// extractTasks records which tasks each member is marked responsible for.
// Marks are append-only in source row order; duplicates are kept.
func (p *Parser) extractTasks(g grid.Grid, ds *models.Dataset) {
	memberCols := map[string]int{}
	header := g.Row(taskHeaderRow)
	for col := taskMemberColMin; col < len(header); col++ {
		name := strings.TrimSpace(header[col])
		if name == "" {
			continue
		}
		memberCols[name] = col
		if _, ok := ds.Tasks[name]; !ok {
			ds.Tasks[name] = []string{}
		}
	}

	for rowIdx := taskDataRowMin; rowIdx < g.NumRows(); rowIdx++ {
		task := strings.TrimSpace(g.Cell(rowIdx, taskNameCol))
		if task == "" {
			continue
		}
		for name, col := range memberCols {
			if strings.ToLower(strings.TrimSpace(g.Cell(rowIdx, col))) == "x" {
				ds.Tasks[name] = append(ds.Tasks[name], task)
			}
		}
	}
}
