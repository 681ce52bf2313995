package extract

import (
	"strings"

	"repertoire/internal/grid"
	"repertoire/internal/models"
)

// classifyPart maps a harmony-part label cell to one of the four fixed part
// names. "Alto 2" and "Tenor" merge into one combined part.
func classifyPart(label string) (string, bool) {
	n := normalizeLabel(label)
	switch {
	case strings.Contains(n, "soprano"):
		return models.PartSoprano, true
	case strings.Contains(n, "alto 2"), strings.Contains(n, "alto2"), strings.Contains(n, "tenor"):
		return models.PartAlto2Tenor, true
	case strings.Contains(n, "alto"):
		return models.PartAlto1, true
	case strings.Contains(n, "bass"):
		return models.PartBass, true
	}
	return "", false
}

// splitMembers turns a comma-separated cell into trimmed member names. A
// single trailing comma artifact is stripped before splitting.
func splitMembers(cell string) []string {
	cell = strings.TrimSuffix(strings.TrimSpace(cell), ",")
	out := []string{}
	for _, tok := range strings.Split(cell, ",") {
		if t := strings.TrimSpace(tok); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// extractVocalGroups recovers harmony assignments per lead singer. The row
// holding the literal "Lead" cell anchors everything: its column is the
// part-label column and the non-empty cells to its right are the leads. A
// fully blank row below the lead row ends the block.
func (p *Parser) extractVocalGroups(g grid.Grid, ds *models.Dataset) {
	leadRow, ok := findRow(g, 0, func(row []string) bool {
		_, found := findCellInRow(row, func(c string) bool {
			return strings.EqualFold(strings.TrimSpace(c), "lead")
		})
		return found
	})
	if !ok {
		p.log.Warn("vocal-groups sheet has no Lead anchor, skipping")
		return
	}

	labelCol, _ := findCellInRow(g.Row(leadRow), func(c string) bool {
		return strings.EqualFold(strings.TrimSpace(c), "lead")
	})

	// Lead name → column, preserving sheet order.
	leadCols := map[string]int{}
	for col := labelCol + 1; col < len(g.Row(leadRow)); col++ {
		lead := strings.TrimSpace(g.Cell(leadRow, col))
		if lead == "" {
			continue
		}
		leadCols[lead] = col
		parts := map[string][]string{}
		for _, part := range models.HarmonyParts {
			parts[part] = []string{}
		}
		ds.VocalGroups[lead] = parts
	}

	for rowIdx := leadRow + 1; rowIdx < g.NumRows(); rowIdx++ {
		if g.RowIsEmpty(rowIdx) {
			break
		}
		part, ok := classifyPart(g.Cell(rowIdx, labelCol))
		if !ok {
			continue
		}
		for lead, col := range leadCols {
			ds.VocalGroups[lead][part] = splitMembers(g.Cell(rowIdx, col))
		}
	}
}
