package extract

import (
	"strings"

	"repertoire/internal/grid"
	"repertoire/internal/models"
)

// rangeLabelDenylist lists labels that appear alongside singer names in the
// tessitura sheet and must not be scored as names.
var rangeLabelDenylist = []string{
	"soprano", "alto", "alto 1", "alto 2", "tenor", "bass", "basse",
	"voice type", "type de voix", "lead", "low chest", "high chest",
	"head voice", "prima voce", "type", "voix", "notes",
}

// looksLikePersonName reports whether a cell plausibly holds a bare person
// name: letters only, allowing apostrophes, hyphens and internal spaces.
func looksLikePersonName(cell string) bool {
	s := strings.TrimSpace(cell)
	if len([]rune(s)) < 2 {
		return false
	}
	n := normalizeLabel(s)
	for _, d := range rangeLabelDenylist {
		if n == d {
			return false
		}
	}
	for _, r := range s {
		switch {
		case r == '\'' || r == '-' || r == ' ':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= 0x00C0 && r <= 0x024F: // accented Latin
		default:
			return false
		}
	}
	return true
}

// squash lowercases and removes all whitespace for space-insensitive label
// matching ("Low  chest" matches "lowchest").
func squash(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(stripDiacritics(s)), ""))
}

// findMetricRow locates the row carrying the given metric label, preferring
// rows after the anchor, then falling back to a full-grid scan.
func findMetricRow(g grid.Grid, anchorRow int, label string) (int, bool) {
	want := squash(label)
	match := func(row []string) bool {
		_, ok := findCellInRow(row, func(c string) bool { return strings.Contains(squash(c), want) })
		return ok
	}
	for i := anchorRow + 1; i < g.NumRows(); i++ {
		if match(g.Row(i)) {
			return i, true
		}
	}
	return findRow(g, 0, match)
}

// locateNameRow searches up to 6 rows immediately above the anchor and picks
// the one with the most name-looking cells. A best score below 2 is not
// enough evidence of a name row.
func locateNameRow(g grid.Grid, anchorRow int) (int, bool) {
	bestRow, bestScore := -1, 0
	for i := anchorRow - 1; i >= 0 && i >= anchorRow-6; i-- {
		score := 0
		for _, cell := range g.Row(i) {
			if looksLikePersonName(cell) {
				score++
			}
		}
		if score > bestScore {
			bestRow, bestScore = i, score
		}
	}
	if bestScore < 2 {
		return 0, false
	}
	return bestRow, true
}

// extractVocalRanges recovers per-singer tessitura records. The sheet drifts
// under manual edits, so every position derives from the "voice type" anchor
// row; a sheet without that anchor records nothing.
func (p *Parser) extractVocalRanges(g grid.Grid, ds *models.Dataset) {
	anchorRow, ok := findRow(g, 0, func(row []string) bool {
		_, found := findCellInRow(row, func(c string) bool {
			return containsAny(c, "voice") && containsAny(c, "type") ||
				containsAny(c, "voix") && containsAny(c, "type")
		})
		return found
	})
	if !ok {
		p.log.Warn("vocal-range sheet has no voice type anchor, skipping")
		return
	}

	nameRow, ok := locateNameRow(g, anchorRow)
	if !ok {
		p.log.Warn("vocal-range sheet has no recognizable name row, skipping")
		return
	}

	lowRow, lowOK := findMetricRow(g, anchorRow, "low chest")
	highRow, highOK := findMetricRow(g, anchorRow, "high chest")
	headRow, headOK := findMetricRow(g, anchorRow, "head voice")
	primaRow, primaOK := findMetricRow(g, anchorRow, "prima voce")

	metric := func(row int, ok bool, col int) string {
		if !ok {
			return ""
		}
		return strings.TrimSpace(g.Cell(row, col))
	}

	for col, cell := range g.Row(nameRow) {
		if !looksLikePersonName(cell) {
			continue
		}
		r := models.VocalRange{
			VoiceType: strings.TrimSpace(g.Cell(anchorRow, col)),
			LowChest:  metric(lowRow, lowOK, col),
			HighChest: metric(highRow, highOK, col),
			HeadVoice: metric(headRow, headOK, col),
			PrimaVoce: metric(primaRow, primaOK, col),
		}
		if r.VoiceType == "" && r.LowChest == "" && r.HighChest == "" && r.HeadVoice == "" && r.PrimaVoce == "" {
			continue
		}
		ds.VocalRanges[strings.TrimSpace(cell)] = r
	}
}
