package extract

import (
	"fmt"
	"strings"

	"repertoire/internal/grid"
	"repertoire/internal/models"
)

// Column-index fences for role detection. Headers drift but stay inside
// known bands, and restricting the scan avoids false positives from
// unrelated columns further right.
const (
	progressionColMax = 10 // progression marker honored only in cols 0..9
	memberKeyColMin   = 7 // member key columns live in cols 7..22
	memberKeyColMax   = 22
	musicianColMin    = 19 // instrument columns start at col 19
)

// songColumns holds the detected column index per role; -1 means the header
// row had no matching column.
type songColumns struct {
	lastSang    int
	daysPast    int
	creuSommet  int
	langue      int
	lyrics      int
	progression int
	// memberKeys maps member display name to that member's key column.
	memberKeys map[string]int
	// musicians maps "firstname instrument" (first two header words) to its
	// column.
	musicians map[string]int
}

// locateSongHeader scans at most the first 6 rows for one whose first cell
// carries a title marker. Row 1 is the legacy fallback when nothing matches.
func locateSongHeader(g grid.Grid) int {
	if row, ok := findRow(g, 6, func(row []string) bool {
		if len(row) == 0 {
			return false
		}
		return containsAny(row[0], "song", "chanson", "titre")
	}); ok {
		return row
	}
	return 1
}

// detectSongColumns assigns column roles by scanning the header row for
// marker substrings. Each simple role goes to the first matching column.
func detectSongColumns(header []string, memberNames []string) songColumns {
	cols := songColumns{
		lastSang:    -1,
		daysPast:    -1,
		creuSommet:  -1,
		langue:      -1,
		lyrics:      -1,
		progression: -1,
		memberKeys:  map[string]int{},
		musicians:   map[string]int{},
	}

	for col, cell := range header {
		h := flattenHeader(cell)
		if h == "" {
			continue
		}
		if cols.lastSang < 0 && containsAny(h, "last", "chante") {
			cols.lastSang = col
		}
		if cols.daysPast < 0 && containsAny(h, "days", "jours") {
			cols.daysPast = col
		}
		if cols.creuSommet < 0 && containsAny(h, "creu", "sommet") {
			cols.creuSommet = col
		}
		if cols.langue < 0 && containsAny(h, "langue", "language") {
			cols.langue = col
		}
		if cols.lyrics < 0 && containsAny(h, "lyric", "parole") {
			cols.lyrics = col
		}
		if cols.progression < 0 && col < progressionColMax && containsAny(h, "progression") {
			cols.progression = col
		}

		if col >= memberKeyColMin && col <= memberKeyColMax && containsAny(h, "key", "cle") {
			n := normalizeLabel(cell)
			for _, member := range memberNames {
				fn := firstName(member)
				if fn == "" {
					continue
				}
				// Only the first header referencing a member counts.
				if _, taken := cols.memberKeys[member]; taken {
					continue
				}
				if strings.Contains(n, fn) {
					cols.memberKeys[member] = col
				}
			}
		}

		if col >= musicianColMin && containsAny(h, "piano", "drum", "batterie", "bass", "basse", "guitar", "guitare") {
			words := strings.Fields(cell)
			if len(words) >= 2 {
				cols.musicians[words[0]+" "+words[1]] = col
			} else if len(words) == 1 {
				cols.musicians[words[0]] = col
			}
		}
	}

	return cols
}

// splitTitleKey splits a title cell on its last colon into (title, key).
// No colon, or a colon at position 0, means the whole cell is the title.
func splitTitleKey(cell string) (string, string) {
	cell = strings.TrimSpace(cell)
	idx := strings.LastIndex(cell, ":")
	if idx <= 0 {
		return cell, ""
	}
	return strings.TrimSpace(cell[:idx]), strings.TrimSpace(cell[idx+1:])
}

// validMemberKey filters out placeholder values in member key cells.
func validMemberKey(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "0" && v != "-"
}

// extractSongs converts one song-section grid into Song records appended to
// the dataset. Malformed rows (empty or too-short title) are skipped, never
// fatal.
func (p *Parser) extractSongs(g grid.Grid, section models.Section, ds *models.Dataset) {
	headerRow := locateSongHeader(g)
	cols := detectSongColumns(g.Row(headerRow), p.memberNames(ds))

	for rowIdx := headerRow + 1; rowIdx < g.NumRows(); rowIdx++ {
		titleCell := strings.TrimSpace(g.Cell(rowIdx, 0))
		if len([]rune(titleCell)) < 2 {
			continue
		}

		title, key := splitTitleKey(titleCell)
		song := models.Song{
			ID:          fmt.Sprintf("%s_%d", section, rowIdx),
			Title:       title,
			OriginalKey: key,
			Section:     section,
			Langue:      models.LangueUndefined,
			MemberKeys:  map[string]string{},
			Musicians:   map[string]bool{},
		}

		if cols.lastSang >= 0 {
			if d, ok := parseDate(g.Cell(rowIdx, cols.lastSang)); ok {
				song.LastSang = d
			}
		}
		if cols.daysPast >= 0 {
			song.DaysPast = parseDays(g.Cell(rowIdx, cols.daysPast))
		}
		if cols.creuSommet >= 0 {
			song.CreuSommet = strings.TrimSpace(g.Cell(rowIdx, cols.creuSommet))
		}
		if cols.langue >= 0 {
			if v := strings.TrimSpace(g.Cell(rowIdx, cols.langue)); v != "" {
				song.Langue = strings.ToUpper(v)
			}
		}
		if cols.lyrics >= 0 {
			song.HasLyrics = isYes(g.Cell(rowIdx, cols.lyrics))
		}
		if cols.progression >= 0 {
			song.HasProgression = isYes(g.Cell(rowIdx, cols.progression))
		}

		for member, col := range cols.memberKeys {
			if v := strings.TrimSpace(g.Cell(rowIdx, col)); validMemberKey(v) {
				song.MemberKeys[member] = v
			}
		}
		for name, col := range cols.musicians {
			if isMarked(g.Cell(rowIdx, col)) {
				song.Musicians[name] = true
			}
		}

		ds.Songs = append(ds.Songs, song)
	}
}
