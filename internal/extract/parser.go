// Package extract recovers typed repertoire records from loosely structured,
// hand-maintained sheet grids. Layouts drift across edits, so every
// extractor locates anchor rows and columns by marker tokens instead of
// fixed offsets, and degrades silently: a malformed row or sheet never
// aborts the rest of a load.
package extract

import (
	"errors"
	"log/slog"

	"repertoire/internal/grid"
	"repertoire/internal/models"
)

// ErrNoSongs is returned when a completed load produced zero songs. An empty
// repertoire is never valid, so this is the one engine condition callers
// must treat as fatal.
var ErrNoSongs = errors.New("no songs extracted from any sheet")

// Parser dispatches classified sheets to their extractors, accumulating into
// one Dataset.
type Parser struct {
	log *slog.Logger
	// memberHints seeds the member first-name list used for song key-column
	// detection, on top of names recovered from the roster sheet.
	memberHints []string
}

// New creates a Parser. memberHints may be nil.
func New(log *slog.Logger, memberHints []string) *Parser {
	return &Parser{log: log, memberHints: memberHints}
}

// memberNames returns the known member display names: roster members already
// accumulated, plus configured hints not yet covered.
func (p *Parser) memberNames(ds *models.Dataset) []string {
	names := make([]string, 0, len(ds.Members)+len(p.memberHints))
	for _, m := range ds.Members {
		names = append(names, m.Name)
	}
	for _, h := range p.memberHints {
		known := false
		for _, n := range names {
			if SameName(n, h) {
				known = true
				break
			}
		}
		if !known {
			names = append(names, h)
		}
	}
	return names
}

// ProcessSheet classifies one sheet and runs the matching extractor against
// the dataset. Unrecognized sheet names are skipped by policy. It returns
// the recognized kind so callers can order or report sheets.
func (p *Parser) ProcessSheet(sheetName string, g grid.Grid, ds *models.Dataset) SheetKind {
	kind, section := Classify(sheetName)
	switch kind {
	case KindSongs:
		p.extractSongs(g, section, ds)
	case KindProgressions:
		p.extractProgressions(g, ds)
	case KindMembers:
		p.extractMembers(g, ds)
	case KindVocalRanges:
		p.extractVocalRanges(g, ds)
	case KindVocalGroups:
		p.extractVocalGroups(g, ds)
	case KindTasks:
		p.extractTasks(g, ds)
	default:
		p.log.Debug("skipping unrecognized sheet", "sheet", sheetName)
	}
	return kind
}
