// Package ingest feeds sheet grids from a source (xlsx workbook or exported
// CSV) through the extraction engine into one normalized dataset.
package ingest

import (
	"repertoire/internal/extract"
	"repertoire/internal/grid"
	"repertoire/internal/models"
)

// Sheet pairs a sheet display name with its cell grid.
type Sheet struct {
	Name string
	Grid grid.Grid
}

// Result holds the outcome of one load.
type Result struct {
	SheetsProcessed int `json:"sheets_processed"`
	SheetsSkipped   int `json:"sheets_skipped"`

	Songs        int `json:"songs"`
	Members      int `json:"members"`
	Progressions int `json:"progressions"`
	VocalRanges  int `json:"vocal_ranges"`
	VocalGroups  int `json:"vocal_groups"`
	TaskMembers  int `json:"task_members"`
}

// ProcessAll runs every sheet through the parser. The roster sheet is
// processed first so song key-column detection knows the member names;
// extractors are otherwise order-insensitive.
func ProcessAll(p *extract.Parser, sheets []Sheet, ds *models.Dataset) Result {
	var res Result

	process := func(s Sheet) {
		if kind := p.ProcessSheet(s.Name, s.Grid, ds); kind == extract.KindNone {
			res.SheetsSkipped++
		} else {
			res.SheetsProcessed++
		}
	}

	for _, s := range sheets {
		if kind, _ := extract.Classify(s.Name); kind == extract.KindMembers {
			process(s)
		}
	}
	for _, s := range sheets {
		if kind, _ := extract.Classify(s.Name); kind != extract.KindMembers {
			process(s)
		}
	}

	res.Songs = len(ds.Songs)
	res.Members = len(ds.Members)
	res.Progressions = len(ds.Progressions)
	res.VocalRanges = len(ds.VocalRanges)
	res.VocalGroups = len(ds.VocalGroups)
	res.TaskMembers = len(ds.Tasks)
	return res
}
