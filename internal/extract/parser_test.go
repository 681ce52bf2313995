package extract

import (
	"encoding/json"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"repertoire/internal/grid"
	"repertoire/internal/models"
)

func newTestParser(hints ...string) *Parser {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), hints)
}

func songGrid(rows ...[]string) grid.Grid {
	g := grid.Grid{{"Chansons", "", "", "Last sang", "Days", "Creu/Sommet", "Langue", "Lyrics", "Progression"}}
	return append(g, rows...)
}

// TestIdempotence verifies that parsing the same grids twice yields
// structurally identical datasets, with no hidden state leaking between loads.
func TestIdempotence(t *testing.T) {
	g := songGrid(
		[]string{"10 000 Reasons: G", "", "", "2024-03-10", "12", "sommet", "EN", "yes", "oui"},
		[]string{"Alleluia", "", "", "", "", "", "", "", ""},
	)

	p := newTestParser()
	run := func() *models.Dataset {
		ds := models.NewDataset()
		p.ProcessSheet("Louange", g, ds)
		p.ProcessSheet("Membres", grid.Grid{
			{},
			{"Membre", "Fonction"},
			{"Dorcas", "Chanteuse"},
		}, ds)
		return ds
	}

	a, b := run(), run()
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if string(ja) != string(jb) {
		t.Errorf("two runs differ:\n%s\n%s", ja, jb)
	}
}

// TestFullLoadDropsMalformedRow loads four section sheets where one row has
// an empty title; exactly four songs survive, each with the expected id.
func TestFullLoadDropsMalformedRow(t *testing.T) {
	p := newTestParser()
	ds := models.NewDataset()

	p.ProcessSheet("Entrée", songGrid([]string{"Ouvre les cieux: D"}), ds)
	p.ProcessSheet("S-E", songGrid([]string{"Mighty to Save: A"}), ds)
	p.ProcessSheet("Louange", songGrid(
		[]string{""},
		[]string{"Je louerai l'Éternel: C"},
	), ds)
	p.ProcessSheet("Adoration", songGrid([]string{"Here I Am to Worship: E"}), ds)

	if len(ds.Songs) != 4 {
		t.Fatalf("songs = %d, want 4", len(ds.Songs))
	}
	wantIDs := []string{"Entrée_1", "S-E_1", "Louange_2", "Adoration_1"}
	for i, want := range wantIDs {
		if ds.Songs[i].ID != want {
			t.Errorf("songs[%d].ID = %q, want %q", i, ds.Songs[i].ID, want)
		}
	}

	seen := map[string]bool{}
	for _, s := range ds.Songs {
		if seen[s.ID] {
			t.Errorf("duplicate id %q", s.ID)
		}
		seen[s.ID] = true
	}
}

// TestUnknownSheetIgnored verifies unrecognized sheet names are dropped
// without touching the dataset.
func TestUnknownSheetIgnored(t *testing.T) {
	p := newTestParser()
	ds := models.NewDataset()
	before, _ := json.Marshal(ds)

	kind := p.ProcessSheet("Feuille de calcul sans titre", songGrid([]string{"Song: C"}), ds)
	if kind != KindNone {
		t.Errorf("kind = %v, want none", kind)
	}
	after, _ := json.Marshal(ds)
	if string(before) != string(after) {
		t.Error("unknown sheet mutated the dataset")
	}
}

// TestDatasetJSONRoundTrip verifies the output record reloads verbatim;
// the persistence boundary contract.
func TestDatasetJSONRoundTrip(t *testing.T) {
	p := newTestParser("Dorcas")
	ds := models.NewDataset()
	p.ProcessSheet("Louange", songGrid([]string{"Alleluia: F", "", "", "2024-01-05", "30", "creu", "FR", "oui", "yes"}), ds)

	data, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back models.Dataset
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(*ds, back) {
		t.Errorf("round trip mismatch:\nin:  %+v\nout: %+v", *ds, back)
	}
}
