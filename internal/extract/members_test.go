package extract

import (
	"testing"

	"repertoire/internal/grid"
	"repertoire/internal/models"
)

func memberGrid(rows ...[]string) grid.Grid {
	g := grid.Grid{
		{"Liste de l'équipe"},
		{"Membre", "Fonction"},
	}
	return append(g, rows...)
}

// TestMemberDedup verifies case/accent variants of one person collapse to a
// single member, first occurrence winning.
func TestMemberDedup(t *testing.T) {
	g := memberGrid(
		[]string{"Dorcas", "Singer"},
		[]string{"dorcas", "Musician"},
	)
	p := newTestParser()
	ds := models.NewDataset()
	p.ProcessSheet("Membres", g, ds)

	if len(ds.Members) != 1 {
		t.Fatalf("members = %d, want 1", len(ds.Members))
	}
	if ds.Members[0].Name != "Dorcas" || ds.Members[0].Role != "Singer" {
		t.Errorf("member = %+v, want first occurrence Dorcas/Singer", ds.Members[0])
	}
}

// TestMemberRowFilters covers the denylist, numeric names, stray repeated
// headers and unrecognized role values.
func TestMemberRowFilters(t *testing.T) {
	g := memberGrid(
		[]string{"Total", "Chanteur"},  // denylisted label
		[]string{"42", "Chanteur"},     // numeric
		[]string{"Membre", "Fonction"}, // stray header repeat
		[]string{"Dorcas", "remarque"}, // unrecognized role, not member data
		[]string{"Grace", "Chanteuse"},
		[]string{"Samuel", ""}, // missing role defaults
	)
	p := newTestParser()
	ds := models.NewDataset()
	p.ProcessSheet("Membres", g, ds)

	if len(ds.Members) != 2 {
		t.Fatalf("members = %v, want 2", ds.Members)
	}
	if ds.Members[0].Name != "Grace" {
		t.Errorf("members[0] = %+v", ds.Members[0])
	}
	if ds.Members[1].Role != models.DefaultRole {
		t.Errorf("missing role = %q, want %q", ds.Members[1].Role, models.DefaultRole)
	}
}

// TestMemberBlockTermination verifies leading blanks are tolerated but a
// blank row after the block ends it, excluding trailing summary rows.
func TestMemberBlockTermination(t *testing.T) {
	g := memberGrid(
		[]string{"", ""},
		[]string{"Dorcas", "Chanteuse"},
		[]string{"", ""},
		[]string{"Rachel", "Chanteuse"}, // after terminator, ignored
	)
	p := newTestParser()
	ds := models.NewDataset()
	p.ProcessSheet("Membres", g, ds)

	if len(ds.Members) != 1 || ds.Members[0].Name != "Dorcas" {
		t.Errorf("members = %v, want only Dorcas", ds.Members)
	}
}

// TestMemberLegacyLayout verifies the fixed fallback layout (header row 1,
// name col 0, role col 1) when no member header exists in the first 20 rows.
func TestMemberLegacyLayout(t *testing.T) {
	g := grid.Grid{
		{"Équipe"},
		{"Nom", "Rôle"},
		{"Dorcas", "Chanteuse"},
		{"Samuel", "Musicien"},
	}
	p := newTestParser()
	ds := models.NewDataset()
	p.ProcessSheet("Membres", g, ds)

	if len(ds.Members) != 2 {
		t.Fatalf("members = %v, want 2", ds.Members)
	}
}

// TestMemberHeaderDrift verifies the header-driven strategy finds a moved
// name column and a role column elsewhere in the same row.
func TestMemberHeaderDrift(t *testing.T) {
	g := grid.Grid{
		{"", ""},
		{"", "", ""},
		{"", "Membres", "", "Type"},
		{"", "Dorcas", "", "Chanteuse"},
		{"", "Samuel", "", "Musicien"},
	}
	p := newTestParser()
	ds := models.NewDataset()
	p.ProcessSheet("Membres", g, ds)

	if len(ds.Members) != 2 {
		t.Fatalf("members = %v, want 2", ds.Members)
	}
	if ds.Members[1].Role != "Musicien" {
		t.Errorf("members[1] = %+v", ds.Members[1])
	}
}
