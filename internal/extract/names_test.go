package extract

import "testing"

// TestNormalizeName verifies diacritic stripping, lowercasing, punctuation
// removal and the alias table.
func TestNormalizeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Dorcas", "dorcas"},
		{"DORCAS ", "dorcas"},
		{"Stéphanie", "stephanie"},
		{"Stephany", "stephanie"}, // alias
		{"N'Guessan", "nguessan"},
		{"Jean-Marc", "jeanmarc"},
	}
	for _, tt := range tests {
		if got := normalizeName(tt.in); got != tt.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestSameNameTiers verifies tier-1 full-name equivalence and the
// first-name-prefix fallback.
func TestSameNameTiers(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Dorcas", "dorcas", true},
		{"Stéphanie", "Stephanie", true},
		{"Dorcas Kamba", "Dorcas K.", true}, // first-name fallback
		{"Dorcas", "Grace", false},
		{"", "Dorcas", false},
		{"Jean-Marc Dupont", "jeanmarc dupont", true},
	}
	for _, tt := range tests {
		if got := SameName(tt.a, tt.b); got != tt.want {
			t.Errorf("SameName(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
