package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripTransformer removes diacritic marks via Unicode decomposition.
var stripTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stripDiacritics returns s with combining marks removed ("Entrée" → "Entree").
func stripDiacritics(s string) string {
	out, _, err := transform.String(stripTransformer, s)
	if err != nil {
		return s
	}
	return out
}

// normalizeLabel prepares a sheet name or header label for matching:
// diacritics stripped, whitespace collapsed to single spaces, lowercased.
func normalizeLabel(s string) string {
	s = stripDiacritics(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// nameAliases maps irregular spellings to their canonical normalized form.
// Keys and values are in normalizeName form.
var nameAliases = map[string]string{
	"dorcase":   "dorcas",
	"stephany":  "stephanie",
	"jonatan":   "jonathan",
	"emmanuela": "emmanuella",
}

// normalizeName is the tier-1 person-name normalization: diacritics stripped,
// lowercased, all non-alphanumerics removed, then the alias table applied.
func normalizeName(s string) string {
	s = strings.ToLower(stripDiacritics(s))
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	n := b.String()
	if alias, ok := nameAliases[n]; ok {
		return alias
	}
	return n
}

// firstName returns the normalized first whitespace-separated token of a name.
func firstName(s string) string {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return ""
	}
	return normalizeName(fields[0])
}

// SameName reports whether two person names refer to the same member.
// Tier 1 compares fully normalized names; when that fails the first-name
// prefix fallback compares normalized first names only.
func SameName(a, b string) bool {
	na, nb := normalizeName(a), normalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	return firstName(a) == firstName(b)
}
