package extract

import "repertoire/internal/models"

// SheetKind identifies which extractor handles a sheet.
type SheetKind int

const (
	KindNone SheetKind = iota
	KindSongs
	KindProgressions
	KindMembers
	KindVocalRanges
	KindVocalGroups
	KindTasks
)

func (k SheetKind) String() string {
	switch k {
	case KindSongs:
		return "songs"
	case KindProgressions:
		return "progressions"
	case KindMembers:
		return "members"
	case KindVocalRanges:
		return "vocal-ranges"
	case KindVocalGroups:
		return "vocal-groups"
	case KindTasks:
		return "tasks"
	default:
		return "none"
	}
}

// songSheets maps normalized sheet names to their section.
var songSheets = map[string]models.Section{
	"entree":    models.SectionEntree,
	"s-e":       models.SectionSE,
	"se":        models.SectionSE,
	"louange":   models.SectionLouange,
	"adoration": models.SectionAdoration,
}

// otherSheets maps normalized sheet names (including known synonyms) to
// their kind.
var otherSheets = map[string]SheetKind{
	"progressions":   KindProgressions,
	"progression":    KindProgressions,
	"membres":        KindMembers,
	"members":        KindMembers,
	"tessiture":      KindVocalRanges,
	"tessitures":     KindVocalRanges,
	"vocal range":    KindVocalRanges,
	"groupes vocal":  KindVocalGroups,
	"groupes vocaux": KindVocalGroups,
	"taches":         KindTasks,
	"tasks":          KindTasks,
}

// Classify maps a sheet display name to its logical kind, tolerant of
// accent, case and whitespace variation. Unrecognized names return KindNone;
// unknown sheets are ignored by policy, never treated as an error. For
// song sheets the matched section is also returned.
func Classify(sheetName string) (SheetKind, models.Section) {
	n := normalizeLabel(sheetName)
	if section, ok := songSheets[n]; ok {
		return KindSongs, section
	}
	if kind, ok := otherSheets[n]; ok {
		return kind, ""
	}
	return KindNone, ""
}
