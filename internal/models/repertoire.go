package models

// Section is one of the four fixed song-list categories a repertoire sheet
// belongs to.
type Section string

const (
	SectionEntree    Section = "Entrée"
	SectionSE        Section = "S-E"
	SectionLouange   Section = "Louange"
	SectionAdoration Section = "Adoration"
)

// Sections lists all song sections in presentation order.
var Sections = []Section{SectionEntree, SectionSE, SectionLouange, SectionAdoration}

// LangueUndefined is the sentinel stored when a song row has no language cell.
const LangueUndefined = "undefined"

// Song is one repertoire entry recovered from a song-section sheet.
type Song struct {
	// ID is unique within a load: "<Section>_<source row index>".
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	OriginalKey string  `json:"originalKey"`
	Section     Section `json:"section"`
	// LastSang is an ISO date (no time), empty when the source cell did not
	// parse as a date.
	LastSang string `json:"lastSang,omitempty"`
	// DaysPast is nil (not zero) when the source cell was not numeric.
	DaysPast       *int   `json:"daysPast,omitempty"`
	CreuSommet     string `json:"creuSommet,omitempty"`
	Langue         string `json:"langue"`
	HasLyrics      bool   `json:"hasLyrics"`
	HasProgression bool   `json:"hasProgression"`
	// MemberKeys maps member display name to that member's personal key for
	// this song.
	MemberKeys map[string]string `json:"memberKeys"`
	// Musicians maps "firstname instrument" to true for assigned columns.
	Musicians map[string]bool `json:"musicians"`
}

// Member is one roster entry.
type Member struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// DefaultRole is used when a roster row has no role cell.
const DefaultRole = "membre"

// VocalRange holds the tessitura fields for one singer. Any subset may be
// empty.
type VocalRange struct {
	VoiceType string `json:"voiceType"`
	LowChest  string `json:"lowChest"`
	HighChest string `json:"highChest"`
	HeadVoice string `json:"headVoice"`
	PrimaVoce string `json:"primaVoce"`
}

// Harmony part labels, fixed set. Alto 2 and Tenor share one combined part.
const (
	PartSoprano    = "Soprano"
	PartAlto1      = "Alto 1"
	PartAlto2Tenor = "Alto 2/Tenor"
	PartBass       = "Bass"
)

// HarmonyParts lists the four fixed harmony-part labels.
var HarmonyParts = []string{PartSoprano, PartAlto1, PartAlto2Tenor, PartBass}

// Dataset is the normalized output of a full load. All collections are
// non-nil, even when the corresponding sheet was missing or empty, and a
// JSON round-trip reproduces the dataset verbatim.
type Dataset struct {
	Songs   []Song   `json:"songs"`
	Members []Member `json:"members"`
	// Progressions maps normalized-lowercase song title to multi-line
	// chord-progression text.
	Progressions map[string]string `json:"progressions"`
	// VocalRanges is keyed by raw member name.
	VocalRanges map[string]VocalRange `json:"vocalRanges"`
	// VocalGroups maps lead-singer name to harmony-part label to the ordered
	// member names on that part. Every lead carries all four part keys.
	VocalGroups map[string]map[string][]string `json:"vocalGroups"`
	// Tasks maps member name to task names in source row order.
	Tasks map[string][]string `json:"tasks"`
}

// NewDataset returns an empty dataset with all collections allocated.
func NewDataset() *Dataset {
	return &Dataset{
		Songs:        []Song{},
		Members:      []Member{},
		Progressions: map[string]string{},
		VocalRanges:  map[string]VocalRange{},
		VocalGroups:  map[string]map[string][]string{},
		Tasks:        map[string][]string{},
	}
}

// SongsBySection returns the songs belonging to the given section, in load
// order.
func (d *Dataset) SongsBySection(section Section) []Song {
	out := []Song{}
	for _, s := range d.Songs {
		if s.Section == section {
			out = append(out, s)
		}
	}
	return out
}
