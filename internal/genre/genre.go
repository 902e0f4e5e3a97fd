package genre

import (
	"strings"

	"cratesort/internal/textutil"
)

// Genre is a canonical taxonomy entry used for folder naming.
type Genre string

const (
	Rock         Genre = "Rock"
	Pop          Genre = "Pop"
	Jazz         Genre = "Jazz"
	Classical    Genre = "Classical"
	HipHop       Genre = "Hip Hop"
	Electronic   Genre = "Electronic"
	Dance        Genre = "Dance"
	Country      Genre = "Country"
	Blues        Genre = "Blues"
	RnB          Genre = "R&B"
	Reggae       Genre = "Reggae"
	Folk         Genre = "Folk"
	Metal        Genre = "Metal"
	Punk         Genre = "Punk"
	Alternative  Genre = "Alternative"
	Indie        Genre = "Indie"
	Soundtrack   Genre = "Soundtrack"
	WorldMusic   Genre = "World Music"
	Ambient      Genre = "Ambient"
	Experimental Genre = "Experimental"

	// Unrecognized is the terminal classification for raw strings that match
	// nothing in the taxonomy. It is a valid result, not an error.
	Unrecognized Genre = "unrecognized"
)

type entry struct {
	canonical Genre
	synonyms  []string // pre-folded variants mapping to canonical
}

// taxonomy order decides which entry wins when the fallback scans find more
// than one candidate.
var taxonomy = []entry{
	{Rock, []string{"rock and roll", "rock & roll", "rock n roll", "classic rock", "hard rock", "soft rock", "folk rock", "progressive rock", "prog rock", "alternative rock", "indie rock"}},
	{Pop, []string{"pop rock", "indie pop", "electropop", "synthpop", "synth-pop", "dance pop", "k-pop", "kpop"}},
	{Jazz, []string{"smooth jazz", "fusion", "bebop", "swing", "big band"}},
	{Classical, []string{"classic", "orchestra", "orchestral", "symphony", "opera", "baroque"}},
	{HipHop, []string{"hip-hop", "hiphop", "rap", "trap", "gangsta rap"}},
	{Electronic, []string{"electro", "electronica", "techno", "house", "trance", "edm", "dubstep", "drum and bass", "drum & bass", "dnb", "idm", "breakbeat"}},
	{Dance, []string{"disco", "eurodance", "club"}},
	{Country, []string{"bluegrass", "honky tonk"}},
	{Blues, []string{"delta blues", "chicago blues"}},
	{RnB, []string{"rnb", "r'n'b", "r n b", "soul", "neo soul", "neo-soul", "funk", "motown", "rhythm and blues", "rhythm & blues"}},
	{Reggae, []string{"dancehall", "dub", "ska", "roots reggae"}},
	{Folk, []string{"acoustic", "singer-songwriter", "americana", "traditional"}},
	{Metal, []string{"heavy metal", "death metal", "black metal", "thrash metal", "thrash", "doom metal", "nu metal", "metalcore"}},
	{Punk, []string{"punk rock", "hardcore punk", "pop punk", "post-punk"}},
	{Alternative, []string{"alt", "grunge", "shoegaze"}},
	{Indie, []string{"independent", "lo-fi", "lofi"}},
	{Soundtrack, []string{"ost", "original soundtrack", "score", "film score", "movie soundtrack"}},
	{WorldMusic, []string{"world", "worldbeat", "world beat", "latin", "afrobeat"}},
	{Ambient, []string{"chillout", "chill out", "chill-out", "downtempo", "new age", "drone"}},
	{Experimental, []string{"avant-garde", "avantgarde", "noise"}},
}

// Index structures built at init time.
var (
	byKey       map[string]Genre
	orderedKeys []string
)

func init() {
	byKey = make(map[string]Genre, len(taxonomy)*4)
	for _, e := range taxonomy {
		keys := append([]string{textutil.FoldKey(string(e.canonical))}, e.synonyms...)
		for _, key := range keys {
			if _, exists := byKey[key]; !exists {
				byKey[key] = e.canonical
				orderedKeys = append(orderedKeys, key)
			}
		}
	}
}

// Normalize maps a raw genre string to a canonical taxonomy entry. Matching is
// case-insensitive and whitespace-tolerant. Lookup proceeds from exact match
// through substring containment to per-word matching; the first hit in
// taxonomy order wins. Anything that survives all three passes is
// Unrecognized.
func Normalize(raw string) Genre {
	key := textutil.FoldKey(raw)
	if key == "" {
		return Unrecognized
	}

	if g, ok := byKey[key]; ok {
		return g
	}

	for _, known := range orderedKeys {
		if strings.Contains(key, known) || strings.Contains(known, key) {
			return byKey[known]
		}
	}

	for _, word := range strings.Fields(key) {
		if g, ok := byKey[word]; ok {
			return g
		}
	}

	return Unrecognized
}

// Canonical returns the taxonomy entries in their fixed order. The sentinel
// Unrecognized is not included.
func Canonical() []Genre {
	out := make([]Genre, len(taxonomy))
	for i, e := range taxonomy {
		out[i] = e.canonical
	}
	return out
}

// Recognized reports whether g is a taxonomy entry rather than the sentinel.
func (g Genre) Recognized() bool {
	return g != "" && g != Unrecognized
}

// FolderName returns the sanitized directory name files of this genre are
// relocated into.
func (g Genre) FolderName() string {
	return textutil.SanitizeFileName(string(g))
}

func (g Genre) String() string {
	return string(g)
}
