package lookup

import (
	"github.com/agnivade/levenshtein"

	"cratesort/internal/textutil"
)

// maxMatchDistance bounds how far a search hit may drift from the query
// before it is rejected as a wrong track.
const maxMatchDistance = 3

// matchKey normalizes an artist/title pair into a comparable string.
func matchKey(artist, title string) string {
	return textutil.FoldKey(artist) + "|" + textutil.FoldKey(title)
}

// verified reports whether a search hit plausibly is the queried track.
func verified(queryArtist, queryTitle, hitArtist, hitTitle string) bool {
	if hitArtist == "" && hitTitle == "" {
		return false
	}
	distance := levenshtein.ComputeDistance(
		matchKey(queryArtist, queryTitle),
		matchKey(hitArtist, hitTitle),
	)
	return distance <= maxMatchDistance
}
