// Package resolve merges track metadata from its three sources.
package resolve

import (
	"time"

	"cratesort/internal/filename"
	"cratesort/internal/tags"
	"cratesort/internal/textutil"
)

// BPM values outside this range are treated as tag noise and dropped.
const (
	minBPM = 20
	maxBPM = 300
)

// Resolve merges metadata field by field with precedence existing > external
// > filename-derived. A present field is never replaced by a lower-precedence
// source. BPM is exempt from filename derivation. The merged result is
// validated: implausible years and BPM values are dropped and text fields
// cleaned. Deterministic given the same inputs.
func Resolve(existing, external tags.TrackMetadata, fromName filename.Guess) tags.TrackMetadata {
	merged := tags.TrackMetadata{
		Title:  firstNonEmpty(existing.Title, external.Title, fromName.Title),
		Artist: firstNonEmpty(existing.Artist, external.Artist, fromName.Artist),
		Album:  firstNonEmpty(existing.Album, external.Album),
		Genre:  firstNonEmpty(existing.Genre, external.Genre),
		Year:   firstPositive(existing.Year, external.Year, fromName.Year),
		BPM:    firstPositive(existing.BPM, external.BPM),
	}
	return validate(merged)
}

// QueryKeys returns the artist and title used to drive an external lookup,
// preferring existing tag values over filename guesses. Empty values mean the
// lookup cannot be attempted.
func QueryKeys(existing tags.TrackMetadata, fromName filename.Guess) (artist, title string) {
	return firstNonEmpty(existing.Artist, fromName.Artist), firstNonEmpty(existing.Title, fromName.Title)
}

func validate(meta tags.TrackMetadata) tags.TrackMetadata {
	meta.Title = textutil.CleanTag(meta.Title)
	meta.Artist = textutil.CleanTag(meta.Artist)
	meta.Album = textutil.CleanTag(meta.Album)
	meta.Genre = textutil.CleanTag(meta.Genre)
	if meta.Year < 1900 || meta.Year > time.Now().Year()+1 {
		meta.Year = 0
	}
	if meta.BPM < minBPM || meta.BPM > maxBPM {
		meta.BPM = 0
	}
	return meta
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
