// Package filename recovers track metadata from MP3 file name stems.
package filename

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Guess holds the fields recoverable from a file name stem. Zero values mean
// the field could not be extracted. BPM, album, and genre are never guessed
// from text.
type Guess struct {
	Title  string
	Artist string
	Year   int
}

// separatorPattern is the " - " token between segments, tolerant of extra
// spacing around the hyphen.
var separatorPattern = regexp.MustCompile(`\s+-\s+`)

// rules are tried in order of specificity; the first structural match wins.
var rules = []func(segments []string) (Guess, bool){
	extractYearArtistTitle,
	extractArtistTitle,
	extractTitleOnly,
}

// Extract recovers partial metadata from a file name stem (the base name
// without extension).
func Extract(stem string) Guess {
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return Guess{}
	}
	segments := separatorPattern.Split(stem, -1)
	for _, extract := range rules {
		if guess, ok := extract(segments); ok {
			return guess
		}
	}
	return Guess{}
}

// extractYearArtistTitle handles "Year - Artist - Title". Extra separators
// beyond the first two stay inside the title.
func extractYearArtistTitle(segments []string) (Guess, bool) {
	if len(segments) < 3 {
		return Guess{}, false
	}
	year, ok := plausibleYear(segments[0])
	if !ok {
		return Guess{}, false
	}
	artist := strings.TrimSpace(segments[1])
	title := strings.TrimSpace(strings.Join(segments[2:], " - "))
	if artist == "" || title == "" {
		return Guess{}, false
	}
	return Guess{Title: title, Artist: artist, Year: year}, true
}

// extractArtistTitle handles "Artist - Title", collapsing any further
// separators into the title.
func extractArtistTitle(segments []string) (Guess, bool) {
	if len(segments) < 2 {
		return Guess{}, false
	}
	artist := strings.TrimSpace(segments[0])
	title := strings.TrimSpace(strings.Join(segments[1:], " - "))
	if artist == "" || title == "" {
		return Guess{}, false
	}
	return Guess{Title: title, Artist: artist}, true
}

// extractTitleOnly treats the whole stem as the title.
func extractTitleOnly(segments []string) (Guess, bool) {
	title := strings.TrimSpace(strings.Join(segments, " - "))
	if title == "" {
		return Guess{}, false
	}
	return Guess{Title: title}, true
}

// plausibleYear accepts a 4-digit token between 1900 and next year.
func plausibleYear(token string) (int, bool) {
	token = strings.TrimSpace(token)
	if len(token) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	if year < 1900 || year > time.Now().Year()+1 {
		return 0, false
	}
	return year, true
}
