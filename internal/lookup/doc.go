// Package lookup queries external metadata services for tracks whose tags
// are incomplete.
//
// MusicBrainz is consulted first for title, album, and year; Last.fm fills
// genre from its community tags. Both clients rate-limit themselves, search
// hits are verified by edit distance before acceptance, and every outcome
// (including misses) lands in a JSON cache so repeat runs stay offline.
package lookup
