package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var foldCaser = cases.Fold()

// CleanTag normalizes free text read from ID3 frames: Unicode NFC, control
// characters dropped, interior whitespace collapsed, surrounding whitespace
// trimmed. Tag frames in the wild carry NUL padding and decomposed
// sequences from other tools; comparisons and report output expect neither.
func CleanTag(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return CollapseSpaces(b.String())
}

// FoldKey produces a case-folded, NFC-normalized, space-collapsed key for
// case-insensitive matching of genre names and lookup cache entries.
func FoldKey(s string) string {
	return foldCaser.String(CleanTag(s))
}

// CollapseSpaces trims the string and collapses runs of whitespace into
// single spaces.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Tokenize splits text into case-folded letter/digit tokens. Used for the
// word-overlap pass of genre matching, so short tokens are kept.
func Tokenize(text string) []string {
	folded := foldCaser.String(text)
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
