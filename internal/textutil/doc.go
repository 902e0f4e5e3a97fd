// Package textutil provides text normalization helpers shared by the tag,
// genre, and relocation code.
//
// The primary use cases are:
//   - Cleaning free text read from ID3 frames (NFC, control characters,
//     whitespace) before comparison and reporting
//   - Producing case-folded keys for genre and cache matching
//   - Sanitizing genre names into safe folder names
package textutil
