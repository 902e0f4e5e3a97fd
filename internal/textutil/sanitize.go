package textutil

import "strings"

// fileNameReplacer substitutes filesystem-unsafe characters with underscores.
// The replaced set matches the characters rejected by Windows and awkward on
// POSIX shells: < > : " / \ | ? *
var fileNameReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	"\"", "_",
	"/", "_",
	"\\", "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// SanitizeFileName replaces filesystem-unsafe characters in a file or folder
// name with underscores and trims surrounding whitespace. Control characters
// are dropped. Returns "unknown" when nothing printable remains.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	replaced := fileNameReplacer.Replace(name)
	var b strings.Builder
	b.Grow(len(replaced))
	for _, r := range replaced {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "unknown"
	}
	return out
}
