package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"cratesort/internal/tags"
)

// WriteFile fills the target path with size bytes of printable filler. Used
// for the non-MP3 bystanders a scan must step around. A size <= 0 writes a
// single byte.
func WriteFile(t testing.TB, path string, size int) string {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	const filler = "cratesort fixture "
	data := make([]byte, size)
	for i := range data {
		data[i] = filler[i%len(filler)]
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteMP3 creates a minimal MP3 file at path: an empty ID3v2.4 tag header
// followed by a few audio-like frame bytes. Enough for the tag reader and
// writer to operate on; not playable audio.
func WriteMP3(t testing.TB, path string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	header := []byte{'I', 'D', '3', 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	audio := []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00}
	if err := os.WriteFile(path, append(header, audio...), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteTaggedMP3 creates a minimal MP3 file at path carrying the given tag
// fields.
func WriteTaggedMP3(t testing.TB, path string, meta tags.TrackMetadata) string {
	t.Helper()

	WriteMP3(t, path)
	outcome, err := tags.WriteIfChanged(path, tags.TrackMetadata{}, meta)
	if err != nil {
		t.Fatalf("tag fixture %s: %v", path, err)
	}
	if outcome != tags.WriteWritten {
		t.Fatalf("tag fixture %s: outcome %s", path, outcome)
	}
	return path
}
