package tags_test

import (
	"path/filepath"
	"testing"

	"cratesort/internal/tags"
	"cratesort/internal/testsupport"
)

func TestReadFileEmptyTag(t *testing.T) {
	path := testsupport.WriteMP3(t, filepath.Join(t.TempDir(), "bare.mp3"))

	meta, err := tags.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !meta.IsZero() {
		t.Fatalf("expected empty metadata, got %+v", meta)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := tags.ReadFile(filepath.Join(t.TempDir(), "absent.mp3")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteIfChangedRoundTrip(t *testing.T) {
	path := testsupport.WriteMP3(t, filepath.Join(t.TempDir(), "track.mp3"))

	resolved := tags.TrackMetadata{
		Title:  "So What",
		Artist: "Miles Davis",
		Album:  "Kind of Blue",
		Genre:  "Jazz",
		Year:   1959,
		BPM:    136,
	}
	outcome, err := tags.WriteIfChanged(path, tags.TrackMetadata{}, resolved)
	if err != nil {
		t.Fatalf("WriteIfChanged failed: %v", err)
	}
	if outcome != tags.WriteWritten {
		t.Fatalf("outcome = %s, want %s", outcome, tags.WriteWritten)
	}

	got, err := tags.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile after write failed: %v", err)
	}
	if got != resolved {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, resolved)
	}
}

func TestWriteIfChangedUnchanged(t *testing.T) {
	meta := tags.TrackMetadata{Title: "Song 2", Artist: "Blur"}
	path := testsupport.WriteTaggedMP3(t, filepath.Join(t.TempDir(), "track.mp3"), meta)

	outcome, err := tags.WriteIfChanged(path, meta, meta)
	if err != nil {
		t.Fatalf("WriteIfChanged failed: %v", err)
	}
	if outcome != tags.WriteUnchanged {
		t.Fatalf("outcome = %s, want %s", outcome, tags.WriteUnchanged)
	}
}

func TestWriteIfChangedFillsOnlyNewFields(t *testing.T) {
	existing := tags.TrackMetadata{Title: "Coffee And TV", Artist: "Blur"}
	path := testsupport.WriteTaggedMP3(t, filepath.Join(t.TempDir(), "track.mp3"), existing)

	resolved := existing
	resolved.Genre = "Alternative"
	resolved.Year = 1999

	outcome, err := tags.WriteIfChanged(path, existing, resolved)
	if err != nil {
		t.Fatalf("WriteIfChanged failed: %v", err)
	}
	if outcome != tags.WriteWritten {
		t.Fatalf("outcome = %s, want %s", outcome, tags.WriteWritten)
	}

	got, err := tags.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile after write failed: %v", err)
	}
	if got != resolved {
		t.Fatalf("got %+v want %+v", got, resolved)
	}
}

func TestWriteIfChangedMissingFile(t *testing.T) {
	outcome, err := tags.WriteIfChanged(
		filepath.Join(t.TempDir(), "absent.mp3"),
		tags.TrackMetadata{},
		tags.TrackMetadata{Title: "X"},
	)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if outcome != tags.WriteFailed {
		t.Fatalf("outcome = %s, want %s", outcome, tags.WriteFailed)
	}
}

func TestChanged(t *testing.T) {
	current := tags.TrackMetadata{Title: "A"}
	if tags.Changed(current, current) {
		t.Error("identical metadata should not count as changed")
	}
	resolved := current
	resolved.Genre = "Rock"
	if !tags.Changed(current, resolved) {
		t.Error("added genre should count as changed")
	}
}
