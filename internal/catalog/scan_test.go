package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"cratesort/internal/catalog"
	"cratesort/internal/testsupport"
)

func TestScanFindsTopLevelMP3sOnly(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteMP3(t, filepath.Join(root, "b.mp3"))
	testsupport.WriteMP3(t, filepath.Join(root, "A.MP3"))
	testsupport.WriteMP3(t, filepath.Join(root, ".stash.mp3"))
	testsupport.WriteFile(t, filepath.Join(root, "notes.txt"), 16)
	testsupport.WriteMP3(t, filepath.Join(root, "Rock", "already sorted.mp3"))

	files, err := catalog.Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{
		filepath.Join(root, "A.MP3"),
		filepath.Join(root, "b.mp3"),
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := catalog.Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestAnalyzeCollectionCountsSubfolders(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteMP3(t, filepath.Join(root, "Rock", "one.mp3"))
	testsupport.WriteMP3(t, filepath.Join(root, "Rock", "two.MP3"))
	testsupport.WriteMP3(t, filepath.Join(root, "Jazz", "three.mp3"))
	testsupport.WriteMP3(t, filepath.Join(root, ".trash", "hidden.mp3"))
	testsupport.WriteMP3(t, filepath.Join(root, "loose.mp3"))
	if err := os.MkdirAll(filepath.Join(root, "Pop"), 0o755); err != nil {
		t.Fatal(err)
	}

	counts, err := catalog.AnalyzeCollection(root)
	if err != nil {
		t.Fatalf("AnalyzeCollection: %v", err)
	}
	want := map[string]int{"Rock": 2, "Jazz": 1}
	if len(counts) != len(want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
	for name, count := range want {
		if counts[name] != count {
			t.Fatalf("counts[%q] = %d, want %d", name, counts[name], count)
		}
	}
}
