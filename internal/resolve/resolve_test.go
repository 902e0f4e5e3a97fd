package resolve

import (
	"testing"

	"cratesort/internal/filename"
	"cratesort/internal/tags"
)

func TestResolvePrecedence(t *testing.T) {
	existing := tags.TrackMetadata{Title: "Tag Title", Genre: "Rock", Year: 1994}
	external := tags.TrackMetadata{Title: "DB Title", Artist: "DB Artist", Album: "DB Album", Year: 2001}
	fromName := filename.Guess{Title: "File Title", Artist: "File Artist", Year: 1980}

	got := Resolve(existing, external, fromName)

	if got.Title != "Tag Title" {
		t.Errorf("title = %q, want existing value", got.Title)
	}
	if got.Artist != "DB Artist" {
		t.Errorf("artist = %q, want external value", got.Artist)
	}
	if got.Album != "DB Album" {
		t.Errorf("album = %q, want external value", got.Album)
	}
	if got.Genre != "Rock" {
		t.Errorf("genre = %q, want existing value", got.Genre)
	}
	if got.Year != 1994 {
		t.Errorf("year = %d, want existing value", got.Year)
	}
}

func TestResolveNeverOverwritesPresentFields(t *testing.T) {
	existing := tags.TrackMetadata{Title: "A", Artist: "B", Album: "C", Genre: "D", Year: 1990, BPM: 120}
	external := tags.TrackMetadata{Title: "X", Artist: "Y", Album: "Z", Genre: "W", Year: 2000, BPM: 90}
	fromName := filename.Guess{Title: "F", Artist: "G", Year: 2010}

	if got := Resolve(existing, external, fromName); got != existing {
		t.Fatalf("existing fields replaced: got %+v want %+v", got, existing)
	}
}

func TestResolveFillsFromFilename(t *testing.T) {
	fromName := filename.Guess{Title: "Song Y", Artist: "Artist X", Year: 1999}

	got := Resolve(tags.TrackMetadata{}, tags.TrackMetadata{}, fromName)

	want := tags.TrackMetadata{Title: "Song Y", Artist: "Artist X", Year: 1999}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestResolveBPMNeverFromFilename(t *testing.T) {
	got := Resolve(tags.TrackMetadata{}, tags.TrackMetadata{}, filename.Guess{Title: "128"})
	if got.BPM != 0 {
		t.Fatalf("bpm = %d, want 0", got.BPM)
	}

	got = Resolve(tags.TrackMetadata{}, tags.TrackMetadata{BPM: 128}, filename.Guess{})
	if got.BPM != 128 {
		t.Fatalf("bpm = %d, want external value 128", got.BPM)
	}
}

func TestResolveDropsImplausibleValues(t *testing.T) {
	existing := tags.TrackMetadata{Year: 1850, BPM: 7}

	got := Resolve(existing, tags.TrackMetadata{}, filename.Guess{})

	if got.Year != 0 {
		t.Errorf("year = %d, want dropped", got.Year)
	}
	if got.BPM != 0 {
		t.Errorf("bpm = %d, want dropped", got.BPM)
	}

	got = Resolve(tags.TrackMetadata{}, tags.TrackMetadata{BPM: 301}, filename.Guess{})
	if got.BPM != 0 {
		t.Errorf("bpm = %d, want dropped above range", got.BPM)
	}
}

func TestResolveCleansText(t *testing.T) {
	existing := tags.TrackMetadata{Title: "  So   What \x00", Artist: "Miles\tDavis"}

	got := Resolve(existing, tags.TrackMetadata{}, filename.Guess{})

	if got.Title != "So What" {
		t.Errorf("title = %q, want cleaned", got.Title)
	}
	if got.Artist != "Miles Davis" {
		t.Errorf("artist = %q, want cleaned", got.Artist)
	}
}

func TestResolveDeterministic(t *testing.T) {
	existing := tags.TrackMetadata{Title: "T"}
	external := tags.TrackMetadata{Artist: "A"}
	fromName := filename.Guess{Year: 2001}

	first := Resolve(existing, external, fromName)
	for i := 0; i < 5; i++ {
		if got := Resolve(existing, external, fromName); got != first {
			t.Fatalf("resolution unstable: %+v then %+v", first, got)
		}
	}
}

func TestQueryKeys(t *testing.T) {
	existing := tags.TrackMetadata{Artist: "Tag Artist"}
	fromName := filename.Guess{Artist: "File Artist", Title: "File Title"}

	artist, title := QueryKeys(existing, fromName)
	if artist != "Tag Artist" {
		t.Errorf("artist = %q, want existing value preferred", artist)
	}
	if title != "File Title" {
		t.Errorf("title = %q, want filename fallback", title)
	}

	artist, title = QueryKeys(tags.TrackMetadata{}, filename.Guess{})
	if artist != "" || title != "" {
		t.Errorf("expected empty keys, got %q %q", artist, title)
	}
}
