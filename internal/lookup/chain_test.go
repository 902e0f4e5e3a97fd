package lookup

import (
	"context"
	"errors"
	"testing"

	"cratesort/internal/logging"
)

func TestChainFirstHitWins(t *testing.T) {
	first := &fakeProvider{name: "first", result: Result{Genre: "rock"}, found: true}
	second := &fakeProvider{name: "second", result: Result{Genre: "pop"}, found: true}
	chain := NewChain(logging.NewNop(), first, second)

	result, found, err := chain.Lookup(context.Background(), "A", "T")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !found || result.Genre != "rock" {
		t.Fatalf("result = %+v found=%v, want first provider's hit", result, found)
	}
	if second.calls != 0 {
		t.Fatalf("second provider called %d times, want 0", second.calls)
	}
}

func TestChainFallsBackOnMiss(t *testing.T) {
	first := &fakeProvider{name: "first"}
	second := &fakeProvider{name: "second", result: Result{Genre: "pop"}, found: true}
	chain := NewChain(logging.NewNop(), first, second)

	result, found, err := chain.Lookup(context.Background(), "A", "T")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !found || result.Genre != "pop" {
		t.Fatalf("result = %+v found=%v, want fallback hit", result, found)
	}
}

func TestChainFallsBackOnFailure(t *testing.T) {
	first := &fakeProvider{name: "first", err: errors.New("unreachable")}
	second := &fakeProvider{name: "second", result: Result{Album: "X"}, found: true}
	chain := NewChain(logging.NewNop(), first, second)

	result, found, err := chain.Lookup(context.Background(), "A", "T")
	if err != nil {
		t.Fatalf("chain must swallow provider failures, got %v", err)
	}
	if !found || result.Album != "X" {
		t.Fatalf("result = %+v found=%v, want fallback hit", result, found)
	}
}

func TestChainAllMissesIsMiss(t *testing.T) {
	chain := NewChain(logging.NewNop(), &fakeProvider{name: "a"}, &fakeProvider{name: "b", err: errors.New("down")})

	_, found, err := chain.Lookup(context.Background(), "A", "T")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if found {
		t.Fatal("expected overall miss")
	}
}

func TestVerified(t *testing.T) {
	tests := []struct {
		queryArtist, queryTitle string
		hitArtist, hitTitle     string
		expected                bool
	}{
		{"Blur", "Song 2", "Blur", "Song 2", true},
		{"Blur", "Song 2", "blur", "song 2", true},
		{"Blur", "Song 2", "Blur", "Song 22", true},
		{"Blur", "Song 2", "Somebody Else", "Completely Different", false},
		{"Blur", "Song 2", "", "", false},
	}
	for _, tc := range tests {
		got := verified(tc.queryArtist, tc.queryTitle, tc.hitArtist, tc.hitTitle)
		if got != tc.expected {
			t.Errorf("verified(%q/%q vs %q/%q) = %v, want %v",
				tc.queryArtist, tc.queryTitle, tc.hitArtist, tc.hitTitle, got, tc.expected)
		}
	}
}
