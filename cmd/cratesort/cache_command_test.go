package main

import (
	"testing"
	"time"

	"cratesort/internal/lookup"
)

func TestCacheClearRemovesEntries(t *testing.T) {
	env := setupCLITestEnv(t)

	seeded := lookup.NewCache(env.cfg.Paths.CachePath, nil)
	err := seeded.Store(lookup.CacheEntry{
		Key:      lookup.CacheKey("Blur", "Coffee And TV"),
		Found:    true,
		Result:   lookup.Result{Genre: "britpop"},
		CachedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	out, _, err := runCLI(t, []string{"cache", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed 1 cached lookup results")

	reloaded := lookup.NewCache(env.cfg.Paths.CachePath, nil)
	if reloaded.Count() != 0 {
		t.Fatalf("cache still holds %d entries", reloaded.Count())
	}
}

func TestCacheClearReportsEmptyCache(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"cache", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Lookup cache is already empty")
}
