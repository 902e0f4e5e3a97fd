package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cratesort/internal/testsupport"
)

func TestCleanupCommandRemovesEmptyGenreFolders(t *testing.T) {
	env := setupCLITestEnv(t)
	empty := filepath.Join(env.musicDir, "Rock")
	if err := os.MkdirAll(empty, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(env.musicDir, "Bootlegs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	testsupport.WriteMP3(t, filepath.Join(env.musicDir, "Jazz", "take five.mp3"))

	out, _, err := runCLI(t, []string{"cleanup", env.musicDir}, env.configPath)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	requireContains(t, out, "Removed "+empty)
	requireContains(t, out, "1 empty genre folders removed")

	if _, err := os.Stat(empty); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected Rock removed, stat err: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.musicDir, "Jazz")); err != nil {
		t.Fatalf("expected Jazz to survive: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.musicDir, "Bootlegs")); err != nil {
		t.Fatalf("expected Bootlegs to survive: %v", err)
	}
}

func TestCleanupCommandReportsNothingToDo(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"cleanup", env.musicDir}, env.configPath)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	requireContains(t, out, "No empty genre folders found")
}
