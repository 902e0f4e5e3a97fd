package testsupport

import (
	"path/filepath"
	"testing"

	"cratesort/internal/config"
)

// ConfigOption mutates the generated test configuration before its
// directories are created.
type ConfigOption func(*config.Config)

// NewConfig produces a config rooted in a unique temp directory per test.
// External lookup is disabled so tests stay offline unless they opt in.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CachePath = filepath.Join(base, "cache", "lookup.json")
	cfg.Lookup.Enabled = false
	cfg.Lookup.TimeoutSeconds = 2

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure config directories: %v", err)
	}
	return &cfg
}

// WithLookup enables external lookup against the given endpoints.
func WithLookup(musicBrainzURL, lastFMURL, apiKey string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Lookup.Enabled = true
		cfg.Lookup.MusicBrainzURL = musicBrainzURL
		cfg.Lookup.LastFMURL = lastFMURL
		cfg.Lookup.LastFMAPIKey = apiKey
	}
}

// WithReportDir routes run reports away from the scanned directory.
func WithReportDir(dir string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.ReportDir = dir
	}
}

// BaseDir returns the temp directory backing a NewConfig result.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
