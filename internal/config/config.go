package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// LogDir receives one timestamped log file per run.
	LogDir string `toml:"log_dir"`
	// ReportDir receives the JSON run reports. Empty means the scanned
	// directory itself, matching where users expect the report to land.
	ReportDir string `toml:"report_dir"`
	// CachePath is the JSON file holding cached external lookup results.
	CachePath string `toml:"cache_path"`
}

// Lookup contains configuration for the external metadata sources.
type Lookup struct {
	Enabled        bool   `toml:"enabled"`
	MusicBrainzURL string `toml:"musicbrainz_url"`
	LastFMURL      string `toml:"lastfm_url"`
	// LastFMAPIKey enables the Last.fm fallback. Falls back to the
	// LASTFM_API_KEY environment variable; without a key the fallback is
	// silently skipped.
	LastFMAPIKey   string `toml:"lastfm_api_key"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxAttempts    int    `toml:"max_attempts"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for the cataloger.
//
// Configuration sections by subsystem:
//   - Paths: log, report, and lookup cache locations
//   - Lookup: MusicBrainz/Last.fm endpoints, credentials, and timeouts
//   - Logging: log format, level, and retention
type Config struct {
	Paths   Paths   `toml:"paths"`
	Lookup  Lookup  `toml:"lookup"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath reports where cratesort looks for its config file when
// no --config flag is given.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/cratesort/config.toml")
}

// Load resolves the configuration file location, layers the file over the
// defaults, and validates the result. Path fields in the returned config are
// expanded and absolute. A missing file is not an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		raw, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath picks the config file to use. An explicit path wins even
// when the file does not exist yet; otherwise the default location is probed
// first and a cratesort.toml in the working directory second.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return expanded, false, nil
		case err != nil:
			return "", false, fmt.Errorf("stat config: %w", err)
		case info.IsDir():
			return "", false, fmt.Errorf("config path %q is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("cratesort.toml")
	if err != nil {
		return "", false, err
	}

	for _, candidate := range []string{defaultPath, projectPath} {
		if isRegularFile(candidate) {
			return candidate, true, nil
		}
	}
	return defaultPath, false, nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// EnsureDirectories creates the directories a run needs before logging starts.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if cacheDir := filepath.Dir(c.Paths.CachePath); c.Paths.CachePath != "" && cacheDir != "." {
		dirs = append(dirs, cacheDir)
	}
	if strings.TrimSpace(c.Paths.ReportDir) != "" {
		dirs = append(dirs, c.Paths.ReportDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", nil
	}
	if rest, ok := strings.CutPrefix(pathValue, "~"); ok && (rest == "" || rest[0] == '/' || rest[0] == '\\') {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = filepath.Join(home, strings.TrimLeft(rest, `/\`))
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the embedded sample config to path, creating parent
// directories as needed.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
