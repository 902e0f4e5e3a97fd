package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLookup(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizePaths() error {
	logDir, err := expandPath(c.Paths.LogDir)
	if err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.LogDir = logDir

	if c.Paths.ReportDir != "" {
		reportDir, err := expandPath(c.Paths.ReportDir)
		if err != nil {
			return fmt.Errorf("paths.report_dir: %w", err)
		}
		c.Paths.ReportDir = reportDir
	}

	if c.Paths.CachePath != "" {
		cachePath, err := expandPath(c.Paths.CachePath)
		if err != nil {
			return fmt.Errorf("paths.cache_path: %w", err)
		}
		c.Paths.CachePath = cachePath
	}
	return nil
}

func (c *Config) normalizeLookup() error {
	c.Lookup.MusicBrainzURL = strings.TrimRight(strings.TrimSpace(c.Lookup.MusicBrainzURL), "/")
	c.Lookup.LastFMURL = strings.TrimRight(strings.TrimSpace(c.Lookup.LastFMURL), "/")
	c.Lookup.UserAgent = strings.TrimSpace(c.Lookup.UserAgent)
	c.Lookup.LastFMAPIKey = strings.TrimSpace(c.Lookup.LastFMAPIKey)

	if c.Lookup.LastFMAPIKey == "" {
		if key, ok := os.LookupEnv("LASTFM_API_KEY"); ok {
			c.Lookup.LastFMAPIKey = strings.TrimSpace(key)
		}
	}

	if c.Lookup.TimeoutSeconds <= 0 {
		c.Lookup.TimeoutSeconds = defaultLookupTimeoutSeconds
	}
	if c.Lookup.MaxAttempts <= 0 {
		c.Lookup.MaxAttempts = defaultLookupMaxAttempts
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "":
		format = defaultLogFormat
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level

	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
	return nil
}
