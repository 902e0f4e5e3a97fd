package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLookup(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return fmt.Errorf("paths.log_dir must not be empty")
	}
	return nil
}

func (c *Config) validateLookup() error {
	if !c.Lookup.Enabled {
		return nil
	}
	if c.Lookup.MusicBrainzURL == "" {
		return fmt.Errorf("lookup.musicbrainz_url must not be empty when lookup is enabled")
	}
	if c.Lookup.LastFMURL == "" {
		return fmt.Errorf("lookup.lastfm_url must not be empty when lookup is enabled")
	}
	if c.Lookup.UserAgent == "" {
		return fmt.Errorf("lookup.user_agent must not be empty when lookup is enabled")
	}
	if c.Lookup.TimeoutSeconds <= 0 {
		return fmt.Errorf("lookup.timeout_seconds must be positive, got %d", c.Lookup.TimeoutSeconds)
	}
	if c.Lookup.MaxAttempts <= 0 {
		return fmt.Errorf("lookup.max_attempts must be positive, got %d", c.Lookup.MaxAttempts)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return fmt.Errorf("logging.retention_days must not be negative, got %d", c.Logging.RetentionDays)
	}
	return nil
}
