package config

const (
	defaultLogDir               = "~/.local/share/cratesort/logs"
	defaultCachePath            = "~/.local/share/cratesort/cache/lookup.json"
	defaultMusicBrainzURL       = "https://musicbrainz.org/ws/2"
	defaultLastFMURL            = "https://ws.audioscrobbler.com/2.0/"
	defaultLookupUserAgent      = "cratesort/dev (https://github.com/cratesort/cratesort)"
	defaultLookupTimeoutSeconds = 10
	defaultLookupMaxAttempts    = 3
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogRetentionDays     = 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			CachePath: defaultCachePath,
		},
		Lookup: Lookup{
			Enabled:        true,
			MusicBrainzURL: defaultMusicBrainzURL,
			LastFMURL:      defaultLastFMURL,
			UserAgent:      defaultLookupUserAgent,
			TimeoutSeconds: defaultLookupTimeoutSeconds,
			MaxAttempts:    defaultLookupMaxAttempts,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
