// Package config defines the cratesort configuration surface and its loader.
//
// Settings come from an optional TOML file layered over built-in defaults,
// with environment fallbacks for credentials such as LASTFM_API_KEY. Paths
// are tilde-expanded and made absolute during load, so the rest of the
// program never sees a raw user-typed location. Loading never fails just
// because the file is absent; a missing file yields the defaults.
//
// Validation runs as part of Load and rejects contradictory settings early,
// before a run touches any music files.
package config
