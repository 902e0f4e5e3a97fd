package preflight

import (
	"context"

	"cratesort/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Optional checks never abort a run; their failures are reported
	// and the run proceeds without the feature.
	Optional bool
	Detail   string
}

// Access describes the filesystem rights a run needs on the scanned root.
type Access int

const (
	// AccessRead covers dry-run and analyze modes, which only read the
	// scanned files.
	AccessRead Access = iota
	// AccessReadWrite covers cataloging runs, which retag and move files.
	AccessReadWrite
)

// RunAll executes the preflight checks for a run over root. Lookup
// connectivity is only probed when lookupActive says the run will use
// external lookups, and those checks are optional: the run degrades to
// tag and filename data when a lookup service is unreachable.
func RunAll(ctx context.Context, cfg *config.Config, root string, access Access, lookupActive bool) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Music directory", root, access),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir, AccessReadWrite),
	}

	if cfg.Paths.ReportDir != "" {
		results = append(results, CheckDirectoryAccess("Report directory", cfg.Paths.ReportDir, AccessReadWrite))
	}

	if lookupActive {
		results = append(results,
			CheckLookupService(ctx, "MusicBrainz", cfg.Lookup.MusicBrainzURL, cfg.Lookup.UserAgent),
			CheckLookupService(ctx, "Last.fm", cfg.Lookup.LastFMURL, cfg.Lookup.UserAgent),
		)
	}

	return results
}

// Failed returns the subset of results that did not pass. Optional
// failures are included; callers decide whether they abort.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}

// Fatal reports whether any required check failed.
func Fatal(results []Result) bool {
	for _, result := range results {
		if !result.Passed && !result.Optional {
			return true
		}
	}
	return false
}
