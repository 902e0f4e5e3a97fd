package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"cratesort/internal/genre"
	"cratesort/internal/services"
	"cratesort/internal/tags"
)

// Outcome classifies how a file left the run.
type Outcome string

const (
	// OutcomeMoved means the file was relocated into a genre folder.
	OutcomeMoved Outcome = "moved"
	// OutcomeSimulated means a dry run computed the move without performing it.
	OutcomeSimulated Outcome = "simulated"
	// OutcomeSkipped means the file stayed in place for an expected reason.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeError means a stage failed and the file was left untouched.
	OutcomeError Outcome = "error"
)

// FileRecord is the per-file summary accumulated into the run report.
// Records are created at scan time and finalized exactly once.
type FileRecord struct {
	Path     string
	Target   string
	Metadata tags.TrackMetadata
	Genre    genre.Genre
	// Write is the tag writer outcome, empty when no write was attempted.
	Write tags.WriteOutcome
	// WouldWrite marks records whose resolved metadata differs from the
	// tags on disk while the writer was disabled (dry run or analyze).
	WouldWrite bool
	Outcome    Outcome
	Reason     string
}

// Modes echoes the run configuration into the report.
type Modes struct {
	DryRun          bool `json:"dry_run"`
	AnalyzeOnly     bool `json:"analyze_only"`
	ExternalEnabled bool `json:"external_db_enabled"`
	Cleanup         bool `json:"cleanup"`
}

// Statistics aggregates per-outcome counts for the run.
type Statistics struct {
	Scanned         int `json:"total_scanned"`
	Moved           int `json:"moved"`
	Simulated       int `json:"simulated"`
	Skipped         int `json:"skipped"`
	MetadataUpdated int `json:"metadata_updated"`
	WriteFailures   int `json:"write_failures"`
	Errors          int `json:"errors"`
	Uncataloged     int `json:"uncatalogued"`
	GenresFound     int `json:"genres_found"`
}

// UncatalogedFile names a file that stayed outside the genre folders and why.
type UncatalogedFile struct {
	Path   string `json:"file"`
	Reason string `json:"reason"`
}

// Performance captures timing and lookup effectiveness for the run.
type Performance struct {
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	FilesPerMinute float64 `json:"files_per_minute"`
	Lookups        int64   `json:"external_lookups"`
	CacheHits      int64   `json:"cache_hits"`
}

// RunReport is the complete, immutable summary of one run.
type RunReport struct {
	GeneratedAt       time.Time         `json:"timestamp"`
	RunID             string            `json:"run_id,omitempty"`
	BasePath          string            `json:"base_path"`
	Configuration     Modes             `json:"configuration"`
	Statistics        Statistics        `json:"statistics"`
	GenreDistribution map[string]int    `json:"genre_distribution"`
	Uncataloged       []UncatalogedFile `json:"uncatalogued_files"`
	Performance       Performance       `json:"performance_metrics"`
}

// Collector accumulates file records during a run and produces the
// final report. It is not safe for concurrent use; the catalog pipeline
// records sequentially.
type Collector struct {
	basePath  string
	runID     string
	modes     Modes
	startedAt time.Time
	records   []FileRecord
	lookups   int64
	cacheHits int64
	finalized bool
	report    RunReport
}

// NewCollector starts collecting for a run over basePath. The run clock
// starts immediately.
func NewCollector(basePath, runID string, modes Modes) *Collector {
	return &Collector{
		basePath:  basePath,
		runID:     runID,
		modes:     modes,
		startedAt: time.Now(),
	}
}

// Record appends one finished file record. Records added after Finalize
// are ignored.
func (c *Collector) Record(rec FileRecord) {
	if c.finalized {
		return
	}
	c.records = append(c.records, rec)
}

// Records returns the accumulated file records in scan order.
func (c *Collector) Records() []FileRecord {
	return c.records
}

// SetLookupStats stores external lookup counters for the performance
// section. Call before Finalize.
func (c *Collector) SetLookupStats(lookups, cacheHits int64) {
	if c.finalized {
		return
	}
	c.lookups = lookups
	c.cacheHits = cacheHits
}

// Finalize computes the run report. The first call freezes the report;
// later calls return the same value.
func (c *Collector) Finalize() RunReport {
	if c.finalized {
		return c.report
	}

	stats := Statistics{Scanned: len(c.records)}
	distribution := make(map[string]int)
	var uncataloged []UncatalogedFile

	for _, rec := range c.records {
		switch rec.Outcome {
		case OutcomeMoved:
			stats.Moved++
		case OutcomeSimulated:
			stats.Simulated++
		case OutcomeSkipped:
			stats.Skipped++
			uncataloged = append(uncataloged, UncatalogedFile{Path: rec.Path, Reason: rec.Reason})
		case OutcomeError:
			stats.Errors++
			uncataloged = append(uncataloged, UncatalogedFile{Path: rec.Path, Reason: rec.Reason})
		}
		if rec.Write == tags.WriteWritten || rec.WouldWrite {
			stats.MetadataUpdated++
		}
		if rec.Write == tags.WriteFailed {
			stats.WriteFailures++
		}
		if rec.Genre.Recognized() {
			distribution[rec.Genre.String()]++
		}
	}
	stats.Uncataloged = len(uncataloged)
	stats.GenresFound = len(distribution)

	elapsed := time.Since(c.startedAt)
	minutes := elapsed.Minutes()
	if minutes < 1 {
		minutes = 1
	}

	c.report = RunReport{
		GeneratedAt:       time.Now(),
		RunID:             c.runID,
		BasePath:          c.basePath,
		Configuration:     c.modes,
		Statistics:        stats,
		GenreDistribution: distribution,
		Uncataloged:       uncataloged,
		Performance: Performance{
			ElapsedSeconds: roundHundredths(elapsed.Seconds()),
			FilesPerMinute: roundHundredths(float64(stats.Scanned) / minutes),
			Lookups:        c.lookups,
			CacheHits:      c.cacheHits,
		},
	}
	c.finalized = true
	return c.report
}

// WriteFile serializes the report into dir as
// catalog_report_<YYYYMMDD_HHMMSS>.json and returns the written path.
func (r RunReport) WriteFile(dir string) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "report", "marshal report", "Failed to serialize run report", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "report", "ensure report dir",
			fmt.Sprintf("Failed to create report directory %s", dir), err)
	}
	path := filepath.Join(dir, fmt.Sprintf("catalog_report_%s.json", r.GeneratedAt.Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "report", "write report",
			fmt.Sprintf("Failed to write run report to %s", path), err)
	}
	return path, nil
}

func roundHundredths(v float64) float64 {
	return math.Round(v*100) / 100
}
