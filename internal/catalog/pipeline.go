package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"cratesort/internal/config"
	"cratesort/internal/filename"
	"cratesort/internal/genre"
	"cratesort/internal/logging"
	"cratesort/internal/lookup"
	"cratesort/internal/relocate"
	"cratesort/internal/report"
	"cratesort/internal/resolve"
	"cratesort/internal/services"
	"cratesort/internal/tags"
)

// Options configures a cataloging run.
type Options struct {
	Config *config.Config
	// Root is the directory holding the unsorted MP3 files.
	Root string
	// RunID correlates log lines and the report with this run.
	RunID string
	// DryRun computes every outcome without touching the filesystem.
	DryRun bool
	// AnalyzeOnly resolves and classifies but never writes tags or
	// moves files, regardless of DryRun.
	AnalyzeOnly bool
	// NoExternal disables lookup providers even when configured.
	NoExternal bool
	// Cleanup removes empty genre folders after the run.
	Cleanup bool
	Logger  *slog.Logger
}

// Summary is what a finished run hands back to the CLI.
type Summary struct {
	Report report.RunReport
	// ReportPath is empty when writing the report file failed; the run
	// still counts as completed.
	ReportPath string
	Records    []report.FileRecord
	// RemovedDirs lists the empty genre folders deleted by cleanup.
	RemovedDirs []string
}

// Pipeline drives each scanned file through the tag, resolve,
// normalize, write, and relocate stages in order. Files are processed
// sequentially; a per-file failure never aborts the run.
type Pipeline struct {
	cfg         *config.Config
	root        string
	runID       string
	dryRun      bool
	analyzeOnly bool
	cleanup     bool
	logger      *slog.Logger
	provider    lookup.Provider
	stats       *lookup.CachedProvider
	relocator   *relocate.Relocator
	collector   *report.Collector
	tagWriter   func(path string, current, resolved tags.TrackMetadata) (tags.WriteOutcome, error)
}

// New builds a pipeline for the given options. Lookup providers are
// wired only when the config enables them and NoExternal is unset.
func New(opts Options) (*Pipeline, error) {
	if opts.Config == nil {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "build pipeline", "Configuration is required", nil)
	}
	root := strings.TrimSpace(opts.Root)
	if root == "" {
		return nil, services.Wrap(services.ErrValidation, "catalog", "build pipeline", "Music directory is required", nil)
	}

	logger := logging.NewComponentLogger(opts.Logger, "catalog")
	readOnly := opts.DryRun || opts.AnalyzeOnly

	p := &Pipeline{
		cfg:         opts.Config,
		root:        root,
		runID:       opts.RunID,
		dryRun:      opts.DryRun,
		analyzeOnly: opts.AnalyzeOnly,
		cleanup:     opts.Cleanup,
		logger:      logger,
		relocator:   relocate.New(root, readOnly, opts.Logger),
		tagWriter:   tags.WriteIfChanged,
	}

	lookupActive := opts.Config.Lookup.Enabled && !opts.NoExternal
	if lookupActive {
		chain := lookup.NewChain(opts.Logger,
			lookup.NewMusicBrainz(opts.Config, opts.Logger),
			lookup.NewLastFM(opts.Config, opts.Logger),
		)
		cached := lookup.NewCachedProvider(lookup.NewCache(opts.Config.Paths.CachePath, opts.Logger), chain, opts.Logger)
		p.provider = cached
		p.stats = cached
	}

	p.collector = report.NewCollector(root, opts.RunID, report.Modes{
		DryRun:          opts.DryRun,
		AnalyzeOnly:     opts.AnalyzeOnly,
		ExternalEnabled: lookupActive,
		Cleanup:         opts.Cleanup,
	})
	return p, nil
}

// WithTagWriter sets a custom tag persistence function (for testing).
func (p *Pipeline) WithTagWriter(writer func(path string, current, resolved tags.TrackMetadata) (tags.WriteOutcome, error)) {
	if writer != nil {
		p.tagWriter = writer
	}
}

// Run scans the root and processes every file found. It returns an
// error only for pre-scan failures; per-file problems end up in the
// report instead.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	ctx = services.WithRunID(ctx, p.runID)
	logger := logging.WithContext(ctx, p.logger)

	files, err := Scan(p.root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Warn("no MP3 files found in music directory", logging.String("dir", p.root))
	} else {
		logger.Info("scan complete", logging.Int("files", len(files)))
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := p.processFile(ctx, path)
		p.collector.Record(rec)
	}

	if p.stats != nil {
		p.collector.SetLookupStats(p.stats.Stats())
	}

	summary := &Summary{Records: p.collector.Records()}
	summary.RemovedDirs = p.runCleanup(logger)
	summary.Report = p.collector.Finalize()

	reportDir := p.cfg.Paths.ReportDir
	if reportDir == "" {
		reportDir = p.root
	}
	reportPath, err := summary.Report.WriteFile(reportDir)
	if err != nil {
		logger.Error("failed to write run report", logging.Error(err))
	} else {
		summary.ReportPath = reportPath
		logger.Info("run report written", logging.String("report", reportPath))
	}

	return summary, nil
}

// processFile walks one file through the stages and produces its
// record. Every exit path yields a record; nothing here aborts the run.
func (p *Pipeline) processFile(ctx context.Context, path string) report.FileRecord {
	ctx = services.WithFile(ctx, path)
	rec := report.FileRecord{Path: path}

	logger := p.stageLogger(ctx, StageScanned)
	logger.Info("processing file")

	logger = p.stageLogger(ctx, StageTagsRead)
	current, err := tags.ReadFile(path)
	if err != nil {
		wrapped := services.Wrap(services.ErrUnreadableTags, "catalog", "read tags",
			"Continuing with filename-derived metadata", err)
		logger.Warn("unable to read tags", logging.Error(wrapped))
		current = tags.TrackMetadata{}
	}

	logger = p.stageLogger(ctx, StageMetadataResolved)
	guess := filename.Extract(stem(path))
	external := p.lookupMetadata(ctx, logger, current, guess)
	resolved := resolve.Resolve(current, external, guess)
	rec.Metadata = resolved

	logger = p.stageLogger(ctx, StageGenreNormalized)
	rec.Genre = genre.Normalize(resolved.Genre)
	if !rec.Genre.Recognized() {
		wrapped := services.Wrap(services.ErrUnresolvedGenre, "catalog", "normalize genre",
			fmt.Sprintf("No taxonomy match for %q", resolved.Genre), nil)
		logger.Warn("genre not recognized; file will stay uncataloged", logging.Error(wrapped))
	} else {
		logger.Debug("genre normalized",
			logging.String("raw", resolved.Genre),
			logging.String(logging.FieldGenre, rec.Genre.String()),
		)
	}

	logger = p.stageLogger(ctx, StageTagsWritten)
	p.writeTags(logger, path, current, resolved, &rec)

	logger = p.stageLogger(ctx, StageRelocated)
	outcome, err := p.relocator.Relocate(path, rec.Genre)
	if err != nil {
		logger.Error("relocation failed; file stays in place", logging.Error(err))
		rec.Outcome = report.OutcomeError
		rec.Reason = "move failed"
		return rec
	}
	switch outcome.Disposition {
	case relocate.DispositionMoved:
		rec.Outcome = report.OutcomeMoved
		rec.Target = outcome.Target
	case relocate.DispositionSimulated:
		rec.Outcome = report.OutcomeSimulated
		rec.Target = outcome.Target
	case relocate.DispositionSkipped:
		rec.Outcome = report.OutcomeSkipped
		rec.Reason = outcome.Reason
	}

	p.stageLogger(ctx, StageReported).Debug("file processed", logging.String("outcome", string(rec.Outcome)))
	return rec
}

// lookupMetadata queries the provider chain when both artist and title
// are known. Lookup problems degrade to an absent contribution.
func (p *Pipeline) lookupMetadata(ctx context.Context, logger *slog.Logger, current tags.TrackMetadata, guess filename.Guess) tags.TrackMetadata {
	if p.provider == nil {
		return tags.TrackMetadata{}
	}
	artist, title := resolve.QueryKeys(current, guess)
	if artist == "" || title == "" {
		logger.Debug("skipping external lookup; artist or title unknown")
		return tags.TrackMetadata{}
	}

	result, found, err := p.provider.Lookup(ctx, artist, title)
	if err != nil {
		wrapped := services.Wrap(services.ErrLookupUnavailable, "catalog", "external lookup",
			"Proceeding without external metadata", err)
		logger.Warn("external lookup failed", logging.Error(wrapped))
		return tags.TrackMetadata{}
	}
	if !found {
		logger.Debug("no external match", logging.String("artist", artist), logging.String("title", title))
		return tags.TrackMetadata{}
	}
	logger.Debug("external metadata found",
		logging.String("artist", artist),
		logging.String("title", title),
		logging.String("source_genre", result.Genre),
	)
	return tags.TrackMetadata{
		Title:  result.Title,
		Artist: result.Artist,
		Album:  result.Album,
		Genre:  result.Genre,
		Year:   result.Year,
		BPM:    result.BPM,
	}
}

// writeTags persists the resolved metadata unless the run is read-only,
// in which case it records whether a write would have happened.
func (p *Pipeline) writeTags(logger *slog.Logger, path string, current, resolved tags.TrackMetadata, rec *report.FileRecord) {
	if p.dryRun || p.analyzeOnly {
		rec.WouldWrite = tags.Changed(current, resolved)
		if rec.WouldWrite {
			logger.Info("would update tags", logging.Bool(logging.FieldDryRun, true))
		}
		return
	}

	outcome, err := p.tagWriter(path, current, resolved)
	rec.Write = outcome
	switch outcome {
	case tags.WriteWritten:
		logger.Info("tags updated")
	case tags.WriteFailed:
		wrapped := services.Wrap(services.ErrWriteFailed, "catalog", "write tags",
			"Relocation proceeds with in-memory metadata", err)
		logger.Warn("tag write failed", logging.Error(wrapped))
	}
}

// runCleanup removes empty genre folders when cleanup mode is on. Dry
// runs only announce what would happen.
func (p *Pipeline) runCleanup(logger *slog.Logger) []string {
	if !p.cleanup || p.analyzeOnly {
		return nil
	}
	if p.dryRun {
		logger.Info("would remove empty genre folders", logging.Bool(logging.FieldDryRun, true))
		return nil
	}
	removed, err := relocate.CleanupEmptyDirs(p.root, p.logger)
	if err != nil {
		logger.Error("cleanup of empty genre folders failed", logging.Error(err))
		return nil
	}
	if len(removed) > 0 {
		logger.Info("removed empty genre folders", logging.Int("count", len(removed)))
	}
	return removed
}

func (p *Pipeline) stageLogger(ctx context.Context, stage Stage) *slog.Logger {
	return logging.WithContext(services.WithStage(ctx, string(stage)), p.logger)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
