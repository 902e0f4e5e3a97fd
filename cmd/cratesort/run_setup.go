package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"cratesort/internal/config"
	"cratesort/internal/logging"
)

// runEnvironment bundles the per-run plumbing every mutating command
// needs: the single-run lock, the timestamped log file, and a run ID
// that correlates log lines with the JSON report.
type runEnvironment struct {
	logger  *slog.Logger
	logPath string
	runID   string

	lock *flock.Flock
}

// newRunEnvironment acquires the run lock and opens the per-run log
// file. Callers must invoke release when the run finishes.
func newRunEnvironment(cfg *config.Config, verbose bool) (*runEnvironment, error) {
	lock := flock.New(filepath.Join(cfg.Paths.LogDir, "cratesort.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another cratesort run is already in progress")
	}

	startedAt := time.Now()
	logger, logPath, err := logging.NewRunLogger(cfg, startedAt, verbose)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("initialize run log: %w", err)
	}

	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
		Dir:     cfg.Paths.LogDir,
		Pattern: "cratesort_*.log",
		Exclude: []string{logPath},
	})

	return &runEnvironment{
		logger:  logger,
		logPath: logPath,
		runID:   uuid.NewString(),
		lock:    lock,
	}, nil
}

func (e *runEnvironment) release() {
	if err := e.lock.Unlock(); err != nil {
		e.logger.Warn("failed to release run lock", logging.Error(err))
	}
}
