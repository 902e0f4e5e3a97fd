// Package relocate moves cataloged MP3 files into genre subfolders
// beneath the scanned root. Moves are non-destructive: existing files
// are never overwritten, and a collision allocates a numbered variant
// of the incoming name instead.
package relocate

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"cratesort/internal/fileutil"
	"cratesort/internal/genre"
	"cratesort/internal/logging"
	"cratesort/internal/services"
)

// Disposition describes what happened to a file during relocation.
type Disposition string

const (
	// DispositionMoved means the file now lives at Outcome.Target.
	DispositionMoved Disposition = "moved"
	// DispositionSimulated means a dry run computed Outcome.Target but
	// left the file in place.
	DispositionSimulated Disposition = "simulated"
	// DispositionSkipped means the file stays at its source path; the
	// reason is recorded in Outcome.Reason.
	DispositionSkipped Disposition = "skipped"
)

// SkipNoGenre is the reason recorded when a file has no recognized
// genre to file it under. Skipping such files is expected behavior,
// not a failure.
const SkipNoGenre = "no genre"

// Outcome reports the result of a single relocation attempt.
type Outcome struct {
	Disposition Disposition
	// Target is the destination path for moved and simulated outcomes.
	Target string
	// Reason explains skipped outcomes.
	Reason string
}

// Relocator files tracks into genre subfolders of a single root
// directory. It is not safe for concurrent use against the same root;
// the collision probe assumes no other writer races it.
type Relocator struct {
	root   string
	dryRun bool
	logger *slog.Logger
}

// New creates a Relocator for the given scanned root. When dryRun is
// set every computation still runs, including collision probing against
// real filesystem state, but no file is created, moved, or removed.
func New(root string, dryRun bool, logger *slog.Logger) *Relocator {
	return &Relocator{
		root:   strings.TrimSpace(root),
		dryRun: dryRun,
		logger: logging.NewComponentLogger(logger, "relocate"),
	}
}

// Relocate moves path into the subfolder named after g, allocating a
// collision-free name when the target already holds a file of the same
// name. An unrecognized genre yields a skipped outcome and the file
// stays where it is.
func (r *Relocator) Relocate(path string, g genre.Genre) (Outcome, error) {
	if !g.Recognized() {
		r.logger.Debug("leaving file in place",
			logging.String(logging.FieldFile, path),
			logging.String("reason", SkipNoGenre),
		)
		return Outcome{Disposition: DispositionSkipped, Reason: SkipNoGenre}, nil
	}

	targetDir := filepath.Join(r.root, g.FolderName())
	if !r.dryRun {
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return Outcome{}, services.Wrap(services.ErrRelocationFailed, "relocate", "ensure genre dir",
				fmt.Sprintf("Failed to create genre directory %s", targetDir), err)
		}
	}

	target, err := nextFreePath(targetDir, filepath.Base(path))
	if err != nil {
		return Outcome{}, services.Wrap(services.ErrRelocationFailed, "relocate", "allocate target name",
			"Unable to allocate a collision-free target name", err)
	}

	if r.dryRun {
		r.logger.Info("would move file",
			logging.String(logging.FieldFile, path),
			logging.String("target", target),
			logging.String(logging.FieldGenre, g.String()),
			logging.Bool(logging.FieldDryRun, true),
		)
		return Outcome{Disposition: DispositionSimulated, Target: target}, nil
	}

	if err := moveFile(r.logger, path, target); err != nil {
		return Outcome{}, err
	}
	r.logger.Info("moved file",
		logging.String(logging.FieldFile, path),
		logging.String("target", target),
		logging.String(logging.FieldGenre, g.String()),
	)
	return Outcome{Disposition: DispositionMoved, Target: target}, nil
}

// nextFreePath returns dir/name, or the first dir/stem_N.ext variant
// that does not already exist. The probe is a stat loop; existing files
// are never candidates.
func nextFreePath(dir, name string) (string, error) {
	const maxAttempts = 10000
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := filepath.Join(dir, name)
	for attempt := 0; attempt <= maxAttempts; attempt++ {
		if attempt > 0 {
			candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, attempt, ext))
		}
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return candidate, nil
			}
			return "", err
		}
	}
	return "", fmt.Errorf("exhausted filename slots for %s in %s", name, dir)
}

// moveFile renames source onto target, falling back to copy+delete for
// cross-device moves.
func moveFile(logger *slog.Logger, source, target string) error {
	renameErr := os.Rename(source, target)
	if renameErr == nil {
		return nil
	}

	var linkErr *os.LinkError
	if errors.As(renameErr, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if copyErr := fileutil.CopyVerified(source, target); copyErr != nil {
			return services.Wrap(services.ErrRelocationFailed, "relocate", "copy file",
				"Failed to copy file across devices", copyErr)
		}
		if err := os.Remove(source); err != nil {
			logger.Warn("failed to remove source file after cross-device copy; duplicate remains",
				logging.String(logging.FieldFile, source),
				logging.Error(err),
			)
		}
		return nil
	}

	return services.Wrap(services.ErrRelocationFailed, "relocate", "move file",
		"Failed to move file into genre directory", renameErr)
}

// CleanupEmptyDirs removes empty genre subfolders directly beneath
// root. Only directories whose names match a canonical genre folder are
// considered; anything else under root is left alone. Returns the
// removed directory paths in lexical order.
func CleanupEmptyDirs(root string, logger *slog.Logger) ([]string, error) {
	logger = logging.NewComponentLogger(logger, "relocate")

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, services.Wrap(services.ErrRelocationFailed, "relocate", "read root",
			fmt.Sprintf("Failed to read directory %s", root), err)
	}

	folders := make(map[string]struct{}, len(genre.Canonical()))
	for _, g := range genre.Canonical() {
		folders[g.FolderName()] = struct{}{}
	}

	var removed []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, ok := folders[entry.Name()]; !ok {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		children, err := os.ReadDir(dir)
		if err != nil {
			logger.Warn("skipping unreadable genre directory",
				logging.String("dir", dir),
				logging.Error(err),
			)
			continue
		}
		if len(children) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			logger.Warn("failed to remove empty genre directory",
				logging.String("dir", dir),
				logging.Error(err),
			)
			continue
		}
		logger.Debug("removed empty genre directory", logging.String("dir", dir))
		removed = append(removed, dir)
	}
	sort.Strings(removed)
	return removed, nil
}
