// Package logging assembles the structured slog loggers used across the
// cataloger.
//
// It owns the console/JSON handlers, the per-run log file naming, and the
// retention pruning for old run logs, and exposes context-aware helpers so
// pipeline code can automatically tag log lines with the current file, stage,
// and run ID. The package also provides a no-op logger for tests and wiring
// code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
