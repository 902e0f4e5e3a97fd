// Package services defines the shared error vocabulary for the catalog
// pipeline.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that tag per-file
//     failures (unreadable tags, rejected writes, failed moves) so the
//     orchestrator and reporter can classify outcomes with errors.Is.
//   - The fatal/non-fatal split: per-file markers never abort a run, while
//     configuration and root validation problems do.
//
// Use these helpers when wiring new pipeline logic so error handling and
// reporting stay uniform across components.
package services
