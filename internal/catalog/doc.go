// Package catalog drives a cataloging run end to end: scan the music
// directory, read and resolve metadata for each file, normalize the
// genre, write changed tags, relocate into genre folders, and hand the
// aggregated outcome to the reporter.
//
// Processing is sequential and per-file failures are recorded rather
// than raised; only pre-scan problems abort a run.
package catalog
