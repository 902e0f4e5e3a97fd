// Package main hosts the cratesort CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into catalog
// runs, collection analysis, empty-folder cleanup, and configuration
// scaffolding. It centralizes configuration resolution, the per-run log file,
// and the single-run lock so subcommands can focus on user experience instead
// of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
