// Package preflight provides readiness checks for the directories and
// lookup services a cataloging run depends on.
//
// The catalog and analyze commands call RunAll before scanning. A
// failed directory check aborts the run before anything is touched;
// failed lookup checks are reported and the run proceeds on tag and
// filename data alone.
package preflight
