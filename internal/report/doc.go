// Package report aggregates per-file outcomes into the JSON run report.
// A Collector accumulates FileRecords while the catalog pipeline runs,
// then Finalize freezes the counts, the genre distribution, and the
// ordered list of uncataloged files into a single RunReport document.
package report
