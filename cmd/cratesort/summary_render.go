package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"cratesort/internal/catalog"
	"cratesort/internal/preflight"
	"cratesort/internal/report"
)

func printPreflight(out io.Writer, results []preflight.Result, colorize bool) {
	for _, line := range renderSectionHeader("Preflight", colorize) {
		fmt.Fprintln(out, line)
	}
	for _, res := range results {
		style := statusOK
		if !res.Passed {
			style = statusFail
			if res.Optional {
				style = statusWarn
			}
		}
		fmt.Fprintln(out, renderStatusLine(res.Name, style, res.Detail, colorize))
	}
	fmt.Fprintln(out)
}

func printRunSummary(out io.Writer, summary *catalog.Summary, colorize bool) {
	rep := summary.Report
	for _, line := range renderSectionHeader("Run summary", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Directory", statusInfo, rep.BasePath, colorize))
	fmt.Fprintln(out, renderStatusLine("Dry run", statusInfo, yesNo(rep.Configuration.DryRun), colorize))
	fmt.Fprintln(out, renderStatusLine("External lookups", statusInfo, yesNo(rep.Configuration.ExternalEnabled), colorize))

	stats := rep.Statistics
	rows := []pairRow{
		{"Scanned", strconv.Itoa(stats.Scanned)},
		{"Moved", strconv.Itoa(stats.Moved)},
		{"Simulated", strconv.Itoa(stats.Simulated)},
		{"Skipped", strconv.Itoa(stats.Skipped)},
		{"Tags updated", strconv.Itoa(stats.MetadataUpdated)},
		{"Write failures", strconv.Itoa(stats.WriteFailures)},
		{"Errors", strconv.Itoa(stats.Errors)},
		{"Uncataloged", strconv.Itoa(stats.Uncataloged)},
	}
	fmt.Fprintln(out, renderPairTable("Metric", "Count", rows, true))

	if len(rep.GenreDistribution) > 0 {
		fmt.Fprintln(out, renderCountTable("Genre", rep.GenreDistribution))
	}
	printUncataloged(out, rep.Uncataloged)
	if len(summary.RemovedDirs) > 0 {
		fmt.Fprintf(out, "Removed %d empty genre folders\n", len(summary.RemovedDirs))
	}
	fmt.Fprintf(out, "Elapsed: %.2fs (%.2f files/minute)\n", rep.Performance.ElapsedSeconds, rep.Performance.FilesPerMinute)
	if summary.ReportPath != "" {
		fmt.Fprintf(out, "Report: %s\n", summary.ReportPath)
	}
}

func printAnalysis(out io.Writer, summary *catalog.Summary, existing map[string]int, colorize bool) {
	rep := summary.Report
	for _, line := range renderSectionHeader("Analysis", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Directory", statusInfo, rep.BasePath, colorize))
	fmt.Fprintln(out, renderStatusLine("Files scanned", statusInfo, strconv.Itoa(rep.Statistics.Scanned), colorize))
	fmt.Fprintln(out, renderStatusLine("External lookups", statusInfo, yesNo(rep.Configuration.ExternalEnabled), colorize))

	if len(rep.GenreDistribution) > 0 {
		fmt.Fprintln(out, renderCountTable("Proposed genre", rep.GenreDistribution))
	}
	if missing := missingFieldRows(summary.Records); len(missing) > 0 {
		fmt.Fprintln(out, renderPairTable("File", "Missing", missing, false))
	}
	printUncataloged(out, rep.Uncataloged)
	if len(existing) > 0 {
		fmt.Fprintln(out, renderCountTable("Existing folder", existing))
	}
	if summary.ReportPath != "" {
		fmt.Fprintf(out, "Report: %s\n", summary.ReportPath)
	}
}

func printUncataloged(out io.Writer, files []report.UncatalogedFile) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintln(out, "Uncataloged files:")
	for _, uf := range files {
		fmt.Fprintf(out, "  %s (%s)\n", uf.Path, uf.Reason)
	}
}

// renderCountTable renders a name-to-count map sorted by count, most
// populated first, names breaking ties.
func renderCountTable(label string, counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	rows := make([]pairRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, pairRow{name, strconv.Itoa(counts[name])})
	}
	return renderPairTable(label, "Files", rows, true)
}

func missingFieldRows(records []report.FileRecord) []pairRow {
	rows := make([]pairRow, 0, len(records))
	for _, rec := range records {
		meta := rec.Metadata
		var missing []string
		if strings.TrimSpace(meta.Title) == "" {
			missing = append(missing, "title")
		}
		if strings.TrimSpace(meta.Artist) == "" {
			missing = append(missing, "artist")
		}
		if strings.TrimSpace(meta.Album) == "" {
			missing = append(missing, "album")
		}
		if meta.Year == 0 {
			missing = append(missing, "year")
		}
		if meta.BPM == 0 {
			missing = append(missing, "bpm")
		}
		if len(missing) == 0 {
			continue
		}
		rows = append(rows, pairRow{filepath.Base(rec.Path), strings.Join(missing, ", ")})
	}
	return rows
}
