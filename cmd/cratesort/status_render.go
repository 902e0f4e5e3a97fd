package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// statusStyle pairs the bracketed tag printed on a status line with the
// color it gets on a terminal.
type statusStyle struct {
	tag   string
	color string
}

var (
	statusInfo = statusStyle{"INFO", ansiBlue}
	statusOK   = statusStyle{"OK", ansiGreen}
	statusWarn = statusStyle{"WARN", ansiYellow}
	statusFail = statusStyle{"FAIL", ansiRed}
)

// statusLabelWidth fits the longest labels the summaries print, such as
// "External lookups" and "Report directory".
const statusLabelWidth = 18

// renderStatusLine formats one "label: [TAG] detail" line. Only the tag
// is colored, so the padding stays intact and details stay readable.
func renderStatusLine(label string, style statusStyle, detail string, colorize bool) string {
	tag := "[" + style.tag + "]"
	if colorize && style.color != "" {
		tag = style.color + tag + ansiReset
	}
	line := fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", tag)
	if detail != "" {
		line += " " + detail
	}
	return line
}

func renderSectionHeader(title string, colorize bool) []string {
	title = strings.TrimSpace(title)
	rule := strings.Repeat("-", len(title))
	if colorize {
		title = ansiBlue + title + ansiReset
	}
	return []string{title, rule}
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
