package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/bracecheck/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 of 5 files unbalanced, 1 error (1,204 lines scanned)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesUnbalanced == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("All balanced") +
			s.Dim.Render(fmt.Sprintf(" (%s, %d lines scanned)", pluralFiles(stats.FilesScanned), stats.LinesScanned)) +
			"\n"
	}

	var parts []string

	if stats.FilesUnbalanced > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d of %d %s unbalanced",
			stats.FilesUnbalanced, stats.FilesScanned, fileWord(stats.FilesScanned))))
	}
	if stats.FilesErrored > 0 {
		word := "errors"
		if stats.FilesErrored == 1 {
			word = "error"
		}
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", stats.FilesErrored, word)))
	}

	line := strings.Join(parts, ", ")
	line += s.Dim.Render(fmt.Sprintf(" (%d lines scanned)", stats.LinesScanned))

	return line + "\n"
}

// FormatUnsupportedHint returns a warning line when files outside the
// JavaScript family were scanned, or "" if there were none.
func (s *Styles) FormatUnsupportedHint(stats runner.Stats) string {
	if stats.FilesUnsupported == 0 {
		return ""
	}
	return s.Warning.Render("warning:") +
		s.Dim.Render(fmt.Sprintf(" %s not JavaScript, TypeScript or JSON; quote handling may not apply",
			pluralFiles(stats.FilesUnsupported))) + "\n"
}

func fileWord(count int) string {
	if count == 1 {
		return wordFile
	}
	return wordFiles
}

func pluralFiles(count int) string {
	return fmt.Sprintf("%d %s", count, fileWord(count))
}
