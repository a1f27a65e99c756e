package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/bracecheck/pkg/balance"
	"github.com/yaklabco/bracecheck/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, LINE, PAREN, BRACE, QUOTE
	minFileWidth     = 20
	minNumberWidth   = 5
	quoteWidth       = 8
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow is one record in the table.
type TableRow struct {
	File   string
	Record balance.Record
}

// TableFormatter formats scan records as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type columnWidths struct {
	file  int
	line  int
	paren int
	brace int
}

// FormatTable formats every record of the run, one group per file.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	groups := CollectRows(result)
	if len(groups) == 0 {
		return ""
	}

	widths := t.columnWidths(groups)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")

	for idx, group := range groups {
		if idx > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths) + "\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")

	return builder.String()
}

// CollectRows flattens file and block records into rows grouped by file.
// Files without records in the window are left out.
func CollectRows(result *runner.Result) [][]TableRow {
	var groups [][]TableRow

	for _, file := range result.Files {
		if file.Error != nil {
			continue
		}

		var rows []TableRow
		for _, record := range file.Records {
			rows = append(rows, TableRow{File: file.Path, Record: record})
		}
		for _, block := range file.Blocks {
			for _, record := range block.Records {
				rows = append(rows, TableRow{File: file.Path, Record: record})
			}
		}

		if len(rows) > 0 {
			groups = append(groups, rows)
		}
	}

	return groups
}

func (t *TableFormatter) columnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file:  minFileWidth,
		line:  minNumberWidth,
		paren: minNumberWidth,
		brace: minNumberWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, len(row.File))
			widths.line = max(widths.line, len(strconv.Itoa(row.Record.Line)))
			widths.paren = max(widths.paren, len(strconv.Itoa(row.Record.Paren)))
			widths.brace = max(widths.brace, len(strconv.Itoa(row.Record.Brace)))
		}
	}

	if total := t.totalWidth(widths); total > t.termWidth {
		widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
	}

	return widths
}

func (t *TableFormatter) totalWidth(widths columnWidths) int {
	return widths.file + widths.line + widths.paren + widths.brace + quoteWidth +
		tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %*s  %*s  %*s  %-*s",
		widths.file, "FILE",
		widths.line, "LINE",
		widths.paren, "PAREN",
		widths.brace, "BRACE",
		quoteWidth, "QUOTE",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.totalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	quote := ""
	if row.Record.Mode.Quoted() {
		quote = row.Record.Mode.String()
	}

	content := fmt.Sprintf(" %-*s  %*d  %*d  %*d  %-*s",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.line, row.Record.Line,
		widths.paren, row.Record.Paren,
		widths.brace, row.Record.Brace,
		quoteWidth, quote,
	)

	return t.rowStyle(row.Record).Render(content)
}

func (t *TableFormatter) rowStyle(record balance.Record) lipgloss.Style {
	switch {
	case record.Paren < 0 || record.Brace < 0:
		return t.styles.Negative
	case record.Mode.Quoted():
		return t.styles.Unclosed
	default:
		return lipgloss.NewStyle()
	}
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats) string {
	parts := []string{fmt.Sprintf("%s scanned", pluralFiles(stats.FilesScanned))}

	if stats.FilesUnbalanced > 0 {
		parts = append(parts, t.styles.Failure.Render(fmt.Sprintf("%d unbalanced", stats.FilesUnbalanced)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errored", stats.FilesErrored)))
	}
	if stats.BlocksScanned > 0 {
		word := "code blocks"
		if stats.BlocksScanned == 1 {
			word = "code block"
		}
		parts = append(parts, t.styles.Dim.Render(fmt.Sprintf("%d %s", stats.BlocksScanned, word)))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
