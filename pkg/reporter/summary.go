package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/bracecheck/internal/ui/pretty"
	"github.com/yaklabco/bracecheck/pkg/runner"
)

// SummaryReporter prints one verdict line per file instead of records.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to scan."))
		return 0, nil
	}

	width := 0
	for _, file := range result.Files {
		width = max(width, len(r.opts.displayPath(file.Path)))
	}

	for _, file := range result.Files {
		if r.opts.OnlyUnbalanced && file.Error == nil && file.Balanced() {
			continue
		}

		path := r.opts.displayPath(file.Path)
		padding := strings.Repeat(" ", width-len(path))

		fmt.Fprintf(r.bw, "%s%s  %s\n", r.styles.FilePath.Render(path), padding, r.verdict(file))
	}

	fmt.Fprintln(r.bw)
	fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	fmt.Fprint(r.bw, r.styles.FormatUnsupportedHint(result.Stats))

	return result.Stats.FilesUnbalanced, nil
}

func (r *SummaryReporter) verdict(file runner.FileOutcome) string {
	if file.Error != nil {
		return r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error))
	}

	if len(file.Blocks) == 0 {
		return r.styles.FormatVerdict(file.Summary)
	}

	var unbalanced []string
	for _, block := range file.Blocks {
		if !block.Summary.Balanced() {
			unbalanced = append(unbalanced, fmt.Sprintf("line %d", block.StartLine))
		}
	}
	if len(unbalanced) == 0 {
		word := "code blocks"
		if len(file.Blocks) == 1 {
			word = "code block"
		}
		return r.styles.Success.Render("balanced") +
			r.styles.Dim.Render(fmt.Sprintf(" (%d %s)", len(file.Blocks), word))
	}
	return r.styles.Failure.Render("unbalanced") +
		r.styles.Dim.Render(": code blocks at "+strings.Join(unbalanced, ", "))
}
