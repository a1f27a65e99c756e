package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/bracecheck/internal/ui/pretty"
	"github.com/yaklabco/bracecheck/pkg/runner"
)

// TextReporter prints one "<line> paren <n> brace <n>" line per record.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
//
// A single plain file prints its records with no header, so the output of
// a one-file scan is exactly the record lines.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to scan."))
		}
		return 0, nil
	}

	headers := len(result.Files) > 1
	written := 0

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if r.opts.OnlyUnbalanced && file.Balanced() {
			continue
		}

		if headers || len(file.Blocks) > 0 {
			if written > 0 {
				fmt.Fprintln(r.bw)
			}
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(r.opts.displayPath(file.Path)))
		}
		written++

		r.writeFile(file)
	}

	if r.opts.ShowSummary {
		if headers {
			fmt.Fprintln(r.bw)
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
		fmt.Fprint(r.bw, r.styles.FormatUnsupportedHint(result.Stats))
	}

	return result.Stats.FilesUnbalanced, nil
}

func (r *TextReporter) writeFile(file runner.FileOutcome) {
	for _, record := range file.Records {
		fmt.Fprintln(r.bw, r.styles.FormatRecord(record, r.opts.ShowMode))
	}

	for _, block := range file.Blocks {
		fmt.Fprintln(r.bw, r.styles.FormatBlockHeader(block.Language, block.StartLine))
		for _, record := range block.Records {
			fmt.Fprintln(r.bw, r.styles.FormatRecord(record, r.opts.ShowMode))
		}
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.FormatVerdict(block.Summary))
		}
	}

	if r.opts.ShowSummary && len(file.Blocks) == 0 {
		fmt.Fprintln(r.bw, r.styles.FormatVerdict(file.Summary))
	}
}
