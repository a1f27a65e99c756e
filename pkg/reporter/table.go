package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/bracecheck/internal/ui/pretty"
	"github.com/yaklabco/bracecheck/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats records as a single aligned table.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	shown := r.visible(result)

	fmt.Fprint(r.bw, r.formatter.FormatTable(shown))

	for _, file := range shown.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats))
		fmt.Fprint(r.bw, r.styles.FormatUnsupportedHint(result.Stats))
	}

	return result.Stats.FilesUnbalanced, nil
}

// visible returns a copy of result holding only the files to display,
// with display paths applied.
func (r *TableReporter) visible(result *runner.Result) *runner.Result {
	shown := &runner.Result{Stats: result.Stats}
	for _, file := range result.Files {
		if r.opts.OnlyUnbalanced && file.Error == nil && file.Balanced() {
			continue
		}
		file.Path = r.opts.displayPath(file.Path)
		shown.Files = append(shown.Files, file)
	}
	return shown
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
