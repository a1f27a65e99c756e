package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/bracecheck/internal/ui/pretty"
	"github.com/yaklabco/bracecheck/pkg/diff"
	"github.com/yaklabco/bracecheck/pkg/patch"
)

// PatchReporter prints block patches as git-style unified diffs.
type PatchReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewPatchReporter creates a new patch reporter.
func NewPatchReporter(opts Options) *PatchReporter {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &PatchReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report writes the diff of each result and returns how many changed.
func (r *PatchReporter) Report(results []*patch.Result) int {
	var changed, added, removed int

	for _, result := range results {
		if result == nil || !result.Diff.HasChanges() {
			continue
		}

		changed++
		added += result.Diff.Added
		removed += result.Diff.Removed
		r.writeDiff(result)
	}

	if changed > 0 && r.opts.ShowSummary {
		r.writeSummary(changed, added, removed)
	}

	return changed
}

func (r *PatchReporter) writeDiff(result *patch.Result) {
	path := r.opts.displayPath(result.Path)

	header := fmt.Sprintf("diff --git a/%s b/%s", path, path)
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(header))
	fmt.Fprintln(r.out, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range result.Diff.Hunks {
		fmt.Fprintln(r.out, r.styles.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)))

		for _, line := range hunk.Lines {
			r.writeLine(line)
		}
	}

	fmt.Fprintln(r.out)
}

func (r *PatchReporter) writeLine(line diff.Line) {
	switch line.Kind {
	case diff.Added:
		fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+"+line.Text))
	case diff.Removed:
		fmt.Fprintln(r.out, r.styles.DiffRemove.Render("-"+line.Text))
	default:
		fmt.Fprintln(r.out, r.styles.DiffContext.Render(" "+line.Text))
	}
}

func (r *PatchReporter) writeSummary(files, additions, deletions int) {
	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts := []string{fmt.Sprintf("%d %s changed", files, fileWord)}

	if additions > 0 {
		word := "insertions"
		if additions == 1 {
			word = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, word)))
	}

	if deletions > 0 {
		word := "deletions"
		if deletions == 1 {
			word = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, word)))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}
