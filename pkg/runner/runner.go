package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/bracecheck/pkg/balance"
	"github.com/yaklabco/bracecheck/pkg/fence"
	"github.com/yaklabco/bracecheck/pkg/fsutil"
	"github.com/yaklabco/bracecheck/pkg/langdetect"
)

// Runner scans files for bracket balance.
type Runner struct {
	extractor *fence.Extractor
}

// New creates a Runner.
func New() *Runner {
	return &Runner{extractor: fence.NewExtractor()}
}

// Run discovers files under opts.Paths and scans them concurrently.
// Outcomes are returned in path order whatever order the scans finish in.
// Per-file read failures are recorded on the outcome, not returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, file := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[idx] = r.ScanFile(groupCtx, file, opts)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	return result, nil
}

// ScanFile reads and scans a single file.
func (r *Runner) ScanFile(ctx context.Context, path string, opts Options) FileOutcome {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, Error: err}
	}
	return r.ScanContent(path, content, opts)
}

// ScanContent scans content as if it were read from path. The path only
// drives language detection and Markdown handling.
func (r *Runner) ScanContent(path string, content []byte, opts Options) FileOutcome {
	outcome := FileOutcome{
		Path:     path,
		Language: langdetect.Detect(path, content),
	}

	scanner := balance.NewScanner(balance.Options{ResetQuotesPerLine: opts.ResetQuotesPerLine})
	lines := balance.SplitLines(content)

	if opts.isMarkdown(path) {
		blocks, err := r.scanBlocks(scanner, content, opts)
		if err != nil {
			outcome.Error = fmt.Errorf("extract code blocks from %s: %w", path, err)
			return outcome
		}
		outcome.Blocks = blocks
		outcome.Summary = balance.Summary{Lines: len(lines)}
		return outcome
	}

	outcome.Records = scanner.Collect(lines, opts.effectiveWindow(len(lines)))
	outcome.Summary = scanner.Summarize(lines)
	return outcome
}

// scanBlocks scans each fenced block with its own state and renumbers the
// records to file lines.
func (r *Runner) scanBlocks(scanner *balance.Scanner, content []byte, opts Options) ([]BlockOutcome, error) {
	blocks, err := r.extractor.Extract(content)
	if err != nil {
		return nil, err
	}
	blocks = fence.Filter(blocks, opts.effectiveFenceLanguages())

	window := opts.Window
	outcomes := make([]BlockOutcome, 0, len(blocks))

	for _, block := range blocks {
		offset := block.Offset()

		local := balance.FullRange(len(block.Lines))
		if !window.IsZero() {
			local = balance.Range{Lo: window.Lo - offset, Hi: window.Hi - offset}
		}

		outcomes = append(outcomes, BlockOutcome{
			Language:  block.Language,
			StartLine: block.StartLine,
			Records:   balance.Shift(scanner.Collect(block.Lines, local), offset),
			Summary:   scanner.Summarize(block.Lines),
		})
	}

	return outcomes, nil
}

func langSupported(outcome FileOutcome) bool {
	if len(outcome.Blocks) > 0 || langdetect.Supported(outcome.Language) {
		return true
	}
	return outcome.Language == langdetect.LangMarkdown
}
