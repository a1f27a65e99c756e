package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/bracecheck/pkg/balance"
	"github.com/yaklabco/bracecheck/pkg/runner"
)

// jsonSchemaVersion identifies the layout of JSONOutput.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path     string                `json:"path"`
	Language string                `json:"language,omitempty"`
	Balanced bool                  `json:"balanced"`
	Records  []balance.Record      `json:"records"`
	Blocks   []runner.BlockOutcome `json:"blocks,omitempty"`
	Summary  *balance.Summary      `json:"summary,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesScanned     int `json:"filesScanned"`
	FilesUnbalanced  int `json:"filesUnbalanced"`
	FilesErrored     int `json:"filesErrored"`
	FilesUnsupported int `json:"filesUnsupported"`
	LinesScanned     int `json:"linesScanned"`
	BlocksScanned    int `json:"blocksScanned"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesUnbalanced, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesScanned:     stats.FilesScanned,
		FilesUnbalanced:  stats.FilesUnbalanced,
		FilesErrored:     stats.FilesErrored,
		FilesUnsupported: stats.FilesUnsupported,
		LinesScanned:     stats.LinesScanned,
		BlocksScanned:    stats.BlocksScanned,
	}

	for _, file := range result.Files {
		if r.opts.OnlyUnbalanced && file.Error == nil && file.Balanced() {
			continue
		}

		entry := JSONFileResult{
			Path:     r.opts.displayPath(file.Path),
			Language: file.Language,
			Balanced: file.Balanced(),
			Records:  file.Records,
			Blocks:   file.Blocks,
		}
		if entry.Records == nil {
			entry.Records = []balance.Record{}
		}

		if file.Error != nil {
			entry.Error = file.Error.Error()
		} else {
			summary := file.Summary
			entry.Summary = &summary
		}

		output.Files = append(output.Files, entry)
	}

	return output
}
