package runner

import (
	"github.com/yaklabco/bracecheck/pkg/balance"
)

// BlockOutcome is the scan of one fenced code block in a Markdown file.
type BlockOutcome struct {
	// Language is the block's info-string language.
	Language string `json:"language"`

	// StartLine is the file line of the first content line.
	StartLine int `json:"startLine"`

	// Records are the per-line counts, numbered by file line.
	Records []balance.Record `json:"records"`

	// Summary covers the whole block regardless of the window.
	Summary balance.Summary `json:"summary"`
}

// FileOutcome is the scan of one file.
type FileOutcome struct {
	// Path is the file that was scanned.
	Path string

	// Language is the detected source language.
	Language string

	// Records are the per-line counts inside the window.
	// Empty for Markdown files scanned block by block.
	Records []balance.Record

	// Summary covers the whole file regardless of the window.
	Summary balance.Summary

	// Blocks holds fenced block results for Markdown files.
	Blocks []BlockOutcome

	// Error is set if the file could not be read.
	Error error
}

// Balanced reports whether the file, or every scanned block in it, ends
// balanced without ever going negative.
func (o FileOutcome) Balanced() bool {
	if o.Error != nil {
		return false
	}
	if len(o.Blocks) > 0 {
		for _, block := range o.Blocks {
			if !block.Summary.Balanced() {
				return false
			}
		}
		return true
	}
	return o.Summary.Balanced()
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files found during discovery.
	FilesDiscovered int

	// FilesScanned is the number of files read and scanned.
	FilesScanned int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// FilesUnbalanced is the number of scanned files that are not balanced.
	FilesUnbalanced int

	// FilesUnsupported is the number of scanned files whose language does
	// not follow the JavaScript quoting rules.
	FilesUnsupported int

	// LinesScanned is the total number of lines fed to the scanner.
	LinesScanned int

	// BlocksScanned is the number of fenced code blocks scanned.
	BlocksScanned int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasUnbalanced reports whether any scanned file is unbalanced.
func (r *Result) HasUnbalanced() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesUnbalanced > 0
}

// HasErrors reports whether any file failed to scan.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// NewResult builds a Result from outcomes scanned outside Run, such as
// standard input.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Files: make([]FileOutcome, 0, len(outcomes))}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesScanned++
	r.Stats.LinesScanned += outcome.Summary.Lines
	r.Stats.BlocksScanned += len(outcome.Blocks)

	if !outcome.Balanced() {
		r.Stats.FilesUnbalanced++
	}
	if outcome.Language != "" && !langSupported(outcome) {
		r.Stats.FilesUnsupported++
	}
}
