// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldCommand    = "command"

	// Scan fields.
	FieldRange     = "range"
	FieldJobs      = "jobs"
	FieldMarkdown  = "markdown"
	FieldLanguage  = "language"
	FieldBlocks    = "blocks"
	FieldLines     = "lines"
	FieldFormat    = "format"
	FieldResetMode = "reset_quotes_per_line"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesScanned    = "files_scanned"
	FieldFilesUnbalanced = "files_unbalanced"
	FieldFilesErrored    = "files_errored"

	// Patch fields.
	FieldBlockStart = "block_start"
	FieldBlockEnd   = "block_end"
	FieldDryRun     = "dry_run"
	FieldBackup     = "backup"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
