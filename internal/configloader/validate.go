package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/bracecheck/pkg/balance"
	"github.com/yaklabco/bracecheck/pkg/config"
	"github.com/yaklabco/bracecheck/pkg/langdetect"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "output.format").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownColors lists valid color mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownColors = map[string]bool{
	"auto":   true,
	"always": true,
	"never":  true,
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Range != "" {
		if _, err := balance.ParseRange(cfg.Range); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "range",
				Value:   cfg.Range,
				Message: err.Error(),
			})
		}
	}

	if cfg.Output.Format != "" && !cfg.Output.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.format",
			Value:   cfg.Output.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, table, json, summary", cfg.Output.Format),
		})
	}

	if cfg.Output.Color != "" && !knownColors[cfg.Output.Color] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.color",
			Value:   cfg.Output.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Output.Color),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)
	validateMarkdownLanguages(cfg, result)

	return result
}

// validateExtensions warns about extensions missing their leading dot.
func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("extension %q has no leading dot; it will match nothing", ext),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// validateMarkdownLanguages warns about fence languages that can never be scanned.
func validateMarkdownLanguages(cfg *config.Config, result *ValidationResult) {
	for i, lang := range cfg.Markdown.Languages {
		if !langdetect.Supported(langdetect.FromFenceInfo(lang)) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("markdown.languages[%d]", i),
				Value:   lang,
				Message: fmt.Sprintf("unsupported language %q; blocks in it will be skipped", lang),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return f.IsValid()
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}

// IsValidColor returns true if the color mode is valid.
func IsValidColor(mode string) bool {
	return knownColors[mode]
}
