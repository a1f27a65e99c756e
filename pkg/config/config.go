// Package config defines the configuration types for bracecheck.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"github.com/yaklabco/bracecheck/pkg/balance"
	"github.com/yaklabco/bracecheck/pkg/fsutil"
	"github.com/yaklabco/bracecheck/pkg/patch"
)

// MarkdownConfig controls fenced code block scanning in Markdown files.
type MarkdownConfig struct {
	// Enabled turns on Markdown discovery and block scanning.
	Enabled *bool `yaml:"enabled,omitempty" toml:"enabled,omitempty"`

	// Languages restricts which fenced blocks are scanned.
	Languages []string `yaml:"languages,omitempty" toml:"languages,omitempty"`
}

// OutputConfig controls how results are reported.
type OutputConfig struct {
	// Format is one of text, table, json or summary.
	Format OutputFormat `yaml:"format,omitempty" toml:"format,omitempty"`

	// Color is one of auto, always or never.
	Color string `yaml:"color,omitempty" toml:"color,omitempty"`

	// ShowQuotes appends the open quote kind to records ending in a string.
	ShowQuotes *bool `yaml:"show_quotes,omitempty" toml:"show_quotes,omitempty"`

	// Summary prints verdicts and a closing summary line.
	Summary *bool `yaml:"summary,omitempty" toml:"summary,omitempty"`

	// OnlyUnbalanced hides balanced files.
	OnlyUnbalanced *bool `yaml:"only_unbalanced,omitempty" toml:"only_unbalanced,omitempty"`
}

// BackupsConfig controls backup behavior when patching files.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty" toml:"mode,omitempty"` // "sidecar" or "none"
}

// Config is the root configuration structure.
//
// Boolean settings are pointers so that a higher-precedence source can
// switch off something a lower one switched on.
type Config struct {
	// Range limits reported lines, e.g. "120:180". Empty reports every line.
	Range string `yaml:"range,omitempty" toml:"range,omitempty"`

	// ResetQuotesPerLine clears the quote mode at the start of each line.
	ResetQuotesPerLine *bool `yaml:"reset_quotes_per_line,omitempty" toml:"reset_quotes_per_line,omitempty"`

	// Extensions picked up when walking directories.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// FollowSymlinks traverses directory symlinks.
	FollowSymlinks *bool `yaml:"follow_symlinks,omitempty" toml:"follow_symlinks,omitempty"`

	// Jobs bounds concurrent file scans. 0 means one per CPU.
	Jobs int `yaml:"jobs,omitempty" toml:"jobs,omitempty"`

	// Strict makes unbalanced files fail the run.
	Strict *bool `yaml:"strict,omitempty" toml:"strict,omitempty"`

	Markdown MarkdownConfig `yaml:"markdown,omitempty" toml:"markdown"`
	Output   OutputConfig   `yaml:"output,omitempty" toml:"output"`
	Backups  BackupsConfig  `yaml:"backups,omitempty" toml:"backups"`

	// Patch is the default block replacement for the patch command.
	Patch patch.Spec `yaml:"patch,omitempty" toml:"patch"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Strict: Bool(true),
		Output: OutputConfig{
			Format:  FormatText,
			Color:   "auto",
			Summary: Bool(true),
		},
		Backups: BackupsConfig{
			Enabled: Bool(true),
			Mode:    string(fsutil.BackupModeSidecar),
		},
	}
}

// Bool returns a pointer to value.
func Bool(value bool) *bool {
	return &value
}

// BoolValue dereferences ptr, returning fallback when it is nil.
func BoolValue(ptr *bool, fallback bool) bool {
	if ptr == nil {
		return fallback
	}
	return *ptr
}

// Window parses Range. An empty Range yields the zero Range, which the
// runner treats as every line.
func (c *Config) Window() (balance.Range, error) {
	if c.Range == "" {
		return balance.Range{}, nil
	}
	return balance.ParseRange(c.Range)
}

// BackupConfig converts the backup settings for fsutil.
func (c *Config) BackupConfig() fsutil.BackupConfig {
	mode := fsutil.BackupMode(c.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{
		Enabled: BoolValue(c.Backups.Enabled, true),
		Mode:    mode,
	}
}
