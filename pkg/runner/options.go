// Package runner discovers source files and balance-checks them
// concurrently.
package runner

import (
	"slices"

	"github.com/yaklabco/bracecheck/pkg/balance"
	"github.com/yaklabco/bracecheck/pkg/langdetect"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the files or directories to process. Defaults to ".".
	Paths []string

	// WorkingDir resolves relative Paths and ignore globs.
	// If empty, the process working directory is used.
	WorkingDir string

	// Extensions are the lowercase extensions, with leading dot, that
	// directory walks pick up. Explicitly named files are always scanned.
	Extensions []string

	// Ignore holds glob patterns for files and directories to skip.
	Ignore []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs bounds the number of files scanned at once.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Window limits the reported lines. The zero value reports every line.
	Window balance.Range

	// ResetQuotesPerLine clears the quote mode at the start of every line.
	ResetQuotesPerLine bool

	// Markdown enables fenced code block scanning for Markdown files.
	Markdown bool

	// FenceLanguages restricts which fenced blocks are scanned.
	// Defaults to DefaultFenceLanguages().
	FenceLanguages []string
}

// DefaultExtensions returns the extensions picked up by directory walks.
func DefaultExtensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts", ".json"}
}

// MarkdownExtensions returns the extensions treated as Markdown.
func MarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

// DefaultFenceLanguages returns the fenced block languages scanned by default.
func DefaultFenceLanguages() []string {
	return []string{
		langdetect.LangJavaScript,
		langdetect.LangTypeScript,
		langdetect.LangTSX,
		langdetect.LangJSON,
	}
}

func (o Options) effectiveExtensions() []string {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	if o.Markdown {
		exts = append(slices.Clone(exts), MarkdownExtensions()...)
	}
	return exts
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveWindow(lines int) balance.Range {
	if o.Window.IsZero() {
		return balance.FullRange(lines)
	}
	return o.Window
}

func (o Options) effectiveFenceLanguages() []string {
	if len(o.FenceLanguages) == 0 {
		return DefaultFenceLanguages()
	}
	return o.FenceLanguages
}

func (o Options) isMarkdown(path string) bool {
	return o.Markdown && hasExtension(path, MarkdownExtensions())
}
