// Package langdetect classifies source files so bracecheck can tell whether
// its quoting model (single, double and backtick literals) fits the input.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Normalized language names.
const (
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangTSX        = "tsx"
	LangJSON       = "json"
	LangMarkdown   = "markdown"
	LangText       = "text"
)

// classifierCandidates limits content classification to languages that are
// plausible inputs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"JavaScript", "TypeScript", "TSX", "JSON", "Markdown",
	"Python", "Go", "Shell", "CSS", "HTML",
}

// fenceAliases maps common code fence info strings to normalized names.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fenceAliases = map[string]string{
	"js":         LangJavaScript,
	"jsx":        LangJavaScript,
	"mjs":        LangJavaScript,
	"cjs":        LangJavaScript,
	"javascript": LangJavaScript,
	"ts":         LangTypeScript,
	"mts":        LangTypeScript,
	"cts":        LangTypeScript,
	"typescript": LangTypeScript,
	"tsx":        LangTSX,
	"json":       LangJSON,
	"jsonc":      LangJSON,
	"json5":      LangJSON,
}

// extensionAliases covers extensions go-enry considers ambiguous.
//
//nolint:gochecknoglobals // Read-only lookup table.
var extensionAliases = map[string]string{
	"md":       LangMarkdown,
	"markdown": LangMarkdown,
	"mdx":      LangMarkdown,
}

// Detect returns the normalized language of the file at path.
//
// The extension decides when it is unambiguous. Otherwise a shebang line
// is tried, then the go-enry classifier restricted to likely candidates.
// Returns LangText when nothing is confident.
func Detect(path string, content []byte) string {
	if lang := byExtension(path); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if len(content) == 0 {
		return LangText
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// FromFenceInfo normalizes a Markdown code fence info string such as
// "tsx title=app.tsx" to a language name. Unknown languages are returned
// lowercased as-is.
func FromFenceInfo(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	name := strings.ToLower(strings.Trim(fields[0], "{}."))
	if alias, ok := fenceAliases[name]; ok {
		return alias
	}
	return name
}

// Supported reports whether lang is one whose string literals match the
// scanner's quoting model.
func Supported(lang string) bool {
	switch lang {
	case LangJavaScript, LangTypeScript, LangTSX, LangJSON:
		return true
	default:
		return false
	}
}

func byExtension(path string) string {
	if ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext != "" {
		if alias, ok := fenceAliases[ext]; ok {
			return alias
		}
		if alias, ok := extensionAliases[ext]; ok {
			return alias
		}
	}

	lang, safe := enry.GetLanguageByExtension(path)
	if !safe || lang == "" {
		return ""
	}
	return normalize(lang)
}

// normalize converts go-enry language names to the names used here.
func normalize(lang string) string {
	switch lang {
	case "JavaScript", "JSX":
		return LangJavaScript
	case "TypeScript":
		return LangTypeScript
	case "TSX":
		return LangTSX
	case "JSON", "JSON with Comments", "JSON5":
		return LangJSON
	case "Markdown":
		return LangMarkdown
	case "Text":
		return LangText
	default:
		return strings.ToLower(lang)
	}
}
