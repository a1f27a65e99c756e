package config

import (
	"errors"
	"fmt"
)

// ErrUnknownTemplateFormat is returned for a template format other than
// yaml or toml.
var ErrUnknownTemplateFormat = errors.New("unknown template format")

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" (default) or "toml".
	Format string
}

// GenerateTemplate creates a commented configuration file template. Every
// setting is shown with its default value, commented out.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml", "yml":
		return []byte(yamlTemplate), nil
	case "toml":
		return []byte(tomlTemplate), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplateFormat, opts.Format)
	}
}

const yamlTemplate = `# bracecheck configuration
# See: https://github.com/yaklabco/bracecheck

# Only report these lines (lo:hi, lo-hi, n, lo: or :hi).
# range: "1:200"

# Clear quote state at the start of every line instead of carrying
# unterminated strings forward.
# reset_quotes_per_line: false

# Extensions picked up when walking directories.
# extensions: [".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts", ".json"]

# File patterns to ignore (glob patterns).
# ignore:
#   - "node_modules"
#   - "dist/**"
#   - "*.min.js"

# follow_symlinks: false

# Number of files scanned at once (0 = one per CPU).
# jobs: 0

# Exit with status 1 when any file is unbalanced.
# strict: true

# Scan fenced code blocks in Markdown files.
# markdown:
#   enabled: false
#   languages: [javascript, typescript, tsx, json]

# output:
#   format: text          # text, table, json or summary
#   color: auto           # auto, always or never
#   show_quotes: false
#   summary: true
#   only_unbalanced: false

# Backups written before patching a file.
# backups:
#   enabled: true
#   mode: sidecar         # sidecar or none

# Default block for "bracecheck patch".
# patch:
#   start: "{moduleIsExpanded && ("
#   end: ")}"
#   placeholder: "{null}"
`

const tomlTemplate = `# bracecheck configuration
# See: https://github.com/yaklabco/bracecheck

# Only report these lines (lo:hi, lo-hi, n, lo: or :hi).
# range = "1:200"

# reset_quotes_per_line = false
# extensions = [".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts", ".json"]
# ignore = ["node_modules", "dist/**", "*.min.js"]
# follow_symlinks = false
# jobs = 0
# strict = true

# [markdown]
# enabled = false
# languages = ["javascript", "typescript", "tsx", "json"]

# [output]
# format = "text"
# color = "auto"
# show_quotes = false
# summary = true
# only_unbalanced = false

# [backups]
# enabled = true
# mode = "sidecar"

# [patch]
# start = "{moduleIsExpanded && ("
# end = ")}"
# placeholder = "{null}"
`
