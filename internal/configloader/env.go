package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/bracecheck/pkg/config"
)

// envVarPrefix is the prefix for all bracecheck environment variables.
const envVarPrefix = "BRACECHECK_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"RANGE":                 {field: "range", typ: envTypeString, description: "Line range to report, e.g. 120:180"},
	"RESET_QUOTES_PER_LINE": {field: "reset_quotes_per_line", typ: envTypeBool, description: "Clear quote state at each line start: true or false"},
	"EXTENSIONS":            {field: "extensions", typ: envTypeSlice, description: "Comma-separated list of file extensions to scan"},
	"IGNORE":                {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"FOLLOW_SYMLINKS":       {field: "follow_symlinks", typ: envTypeBool, description: "Follow directory symlinks: true or false"},
	"JOBS":                  {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"STRICT":                {field: "strict", typ: envTypeBool, description: "Exit non-zero on unbalanced files: true or false"},
	"MARKDOWN":              {field: "markdown.enabled", typ: envTypeBool, description: "Scan fenced code blocks in Markdown: true or false"},
	"MARKDOWN_LANGUAGES":    {field: "markdown.languages", typ: envTypeSlice, description: "Comma-separated list of fence languages to scan"},
	"FORMAT":                {field: "output.format", typ: envTypeString, description: "Output format: text, table, json, or summary"},
	"COLOR":                 {field: "output.color", typ: envTypeString, description: "Color output: auto, always, or never"},
	"SHOW_QUOTES":           {field: "output.show_quotes", typ: envTypeBool, description: "Show the open quote kind on each record: true or false"},
	"SUMMARY":               {field: "output.summary", typ: envTypeBool, description: "Print verdicts and the summary line: true or false"},
	"ONLY_UNBALANCED":       {field: "output.only_unbalanced", typ: envTypeBool, description: "Report unbalanced files only: true or false"},
	"BACKUPS_ENABLED":       {field: "backups.enabled", typ: envTypeBool, description: "Enable backups when patching: true or false"},
	"BACKUPS_MODE":          {field: "backups.mode", typ: envTypeString, description: "Backup mode: sidecar or none"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with BRACECHECK_ (e.g., BRACECHECK_RANGE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "range":
		cfg.Range = value
	case "output.format":
		cfg.Output.Format = config.OutputFormat(value)
	case "output.color":
		cfg.Output.Color = value
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	ptr := config.Bool(value)
	switch field {
	case "reset_quotes_per_line":
		cfg.ResetQuotesPerLine = ptr
	case "follow_symlinks":
		cfg.FollowSymlinks = ptr
	case "strict":
		cfg.Strict = ptr
	case "markdown.enabled":
		cfg.Markdown.Enabled = ptr
	case "output.show_quotes":
		cfg.Output.ShowQuotes = ptr
	case "output.summary":
		cfg.Output.Summary = ptr
	case "output.only_unbalanced":
		cfg.Output.OnlyUnbalanced = ptr
	case "backups.enabled":
		cfg.Backups.Enabled = ptr
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	case "markdown.languages":
		cfg.Markdown.Languages = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
