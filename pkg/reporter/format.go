package reporter

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned for an output format that does not exist.
var ErrUnknownFormat = errors.New("unknown format")

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatSummary Format = "summary"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	format := Format(formatStr)
	if formatStr == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return "", fmt.Errorf("%w %q; valid formats: text, table, json, summary", ErrUnknownFormat, formatStr)
	}
	return format, nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}
