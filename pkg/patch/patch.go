// Package patch replaces a marker-delimited block of lines with a
// placeholder. It is used to cut a suspect region out of a large source
// file while hunting for an unbalanced bracket.
package patch

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrInvalidSpec indicates a Spec is missing a required field.
	ErrInvalidSpec = errors.New("invalid patch spec")

	// ErrStartNotFound indicates no line contains the start marker.
	ErrStartNotFound = errors.New("start marker not found")

	// ErrEndNotFound indicates no line after the start contains the end marker.
	ErrEndNotFound = errors.New("end marker not found")
)

// Spec describes a block to replace.
type Spec struct {
	// StartMarker is a substring identifying the first line of the block.
	StartMarker string `yaml:"start" toml:"start"`

	// EndMarker is a substring identifying the last line of the block.
	// It is searched for only on lines after the start line.
	EndMarker string `yaml:"end" toml:"end"`

	// Placeholder replaces the whole block. It may span several lines.
	Placeholder string `yaml:"placeholder" toml:"placeholder"`
}

// Validate checks that both markers are set.
func (s Spec) Validate() error {
	if s.StartMarker == "" {
		return fmt.Errorf("%w: start marker is empty", ErrInvalidSpec)
	}
	if s.EndMarker == "" {
		return fmt.Errorf("%w: end marker is empty", ErrInvalidSpec)
	}
	return nil
}

// Block is an inclusive, 1-indexed line span.
type Block struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of lines in the block.
func (b Block) Len() int {
	return b.End - b.Start + 1
}

// Locate finds the block described by spec: the first line containing the
// start marker through the first later line containing the end marker.
func Locate(lines []string, spec Spec) (Block, error) {
	if err := spec.Validate(); err != nil {
		return Block{}, err
	}

	start := -1
	for idx, line := range lines {
		if strings.Contains(line, spec.StartMarker) {
			start = idx
			break
		}
	}
	if start < 0 {
		return Block{}, fmt.Errorf("%w: %q", ErrStartNotFound, spec.StartMarker)
	}

	for idx := start + 1; idx < len(lines); idx++ {
		if strings.Contains(lines[idx], spec.EndMarker) {
			return Block{Start: start + 1, End: idx + 1}, nil
		}
	}

	return Block{}, fmt.Errorf("%w: %q after line %d", ErrEndNotFound, spec.EndMarker, start+1)
}

// Apply returns a copy of lines with the located block replaced by the
// placeholder lines. An empty placeholder removes the block entirely.
func Apply(lines []string, spec Spec) ([]string, Block, error) {
	block, err := Locate(lines, spec)
	if err != nil {
		return nil, Block{}, err
	}

	replacement := placeholderLines(spec.Placeholder)

	patched := make([]string, 0, len(lines)-block.Len()+len(replacement))
	patched = append(patched, lines[:block.Start-1]...)
	patched = append(patched, replacement...)
	patched = append(patched, lines[block.End:]...)

	return patched, block, nil
}

// Render joins lines with LF and terminates the result with a newline.
func Render(lines []string) []byte {
	return RenderWithEnding(lines, "\n")
}

// RenderWithEnding joins lines with eol and terminates the result with it.
func RenderWithEnding(lines []string, eol string) []byte {
	if len(lines) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(lines, eol) + eol)
}

// LineEnding returns the terminator of the first line in content: "\r\n"
// for CRLF files and "\n" otherwise.
func LineEnding(content []byte) string {
	idx := bytes.IndexByte(content, '\n')
	if idx > 0 && content[idx-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

func placeholderLines(placeholder string) []string {
	if placeholder == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(placeholder, "\n"), "\n")
}
