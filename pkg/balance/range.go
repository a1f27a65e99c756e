package balance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRange is returned when a range string cannot be parsed.
var ErrInvalidRange = errors.New("invalid line range")

// Range is an inclusive, 1-indexed window of line numbers.
// A range with Hi < Lo is empty.
type Range struct {
	Lo int `json:"lo" yaml:"lo" toml:"lo"`
	Hi int `json:"hi" yaml:"hi" toml:"hi"`
}

// FullRange covers lines 1 through n.
func FullRange(n int) Range {
	return Range{Lo: 1, Hi: n}
}

// Empty reports whether the range selects no lines.
func (r Range) Empty() bool {
	return r.Hi < r.Lo
}

// Contains reports whether line falls inside the range.
func (r Range) Contains(line int) bool {
	return line >= r.Lo && line <= r.Hi
}

// IsZero reports whether the range is unset.
func (r Range) IsZero() bool {
	return r.Lo == 0 && r.Hi == 0
}

// Clamp limits the range to lines that exist in an input of n lines.
func (r Range) Clamp(n int) Range {
	return Range{Lo: max(r.Lo, 1), Hi: min(r.Hi, n)}
}

// String formats the range as "lo:hi", or "lo:" when open-ended.
func (r Range) String() string {
	if r.Hi == maxLine {
		return fmt.Sprintf("%d:", r.Lo)
	}
	return fmt.Sprintf("%d:%d", r.Lo, r.Hi)
}

// ParseRange parses "lo:hi", "lo-hi" or a single line number "n".
// Either bound of a pair may be omitted: ":hi" starts at line 1 and "lo:"
// or "lo-" runs to the end of the input (represented by an Hi of maxLine).
// A leading "-" is rejected because it reads as a negative line number;
// use ":hi" for an open start.
func ParseRange(input string) (Range, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Range{}, fmt.Errorf("%w: empty", ErrInvalidRange)
	}
	if strings.HasPrefix(input, "-") {
		return Range{}, fmt.Errorf("%w: %q starts with '-'; use \":hi\" for an open start", ErrInvalidRange, input)
	}

	sep := strings.IndexAny(input, ":-")
	if sep < 0 {
		line, err := parseLine(input)
		if err != nil {
			return Range{}, err
		}
		return Range{Lo: line, Hi: line}, nil
	}

	loText, hiText := input[:sep], input[sep+1:]
	result := Range{Lo: 1, Hi: maxLine}

	if loText != "" {
		lo, err := parseLine(loText)
		if err != nil {
			return Range{}, err
		}
		result.Lo = lo
	}
	if hiText != "" {
		hi, err := parseLine(hiText)
		if err != nil {
			return Range{}, err
		}
		result.Hi = hi
	}

	return result, nil
}

// maxLine stands in for "through the last line" in open-ended ranges.
const maxLine = int(^uint(0) >> 1)

func parseLine(text string) (int, error) {
	line, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a line number", ErrInvalidRange, text)
	}
	if line < 1 {
		return 0, fmt.Errorf("%w: line numbers start at 1, got %d", ErrInvalidRange, line)
	}
	return line, nil
}
