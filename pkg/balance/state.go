// Package balance tracks parenthesis and brace balance across lines of
// JavaScript-like source while skipping quoted regions.
//
// The scanner understands three same-character delimited quote forms
// (single, double and backtick) and backslash escapes. It does not handle
// comments, regular expression literals or template interpolation, so it is
// a diagnostic aid rather than a tokenizer.
package balance

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrUnknownMode is returned when parsing a quote mode name fails.
var ErrUnknownMode = errors.New("unknown quote mode")

// QuoteMode describes which quoted literal, if any, the scanner is inside.
// Exactly one mode is active at a time.
type QuoteMode int

const (
	// Normal means brackets are counted.
	Normal QuoteMode = iota

	// InSingleQuote is inside a '...' literal.
	InSingleQuote

	// InDoubleQuote is inside a "..." literal.
	InDoubleQuote

	// InTemplate is inside a `...` template literal.
	InTemplate
)

// String returns the mode name used in reports.
func (m QuoteMode) String() string {
	switch m {
	case Normal:
		return "normal"
	case InSingleQuote:
		return "single"
	case InDoubleQuote:
		return "double"
	case InTemplate:
		return "template"
	default:
		return "unknown"
	}
}

// MarshalText lets QuoteMode appear by name in JSON output.
func (m QuoteMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a mode name produced by MarshalText.
func (m *QuoteMode) UnmarshalText(text []byte) error {
	for _, mode := range []QuoteMode{Normal, InSingleQuote, InDoubleQuote, InTemplate} {
		if mode.String() == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownMode, text)
}

// Quoted reports whether brackets are currently ignored.
func (m QuoteMode) Quoted() bool {
	return m != Normal
}

// Delimiter characters recognized by the scanner.
const (
	escapeChar   = '\\'
	singleQuote  = '\''
	doubleQuote  = '"'
	backtick     = '`'
	openParen    = '('
	closeParen   = ')'
	openBrace    = '{'
	closeBrace   = '}'
	asciiMaxByte = utf8.RuneSelf
)

// State is the running scan state: cumulative bracket counts plus the
// current quote mode. The zero value is a fresh state.
//
// Counts may go negative when a closing bracket has no opener; that is
// reported, never clamped.
type State struct {
	Paren int       `json:"paren"`
	Brace int       `json:"brace"`
	Mode  QuoteMode `json:"mode"`
}

// Feed advances the state over a single line.
func (s *State) Feed(line string) {
	for idx := 0; idx < len(line); {
		char := line[idx]

		if char == escapeChar {
			// The escape and the character after it are both skipped,
			// whatever the current mode.
			idx++
			if idx < len(line) {
				idx += runeWidth(line, idx)
			}
			continue
		}

		s.step(char)
		idx++
	}
}

// step applies one unescaped byte. Non-ASCII bytes never match a
// delimiter, so iterating bytes is safe for UTF-8 input.
func (s *State) step(char byte) {
	switch {
	case char == singleQuote && (s.Mode == Normal || s.Mode == InSingleQuote):
		s.Mode = toggle(s.Mode, InSingleQuote)
	case char == doubleQuote && (s.Mode == Normal || s.Mode == InDoubleQuote):
		s.Mode = toggle(s.Mode, InDoubleQuote)
	case char == backtick && (s.Mode == Normal || s.Mode == InTemplate):
		s.Mode = toggle(s.Mode, InTemplate)
	case s.Mode == Normal:
		s.count(char)
	}
}

func (s *State) count(char byte) {
	switch char {
	case openParen:
		s.Paren++
	case closeParen:
		s.Paren--
	case openBrace:
		s.Brace++
	case closeBrace:
		s.Brace--
	}
}

func toggle(current, mode QuoteMode) QuoteMode {
	if current == mode {
		return Normal
	}
	return mode
}

// runeWidth returns the byte width of the rune starting at idx.
func runeWidth(line string, idx int) int {
	if line[idx] < asciiMaxByte {
		return 1
	}
	_, width := utf8.DecodeRuneInString(line[idx:])
	return width
}
