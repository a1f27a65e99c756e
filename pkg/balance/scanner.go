package balance

import "iter"

// Record is the scan state observed at the end of one line.
type Record struct {
	// Line is the 1-indexed line number.
	Line int `json:"line"`

	// Paren is the cumulative open-parenthesis count after this line.
	Paren int `json:"paren"`

	// Brace is the cumulative open-brace count after this line.
	Brace int `json:"brace"`

	// Mode is the quote mode still active at the end of this line.
	Mode QuoteMode `json:"mode"`
}

// Options tunes scanner behavior.
type Options struct {
	// ResetQuotesPerLine clears the quote mode at the start of every line,
	// so an unterminated literal cannot leak into the following lines.
	// Bracket counts still accumulate across lines.
	ResetQuotesPerLine bool
}

// Scanner produces balance records for a sequence of lines.
// A Scanner holds no state between calls and is safe for concurrent use.
type Scanner struct {
	opts Options
}

// NewScanner creates a Scanner with the given options.
func NewScanner(opts Options) *Scanner {
	return &Scanner{opts: opts}
}

// Scan is shorthand for NewScanner(Options{}).Scan.
func Scan(lines []string, window Range) iter.Seq[Record] {
	return NewScanner(Options{}).Scan(lines, window)
}

// Scan returns a lazy sequence with one record per line in window, in line
// order. Lines before the window are still scanned since counts are
// cumulative. Iteration ends once the window or the input is exhausted.
// Each iteration starts from a fresh State.
func (s *Scanner) Scan(lines []string, window Range) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		if window.Empty() {
			return
		}

		var state State
		for idx, line := range lines {
			lineNum := idx + 1
			if lineNum > window.Hi {
				return
			}

			s.feed(&state, line)

			if lineNum < window.Lo {
				continue
			}

			record := Record{
				Line:  lineNum,
				Paren: state.Paren,
				Brace: state.Brace,
				Mode:  state.Mode,
			}
			if !yield(record) {
				return
			}
		}
	}
}

// Collect gathers a Scan into a slice.
func (s *Scanner) Collect(lines []string, window Range) []Record {
	var records []Record
	for record := range s.Scan(lines, window) {
		records = append(records, record)
	}
	return records
}

func (s *Scanner) feed(state *State, line string) {
	if s.opts.ResetQuotesPerLine {
		state.Mode = Normal
	}
	state.Feed(line)
}
