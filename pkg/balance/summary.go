package balance

// Summary describes the balance of a whole input.
type Summary struct {
	// Lines is the number of lines scanned.
	Lines int `json:"lines"`

	// Final is the state after the last line.
	Final State `json:"final"`

	// FirstNegativeParen is the first line ending with the paren count
	// below zero, or 0 if it never did.
	FirstNegativeParen int `json:"firstNegativeParen,omitempty"`

	// FirstNegativeBrace is the first line ending with the brace count
	// below zero, or 0 if it never did.
	FirstNegativeBrace int `json:"firstNegativeBrace,omitempty"`
}

// Balanced reports whether every bracket was closed, no count ever went
// negative, and no quoted literal was left open.
func (s Summary) Balanced() bool {
	return s.Final.Paren == 0 &&
		s.Final.Brace == 0 &&
		s.Final.Mode == Normal &&
		s.FirstNegativeParen == 0 &&
		s.FirstNegativeBrace == 0
}

// Summarize scans every line and returns the whole-input summary.
func (s *Scanner) Summarize(lines []string) Summary {
	summary := Summary{Lines: len(lines)}

	for record := range s.Scan(lines, FullRange(len(lines))) {
		if record.Paren < 0 && summary.FirstNegativeParen == 0 {
			summary.FirstNegativeParen = record.Line
		}
		if record.Brace < 0 && summary.FirstNegativeBrace == 0 {
			summary.FirstNegativeBrace = record.Line
		}
		summary.Final = State{Paren: record.Paren, Brace: record.Brace, Mode: record.Mode}
	}

	return summary
}

// Shift returns a copy of records with every line number moved by offset.
// Used when the scanned lines are a slice of a larger file.
func Shift(records []Record, offset int) []Record {
	shifted := make([]Record, len(records))
	for idx, record := range records {
		record.Line += offset
		shifted[idx] = record
	}
	return shifted
}
