package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/bracecheck/pkg/balance"
)

// FormatRecord formats one scan record as "<line> paren <n> brace <n>".
// When showMode is set and the line ends inside a string, the quote mode
// is appended.
func (s *Styles) FormatRecord(record balance.Record, showMode bool) string {
	var builder strings.Builder

	builder.WriteString(s.LineNum.Render(strconv.Itoa(record.Line)))
	builder.WriteString(" " + s.Label.Render("paren") + " " + s.FormatCount(record.Paren))
	builder.WriteString(" " + s.Label.Render("brace") + " " + s.FormatCount(record.Brace))

	if showMode && record.Mode.Quoted() {
		builder.WriteString(" " + s.Quote.Render("("+record.Mode.String()+")"))
	}

	return builder.String()
}

// FormatCount styles a running count: negative counts stand out.
func (s *Styles) FormatCount(count int) string {
	text := strconv.Itoa(count)
	if count < 0 {
		return s.Negative.Render(text)
	}
	return s.Count.Render(text)
}

// FormatFileHeader formats the heading printed above a file's records.
func (s *Styles) FormatFileHeader(path string) string {
	return s.FilePath.Render(path)
}

// FormatBlockHeader formats the heading printed above a fenced block's records.
func (s *Styles) FormatBlockHeader(language string, startLine int) string {
	if language == "" {
		language = "code"
	}
	return s.Dim.Render(fmt.Sprintf("```%s block at line %d", language, startLine))
}

// FormatVerdict describes a whole-file summary in one line, for example
// "balanced" or "unbalanced: paren +1, brace -1 first at line 40".
func (s *Styles) FormatVerdict(summary balance.Summary) string {
	if summary.Balanced() {
		return s.Success.Render("balanced")
	}

	var parts []string

	if summary.Final.Paren != 0 {
		parts = append(parts, "paren "+signed(summary.Final.Paren))
	}
	if summary.Final.Brace != 0 {
		parts = append(parts, "brace "+signed(summary.Final.Brace))
	}
	if summary.Final.Mode.Quoted() {
		parts = append(parts, "ends inside "+summary.Final.Mode.String()+" quote")
	}
	if line := summary.FirstNegativeParen; line > 0 {
		parts = append(parts, fmt.Sprintf("paren below zero at line %d", line))
	}
	if line := summary.FirstNegativeBrace; line > 0 {
		parts = append(parts, fmt.Sprintf("brace below zero at line %d", line))
	}

	return s.Failure.Render("unbalanced") + s.Dim.Render(": "+strings.Join(parts, ", "))
}

func signed(count int) string {
	if count > 0 {
		return "+" + strconv.Itoa(count)
	}
	return strconv.Itoa(count)
}
