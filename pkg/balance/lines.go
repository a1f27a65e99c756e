package balance

// SplitLines splits file content into lines without their terminators.
// It handles both LF (\n) and CRLF (\r\n) line endings. A trailing newline
// does not produce an extra empty line, and empty content yields no lines.
func SplitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	var lines []string
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}

		lineEnd := idx
		if idx > lineStart && content[idx-1] == '\r' {
			lineEnd = idx - 1
		}

		lines = append(lines, string(content[lineStart:lineEnd]))
		lineStart = idx + 1
	}

	// Last line without a trailing newline.
	if lineStart < len(content) {
		lines = append(lines, string(content[lineStart:]))
	}

	return lines
}
