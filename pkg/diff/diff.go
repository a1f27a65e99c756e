// Package diff renders line-level unified diffs between two versions of a
// file. It is used to preview and report block patches.
package diff

import (
	"fmt"
	"strings"
)

// Kind classifies a diff line.
type Kind int

const (
	// Context is a line present in both versions.
	Context Kind = iota

	// Added is a line only in the new version.
	Added

	// Removed is a line only in the old version.
	Removed
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// Line is one line of a hunk.
type Line struct {
	Kind Kind
	Text string
}

// Hunk is a contiguous region of change plus surrounding context.
// Start positions are 1-based.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Diff is the set of hunks turning one version of a file into another.
type Diff struct {
	Path    string
	Hunks   []Hunk
	Added   int
	Removed int
}

// Lines compares before and after and returns nil when they are equal.
//
// Common leading and trailing lines are matched directly so that large files
// with a single edited region only pay for an LCS over the edited span.
func Lines(path string, before, after []string) *Diff {
	prefix := commonPrefix(before, after)
	suffix := commonSuffix(before[prefix:], after[prefix:])

	if prefix == len(before) && prefix == len(after) {
		return nil
	}

	ops := make([]op, 0, len(before)+len(after)-prefix-suffix)
	for idx := range prefix {
		ops = append(ops, op{kind: Context, text: before[idx]})
	}
	ops = append(ops, middleOps(before[prefix:len(before)-suffix], after[prefix:len(after)-suffix])...)
	for idx := len(before) - suffix; idx < len(before); idx++ {
		ops = append(ops, op{kind: Context, text: before[idx]})
	}

	result := &Diff{Path: path, Hunks: group(ops)}
	for _, o := range ops {
		switch o.kind {
		case Added:
			result.Added++
		case Removed:
			result.Removed++
		}
	}
	return result
}

// HasChanges reports whether the diff contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format with a/ and b/ headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n+++ b/%s\n", path, path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
		for _, line := range hunk.Lines {
			builder.WriteByte(line.Kind.prefix())
			builder.WriteString(line.Text)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

func (k Kind) prefix() byte {
	switch k {
	case Added:
		return '+'
	case Removed:
		return '-'
	default:
		return ' '
	}
}

type op struct {
	kind Kind
	text string
}

func commonPrefix(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func commonSuffix(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}

// middleOps diffs the differing span with a longest common subsequence
// table, emitting removals before additions at each divergence.
func middleOps(before, after []string) []op {
	rows, cols := len(before), len(after)

	// table[i][j] is the LCS length of before[i:] and after[j:].
	table := make([][]int, rows+1)
	for idx := range table {
		table[idx] = make([]int, cols+1)
	}
	for row := rows - 1; row >= 0; row-- {
		for col := cols - 1; col >= 0; col-- {
			if before[row] == after[col] {
				table[row][col] = table[row+1][col+1] + 1
			} else {
				table[row][col] = max(table[row+1][col], table[row][col+1])
			}
		}
	}

	var ops []op
	row, col := 0, 0
	for row < rows || col < cols {
		switch {
		case row < rows && col < cols && before[row] == after[col]:
			ops = append(ops, op{kind: Context, text: before[row]})
			row++
			col++
		case row < rows && (col == cols || table[row+1][col] >= table[row][col+1]):
			ops = append(ops, op{kind: Removed, text: before[row]})
			row++
		default:
			ops = append(ops, op{kind: Added, text: after[col]})
			col++
		}
	}
	return ops
}

// group splits ops into hunks, merging changes separated by no more than
// twice the context size.
func group(ops []op) []Hunk {
	type span struct{ start, end int }

	var spans []span
	for idx := 0; idx < len(ops); {
		if ops[idx].kind == Context {
			idx++
			continue
		}
		start := idx
		for idx < len(ops) && ops[idx].kind != Context {
			idx++
		}
		if len(spans) > 0 && start-spans[len(spans)-1].end <= 2*contextLines {
			spans[len(spans)-1].end = idx
		} else {
			spans = append(spans, span{start: start, end: idx})
		}
	}

	hunks := make([]Hunk, 0, len(spans))
	for _, s := range spans {
		hunks = append(hunks, buildHunk(ops, max(s.start-contextLines, 0), min(s.end+contextLines, len(ops))))
	}
	return hunks
}

func buildHunk(ops []op, from, to int) Hunk {
	hunk := Hunk{OldStart: 1, NewStart: 1}
	for _, o := range ops[:from] {
		if o.kind != Added {
			hunk.OldStart++
		}
		if o.kind != Removed {
			hunk.NewStart++
		}
	}

	for _, o := range ops[from:to] {
		hunk.Lines = append(hunk.Lines, Line{Kind: o.kind, Text: o.text})
		if o.kind != Added {
			hunk.OldCount++
		}
		if o.kind != Removed {
			hunk.NewCount++
		}
	}
	return hunk
}
