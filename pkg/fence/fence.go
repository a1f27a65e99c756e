// Package fence extracts fenced code blocks from Markdown so that code
// samples in documentation can be balance-checked like source files.
package fence

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/bracecheck/pkg/langdetect"
)

// Block is one fenced code block.
type Block struct {
	// Language is the normalized language from the info string, or "".
	Language string

	// Info is the raw info string after the opening fence.
	Info string

	// StartLine is the 1-indexed file line of the first content line.
	StartLine int

	// Lines holds the block content without line terminators.
	Lines []string
}

// Offset returns the value to add to a block-relative line number to get
// the file line number.
func (b Block) Offset() int {
	return b.StartLine - 1
}

// Extractor parses Markdown with goldmark and collects fenced code blocks.
type Extractor struct {
	md goldmark.Markdown
}

// NewExtractor creates an Extractor. GFM extensions are enabled so that
// tables and task lists around code blocks parse the way GitHub renders them.
func NewExtractor() *Extractor {
	return &Extractor{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Extract returns the fenced code blocks of content in document order.
// Blocks with no content lines are skipped.
func (e *Extractor) Extract(content []byte) ([]Block, error) {
	doc := e.md.Parser().Parse(text.NewReader(content))

	lineStarts := indexLines(content)

	var blocks []Block
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		code, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		segments := code.Lines()
		if segments.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		block := Block{
			Language:  langdetect.FromFenceInfo(string(code.Language(content))),
			StartLine: lineOf(lineStarts, segments.At(0).Start),
			Lines:     make([]string, 0, segments.Len()),
		}
		if code.Info != nil {
			block.Info = string(code.Info.Segment.Value(content))
		}

		for idx := range segments.Len() {
			segment := segments.At(idx)
			line := bytes.TrimRight(segment.Value(content), "\r\n")
			block.Lines = append(block.Lines, string(line))
		}

		blocks = append(blocks, block)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	return blocks, nil
}

// Filter keeps blocks whose language is in languages. An empty list keeps
// every block.
func Filter(blocks []Block, languages []string) []Block {
	if len(languages) == 0 {
		return blocks
	}

	kept := make([]Block, 0, len(blocks))
	for _, block := range blocks {
		if slices.Contains(languages, block.Language) {
			kept = append(kept, block)
		}
	}
	return kept
}

// indexLines returns the byte offset at which each line starts.
func indexLines(content []byte) []int {
	starts := []int{0}
	for idx, char := range content {
		if char == '\n' {
			starts = append(starts, idx+1)
		}
	}
	return starts
}

// lineOf converts a byte offset into a 1-indexed line number.
func lineOf(starts []int, offset int) int {
	line, found := slices.BinarySearch(starts, offset)
	if found {
		return line + 1
	}
	return line
}
