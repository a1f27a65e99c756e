package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracecheck/pkg/balance"
	"github.com/yaklabco/bracecheck/pkg/diff"
	"github.com/yaklabco/bracecheck/pkg/patch"
	"github.com/yaklabco/bracecheck/pkg/reporter"
	"github.com/yaklabco/bracecheck/pkg/runner"
)

func singleFile() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:     "/work/src/app.tsx",
				Language: "tsx",
				Records: []balance.Record{
					{Line: 1, Paren: 1, Brace: 0},
					{Line: 2, Paren: 0, Brace: 0, Mode: balance.InTemplate},
				},
				Summary: balance.Summary{Lines: 2, Final: balance.State{Mode: balance.InTemplate}},
			},
		},
		Stats: runner.Stats{FilesDiscovered: 1, FilesScanned: 1, FilesUnbalanced: 1, LinesScanned: 2},
	}
}

func mixedResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:    "/work/a.ts",
				Records: []balance.Record{{Line: 1}},
				Summary: balance.Summary{Lines: 1},
			},
			{
				Path: "/work/docs/guide.md",
				Blocks: []runner.BlockOutcome{
					{
						Language:  "ts",
						StartLine: 4,
						Records:   []balance.Record{{Line: 4, Paren: 1}},
						Summary:   balance.Summary{Lines: 1, Final: balance.State{Paren: 1}},
					},
				},
				Summary: balance.Summary{Lines: 6},
			},
			{
				Path:  "/work/gone.ts",
				Error: errors.New("file not found"),
			},
		},
		Stats: runner.Stats{
			FilesDiscovered: 3,
			FilesScanned:    2,
			FilesErrored:    1,
			FilesUnbalanced: 1,
			LinesScanned:    7,
			BlocksScanned:   1,
		},
	}
}

func report(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	if opts.Color == "" {
		opts.Color = "never"
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), count
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "table", want: reporter.FormatTable},
		{input: "json", want: reporter.FormatJSON},
		{input: "summary", want: reporter.FormatSummary},
		{input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, reporter.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.ErrorIs(t, err, reporter.ErrUnknownFormat)
}

func TestTextReporter_SingleFile(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{}, singleFile())
	assert.Equal(t, "1 paren 1 brace 0\n2 paren 0 brace 0\n", out)
	assert.Equal(t, 1, count)

	out, _ = report(t, reporter.Options{ShowMode: true, ShowSummary: true}, singleFile())
	assert.Equal(t,
		"1 paren 1 brace 0\n"+
			"2 paren 0 brace 0 (template)\n"+
			"unbalanced: ends inside template quote\n",
		out)
}

func TestTextReporter_MultipleFiles(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{ShowSummary: true, WorkingDir: "/work"}, mixedResult())
	assert.Equal(t, 1, count)

	want := "a.ts\n" +
		"1 paren 0 brace 0\n" +
		"balanced\n" +
		"\n" +
		"docs/guide.md\n" +
		"```ts block at line 4\n" +
		"4 paren 1 brace 0\n" +
		"unbalanced: paren +1\n" +
		"gone.ts: error: file not found\n" +
		"\n" +
		"1 of 2 files unbalanced, 1 error (7 lines scanned)\n"
	assert.Equal(t, want, out)
}

func TestTextReporter_OnlyUnbalanced(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{OnlyUnbalanced: true}, mixedResult())
	assert.NotContains(t, out, "a.ts")
	assert.Contains(t, out, "guide.md")
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{ShowSummary: true}, &runner.Result{})
	assert.Equal(t, "No files to scan.\n", out)
	assert.Zero(t, count)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatJSON, WorkingDir: "/work"}, mixedResult())
	assert.Equal(t, 1, count)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "1.0.0", decoded.Version)
	require.Len(t, decoded.Files, 3)

	assert.Equal(t, "a.ts", decoded.Files[0].Path)
	assert.True(t, decoded.Files[0].Balanced)
	assert.NotNil(t, decoded.Files[0].Summary)

	assert.False(t, decoded.Files[1].Balanced)
	require.Len(t, decoded.Files[1].Blocks, 1)
	assert.Equal(t, 4, decoded.Files[1].Blocks[0].StartLine)
	assert.Empty(t, decoded.Files[1].Records)

	assert.Equal(t, "file not found", decoded.Files[2].Error)
	assert.Nil(t, decoded.Files[2].Summary)

	assert.Equal(t, reporter.JSONSummary{
		FilesScanned:    2,
		FilesUnbalanced: 1,
		FilesErrored:    1,
		LinesScanned:    7,
		BlocksScanned:   1,
	}, decoded.Summary)
}

func TestJSONReporter_ModeAsText(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatJSON, Compact: true}, singleFile())
	assert.Contains(t, out, `"mode":"template"`)
	assert.Equal(t, 1, strings.Count(out, "\n"), "compact output is one line")
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatTable, ShowSummary: true, WorkingDir: "/work"}, mixedResult())
	assert.Equal(t, 1, count)
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "docs/guide.md")
	assert.Contains(t, out, "gone.ts: error: file not found")
	assert.Contains(t, out, "2 files scanned | 1 unbalanced | 1 errored | 1 code block")
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatSummary, WorkingDir: "/work"}, mixedResult())
	assert.Equal(t, 1, count)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "a.ts           balanced", lines[0])
	assert.Equal(t, "docs/guide.md  unbalanced: code blocks at line 4", lines[1])
	assert.Equal(t, "gone.ts        error: file not found", lines[2])
}

func TestPatchReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewPatchReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	before := []string{"a", "BEGIN", "x", "END", "b"}
	after := []string{"a", "{null}", "b"}

	changed := rep.Report([]*patch.Result{
		{Path: "app.tsx", Diff: diff.Lines("app.tsx", before, after)},
		{Path: "same.tsx"},
		nil,
	})
	assert.Equal(t, 1, changed)

	want := "diff --git a/app.tsx b/app.tsx\n" +
		"--- a/app.tsx\n" +
		"+++ b/app.tsx\n" +
		"@@ -1,5 +1,3 @@\n" +
		" a\n" +
		"-BEGIN\n" +
		"-x\n" +
		"-END\n" +
		"+{null}\n" +
		" b\n" +
		"\n" +
		"1 file changed, 1 insertion(+), 3 deletions(-)\n"
	assert.Equal(t, want, buf.String())
}
