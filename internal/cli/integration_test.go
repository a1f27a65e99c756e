package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracecheck/internal/cli"
	"github.com/yaklabco/bracecheck/pkg/patch"
	"github.com/yaklabco/bracecheck/pkg/reporter"
)

const (
	balancedSource   = "const f = (a) => {\n  return `${a})`;\n};\n"
	unbalancedSource = "function g(a) {\n  if (a) {\n    return '}';\n}\n"
)

// execute runs the root command with a neutral explicit config so that
// config files around the test binary do not leak in.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), "bracecheck.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("jobs: 2\n"), 0644))

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{args[0], "--config", cfgFile, "--color", "never"}, args[1:]...))

	err := cmd.Execute()
	return stdout.String(), err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestIntegration_ScanSingleFile(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "f.ts", balancedSource)

	out, err := execute(t, "", "scan", path)
	require.NoError(t, err)

	assert.Equal(t, "1 paren 0 brace 1\n2 paren 0 brace 1\n3 paren 0 brace 0\nbalanced\n", out)
}

func TestIntegration_ScanRange(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "g.ts", unbalancedSource)

	out, err := execute(t, "", "scan", path, "--range", "2:3", "--no-summary", "--strict=false")
	require.NoError(t, err)

	assert.Equal(t, "2 paren 0 brace 2\n3 paren 0 brace 2\n", out)
}

func TestIntegration_ScanUnbalancedStrict(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "g.ts", unbalancedSource)

	out, err := execute(t, "", "scan", path)
	require.ErrorIs(t, err, cli.ErrUnbalanced)
	assert.Equal(t, cli.ExitUnbalanced, cli.ExitCode(err))
	assert.Contains(t, out, "4 paren 0 brace 1\n")
	assert.Contains(t, out, "unbalanced: brace +1")
}

func TestIntegration_ScanDirectoryJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, dir, "src/a.ts", balancedSource)
	writeSource(t, dir, "src/b.tsx", unbalancedSource)
	writeSource(t, dir, "src/notes.txt", "(((\n")
	writeSource(t, dir, "dist/bundle.js", "(((\n")

	out, err := execute(t, "", "scan", dir, "--format", "json", "--ignore", "dist", "--strict=false")
	require.NoError(t, err)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	require.Len(t, decoded.Files, 2)
	assert.Equal(t, 2, decoded.Summary.FilesScanned)
	assert.Equal(t, 1, decoded.Summary.FilesUnbalanced)
}

func TestIntegration_ScanStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "f(\n)\n", "scan", "-", "--stdin-filename", "app.ts")
	require.NoError(t, err)

	assert.Equal(t, "1 paren 1 brace 0\n2 paren 0 brace 0\nbalanced\n", out)
}

func TestIntegration_ScanStdinMixedWithPaths(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "scan", "-", "other.ts")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestIntegration_ScanInvalidRange(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "f.ts", balancedSource)

	_, err := execute(t, "", "scan", path, "--range", "zero")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_ScanMissingPath(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "scan", filepath.Join(t.TempDir(), "nope.ts"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestIntegration_ScanMarkdown(t *testing.T) {
	t.Parallel()

	doc := "# Example\n\n```ts\nconst x = f(\n```\n\n```python\nprint((\n```\n"
	path := writeSource(t, t.TempDir(), "README.md", doc)

	out, err := execute(t, "", "scan", path, "--markdown", "--strict=false")
	require.NoError(t, err)

	assert.Contains(t, out, "```typescript block at line 4")
	assert.Contains(t, out, "4 paren 1 brace 0")
	assert.NotContains(t, out, "python")
}

func TestIntegration_UnknownFlag(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "scan", "--no-such-flag")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_PatchDryRunThenWriteThenUndo(t *testing.T) {
	t.Parallel()

	content := "<section>\n  {open && (\n    <Body>\n  )}\n</section>\n"
	path := writeSource(t, t.TempDir(), "app.tsx", content)
	markers := []string{"--start", "{open && (", "--end", ")}", "--placeholder", "  {null}"}

	out, err := execute(t, "", append([]string{"patch", path, "--dry-run"}, markers...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "-    <Body>")
	assert.Contains(t, out, "+  {null}")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 3 deletions(-)")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(got), "dry run leaves the file alone")

	out, err = execute(t, "", append([]string{"patch", path, "--check"}, markers...)...)
	require.NoError(t, err)
	assert.Contains(t, out, ": balanced")

	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<section>\n  {null}\n</section>\n", string(got))

	_, err = execute(t, "", "patch", path, "--undo")
	require.NoError(t, err)

	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestIntegration_PatchRequiresMarkers(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "app.tsx", "x\n")

	_, err := execute(t, "", "patch", path)
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestIntegration_PatchMarkerNotFound(t *testing.T) {
	t.Parallel()

	content := "const a = (1);\n"
	path := writeSource(t, t.TempDir(), "a.tsx", content)

	_, err := execute(t, "", "patch", path, "--start", "nope", "--end", "z")
	require.ErrorIs(t, err, patch.ErrStartNotFound)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "custom.toml")

	_, err := execute(t, "", "init", "--format", "toml", "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# bracecheck configuration")

	_, err = execute(t, "", "init", "--format", "toml", "--output", output)
	require.Error(t, err, "existing file is not overwritten without --force")

	_, err = execute(t, "", "init", "--format", "toml", "--output", output, "--force")
	require.NoError(t, err)

	_, err = execute(t, "", "init", "--format", "json", "--output", output, "--force")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}
