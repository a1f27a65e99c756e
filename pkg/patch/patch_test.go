package patch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracecheck/pkg/fsutil"
	"github.com/yaklabco/bracecheck/pkg/patch"
)

var moduleSpec = patch.Spec{
	StartMarker: "{moduleIsExpanded && (",
	EndMarker:   "                      )}",
	Placeholder: "              {moduleIsExpanded && <div className=\"p-2\">placeholder</div>}",
}

var moduleLines = []string{
	"<section>",
	"                      {moduleIsExpanded && (",
	"                        <ModuleBody",
	"                          lessons={lessons}",
	"                        />",
	"                      )}",
	"</section>",
}

func TestLocate(t *testing.T) {
	t.Parallel()

	block, err := patch.Locate(moduleLines, moduleSpec)
	require.NoError(t, err)
	assert.Equal(t, patch.Block{Start: 2, End: 6}, block)
	assert.Equal(t, 5, block.Len())
}

func TestLocate_EndSearchedAfterStart(t *testing.T) {
	t.Parallel()

	lines := []string{"END", "BEGIN", "middle", "END"}
	block, err := patch.Locate(lines, patch.Spec{StartMarker: "BEGIN", EndMarker: "END"})
	require.NoError(t, err)
	assert.Equal(t, patch.Block{Start: 2, End: 4}, block)
}

func TestLocate_EndOnStartLineIgnored(t *testing.T) {
	t.Parallel()

	lines := []string{"BEGIN END", "END"}
	block, err := patch.Locate(lines, patch.Spec{StartMarker: "BEGIN", EndMarker: "END"})
	require.NoError(t, err)
	assert.Equal(t, patch.Block{Start: 1, End: 2}, block)
}

func TestLocate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lines   []string
		spec    patch.Spec
		wantErr error
	}{
		{
			name:    "empty start marker",
			spec:    patch.Spec{EndMarker: "x"},
			wantErr: patch.ErrInvalidSpec,
		},
		{
			name:    "empty end marker",
			spec:    patch.Spec{StartMarker: "x"},
			wantErr: patch.ErrInvalidSpec,
		},
		{
			name:    "start missing",
			lines:   []string{"a", "b"},
			spec:    patch.Spec{StartMarker: "x", EndMarker: "b"},
			wantErr: patch.ErrStartNotFound,
		},
		{
			name:    "end missing",
			lines:   []string{"x", "b"},
			spec:    patch.Spec{StartMarker: "x", EndMarker: "z"},
			wantErr: patch.ErrEndNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := patch.Locate(tt.lines, tt.spec)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	patched, block, err := patch.Apply(moduleLines, moduleSpec)
	require.NoError(t, err)
	assert.Equal(t, patch.Block{Start: 2, End: 6}, block)
	assert.Equal(t, []string{"<section>", moduleSpec.Placeholder, "</section>"}, patched)
	assert.Len(t, moduleLines, 7, "input is not modified")
}

func TestApply_PlaceholderShapes(t *testing.T) {
	t.Parallel()

	lines := []string{"a", "BEGIN", "b", "END", "c"}

	removed, _, err := patch.Apply(lines, patch.Spec{StartMarker: "BEGIN", EndMarker: "END"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, removed)

	multi, _, err := patch.Apply(lines, patch.Spec{StartMarker: "BEGIN", EndMarker: "END", Placeholder: "x\ny\n"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "x", "y", "c"}, multi)
}

func TestRender(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\nb\n", string(patch.Render([]string{"a", "b"})))
	assert.Empty(t, patch.Render(nil))
	assert.Equal(t, "a\r\nb\r\n", string(patch.RenderWithEnding([]string{"a", "b"}, "\r\n")))
}

func TestLineEnding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "lf", content: "a\nb\n", want: "\n"},
		{name: "crlf", content: "a\r\nb\r\n", want: "\r\n"},
		{name: "first line decides", content: "a\r\nb\n", want: "\r\n"},
		{name: "no newline", content: "a", want: "\n"},
		{name: "empty", content: "", want: "\n"},
		{name: "leading newline", content: "\nb\r\n", want: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, patch.LineEnding([]byte(tt.content)))
		})
	}
}

func TestFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	content := "<section>\r\n{moduleIsExpanded && (\r\n  <Body />\r\n)}\r\n</section>\r\n"
	spec := patch.Spec{StartMarker: "{moduleIsExpanded && (", EndMarker: ")}", Placeholder: "{null}"}

	t.Run("dry run leaves file untouched", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "app.tsx")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		result, err := patch.File(ctx, path, spec, patch.Options{DryRun: true, Backup: fsutil.DefaultBackupConfig()})
		require.NoError(t, err)
		assert.False(t, result.Written)
		assert.True(t, result.Diff.HasChanges())
		assert.Equal(t, patch.Block{Start: 2, End: 4}, result.Block)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
		assert.False(t, fsutil.BackupExists(path, fsutil.BackupModeSidecar))
	})

	t.Run("writes patch and backup then restores", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "app.tsx")
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		result, err := patch.File(ctx, path, spec, patch.Options{Backup: fsutil.DefaultBackupConfig()})
		require.NoError(t, err)
		assert.True(t, result.Written)
		assert.True(t, result.BackupCreated)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<section>\r\n{null}\r\n</section>\r\n", string(got), "CRLF endings are kept")

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		restored, err := patch.Restore(ctx, path, fsutil.BackupModeSidecar)
		require.NoError(t, err)
		assert.True(t, restored)

		got, err = os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	})

	t.Run("missing marker", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "app.tsx")
		require.NoError(t, os.WriteFile(path, []byte("nothing here\n"), 0644))

		_, err := patch.File(ctx, path, spec, patch.Options{})
		require.ErrorIs(t, err, patch.ErrStartNotFound)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := patch.File(ctx, filepath.Join(t.TempDir(), "gone.tsx"), spec, patch.Options{})
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})
}
