package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracecheck/pkg/runner"
)

// writeTree creates each file under dir with the given content.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func abs(dir string, names ...string) []string {
	out := make([]string, len(names))
	for idx, name := range names {
		out[idx] = filepath.Join(dir, name)
	}
	return out
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/app.tsx":               "",
		"src/util.ts":               "",
		"src/legacy.cjs":            "",
		"package.json":              "{}",
		"README.md":                 "# readme",
		"main.go":                   "package main",
		".hidden/secret.ts":         "",
		"src/.eslintrc.js":          "",
		"node_modules/dep/index.js": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Ignore:     []string{"node_modules"},
	})
	require.NoError(t, err)

	assert.Equal(t, abs(dir, "package.json", "src/app.tsx", "src/legacy.cjs", "src/util.ts"), files)
}

func TestDiscover_Markdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"app.ts":            "",
		"docs/guide.md":     "",
		"docs/api.markdown": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Markdown: true})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "app.ts", "docs/api.markdown", "docs/guide.md"), files)
}

func TestDiscover_NamedFileBypassesExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"App.vue": "", "notes.txt": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"App.vue", "App.vue", filepath.Join(dir, "App.vue")},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "App.vue"), files)
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.vue": "", "b.ts": "", "c.VUE": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".vue"},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "a.vue", "c.VUE"), files)
}

func TestDiscover_Ignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/app.ts":           "",
		"src/app.min.js":       "",
		"dist/bundle.js":       "",
		"src/gen/types.ts":     "",
		"lib/deep/gen/more.ts": "",
	})

	tests := []struct {
		name   string
		ignore []string
		want   []string
	}{
		{
			name: "none",
			want: []string{"dist/bundle.js", "lib/deep/gen/more.ts", "src/app.min.js", "src/app.ts", "src/gen/types.ts"},
		},
		{
			name:   "basename glob at any depth",
			ignore: []string{"*.min.js"},
			want:   []string{"dist/bundle.js", "lib/deep/gen/more.ts", "src/app.ts", "src/gen/types.ts"},
		},
		{
			name:   "directory prefix",
			ignore: []string{"dist/"},
			want:   []string{"lib/deep/gen/more.ts", "src/app.min.js", "src/app.ts", "src/gen/types.ts"},
		},
		{
			name:   "double star",
			ignore: []string{"**/gen/**"},
			want:   []string{"dist/bundle.js", "src/app.min.js", "src/app.ts"},
		},
		{
			name:   "anchored path",
			ignore: []string{"src/*.ts"},
			want:   []string{"dist/bundle.js", "lib/deep/gen/more.ts", "src/app.min.js", "src/gen/types.ts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Ignore: tt.ignore})
			require.NoError(t, err)
			assert.Equal(t, abs(dir, tt.want...), files)
		})
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, map[string]string{"src/app.ts": ""})
	writeTree(t, outside, map[string]string{"shared.ts": ""})

	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "src/app.ts"), filepath.Join(dir, "alias.ts")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing.ts"), filepath.Join(dir, "broken.ts")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "alias.ts", "src/app.ts"), files)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Contains(t, files, filepath.Join(outside, "shared.ts"))
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Paths: []string{"nope"}})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}
