package diff_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracecheck/pkg/diff"
)

func TestLines_Identical(t *testing.T) {
	t.Parallel()

	lines := []string{"a", "b"}
	assert.Nil(t, diff.Lines("x.ts", lines, lines))
	assert.Nil(t, diff.Lines("x.ts", nil, nil))

	var nothing *diff.Diff
	assert.False(t, nothing.HasChanges())
	assert.Empty(t, nothing.String())
}

func TestLines_BlockReplacement(t *testing.T) {
	t.Parallel()

	before := []string{"one", "two", "{open && (", "  <div/>", ")}", "six", "seven"}
	after := []string{"one", "two", "{open && <div>placeholder</div>}", "six", "seven"}

	got := diff.Lines("src/app.tsx", before, after)
	require.NotNil(t, got)
	require.Len(t, got.Hunks, 1)
	assert.Equal(t, 1, got.Added)
	assert.Equal(t, 3, got.Removed)

	want := `--- a/src/app.tsx
+++ b/src/app.tsx
@@ -1,7 +1,5 @@
 one
 two
-{open && (
-  <div/>
-)}
+{open && <div>placeholder</div>}
 six
 seven
`
	assert.Equal(t, want, got.String())
}

func TestLines_SeparateHunks(t *testing.T) {
	t.Parallel()

	var before []string
	for idx := range 30 {
		before = append(before, fmt.Sprintf("line %d", idx+1))
	}
	after := append([]string(nil), before...)
	after[1] = "changed 2"
	after[25] = "changed 26"

	got := diff.Lines("f.ts", before, after)
	require.NotNil(t, got)
	require.Len(t, got.Hunks, 2)

	assert.Equal(t, 1, got.Hunks[0].OldStart)
	assert.Equal(t, 23, got.Hunks[1].OldStart)
	assert.Equal(t, 7, got.Hunks[1].OldCount)
	assert.Equal(t, got.Hunks[1].OldCount, got.Hunks[1].NewCount)
}

func TestLines_AppendAndDelete(t *testing.T) {
	t.Parallel()

	added := diff.Lines("f.ts", []string{"a"}, []string{"a", "b"})
	require.NotNil(t, added)
	assert.Equal(t, 1, added.Added)
	assert.Equal(t, 0, added.Removed)

	removed := diff.Lines("f.ts", []string{"a", "b"}, nil)
	require.NotNil(t, removed)
	assert.Equal(t, 2, removed.Removed)
	assert.Equal(t, 0, removed.Hunks[0].NewCount)
}
