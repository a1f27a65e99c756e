package patch

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/bracecheck/pkg/balance"
	"github.com/yaklabco/bracecheck/pkg/diff"
	"github.com/yaklabco/bracecheck/pkg/fsutil"
)

// ErrConcurrentModification is returned when the file changed between
// being read and being rewritten.
var ErrConcurrentModification = errors.New("file modified during patch")

// Options controls how File writes its result.
type Options struct {
	// DryRun computes the patch and diff without touching the file.
	DryRun bool

	// Backup controls whether a sidecar copy is kept before writing.
	Backup fsutil.BackupConfig
}

// Result describes one patched file.
type Result struct {
	// Path is the file that was patched.
	Path string

	// Block is the replaced span in the original file.
	Block Block

	// Before and After are the file lines around the patch.
	Before []string
	After  []string

	// Diff is the unified diff of the change; nil if nothing changed.
	Diff *diff.Diff

	// Written is true when the file on disk was replaced.
	Written bool

	// BackupCreated is true when a new backup was written.
	BackupCreated bool
}

// File applies spec to the file at path.
//
// The file is read, patched in memory and, unless opts.DryRun is set,
// written back atomically with its original mode. The rewritten file keeps
// the line ending of its first line (CRLF or LF) for every line and always
// ends with a newline. If the file changed on disk after it was read,
// nothing is written and ErrConcurrentModification is returned.
func File(ctx context.Context, path string, spec Spec, opts Options) (*Result, error) {
	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	before := balance.SplitLines(content)

	after, block, err := Apply(before, spec)
	if err != nil {
		return nil, fmt.Errorf("patch %s: %w", path, err)
	}

	result := &Result{
		Path:   path,
		Block:  block,
		Before: before,
		After:  after,
		Diff:   diff.Lines(path, before, after),
	}

	if opts.DryRun {
		return result, nil
	}

	changed, err := fsutil.Changed(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("check for concurrent modification: %w", err)
	}
	if changed {
		return nil, fmt.Errorf("%w: %s", ErrConcurrentModification, path)
	}

	created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
	if err != nil {
		return nil, fmt.Errorf("backup %s: %w", path, err)
	}
	result.BackupCreated = created

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, RenderWithEnding(after, LineEnding(content)), snap.Mode.Perm())
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	result.Written = written

	return result, nil
}

// Restore undoes a patch by putting the sidecar backup back in place.
// It reports false if there was no backup.
func Restore(ctx context.Context, path string, mode fsutil.BackupMode) (bool, error) {
	restored, err := fsutil.RestoreBackup(ctx, path, mode)
	if err != nil {
		return false, fmt.Errorf("restore %s: %w", path, err)
	}
	return restored, nil
}
