package cli_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/bracecheck/internal/cli"
	"github.com/yaklabco/bracecheck/internal/configloader"
	"github.com/yaklabco/bracecheck/pkg/balance"
	"github.com/yaklabco/bracecheck/pkg/patch"
	"github.com/yaklabco/bracecheck/pkg/runner"
)

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	unbalanced := &runner.Result{Stats: runner.Stats{FilesScanned: 1, FilesUnbalanced: 1}}
	failed := &runner.Result{Stats: runner.Stats{FilesErrored: 1, FilesUnbalanced: 1}}

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil, true))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(&runner.Result{}, true))
	assert.Equal(t, cli.ExitUnbalanced, cli.ExitCodeFromResult(unbalanced, true))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(unbalanced, false))
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromResult(failed, false))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "unbalanced", err: cli.ErrUnbalanced, want: cli.ExitUnbalanced},
		{name: "files failed", err: cli.ErrFilesFailed, want: cli.ExitIOError},
		{name: "missing path", err: fmt.Errorf("stat x: %w", os.ErrNotExist), want: cli.ExitIOError},
		{name: "usage", err: fmt.Errorf("%w: bad flag", cli.ErrInvalidUsage), want: cli.ExitInvalidUsage},
		{
			name: "start marker missing",
			err:  errors.Join(fmt.Errorf("patch a.tsx: %w", patch.ErrStartNotFound)),
			want: cli.ExitInvalidUsage,
		},
		{name: "end marker missing", err: fmt.Errorf("patch a.tsx: %w", patch.ErrEndNotFound), want: cli.ExitInvalidUsage},
		{
			name: "config",
			err:  errors.Join(errors.New("failed to load configuration"), &configloader.ValidationError{Field: "jobs"}),
			want: cli.ExitConfigError,
		},
		{name: "other", err: balance.ErrInvalidRange, want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}

	assert.True(t, cli.IsSignal(cli.ErrUnbalanced))
	assert.False(t, cli.IsSignal(cli.ErrInvalidUsage))
}
