package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/bracecheck/internal/configloader"
	"github.com/yaklabco/bracecheck/pkg/patch"
	"github.com/yaklabco/bracecheck/pkg/runner"
)

// Sentinel errors that map to exit codes. ErrUnbalanced and ErrFilesFailed
// are signals only; the details were already reported.
var (
	// ErrUnbalanced is returned when strict mode finds an unbalanced file.
	ErrUnbalanced = errors.New("unbalanced files found")

	// ErrFilesFailed is returned when some files could not be read.
	ErrFilesFailed = errors.New("some files could not be scanned")

	// ErrInvalidUsage wraps command-line usage errors.
	ErrInvalidUsage = errors.New("invalid usage")
)

// Exit codes for bracecheck.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitUnbalanced indicates the scan completed but found unbalanced files.
	ExitUnbalanced = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
// Read failures take priority over unbalanced files.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitIOError
	}

	if strict && result.HasUnbalanced() {
		return ExitUnbalanced
	}

	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUnbalanced):
		return ExitUnbalanced
	case errors.Is(err, ErrFilesFailed), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	case errors.Is(err, ErrInvalidUsage),
		errors.Is(err, patch.ErrInvalidSpec),
		errors.Is(err, patch.ErrStartNotFound),
		errors.Is(err, patch.ErrEndNotFound):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// IsSignal reports whether err only carries an exit status and needs no
// further logging.
func IsSignal(err error) bool {
	return errors.Is(err, ErrUnbalanced) || errors.Is(err, ErrFilesFailed)
}

// errorForCode converts a result exit code into the matching sentinel.
func errorForCode(code int) error {
	switch code {
	case ExitUnbalanced:
		return ErrUnbalanced
	case ExitIOError:
		return ErrFilesFailed
	default:
		return nil
	}
}
