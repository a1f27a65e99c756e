package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// BackupMode selects where backups are kept.
type BackupMode string

const (
	// BackupModeSidecar keeps the backup next to the file with BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to a file name to form its sidecar backup.
const BackupSuffix = ".bracecheck.bak"

// BackupConfig controls backup behavior.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig enables sidecar backups.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Enabled: true, Mode: BackupModeSidecar}
}

// BackupPath returns where the backup of path lives, or "" for
// BackupModeNone. Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies path to its backup location. An existing backup is
// never overwritten, so repeated patches keep the oldest original.
// It reports whether a backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled {
		return false, nil
	}
	backupPath := BackupPath(path, cfg.Mode)
	if backupPath == "" {
		return false, nil
	}

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, snap, err := ReadFile(ctx, path)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, snap.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup writes the backup of path back over path and removes the
// backup. It reports false when there is no backup to restore.
func RestoreBackup(ctx context.Context, path string, mode BackupMode) (bool, error) {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false, nil
	}

	content, snap, err := ReadFile(ctx, backupPath)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, snap.Mode); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}

	if err := os.Remove(backupPath); err != nil && !os.IsNotExist(err) {
		return true, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}

// BackupExists reports whether a backup of path is present.
func BackupExists(path string, mode BackupMode) bool {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false
	}
	_, err := os.Stat(backupPath)
	return err == nil
}
