package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bracecheck/internal/logging"
	"github.com/yaklabco/bracecheck/internal/ui/pretty"
	"github.com/yaklabco/bracecheck/pkg/balance"
	"github.com/yaklabco/bracecheck/pkg/config"
	"github.com/yaklabco/bracecheck/pkg/fsutil"
	"github.com/yaklabco/bracecheck/pkg/patch"
	"github.com/yaklabco/bracecheck/pkg/reporter"
)

type patchFlags struct {
	start       string
	end         string
	placeholder string
	dryRun      bool
	noBackups   bool
	undo        bool
	check       bool
	resetQuotes bool
}

func newPatchCommand() *cobra.Command {
	flags := &patchFlags{}

	cmd := &cobra.Command{
		Use:   "patch <files...>",
		Short: "Replace a marker-delimited block with a placeholder",
		Long: `Replace the block running from the first line containing the start
marker through the next line containing the end marker with a placeholder.

Cutting a suspect region out and re-scanning is the quickest way to find
which block of a large component leaves a bracket open. A sidecar backup
is written before each file is changed; --undo puts it back.

Examples:
  bracecheck patch app.tsx --start '{open && (' --end ')}' --dry-run
  bracecheck patch app.tsx --start '{open && (' --end ')}' --placeholder '{null}' --check
  bracecheck patch app.tsx --undo`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.start, "start", "", "substring identifying the first line of the block")
	cmd.Flags().StringVar(&flags.end, "end", "", "substring identifying the last line of the block")
	cmd.Flags().StringVar(&flags.placeholder, "placeholder", "", "text replacing the block (empty removes it)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show the diff without writing")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "do not keep a backup of patched files")
	cmd.Flags().BoolVar(&flags.undo, "undo", false, "restore files from their backups")
	cmd.Flags().BoolVar(&flags.check, "check", false, "report the balance of each file after patching")
	cmd.Flags().BoolVar(&flags.resetQuotes, "reset-quotes", false, "clear quote state per line when checking")

	return cmd
}

func (f *patchFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("start") {
		cfg.Patch.StartMarker = f.start
	}
	if changed("end") {
		cfg.Patch.EndMarker = f.end
	}
	if changed("placeholder") {
		cfg.Patch.Placeholder = f.placeholder
	}
	if changed("no-backups") {
		cfg.Backups.Enabled = config.Bool(!f.noBackups)
	}
	if changed("reset-quotes") {
		cfg.ResetQuotesPerLine = config.Bool(f.resetQuotes)
	}

	return cfg
}

func runPatch(cmd *cobra.Command, args []string, flags *patchFlags) error {
	cfg, workDir, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flags.undo {
		return runUndo(ctx, args, cfg.BackupConfig())
	}

	if err := cfg.Patch.Validate(); err != nil {
		return fmt.Errorf("%w: %w (set --start and --end)", ErrInvalidUsage, err)
	}

	logger := logging.FromContext(ctx)
	opts := patch.Options{DryRun: flags.dryRun, Backup: cfg.BackupConfig()}

	results := make([]*patch.Result, 0, len(args))
	var errs []error

	for _, path := range args {
		result, err := patch.File(ctx, path, cfg.Patch, opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		logger.Info("located block",
			logging.FieldPath, path,
			logging.FieldBlockStart, result.Block.Start,
			logging.FieldBlockEnd, result.Block.End,
			logging.FieldDryRun, flags.dryRun,
			logging.FieldBackup, result.BackupCreated,
		)
		results = append(results, result)
	}

	rep := reporter.NewPatchReporter(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Color:       cfg.Output.Color,
		ShowSummary: config.BoolValue(cfg.Output.Summary, true),
		WorkingDir:  workDir,
	})
	rep.Report(results)

	if flags.check {
		scanner := balance.NewScanner(balance.Options{
			ResetQuotesPerLine: config.BoolValue(cfg.ResetQuotesPerLine, false),
		})
		writeVerdicts(cmd.OutOrStdout(), cfg.Output.Color, scanner, results)
	}

	return errors.Join(errs...)
}

// writeVerdicts prints the balance of each patched file as it now reads.
func writeVerdicts(out io.Writer, color string, scanner *balance.Scanner, results []*patch.Result) {
	styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))
	for _, result := range results {
		summary := scanner.Summarize(result.After)
		fmt.Fprintf(out, "%s: %s\n", styles.FilePath.Render(result.Path), styles.FormatVerdict(summary))
	}
}

func runUndo(ctx context.Context, paths []string, backup fsutil.BackupConfig) error {
	logger := logging.FromContext(ctx)

	if backup.Mode == fsutil.BackupModeNone {
		return fmt.Errorf("%w: backups are disabled (backups.mode is none)", ErrInvalidUsage)
	}

	var errs []error
	for _, path := range paths {
		restored, err := patch.Restore(ctx, path, backup.Mode)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !restored {
			logger.Warn("no backup to restore", logging.FieldPath, path)
			continue
		}
		logger.Info("restored from backup", logging.FieldPath, path)
	}

	return errors.Join(errs...)
}
