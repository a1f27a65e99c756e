package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bracecheck/internal/logging"
	"github.com/yaklabco/bracecheck/pkg/config"
	"github.com/yaklabco/bracecheck/pkg/reporter"
	"github.com/yaklabco/bracecheck/pkg/runner"
)

// stdinPath is the path argument that reads source from standard input.
const stdinPath = "-"

type scanFlags struct {
	rangeSpec      string
	resetQuotes    bool
	format         string
	jobs           int
	extensions     []string
	ignore         []string
	followSymlinks bool
	markdown       bool
	languages      []string
	strict         bool
	showQuotes     bool
	noSummary      bool
	onlyUnbalanced bool
	compact        bool
	stdinFilename  string
}

func newScanCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Print running paren and brace counts line by line",
		Long:  scanLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, flags)
		},
	}

	addScanFlags(cmd, flags)

	return cmd
}

const scanLongDescription = `Scan source files and print the cumulative parenthesis and brace
depth after every line, skipping brackets inside string literals.

By default, scans all JavaScript, TypeScript and JSON files in the current
directory and subdirectories. Use - to read a single file from stdin.

Examples:
  bracecheck scan src/app.tsx                  # Every line of one file
  bracecheck scan src/app.tsx --range 120:180  # Only lines 120 to 180
  bracecheck scan src/ --format table          # Table of every file
  bracecheck scan --markdown docs/             # Fenced code blocks in docs
  bracecheck scan --only-unbalanced .          # Just the broken files
  cat app.ts | bracecheck scan -               # Read from stdin`

func addScanFlags(cmd *cobra.Command, flags *scanFlags) {
	cmd.Flags().StringVarP(&flags.rangeSpec, "range", "r", "", "only report lines lo:hi (also lo-hi, n, lo:, :hi)")
	cmd.Flags().BoolVar(&flags.resetQuotes, "reset-quotes", false, "clear quote state at the start of every line")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, summary")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to scan when walking directories")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "scan fenced code blocks in Markdown files")
	cmd.Flags().StringSliceVar(&flags.languages, "languages", nil, "fence languages to scan with --markdown")
	cmd.Flags().BoolVar(&flags.strict, "strict", true, "exit non-zero when a file is unbalanced")
	cmd.Flags().BoolVar(&flags.showQuotes, "show-quotes", false, "mark lines that end inside a string")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "print records only, without verdicts")
	cmd.Flags().BoolVar(&flags.onlyUnbalanced, "only-unbalanced", false, "hide balanced files")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")
	cmd.Flags().StringVar(&flags.stdinFilename, "stdin-filename", "", "file name used to detect the language of stdin")
}

// cliConfig collects the flags the user actually set, so unset flags do
// not mask values from config files.
func (f *scanFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("range") {
		cfg.Range = f.rangeSpec
	}
	if changed("reset-quotes") {
		cfg.ResetQuotesPerLine = config.Bool(f.resetQuotes)
	}
	if changed("format") {
		cfg.Output.Format = config.OutputFormat(f.format)
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("ext") {
		cfg.Extensions = normalizeExtensions(f.extensions)
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("follow-symlinks") {
		cfg.FollowSymlinks = config.Bool(f.followSymlinks)
	}
	if changed("markdown") {
		cfg.Markdown.Enabled = config.Bool(f.markdown)
	}
	if changed("languages") {
		cfg.Markdown.Languages = f.languages
	}
	if changed("strict") {
		cfg.Strict = config.Bool(f.strict)
	}
	if changed("show-quotes") {
		cfg.Output.ShowQuotes = config.Bool(f.showQuotes)
	}
	if changed("no-summary") {
		cfg.Output.Summary = config.Bool(!f.noSummary)
	}
	if changed("only-unbalanced") {
		cfg.Output.OnlyUnbalanced = config.Bool(f.onlyUnbalanced)
	}

	return cfg
}

func runScan(cmd *cobra.Command, args []string, flags *scanFlags) error {
	logger := logging.FromContext(cmd.Context())

	cfg, workDir, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	window, err := cfg.Window()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	runOpts := runner.Options{
		Paths:              args,
		WorkingDir:         workDir,
		Extensions:         cfg.Extensions,
		Ignore:             cfg.Ignore,
		FollowSymlinks:     config.BoolValue(cfg.FollowSymlinks, false),
		Jobs:               cfg.Jobs,
		Window:             window,
		ResetQuotesPerLine: config.BoolValue(cfg.ResetQuotesPerLine, false),
		Markdown:           config.BoolValue(cfg.Markdown.Enabled, false),
		FenceLanguages:     cfg.Markdown.Languages,
	}

	logger.Debug("starting scan",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldRange, cfg.Range,
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldMarkdown, runOpts.Markdown,
		logging.FieldResetMode, runOpts.ResetQuotesPerLine,
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := scan(ctx, cmd.InOrStdin(), args, flags.stdinFilename, runOpts)
	if err != nil {
		return err
	}

	logger.Debug("scan complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesScanned, result.Stats.FilesScanned,
		logging.FieldFilesUnbalanced, result.Stats.FilesUnbalanced,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	if result.Stats.FilesUnsupported > 0 {
		logger.Warn("quote rules may not match some files",
			logging.FieldFiles, result.Stats.FilesUnsupported)
	}

	format, err := reporter.ParseFormat(string(cfg.Output.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:         cmd.OutOrStdout(),
		Format:         format,
		Color:          cfg.Output.Color,
		ShowSummary:    config.BoolValue(cfg.Output.Summary, true),
		ShowMode:       config.BoolValue(cfg.Output.ShowQuotes, false),
		OnlyUnbalanced: config.BoolValue(cfg.Output.OnlyUnbalanced, false),
		Compact:        flags.compact,
		WorkingDir:     workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	return errorForCode(ExitCodeFromResult(result, config.BoolValue(cfg.Strict, true)))
}

// scan runs a directory scan, or a single in-memory scan when the only
// path is "-".
func scan(ctx context.Context, stdin io.Reader, args []string, stdinName string, opts runner.Options) (*runner.Result, error) {
	scanRunner := runner.New()

	if len(args) == 1 && args[0] == stdinPath {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		name := stdinName
		if name == "" {
			name = "<stdin>"
		}
		return runner.NewResult(scanRunner.ScanContent(name, content, opts)), nil
	}

	for _, arg := range args {
		if arg == stdinPath {
			return nil, fmt.Errorf("%w: - cannot be combined with other paths", ErrInvalidUsage)
		}
	}

	result, err := scanRunner.Run(ctx, opts)
	if err != nil {
		return nil, errors.Join(errors.New("scan failed"), err)
	}
	return result, nil
}

// normalizeExtensions adds the leading dot that users often leave off.
func normalizeExtensions(exts []string) []string {
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext == "" {
			continue
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}
