package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bracecheck/internal/logging"
	"github.com/yaklabco/bracecheck/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new bracecheck configuration file",
		Long: `Create a new .bracecheck.yml configuration file in the current directory.
Every setting is listed with its default value, commented out.

Examples:
  bracecheck init                      Create .bracecheck.yml
  bracecheck init --format toml        Create .bracecheck.toml instead
  bracecheck init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .bracecheck.yml or .bracecheck.toml)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	content, err := config.GenerateTemplate(config.TemplateOptions{Format: flags.format})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "toml" {
			outputPath = ".bracecheck.toml"
		} else {
			outputPath = ".bracecheck.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("uncomment and edit the settings you want to change")

	return nil
}
