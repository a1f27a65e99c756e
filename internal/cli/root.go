// Package cli provides the Cobra command structure for bracecheck.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bracecheck/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root bracecheck command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "bracecheck",
		Short: "Quote-aware bracket balance checker for JavaScript and TypeScript",
		Long: `bracecheck tracks parenthesis and brace depth line by line through
JavaScript, TypeScript and JSON sources, ignoring brackets inside single-,
double- and template-quoted strings.

Use it to find where a large file loses its balance: scan prints the running
counts for every line of a range, and patch cuts a marker-delimited block out
for a placeholder so the remainder can be re-checked.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithFields(cmd.Context(), logging.FieldCommand, cmd.Name()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newPatchCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
