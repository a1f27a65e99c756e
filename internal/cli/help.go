package cli

import (
	"io"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/bracecheck/internal/configloader"
	"github.com/yaklabco/bracecheck/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command:     plain,
			Heading:     plain,
			Subcommand:  plain,
			Flag:        plain,
			Description: plain,
			Example:     plain,
			Dim:         plain,
		}
	}
	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Description: lipgloss.NewStyle(),
		Example:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}
{{- end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]
{{- end }}
{{- if .HasExample }}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end }}
{{- if .HasAvailableSubCommands }}

{{ heading "Commands:" }}
{{- range .Commands }}{{ if (or .IsAvailableCommand (eq .Name "help")) }}
  {{ subcommand (pad .Name .NamePadding) }} {{ .Short }}
{{- end }}{{ end }}
{{- end }}
{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end }}
{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end }}
{{- if not .HasParent }}

{{ heading "Environment:" }}
{{ env }}
{{- end }}
{{- if .HasAvailableSubCommands }}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end }}
`

const helpTemplate = `{{ with (or .Long .Short) }}{{ trimTrailing . }}

{{ end }}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":      h.styles.Heading.Render,
		"command":      h.styles.Command.Render,
		"subcommand":   h.styles.Subcommand.Render,
		"example":      h.styles.Example.Render,
		"flags":        h.flagRows,
		"env":          h.envRows,
		"pad":          rpad,
		"trimTrailing": trimTrailingWhitespaces,
	}
}

// ApplyToCommand installs the styled help and usage output on cmd. Cobra
// hands both functions down to every subcommand.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return usage.Execute(command.OutOrStderr(), command)
	})
}

// flagRows lists the visible flags of set as aligned rows: names and value
// type on the left, usage and non-trivial default on the right.
func (h *HelpFormatter) flagRows(set *pflag.FlagSet) string {
	type row struct {
		names, valueType, usage string
	}

	var rows []row
	width := 0

	set.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		valueType, usage := pflag.UnquoteUsage(flag)
		names := "    --" + flag.Name
		if flag.Shorthand != "" {
			names = "-" + flag.Shorthand + ", --" + flag.Name
		}
		if def := defaultText(flag); def != "" {
			usage += " (default " + def + ")"
		}

		rows = append(rows, row{names: names, valueType: valueType, usage: usage})
		width = max(width, len(names)+len(valueType)+1)
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		left := h.styles.Flag.Render(r.names)
		plainWidth := len(r.names)
		if r.valueType != "" {
			left += " " + h.styles.Dim.Render(r.valueType)
			plainWidth += len(r.valueType) + 1
		}
		lines = append(lines, "  "+left+strings.Repeat(" ", width-plainWidth)+"   "+h.styles.Description.Render(r.usage))
	}
	return strings.Join(lines, "\n")
}

// envRows lists the supported environment variables, sorted by name.
func (h *HelpFormatter) envRows() string {
	vars := configloader.ListEnvVars()

	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		width = max(width, len(name))
	}
	slices.Sort(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "  "+h.styles.Flag.Render(rpad(name, width))+"   "+h.styles.Description.Render(vars[name]))
	}
	return strings.Join(lines, "\n")
}

// defaultText returns the default worth showing for flag, or "".
func defaultText(flag *pflag.Flag) string {
	switch flag.DefValue {
	case "", "false", "0", "[]":
		return ""
	}
	if flag.Value.Type() == "string" {
		return strconv.Quote(flag.DefValue)
	}
	return flag.DefValue
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
