package configloader

import "github.com/yaklabco/bracecheck/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Strings and ints: override overwrites base if non-zero
//   - Booleans: override overwrites base if the pointer is set
//   - Slices: override replaces base entirely if non-nil
//   - Patch markers merge field by field
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Range != "" {
		result.Range = override.Range
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	result.ResetQuotesPerLine = mergeBool(base.ResetQuotesPerLine, override.ResetQuotesPerLine)
	result.FollowSymlinks = mergeBool(base.FollowSymlinks, override.FollowSymlinks)
	result.Strict = mergeBool(base.Strict, override.Strict)

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	result.Markdown = mergeMarkdown(base.Markdown, override.Markdown)
	result.Output = mergeOutput(base.Output, override.Output)
	result.Backups = mergeBackups(base.Backups, override.Backups)

	if override.Patch.StartMarker != "" {
		result.Patch.StartMarker = override.Patch.StartMarker
	}
	if override.Patch.EndMarker != "" {
		result.Patch.EndMarker = override.Patch.EndMarker
	}
	if override.Patch.Placeholder != "" {
		result.Patch.Placeholder = override.Patch.Placeholder
	}

	return &result
}

func mergeBool(base, override *bool) *bool {
	if override != nil {
		return override
	}
	return base
}

func mergeMarkdown(base, override config.MarkdownConfig) config.MarkdownConfig {
	result := base
	result.Enabled = mergeBool(base.Enabled, override.Enabled)
	if override.Languages != nil {
		result.Languages = override.Languages
	}
	return result
}

func mergeOutput(base, override config.OutputConfig) config.OutputConfig {
	result := base
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	result.ShowQuotes = mergeBool(base.ShowQuotes, override.ShowQuotes)
	result.Summary = mergeBool(base.Summary, override.Summary)
	result.OnlyUnbalanced = mergeBool(base.OnlyUnbalanced, override.OnlyUnbalanced)
	return result
}

func mergeBackups(base, override config.BackupsConfig) config.BackupsConfig {
	result := base
	result.Enabled = mergeBool(base.Enabled, override.Enabled)
	if override.Mode != "" {
		result.Mode = override.Mode
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
