package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation used when writing YAML.
const yamlIndent = 2

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToTOML serializes the configuration to TOML format.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// FromTOML parses a configuration from TOML bytes. Unknown keys are
// rejected so that typos surface instead of being silently ignored.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for idx, key := range undecoded {
			keys[idx] = key.String()
		}
		return nil, fmt.Errorf("parse toml: unknown keys %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Parse decodes data as TOML when path ends in .toml and as YAML otherwise.
func Parse(path string, data []byte) (*Config, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FromTOML(data)
	}
	return FromYAML(data)
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.ResetQuotesPerLine = cloneBool(c.ResetQuotesPerLine)
	clone.FollowSymlinks = cloneBool(c.FollowSymlinks)
	clone.Strict = cloneBool(c.Strict)
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)

	clone.Markdown.Enabled = cloneBool(c.Markdown.Enabled)
	clone.Markdown.Languages = slices.Clone(c.Markdown.Languages)

	clone.Output.ShowQuotes = cloneBool(c.Output.ShowQuotes)
	clone.Output.Summary = cloneBool(c.Output.Summary)
	clone.Output.OnlyUnbalanced = cloneBool(c.Output.OnlyUnbalanced)

	clone.Backups.Enabled = cloneBool(c.Backups.Enabled)

	return &clone
}

func cloneBool(ptr *bool) *bool {
	if ptr == nil {
		return nil
	}
	value := *ptr
	return &value
}
