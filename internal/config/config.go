package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional per-workspace ucls.yaml configuration.
type Config struct {
	// Ignore lists glob patterns (relative to the workspace root) that
	// `ucls check` and workspace indexing skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Warnings toggles individual warning families.
	Warnings WarningConfig `yaml:"warnings,omitempty"`

	// MaxDiagnostics caps the diagnostics reported per file. Zero means
	// no limit.
	MaxDiagnostics int `yaml:"maxDiagnostics,omitempty"`
}

// WarningConfig enables or disables warning families. All default to on.
type WarningConfig struct {
	Unused    *bool `yaml:"unused,omitempty"`
	Shadowing *bool `yaml:"shadowing,omitempty"`
}

// UnusedEnabled reports whether unused-variable warnings are on.
func (w WarningConfig) UnusedEnabled() bool {
	return w.Unused == nil || *w.Unused
}

// ShadowingEnabled reports whether shadowing warnings are on.
func (w WarningConfig) ShadowingEnabled() bool {
	return w.Shadowing == nil || *w.Shadowing
}

// Default returns the configuration used when no ucls.yaml exists.
func Default() *Config {
	return &Config{}
}

// Load reads ucls.yaml from the given workspace root. A missing file is not
// an error; it yields the default configuration.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Ignored reports whether the given workspace-relative path matches any
// ignore pattern.
func (c *Config) Ignored(rel string) bool {
	for _, pattern := range c.Ignore {
		if ok, err := filepath.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pattern, filepath.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}
