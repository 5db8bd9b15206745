package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/techtree/internal/dataset"
	"github.com/ziadkadry99/techtree/internal/walker"
)

// EnvPrefix prefixes environment overrides, e.g. TECHTREE_DATA_DIR.
const EnvPrefix = "TECHTREE_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TECHTREE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// TECHTREE_DATA_DIR -> data_dir, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.Locale != "" && !dataset.IsLocale(c.Locale) {
		return fmt.Errorf("invalid locale %q", c.Locale)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	if err := walker.ValidatePatterns(c.IncludeLocales); err != nil {
		return fmt.Errorf("include_locales: %w", err)
	}
	if err := walker.ValidatePatterns(c.ExcludeLocales); err != nil {
		return fmt.Errorf("exclude_locales: %w", err)
	}

	return nil
}
