package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DataDir != "data" {
		t.Errorf("expected default data_dir %q, got %q", "data", cfg.DataDir)
	}
	if cfg.Locale != "en" {
		t.Errorf("expected default locale %q, got %q", "en", cfg.Locale)
	}
	if cfg.OutputDir != "site" {
		t.Errorf("expected default output_dir %q, got %q", "site", cfg.OutputDir)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.techtree.yml")

	original := DefaultConfig()
	original.DataDir = "public/data"
	original.Locale = "de"
	original.Civ = "Goths"
	original.Port = 9090
	original.AllowAllOrigins = true
	original.IncludeLocales = []string{"locales/en/**", "locales/de/**"}

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.DataDir != original.DataDir {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, original.DataDir)
	}
	if loaded.Locale != original.Locale {
		t.Errorf("locale: got %q, want %q", loaded.Locale, original.Locale)
	}
	if loaded.Civ != original.Civ {
		t.Errorf("civ: got %q, want %q", loaded.Civ, original.Civ)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if !loaded.AllowAllOrigins {
		t.Error("allow_all_origins: got false, want true")
	}
	if len(loaded.IncludeLocales) != len(original.IncludeLocales) {
		t.Fatalf("include_locales length: got %d, want %d", len(loaded.IncludeLocales), len(original.IncludeLocales))
	}
	for i, v := range loaded.IncludeLocales {
		if v != original.IncludeLocales[i] {
			t.Errorf("include_locales[%d]: got %q, want %q", i, v, original.IncludeLocales[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Locale != "en" {
		t.Errorf("expected default locale, got %q", cfg.Locale)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("TECHTREE_LOCALE", "jp")
	t.Setenv("TECHTREE_PORT", "9000")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Locale != "jp" {
		t.Errorf("env override failed: got %q, want %q", loaded.Locale, "jp")
	}
	if loaded.Port != 9000 {
		t.Errorf("env override failed: got port %d, want 9000", loaded.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yml")
	if err := os.WriteFile(path, []byte("data_dir: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data_dir", func(c *Config) { c.DataDir = "" }},
		{"unknown locale", func(c *Config) { c.Locale = "ja" }},
		{"empty output_dir", func(c *Config) { c.OutputDir = "" }},
		{"empty db_path", func(c *Config) { c.DBPath = "" }},
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"bad include pattern", func(c *Config) { c.IncludeLocales = []string{"locales/[de"} }},
		{"bad exclude pattern", func(c *Config) { c.ExcludeLocales = []string{"locales/{en"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDetectDataDir(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	if got := detectDataDir(); got != "data" {
		t.Errorf("empty dir: got %q, want data", got)
	}

	if err := os.MkdirAll(filepath.Join("public", "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"data.json", "tree.json"} {
		if err := os.WriteFile(filepath.Join("public", "data", name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if got := detectDataDir(); got != "public/data" {
		t.Errorf("got %q, want public/data", got)
	}
}
