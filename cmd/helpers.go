package cmd

import (
	"fmt"
	"html"
	"io"
	"log"
	"regexp"
	"strings"

	"github.com/ziadkadry99/techtree/internal/config"
	"github.com/ziadkadry99/techtree/internal/dataset"
)

// loadConfig loads the config and applies command-line overrides, providing
// a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `techtree init` to create a config file", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if locale != "" {
		cfg.Locale = locale
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// quietLogs silences package logging for one-shot commands unless
// --verbose is set. Long-running commands keep their logs.
func quietLogs() {
	if !verbose {
		log.SetOutput(io.Discard)
	}
}

// newRegistry creates a dataset registry over the configured data directory.
func newRegistry(cfg *config.Config) *dataset.Registry {
	return dataset.NewRegistry(cfg.DataDir, cfg.IncludeLocales, cfg.ExcludeLocales)
}

// loadDataset loads the configured locale.
func loadDataset(cfg *config.Config) (*dataset.Dataset, error) {
	ds, err := newRegistry(cfg).Get(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("%w\nCheck data_dir in %s", err, cfgFile)
	}
	return ds, nil
}

// resolveCiv accepts a faction id or URL fragment.
func resolveCiv(ds *dataset.Dataset, civ string) (string, error) {
	if ds.HasCiv(civ) {
		return civ, nil
	}
	if canonical, ok := ds.CanonicalCiv(civ); ok {
		return canonical, nil
	}
	return "", fmt.Errorf("%w: %s", dataset.ErrUnknownCiv, civ)
}

var (
	blockTags = regexp.MustCompile(`(?i)</p>|<br\s*/?>|</h3>`)
	anyTag    = regexp.MustCompile(`<[^>]+>`)
)

// plainText renders help text HTML for the terminal.
func plainText(s string) string {
	s = blockTags.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
