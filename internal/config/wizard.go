package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/techtree/internal/dataset"
)

// dataDirCandidates are directories checked for an existing data.json.
var dataDirCandidates = []string{"data", "public/data", "static/data"}

// detectDataDir returns the first candidate holding data.json and tree.json.
func detectDataDir() string {
	for _, dir := range dataDirCandidates {
		_, errData := os.Stat(filepath.Join(dir, "data.json"))
		_, errTree := os.Stat(filepath.Join(dir, "tree.json"))
		if errData == nil && errTree == nil {
			return dir
		}
	}
	return "data"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .techtree.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to techtree! Let's configure the viewer.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory (data.json, tree.json, locales/)",
		Default: detectDataDir(),
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	// 2. Default locale.
	items := make([]string, len(dataset.Locales))
	for i, l := range dataset.Locales {
		items[i] = l.Code + " - " + l.Name
	}
	localePrompt := promptui.Select{
		Label: "Default language",
		Items: items,
	}
	localeIdx, _, err := localePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("locale selection: %w", err)
	}
	cfg.Locale = dataset.Locales[localeIdx].Code

	// 3. Default faction.
	civPrompt := promptui.Prompt{
		Label:   "Default civilization (blank for the first one)",
		Default: "",
	}
	if cfg.Civ, err = civPrompt.Run(); err != nil {
		return nil, fmt.Errorf("civ: %w", err)
	}

	// 4. Port.
	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("not a port: %s", s)
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 5. Export directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the exported site",
		Default: cfg.OutputDir,
	}
	if cfg.OutputDir, err = outputPrompt.Run(); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 6. Locales to serve.
	includePrompt := promptui.Prompt{
		Label:   "Locale patterns to serve (space-separated globs, blank for all)",
		Default: "",
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	cfg.IncludeLocales = strings.Fields(includeStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(FileName); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", FileName)
	return cfg, nil
}
