package config

// FileName is the configuration file looked up in the working directory.
const FileName = ".techtree.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:   "data",
		Locale:    "en",
		OutputDir: "site",
		DBPath:    ".techtree/techtree.db",
		Port:      8080,
	}
}
