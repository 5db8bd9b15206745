package config

// Config is the top-level techtree configuration, corresponding to .techtree.yml.
type Config struct {
	DataDir         string   `yaml:"data_dir" koanf:"data_dir"`
	Locale          string   `yaml:"locale" koanf:"locale"`
	Civ             string   `yaml:"civ" koanf:"civ"`
	OutputDir       string   `yaml:"output_dir" koanf:"output_dir"`
	DBPath          string   `yaml:"db_path" koanf:"db_path"`
	Port            int      `yaml:"port" koanf:"port"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	IncludeLocales  []string `yaml:"include_locales" koanf:"include_locales"`
	ExcludeLocales  []string `yaml:"exclude_locales" koanf:"exclude_locales"`
}
