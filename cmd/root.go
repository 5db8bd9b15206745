package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/techtree/internal/config"
)

var (
	cfgFile string
	verbose bool
	dataDir string
	locale  string
)

var rootCmd = &cobra.Command{
	Use:   "techtree",
	Short: "Browse faction technology trees",
	Long: `techtree loads a faction tech-tree dataset (tree layout, entity metadata
and per-locale string tables) and lets you explore it: which units,
buildings and technologies each faction can use, the help text of every
node and the chain of prerequisites leading to it. It can serve an
interactive viewer over HTTP, export a static site and answer lookups for
AI agents via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.FileName, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&locale, "locale", "l", "", "locale code, e.g. en or de (overrides config)")
}
