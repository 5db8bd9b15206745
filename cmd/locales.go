package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List the locales present in the data directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		quietLogs()
		locales, err := newRegistry(cfg).Locales()
		if err != nil {
			return err
		}
		if len(locales) == 0 {
			fmt.Printf("No locale string tables found in %s\n", cfg.DataDir)
			return nil
		}
		for _, l := range locales {
			marker := " "
			if l.Code == cfg.Locale {
				marker = "*"
			}
			fmt.Printf("%s %-4s %s\n", marker, l.Code, l.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(localesCmd)
}
