package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/techtree/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize techtree configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that locates the data directory, picks a default locale and faction, and writes a .techtree.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
