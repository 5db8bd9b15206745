package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dataset for errors and stale references",
	Long: `Loads every locale in the data directory and applies every faction's
availability. Loading fails on a malformed tree (cycles, nodes with several
parents, unknown node types). Faction entries that name nodes missing from
the tree or metadata are reported as warnings.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("strict", false, "treat stale references as errors")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	quietLogs()

	registry := newRegistry(cfg)
	locales, err := registry.Locales()
	if err != nil {
		return err
	}
	if len(locales) == 0 {
		return fmt.Errorf("no locale string tables found in %s", cfg.DataDir)
	}

	failed, stale := 0, 0
	for _, l := range locales {
		ds, err := registry.Get(l.Code)
		if err != nil {
			fmt.Printf("%s %s: %v\n", fail.Sprint("FAIL"), l.Code, err)
			failed++
			continue
		}
		warnings := 0
		for _, c := range ds.SortedCivs() {
			ov, err := ds.Overlay(c.ID)
			if err != nil {
				fmt.Printf("%s %s/%s: %v\n", fail.Sprint("FAIL"), l.Code, c.ID, err)
				failed++
				continue
			}
			for _, s := range ov.Stale {
				fmt.Printf("%s %s/%s: %v\n", warn.Sprint("WARN"), l.Code, c.ID, s)
				warnings++
			}
		}
		stale += warnings
		fmt.Printf("%s %s: %d nodes, %d factions, %d warnings\n", good.Sprint("OK"), l.Code, ds.Graph.Len(), len(ds.SortedCivs()), warnings)
	}

	if failed > 0 || (strict && stale > 0) {
		fmt.Fprintf(os.Stderr, "%d errors, %d stale references\n", failed, stale)
		return fmt.Errorf("validation failed")
	}
	return nil
}
