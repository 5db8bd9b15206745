package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/techtree/internal/availability"
	"github.com/ziadkadry99/techtree/internal/dataset"
)

var civCmd = &cobra.Command{
	Use:   "civ [faction]",
	Short: "List factions or show what one faction can build",
	Long: `Without an argument, lists the factions of the dataset sorted by localized
name. With a faction id or URL fragment (e.g. "britons"), prints the
availability of every tree node for that faction.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCiv,
}

func init() {
	civCmd.Flags().String("state", "", "only show nodes in this state: ENABLED, DISABLED or UNIQUE_RESKIN")
	civCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(civCmd)
}

func runCiv(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	stateFilter, _ := cmd.Flags().GetString("state")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	quietLogs()
	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return listCivs(ds, jsonOutput)
	}

	civ, err := resolveCiv(ds, args[0])
	if err != nil {
		return err
	}
	ov, err := ds.Overlay(civ)
	if err != nil {
		return err
	}

	var only *availability.State
	if stateFilter != "" {
		var st availability.State
		if err := st.UnmarshalText([]byte(stateFilter)); err != nil {
			return err
		}
		only = &st
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ov)
	}

	info := ds.CivInfo(civ)
	strong.Println(info.Name)
	if info.HelpText != "" {
		fmt.Println(plainText(info.HelpText))
	}
	fmt.Println()

	ids := make([]string, 0, len(ov.Nodes))
	for id := range ov.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	stateColor := map[availability.State]*color.Color{
		availability.Enabled:      good,
		availability.Disabled:     bad,
		availability.UniqueReskin: unique,
	}
	for _, id := range ids {
		ns := ov.Nodes[id]
		if only != nil && ns.State != *only {
			continue
		}
		name := ds.NodeName(id)
		if ns.Name != "" {
			name = ns.Name
		}
		fmt.Printf("%s %-30s %s\n", stateColor[ns.State].Sprintf("%-14s", ns.State), id, name)
	}

	for _, err := range ov.Stale {
		warn.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return nil
}

func listCivs(ds *dataset.Dataset, jsonOutput bool) error {
	civs := ds.SortedCivs()
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(civs)
	}
	for _, c := range civs {
		fmt.Printf("%-20s %s\n", c.ID, c.Name)
	}
	return nil
}
