package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/techtree/internal/availability"
)

var describeCmd = &cobra.Command{
	Use:   "describe [node-id]",
	Short: "Show the help text of a node",
	Long: `Prints the help panel of a tech tree node: its localized help text, advanced
stats and which factions have it. With --civ, the faction's unique slots are
described by the faction's own unique unit or technology.`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	describeCmd.Flags().String("civ", "", "faction whose overlay applies")
	describeCmd.Flags().Bool("json", false, "output the help view as JSON")
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	civ, _ := cmd.Flags().GetString("civ")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	quietLogs()
	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	var ov *availability.Overlay
	if civ != "" {
		if civ, err = resolveCiv(ds, civ); err != nil {
			return err
		}
		if ov, err = ds.Overlay(civ); err != nil {
			return err
		}
	}

	view, err := ds.Help(ov, args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	strong.Printf("%s", view.Name)
	subtle.Printf("  %s", view.Node)
	if view.Entity != view.Node {
		subtle.Printf(" -> %s", view.Entity)
	}
	fmt.Println()
	fmt.Println()
	fmt.Println(plainText(view.HTML))
	if view.AdvancedStats != "" {
		fmt.Println()
		fmt.Println(plainText(view.AdvancedStats))
	}

	if len(view.Badges) > 0 {
		fmt.Println()
		var names []string
		for _, b := range view.Badges {
			if b.Active {
				names = append(names, good.Sprint(b.Name))
			} else {
				names = append(names, bad.Sprint(b.Name))
			}
		}
		fmt.Println(strings.Join(names, "  "))
	}
	return nil
}
