package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/techtree/internal/graph"
	"github.com/ziadkadry99/techtree/internal/highlight"
)

var pathCmd = &cobra.Command{
	Use:   "path [node-id]",
	Short: "Show the prerequisite chain of a node",
	Long:  `Prints the nodes and connections highlighted when the node is hovered in the viewer: the node itself followed by each ancestor up to its root building.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPath,
}

func init() {
	pathCmd.Flags().Bool("json", false, "output nodes and edge ids as JSON")
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
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

	nodes, edges, err := highlight.Path(ds.Graph, args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		ids := make([]string, len(edges))
		for i, e := range edges {
			ids[i] = e.ID()
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]string{"nodes": nodes, "edges": ids})
	}

	for depth, id := range nodes {
		n, _ := ds.Graph.Node(id)
		label := ds.NodeName(id)
		if depth == 0 {
			label = strong.Sprint(label)
		}
		fmt.Printf("%s%s %s\n", strings.Repeat("  ", depth), label, subtle.Sprintf("(%s, %s)", id, categoryLabel(n)))
	}
	return nil
}

func categoryLabel(n *graph.Node) string {
	if n == nil {
		return ""
	}
	return string(n.Category)
}
