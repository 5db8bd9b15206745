package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/techtree/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing tech tree lookup tools (factions, nodes, help text, availability and prerequisite paths) for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		registry := newRegistry(cfg)
		locales, err := registry.Locales()
		if err != nil {
			return err
		}
		if len(locales) == 0 {
			// Keep serving: tool calls report the missing data themselves.
			fmt.Fprintf(os.Stderr, "Warning: no locale string tables found in %s\n", cfg.DataDir)
		}

		fmt.Fprintf(os.Stderr, "techtree MCP server started on stdio (data=%s, locales=%d)\n", cfg.DataDir, len(locales))

		srv := mcpserver.NewServer(registry, cfg.Locale)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
