package main

import (
	"github.com/spf13/cobra"

	"github.com/kvernstuen/vesound/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the forward modeller as MCP tools over stdio",
		Long: `Starts an MCP (Model Context Protocol) server exposing ves_forward and
ves_compare so agents can forward-model layered earths and check curve
equivalence without shelling out to the CLI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mcp.NewServer(&mcp.Config{
				Name:    "vesound",
				Version: version,
			})
			return server.Run(cmd.Context())
		},
	}
}
