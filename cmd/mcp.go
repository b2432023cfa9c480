package cmd

import (
	"github.com/mlopshq/driftmon/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the driftmon MCP server",
	Long:  `Launch an MCP server that allows AI agents to verify drift monitors via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol; setup errors still go to stderr.
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, mcp.Deps{Lister: wsClient, Prober: wsClient})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
