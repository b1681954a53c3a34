package cli

import (
	"github.com/akolanti/SDKAssistant/internal/mcpServer"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the agent tools over MCP",
	Long: `Serves documentation search, web search and the code interpreter as Model Context
Protocol tools over stdio, for use by other agents. Tools without configured keys are left out.

Client configuration:
  {
    "mcpServers": {
      "sdk-assistant": {
        "command": "/path/to/assistant",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry, err := newContainer(cmd).Tools()
		if err != nil {
			return err
		}
		return mcpServer.New(registry).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
