package cmd

import (
	"github.com/spf13/cobra"

	"github.com/asciidoc-dita/adfix/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server (stdio)",
	Long: `Run an MCP (Model Context Protocol) server over stdio exposing the
check_files, fix_files, and list_rules tools to agent clients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return mcp.NewServer(cfg).Start(cmd.Context())
	},
}
