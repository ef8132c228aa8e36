package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/OscarLawrence/UCP/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing text analysis and pattern library tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, eng, err := openEngine(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		status, err := eng.Status(context.Background())
		if err != nil {
			return fmt.Errorf("reading status: %w", err)
		}
		fmt.Fprintf(os.Stderr, "ucp MCP server started on stdio (patterns=%d)\n", status.PatternCount)

		srv := mcpserver.NewServer(eng)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
