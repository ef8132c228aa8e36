package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ucp",
	Short: "Ultra-compressed communication protocol for text analysis",
	Long: `ucp analyzes text for cognitive bias patterns and logical structure,
compresses it into a denser rendering, and maintains a library of
problem/solution patterns that an autonomous loop recombines into new
solutions. It integrates with AI agents via MCP and exposes a REST API.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".ucp.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
