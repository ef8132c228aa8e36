package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pattern library size and the last autonomous cycle state",
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

		status, err := eng.Status(context.Background())
		if err != nil {
			return fmt.Errorf("reading status: %w", err)
		}

		if statusJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(status)
		}

		fmt.Printf("Patterns stored:  %d\n", status.PatternCount)
		fmt.Printf("Last cycle state: %s\n", status.LastCycleState)
		fmt.Printf("Database:         %s\n", database.Path())
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "emit status as JSON")
	rootCmd.AddCommand(statusCmd)
}
