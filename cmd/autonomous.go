package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OscarLawrence/UCP/internal/engine"
)

var (
	autonomousIterations int
	autonomousJSON       bool
)

var autonomousCmd = &cobra.Command{
	Use:   "autonomous [text]",
	Short: "Run the autonomous problem-solving loop",
	Long: `Repeatedly classifies a problem, synthesizes a solution from the pattern
library, checks it against the policy gate, and records accepted
solutions as new patterns. Each accepted solution seeds the next cycle,
up to the iteration cap.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readTextArg(args)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		iterations := autonomousIterations
		if iterations <= 0 {
			iterations = cfg.MaxIterations
		}

		database, eng, err := openEngine(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		controller := engine.NewController(eng, iterations)
		outcomes, err := controller.Run(ctx, text)
		if err != nil {
			return fmt.Errorf("autonomous run %s: %w", controller.RunID(), err)
		}

		if autonomousJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(outcomes)
		}

		fmt.Printf("Run %s finished after %d cycle(s)\n", controller.RunID(), len(outcomes))
		for _, o := range outcomes {
			line := fmt.Sprintf("  cycle %d: %s", o.Cycle, o.State)
			if o.Category != "" {
				line += fmt.Sprintf(" [%s]", o.Category)
			}
			if o.PatternID > 0 {
				line += fmt.Sprintf(" -> pattern %d", o.PatternID)
			}
			if o.Detail != "" {
				line += " (" + o.Detail + ")"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	autonomousCmd.Flags().IntVar(&autonomousIterations, "max-iterations", 0, "iteration cap (0 = config default)")
	autonomousCmd.Flags().BoolVar(&autonomousJSON, "json", false, "emit cycle outcomes as JSON")
	rootCmd.AddCommand(autonomousCmd)
}
