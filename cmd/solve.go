package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OscarLawrence/UCP/internal/classify"
	"github.com/OscarLawrence/UCP/internal/engine"
	"github.com/OscarLawrence/UCP/internal/synth"
)

var solveJSON bool

var solveCmd = &cobra.Command{
	Use:   "solve [text]",
	Short: "Classify a problem and synthesize a solution from stored patterns",
	Long: `Classifies the given problem description, retrieves related patterns
from the library, and synthesizes a solution proposal. The proposal is
checked against the policy gate but not recorded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readTextArg(args)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, eng, err := openEngine(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		proposal, err := eng.Solve(context.Background(), text)
		if err != nil {
			var rejected *engine.PolicyRejectedError
			switch {
			case errors.Is(err, classify.ErrNoProblemDetected):
				fmt.Println("No problem detected in the given text.")
				return nil
			case errors.Is(err, synth.ErrInsufficientPatterns):
				return fmt.Errorf("the pattern library has no usable candidates; run `ucp patterns seed` first")
			case errors.As(err, &rejected):
				return err
			default:
				return err
			}
		}

		if solveJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(proposal)
		}

		fmt.Printf("Proposed solution (confidence %.2f):\n%s\n", proposal.Confidence, proposal.SynthesizedText)
		fmt.Println("\nImplementation steps:")
		for i, step := range proposal.ImplementationSteps {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
		fmt.Printf("\nSource patterns: %v\n", proposal.SourcePatternIDs)
		return nil
	},
}

func init() {
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "emit the proposal as JSON")
	rootCmd.AddCommand(solveCmd)
}
