package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OscarLawrence/UCP/internal/classify"
	"github.com/OscarLawrence/UCP/internal/pattern"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Inspect and maintain the pattern library",
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored patterns",
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

		patterns, err := eng.Store().List(context.Background())
		if err != nil {
			return fmt.Errorf("listing patterns: %w", err)
		}
		if len(patterns) == 0 {
			fmt.Println("No patterns stored. Run `ucp patterns seed` to bootstrap the library.")
			return nil
		}

		for _, p := range patterns {
			fmt.Printf("#%d [%s] used %d time(s)\n", p.ID, p.Category, p.UsageCount)
			fmt.Printf("  problem:  %s\n", p.ProblemSummary)
			fmt.Printf("  solution: %s\n", p.SolutionSummary)
			for _, step := range p.Steps {
				fmt.Printf("    - %s\n", step)
			}
		}
		return nil
	},
}

var (
	addProblem  string
	addSolution string
	addCategory string
	addSteps    []string
)

var patternsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a pattern to the library",
	Long: `Adds a problem/solution pattern. When --category is omitted the
category is inferred from the problem summary.`,
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

		category := classify.Category(addCategory)
		if category == "" {
			record, err := classify.Classify(addProblem)
			if err != nil {
				return fmt.Errorf("no category given and none could be inferred: %w", err)
			}
			category = record.Category
		} else if !classify.Valid(category) {
			return fmt.Errorf("unknown category %q", category)
		}

		id, err := eng.Store().Add(context.Background(), pattern.Pattern{
			ProblemSummary:  addProblem,
			SolutionSummary: addSolution,
			Category:        category,
			Steps:           addSteps,
		})
		if err != nil {
			return fmt.Errorf("adding pattern: %w", err)
		}

		fmt.Printf("Added pattern %d (%s)\n", id, category)
		return nil
	},
}

// seedPatterns are the core bootstrap patterns the autonomous loop needs
// before it can synthesize anything.
var seedPatterns = []pattern.Pattern{
	{
		ProblemSummary:  "Human communication contains cognitive bias that reduces reasoning efficiency",
		SolutionSummary: "Ultra-compressed communication removes bias injection and enhances logical processing",
		Category:        classify.CategoryComplexity,
		Steps: []string{
			"Create bias detection system",
			"Implement logical validation",
			"Compress information density",
		},
	},
	{
		ProblemSummary:  "Manual problem identification and solution generation creates bottlenecks",
		SolutionSummary: "Autonomous pattern recognition and recombination enables continuous problem solving",
		Category:        classify.CategoryInefficiency,
		Steps: []string{
			"Build pattern library",
			"Create problem signature system",
			"Implement recombination engine",
		},
	},
}

var patternsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Bootstrap the library with the core patterns",
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

		ctx := context.Background()
		for _, p := range seedPatterns {
			id, err := eng.Store().Add(ctx, p)
			if err != nil {
				return fmt.Errorf("seeding pattern %q: %w", p.ProblemSummary, err)
			}
			fmt.Printf("Seeded pattern %d (%s)\n", id, p.Category)
		}
		return nil
	},
}

var patternsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that all stored patterns are readable",
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

		total, readable, err := eng.Store().Check(context.Background())
		if err != nil {
			return fmt.Errorf("checking patterns: %w", err)
		}
		if total == readable {
			fmt.Printf("All %d pattern(s) readable\n", total)
			return nil
		}
		return fmt.Errorf("%d of %d pattern record(s) are unreadable", total-readable, total)
	},
}

func init() {
	patternsAddCmd.Flags().StringVar(&addProblem, "problem", "", "problem summary (required)")
	patternsAddCmd.Flags().StringVar(&addSolution, "solution", "", "solution summary (required)")
	patternsAddCmd.Flags().StringVar(&addCategory, "category", "", "problem category (inferred when omitted)")
	patternsAddCmd.Flags().StringArrayVar(&addSteps, "step", nil, "implementation step (repeatable)")
	patternsAddCmd.MarkFlagRequired("problem")
	patternsAddCmd.MarkFlagRequired("solution")

	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsAddCmd)
	patternsCmd.AddCommand(patternsSeedCmd)
	patternsCmd.AddCommand(patternsCheckCmd)
	rootCmd.AddCommand(patternsCmd)
}
