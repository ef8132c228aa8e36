package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var processJSON bool

var processCmd = &cobra.Command{
	Use:   "process [text]",
	Short: "Analyze text for bias and logical structure and compress it",
	Long: `Runs bias detection, logical chain extraction, and compression over the
given text. Text is read from the arguments, or from stdin when no
argument (or "-") is given.`,
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

		result := eng.Process(text)

		if processJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Printf("Bias score:        %.2f\n", result.BiasScore)
		fmt.Printf("Compression ratio: %.2f\n", result.CompressionRatio)
		fmt.Printf("Enhancement score: %.2f\n", result.EnhancementScore)
		if len(result.Findings) > 0 {
			fmt.Printf("\nBias findings (%d):\n", len(result.Findings))
			for _, f := range result.Findings {
				fmt.Printf("  [%s] %q at %d-%d\n", f.Category, f.Match, f.Start, f.End)
			}
		}
		if !result.Chain.Empty() {
			fmt.Printf("\nLogical chain (completeness %.2f)\n", result.Chain.Completeness())
		}
		fmt.Printf("\nCompressed:\n%s\n", result.CompressedText)
		return nil
	},
}

func init() {
	processCmd.Flags().BoolVar(&processJSON, "json", false, "emit the full result as JSON")
	rootCmd.AddCommand(processCmd)
}
