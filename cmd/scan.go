package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OscarLawrence/UCP/internal/ingest"
	"github.com/OscarLawrence/UCP/internal/progress"
)

var scanJSON bool

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Analyze every text document under a directory",
	Long: `Walks the directory tree, runs each markdown or plain-text file through
the analysis pipeline, and reports bias scores, compression ratios, and
detected problem indicators per file. Defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
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

		var reporter progress.Reporter
		if !scanJSON {
			reporter = progress.NewReporter()
		}

		scanner := ingest.NewScanner(eng, ingest.WalkerConfig{
			RootDir:     root,
			Include:     cfg.Include,
			Exclude:     cfg.Exclude,
			MaxFileSize: cfg.MaxFileSize,
		}, reporter)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		report, err := scanner.Scan(ctx)
		if err != nil {
			return err
		}

		if scanJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Printf("Scanned %d file(s), skipped %d, problems in %d\n",
			report.FilesScanned, report.FilesSkipped, report.ProblemsFound)
		for _, r := range report.Results {
			line := fmt.Sprintf("  %-40s bias %.2f ratio %.2f", r.RelPath, r.BiasScore, r.CompressionRatio)
			if r.Category != "" {
				line += fmt.Sprintf(" [%s p=%.1f]", r.Category, r.Priority)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "emit the scan report as JSON")
	rootCmd.AddCommand(scanCmd)
}
