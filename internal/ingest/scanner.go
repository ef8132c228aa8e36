package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/OscarLawrence/UCP/internal/classify"
	"github.com/OscarLawrence/UCP/internal/engine"
	"github.com/OscarLawrence/UCP/internal/progress"
)

// FileResult is the analysis outcome for one scanned file.
type FileResult struct {
	RelPath          string            `json:"rel_path"`
	BiasScore        float64           `json:"bias_score"`
	CompressionRatio float64           `json:"compression_ratio"`
	EnhancementScore float64           `json:"enhancement_score"`
	Category         classify.Category `json:"category,omitempty"`
	Priority         float64           `json:"priority,omitempty"`
}

// Report summarizes a corpus scan.
type Report struct {
	FilesScanned  int          `json:"files_scanned"`
	FilesSkipped  int          `json:"files_skipped"`
	ProblemsFound int          `json:"problems_found"`
	Results       []FileResult `json:"results"`
}

// Scanner runs the analysis pipeline over a directory of text documents.
type Scanner struct {
	engine   *engine.Engine
	cfg      WalkerConfig
	reporter progress.Reporter
}

// NewScanner creates a scanner over the given engine. A nil reporter
// disables progress output.
func NewScanner(eng *engine.Engine, cfg WalkerConfig, reporter progress.Reporter) *Scanner {
	return &Scanner{engine: eng, cfg: cfg, reporter: reporter}
}

// Scan walks the configured root, analyzes each discovered file, and
// classifies it for problem indicators. Files with identical content are
// analyzed once; unreadable files are counted as skipped, not fatal.
func (s *Scanner) Scan(ctx context.Context) (*Report, error) {
	files, err := Walk(s.cfg)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", s.cfg.RootDir, err)
	}

	if s.reporter != nil {
		s.reporter.Start(len(files))
		defer s.reporter.Finish()
	}

	report := &Report{}
	seen := make(map[string]struct{})

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if s.reporter != nil {
			s.reporter.Update(i+1, f.RelPath)
		}

		if _, ok := seen[f.ContentHash]; ok {
			report.FilesSkipped++
			continue
		}
		seen[f.ContentHash] = struct{}{}

		data, err := os.ReadFile(f.Path)
		if err != nil {
			report.FilesSkipped++
			continue
		}

		content := string(data)
		if IsMarkdown(f.Path) {
			content = ExtractText(data)
		}
		if content == "" {
			report.FilesSkipped++
			continue
		}

		result := s.engine.Process(content)
		fileResult := FileResult{
			RelPath:          f.RelPath,
			BiasScore:        result.BiasScore,
			CompressionRatio: result.CompressionRatio,
			EnhancementScore: result.EnhancementScore,
		}

		record, err := classify.Classify(content)
		switch {
		case err == nil:
			fileResult.Category = record.Category
			fileResult.Priority = record.Priority
			report.ProblemsFound++
		case !errors.Is(err, classify.ErrNoProblemDetected):
			return report, fmt.Errorf("classifying %s: %w", f.RelPath, err)
		}

		report.Results = append(report.Results, fileResult)
		report.FilesScanned++
	}

	return report, nil
}
