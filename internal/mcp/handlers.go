package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/OscarLawrence/UCP/internal/classify"
	"github.com/OscarLawrence/UCP/internal/engine"
	"github.com/OscarLawrence/UCP/internal/pattern"
	"github.com/OscarLawrence/UCP/internal/synth"
)

// handleAnalyzeText runs the process path over the given text.
func (s *Server) handleAnalyzeText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	result := s.engine.Process(text)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Bias score: %.2f\n", result.BiasScore))
	sb.WriteString(fmt.Sprintf("Compression ratio: %.2f\n", result.CompressionRatio))
	sb.WriteString(fmt.Sprintf("Enhancement score: %.2f\n", result.EnhancementScore))

	if len(result.Findings) > 0 {
		sb.WriteString(fmt.Sprintf("\nBias findings (%d):\n", len(result.Findings)))
		for _, f := range result.Findings {
			sb.WriteString(fmt.Sprintf("  [%s] %q at %d-%d\n", f.Category, f.Match, f.Start, f.End))
		}
	} else {
		sb.WriteString("\nNo bias patterns found.\n")
	}

	if !result.Chain.Empty() {
		sb.WriteString(fmt.Sprintf("\nLogical chain (completeness %.2f):\n", result.Chain.Completeness()))
		if !result.Chain.Premise.Empty() {
			sb.WriteString(fmt.Sprintf("  Premise: %s\n", result.Chain.Premise.Text))
		}
		for _, r := range result.Chain.Reasoning {
			sb.WriteString(fmt.Sprintf("  Reasoning: %s\n", r.Text))
		}
		if !result.Chain.Conclusion.Empty() {
			sb.WriteString(fmt.Sprintf("  Conclusion: %s\n", result.Chain.Conclusion.Text))
		}
	}

	sb.WriteString("\nCompressed text:\n")
	sb.WriteString(result.CompressedText)
	sb.WriteString("\n")

	return mcp.NewToolResultText(sb.String()), nil
}

// handleProposeSolution runs a single solve cycle without recording.
func (s *Server) handleProposeSolution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	proposal, err := s.engine.Solve(ctx, text)
	if err != nil {
		var rejected *engine.PolicyRejectedError
		switch {
		case errors.Is(err, classify.ErrNoProblemDetected):
			return mcp.NewToolResultText("No problem detected in the given text."), nil
		case errors.Is(err, synth.ErrInsufficientPatterns):
			return mcp.NewToolResultText("The pattern library has no usable candidates yet. Run `ucp patterns seed` or record patterns first."), nil
		case errors.As(err, &rejected):
			return mcp.NewToolResultError(rejected.Error()), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("synthesis failed: %v", err)), nil
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Proposed solution (confidence %.2f):\n", proposal.Confidence))
	sb.WriteString(proposal.SynthesizedText)
	sb.WriteString("\n\nImplementation steps:\n")
	for i, step := range proposal.ImplementationSteps {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
	}
	sb.WriteString(fmt.Sprintf("\nSource patterns: %v\n", proposal.SourcePatternIDs))

	return mcp.NewToolResultText(sb.String()), nil
}

// handleRecordPattern adds a pattern to the library.
func (s *Server) handleRecordPattern(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	problem, err := request.RequireString("problem")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: problem"), nil
	}
	solution, err := request.RequireString("solution")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: solution"), nil
	}

	category := classify.Category(request.GetString("category", ""))
	if category == "" {
		record, err := classify.Classify(problem)
		if err != nil {
			return mcp.NewToolResultError("category omitted and none could be inferred from the problem summary"), nil
		}
		category = record.Category
	} else if !classify.Valid(category) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown category %q", category)), nil
	}

	var steps []string
	for _, line := range strings.Split(request.GetString("steps", ""), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			steps = append(steps, line)
		}
	}

	id, err := s.engine.Store().Add(ctx, pattern.Pattern{
		ProblemSummary:  problem,
		SolutionSummary: solution,
		Category:        category,
		Steps:           steps,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recording pattern: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Recorded pattern %d (%s).", id, category)), nil
}

// handleLibraryStatus reports the library size and last cycle state.
func (s *Server) handleLibraryStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := s.engine.Status(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading status: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Patterns stored: %d\nLast cycle state: %s\n",
		status.PatternCount, status.LastCycleState,
	)), nil
}
