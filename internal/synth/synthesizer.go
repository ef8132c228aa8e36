// Package synth recombines stored patterns into proposed solutions for
// classified problems.
package synth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/OscarLawrence/UCP/internal/axiom"
	"github.com/OscarLawrence/UCP/internal/classify"
	"github.com/OscarLawrence/UCP/internal/lexical"
	"github.com/OscarLawrence/UCP/internal/pattern"
)

// DefaultRetrievalK is the number of candidate patterns retrieved per
// synthesis.
const DefaultRetrievalK = 3

// ErrInsufficientPatterns signals that the store had no usable candidates.
// It is recoverable: an autonomous cycle skips rather than aborts.
var ErrInsufficientPatterns = errors.New("insufficient patterns")

// Proposal is a synthesized solution candidate. Rejected proposals are
// discarded; accepted ones become new patterns.
type Proposal struct {
	SourcePatternIDs    []int64  `json:"source_pattern_ids"`
	SynthesizedText     string   `json:"synthesized_text"`
	ImplementationSteps []string `json:"implementation_steps"`
	Confidence          float64  `json:"confidence"`
	ConnectionDelta     int      `json:"connection_delta"`
}

// connectionSteps are appended to every synthesized plan so solutions stay
// anchored to collaborative execution.
var connectionSteps = []string{
	"Establish communication channels between all stakeholders",
	"Create shared documentation and knowledge base",
	"Implement feedback collection and response mechanism",
}

// Synthesizer builds solution proposals by merging retrieved patterns.
type Synthesizer struct {
	store *pattern.Store
	k     int
}

// New creates a synthesizer over the given store. k <= 0 selects the
// default retrieval size.
func New(store *pattern.Store, k int) *Synthesizer {
	if k <= 0 {
		k = DefaultRetrievalK
	}
	return &Synthesizer{store: store, k: k}
}

// Synthesize retrieves candidate patterns for the problem and merges them
// into a proposal. Confidence is the average lexical overlap of the
// retrieved patterns to the problem divided by the number of patterns
// merged: folding in more loosely related patterns dilutes confidence.
func (s *Synthesizer) Synthesize(ctx context.Context, problem *classify.Record) (*Proposal, error) {
	candidates, err := s.store.Query(ctx, problem.Text, problem.Category, s.k)
	if err != nil {
		return nil, fmt.Errorf("querying patterns: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidates for %q problem: %w", problem.Category, ErrInsufficientPatterns)
	}

	ids := make([]int64, 0, len(candidates))
	var overlapSum float64
	for _, c := range candidates {
		ids = append(ids, c.ID)
		overlapSum += lexical.Overlap(problem.Text, c.ProblemSummary)
	}

	text := mergeSummaries(candidates)
	steps := mergeSteps(candidates)

	confidence := (overlapSum / float64(len(candidates))) * (1.0 / float64(len(candidates)))

	full := text + " " + strings.Join(steps, " ")
	delta := axiom.ConnectionHits(full) - axiom.HarmfulHits(full)

	return &Proposal{
		SourcePatternIDs:    ids,
		SynthesizedText:     text,
		ImplementationSteps: steps,
		Confidence:          confidence,
		ConnectionDelta:     delta,
	}, nil
}

// mergeSummaries joins the distinct solution summaries in retrieval order.
func mergeSummaries(candidates []pattern.Pattern) string {
	seen := make(map[string]struct{})
	var parts []string
	for _, c := range candidates {
		key := strings.ToLower(strings.TrimSpace(c.SolutionSummary))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		parts = append(parts, strings.TrimRight(c.SolutionSummary, ". "))
	}
	return strings.Join(parts, ". ")
}

// mergeSteps merges implementation steps across candidates: shared steps
// appear once in first-seen order, then the standard connection steps are
// appended.
func mergeSteps(candidates []pattern.Pattern) []string {
	seen := make(map[string]struct{})
	var steps []string
	appendStep := func(step string) {
		key := strings.ToLower(strings.TrimSpace(step))
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		steps = append(steps, step)
	}

	for _, c := range candidates {
		for _, step := range c.Steps {
			appendStep(step)
		}
	}
	for _, step := range connectionSteps {
		appendStep(step)
	}
	return steps
}
