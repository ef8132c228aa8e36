package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/OscarLawrence/UCP/internal/axiom"
	"github.com/OscarLawrence/UCP/internal/classify"
	"github.com/OscarLawrence/UCP/internal/pattern"
	"github.com/OscarLawrence/UCP/internal/synth"
)

// State is one phase of the autonomous loop state machine.
type State string

const (
	StateIdle         State = "idle"
	StateClassifying  State = "classifying"
	StateSynthesizing State = "synthesizing"
	StateGating       State = "gating"
	StateRecording    State = "recording"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

// CycleOutcome is the result of one classify → synthesize → gate →
// (record) cycle. State is the phase the cycle ended in: recording for an
// accepted and stored solution, gating for a rejected proposal, failed for
// insufficient patterns, done when no further problem exists.
type CycleOutcome struct {
	Cycle     int               `json:"cycle"`
	State     State             `json:"state"`
	Problem   string            `json:"problem,omitempty"`
	Category  classify.Category `json:"category,omitempty"`
	PatternID int64             `json:"pattern_id,omitempty"`
	Detail    string            `json:"detail,omitempty"`
}

// Controller drives repeated autonomous cycles, bounded by an iteration
// limit. Each Controller instance holds its own state, so independent
// runs can coexist.
type Controller struct {
	engine        *Engine
	maxIterations int
	runID         string
}

// NewController creates a loop controller with the given iteration bound.
func NewController(e *Engine, maxIterations int) *Controller {
	if maxIterations <= 0 {
		maxIterations = 1
	}
	return &Controller{
		engine:        e,
		maxIterations: maxIterations,
		runID:         uuid.New().String(),
	}
}

// RunID identifies this run in the persisted cycle history.
func (c *Controller) RunID() string { return c.runID }

// Run executes up to maxIterations cycles starting from the given text.
// Cycle one classifies the external input; each later cycle classifies a
// problem description derived from the previous accepted solution, or the
// loop stops when none can be derived. A cycle that fails on insufficient
// patterns or a policy rejection is logged and the loop continues; the
// loop terminates on done, on an underivable next problem, or at the
// iteration cap. The returned slice holds one outcome per executed cycle.
func (c *Controller) Run(ctx context.Context, text string) ([]CycleOutcome, error) {
	var outcomes []CycleOutcome
	current := text

	for cycle := 1; cycle <= c.maxIterations; cycle++ {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		if strings.TrimSpace(current) == "" {
			break
		}

		outcome, next := c.runCycle(ctx, cycle, current)
		outcomes = append(outcomes, outcome)

		c.engine.setLastState(outcome.State)
		if err := c.engine.saveCycle(ctx, c.runID, outcome); err != nil {
			return outcomes, fmt.Errorf("persisting cycle %d: %w", cycle, err)
		}

		if outcome.State == StateDone {
			break
		}
		current = next
	}

	return outcomes, nil
}

// runCycle executes one cycle and returns its outcome plus the input text
// for the next cycle.
func (c *Controller) runCycle(ctx context.Context, cycle int, text string) (CycleOutcome, string) {
	outcome := CycleOutcome{Cycle: cycle, State: StateClassifying}

	record, err := classify.Classify(text)
	if err != nil {
		if errors.Is(err, classify.ErrNoProblemDetected) {
			outcome.State = StateDone
			outcome.Detail = "no problem detected"
			return outcome, ""
		}
		outcome.State = StateFailed
		outcome.Detail = err.Error()
		return outcome, text
	}
	outcome.Problem = record.Text
	outcome.Category = record.Category

	outcome.State = StateSynthesizing
	proposal, err := c.engine.synth.Synthesize(ctx, record)
	if err != nil {
		// Recoverable: a single failed cycle is not fatal.
		outcome.State = StateFailed
		outcome.Detail = err.Error()
		if !errors.Is(err, synth.ErrInsufficientPatterns) {
			log.Printf("cycle %d synthesis: %v", cycle, err)
		}
		return outcome, text
	}

	outcome.State = StateGating
	verdict := axiom.Evaluate(proposal.SynthesizedText, proposal.ImplementationSteps, proposal.ConnectionDelta)
	if !verdict.Accepted {
		rules := make([]string, 0, len(verdict.ViolatedRules))
		for _, r := range verdict.ViolatedRules {
			rules = append(rules, string(r))
		}
		outcome.Detail = "rejected: " + strings.Join(rules, ", ")
		return outcome, text
	}

	outcome.State = StateRecording
	id, err := c.engine.store.AddWithSources(ctx, pattern.Pattern{
		ProblemSummary:  record.Text,
		SolutionSummary: proposal.SynthesizedText,
		Category:        record.Category,
		Steps:           proposal.ImplementationSteps,
	}, proposal.SourcePatternIDs)
	if err != nil {
		outcome.State = StateFailed
		outcome.Detail = err.Error()
		return outcome, text
	}
	outcome.PatternID = id

	// The next cycle re-derives its problem from the accepted solution.
	return outcome, proposal.SynthesizedText
}
