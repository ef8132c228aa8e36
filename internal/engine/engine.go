// Package engine wires the analysis pipeline together: the process path
// (bias + chain + compression) and the solve path (classify + synthesize +
// gate), plus the autonomous loop controller.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/OscarLawrence/UCP/internal/axiom"
	"github.com/OscarLawrence/UCP/internal/bias"
	"github.com/OscarLawrence/UCP/internal/classify"
	"github.com/OscarLawrence/UCP/internal/compress"
	"github.com/OscarLawrence/UCP/internal/db"
	"github.com/OscarLawrence/UCP/internal/logic"
	"github.com/OscarLawrence/UCP/internal/pattern"
	"github.com/OscarLawrence/UCP/internal/synth"
)

// Engine holds the pipeline components. The pattern store is the only
// mutable state; everything else is pure.
type Engine struct {
	db    *db.DB
	store *pattern.Store
	synth *synth.Synthesizer

	mu        sync.Mutex
	lastState State
}

// New creates an engine over the given database. retrievalK <= 0 selects
// the default retrieval size.
func New(database *db.DB, retrievalK int) *Engine {
	store := pattern.NewStore(database)
	return &Engine{
		db:        database,
		store:     store,
		synth:     synth.New(store, retrievalK),
		lastState: StateIdle,
	}
}

// Store exposes the pattern store for route registration and seeding.
func (e *Engine) Store() *pattern.Store { return e.store }

// ProcessResult is the full output of the process path.
type ProcessResult struct {
	compress.Result
	Findings   []bias.Finding        `json:"findings"`
	BiasCounts map[bias.Category]int `json:"bias_counts"`
	Chain      logic.Chain           `json:"logical_chain"`
}

// Process runs bias detection and chain extraction over the text (the two
// are independent) and feeds both into the compressor.
func (e *Engine) Process(text string) ProcessResult {
	findings := bias.Detect(text)
	chain := logic.Extract(text)
	return ProcessResult{
		Result:     compress.Compress(text, findings, chain),
		Findings:   findings,
		BiasCounts: bias.CountByCategory(findings),
		Chain:      chain,
	}
}

// PolicyRejectedError reports that a synthesized proposal failed the
// policy gate. The proposal is discarded and never returned to callers.
type PolicyRejectedError struct {
	Verdict axiom.Verdict
}

func (e *PolicyRejectedError) Error() string {
	rules := make([]string, 0, len(e.Verdict.ViolatedRules))
	for _, r := range e.Verdict.ViolatedRules {
		rules = append(rules, string(r))
	}
	return fmt.Sprintf("proposal rejected by policy gate: %s", strings.Join(rules, ", "))
}

// Solve runs a single classify → synthesize → gate cycle without
// recording. Typed outcomes: classify.ErrNoProblemDetected,
// synth.ErrInsufficientPatterns, and *PolicyRejectedError.
func (e *Engine) Solve(ctx context.Context, text string) (*synth.Proposal, error) {
	record, err := classify.Classify(text)
	if err != nil {
		return nil, err
	}

	proposal, err := e.synth.Synthesize(ctx, record)
	if err != nil {
		return nil, err
	}

	verdict := axiom.Evaluate(proposal.SynthesizedText, proposal.ImplementationSteps, proposal.ConnectionDelta)
	if !verdict.Accepted {
		return nil, &PolicyRejectedError{Verdict: verdict}
	}
	return proposal, nil
}

// Status reports store size and the most recent autonomous cycle state
// for monitoring collaborators such as container health probes.
type Status struct {
	PatternCount   int   `json:"pattern_count"`
	LastCycleState State `json:"last_cycle_state"`
}

// Status returns the current engine status. With no cycle in memory the
// most recent persisted cycle is consulted, so the value survives
// restarts.
func (e *Engine) Status(ctx context.Context) (*Status, error) {
	count, err := e.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting patterns: %w", err)
	}

	e.mu.Lock()
	state := e.lastState
	e.mu.Unlock()

	if state == StateIdle {
		if persisted, err := e.lastPersistedState(ctx); err == nil && persisted != "" {
			state = persisted
		}
	}

	return &Status{PatternCount: count, LastCycleState: state}, nil
}

func (e *Engine) setLastState(s State) {
	e.mu.Lock()
	e.lastState = s
	e.mu.Unlock()
}
