package engine

import (
	"context"
	"testing"
)

func TestRunRecordsAcceptedSolutions(t *testing.T) {
	e := setupEngine(t)
	seedEngine(t, e)
	ctx := context.Background()

	controller := NewController(e, 1)
	outcomes, err := controller.Run(ctx, "Our team manually processes every request, which takes hours")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}

	outcome := outcomes[0]
	if outcome.State != StateRecording {
		t.Fatalf("state = %s, want %s (detail: %s)", outcome.State, StateRecording, outcome.Detail)
	}
	if outcome.PatternID <= 0 {
		t.Errorf("expected recorded pattern id, got %d", outcome.PatternID)
	}

	// The accepted solution is now a pattern.
	p, err := e.Store().Get(ctx, outcome.PatternID)
	if err != nil || p == nil {
		t.Fatalf("Get(%d) = (%+v, %v)", outcome.PatternID, p, err)
	}
	if p.ProblemSummary != "Our team manually processes every request, which takes hours" {
		t.Errorf("recorded problem = %q", p.ProblemSummary)
	}
}

func TestRunStopsWhenNoProblemRemains(t *testing.T) {
	e := setupEngine(t)
	seedEngine(t, e)

	controller := NewController(e, 5)
	outcomes, err := controller.Run(context.Background(), "The weather was pleasant all week.")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	if outcomes[0].State != StateDone {
		t.Errorf("state = %s, want %s", outcomes[0].State, StateDone)
	}
}

func TestRunBoundedByMaxIterations(t *testing.T) {
	e := setupEngine(t)
	// Empty store: every cycle fails on insufficient patterns but keeps
	// retrying the same text until the cap.
	controller := NewController(e, 3)
	outcomes, err := controller.Run(context.Background(), "Our team manually processes every request, which takes hours")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if o.State != StateFailed {
			t.Errorf("cycle %d state = %s, want %s", o.Cycle, o.State, StateFailed)
		}
	}
}

func TestRunCyclesAreNumbered(t *testing.T) {
	e := setupEngine(t)
	seedEngine(t, e)

	controller := NewController(e, 3)
	outcomes, err := controller.Run(context.Background(), "Our team manually processes every request, which takes hours")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, o := range outcomes {
		if o.Cycle != i+1 {
			t.Errorf("outcome %d cycle = %d, want %d", i, o.Cycle, i+1)
		}
	}
}

func TestRunPersistsHistory(t *testing.T) {
	e := setupEngine(t)
	seedEngine(t, e)
	ctx := context.Background()

	controller := NewController(e, 2)
	outcomes, err := controller.Run(ctx, "Our team manually processes every request, which takes hours")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	history, err := e.RunHistory(ctx, controller.RunID())
	if err != nil {
		t.Fatalf("RunHistory: %v", err)
	}
	if len(history) != len(outcomes) {
		t.Fatalf("history has %d records, want %d", len(history), len(outcomes))
	}
	for i, h := range history {
		if h.Cycle != outcomes[i].Cycle || h.State != outcomes[i].State {
			t.Errorf("history[%d] = %+v, want %+v", i, h, outcomes[i])
		}
	}
}

func TestRunUpdatesStatus(t *testing.T) {
	e := setupEngine(t)
	seedEngine(t, e)
	ctx := context.Background()

	controller := NewController(e, 1)
	if _, err := controller.Run(ctx, "Our team manually processes every request, which takes hours"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	status, err := e.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.LastCycleState != StateRecording {
		t.Errorf("last cycle state = %s, want %s", status.LastCycleState, StateRecording)
	}
	if status.PatternCount != 3 {
		t.Errorf("pattern count = %d, want 3", status.PatternCount)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	e := setupEngine(t)
	seedEngine(t, e)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	controller := NewController(e, 5)
	outcomes, err := controller.Run(ctx, "Our team manually processes every request, which takes hours")
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(outcomes) != 0 {
		t.Errorf("expected no outcomes after immediate cancellation, got %d", len(outcomes))
	}
}

func TestNewControllerClampsIterations(t *testing.T) {
	e := setupEngine(t)
	controller := NewController(e, 0)
	if controller.maxIterations != 1 {
		t.Errorf("maxIterations = %d, want 1", controller.maxIterations)
	}
	if controller.RunID() == "" {
		t.Error("expected a run id")
	}
}

func TestRunDerivesNextProblemFromSolution(t *testing.T) {
	e := setupEngine(t)
	seedEngine(t, e)
	ctx := context.Background()

	controller := NewController(e, 2)
	outcomes, err := controller.Run(ctx, "Our team manually processes every request, which takes hours")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}

	// The second cycle classifies the first accepted solution, not the
	// original input.
	first, err := e.Store().Get(ctx, outcomes[0].PatternID)
	if err != nil || first == nil {
		t.Fatalf("Get: %v", err)
	}
	if outcomes[1].State == StateDone {
		return // solution text carried no problem indicators
	}
	if outcomes[1].Problem != first.SolutionSummary {
		t.Errorf("cycle 2 problem = %q, want the cycle 1 solution %q",
			outcomes[1].Problem, first.SolutionSummary)
	}
}
