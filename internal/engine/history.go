package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/OscarLawrence/UCP/internal/classify"
)

// saveCycle persists one cycle outcome to the cycle history.
func (e *Engine) saveCycle(ctx context.Context, runID string, o CycleOutcome) error {
	var patternID any
	if o.PatternID > 0 {
		patternID = o.PatternID
	}

	_, err := e.db.ExecContext(ctx,
		`INSERT INTO cycles (id, run_id, cycle, state, problem, category, pattern_id, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), runID, o.Cycle, string(o.State), o.Problem, string(o.Category), patternID, o.Detail,
	)
	if err != nil {
		return fmt.Errorf("inserting cycle record: %w", err)
	}
	return nil
}

// lastPersistedState returns the state of the most recently recorded
// cycle, or "" when no cycle has ever run.
func (e *Engine) lastPersistedState(ctx context.Context) (State, error) {
	var state string
	err := e.db.QueryRowContext(ctx,
		`SELECT state FROM cycles ORDER BY created_at DESC, cycle DESC LIMIT 1`,
	).Scan(&state)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading last cycle state: %w", err)
	}
	return State(state), nil
}

// RunHistory returns the outcomes of a given run in cycle order.
func (e *Engine) RunHistory(ctx context.Context, runID string) ([]CycleOutcome, error) {
	rows, err := e.db.QueryContext(ctx,
		`SELECT cycle, state, problem, category, pattern_id, detail
		 FROM cycles WHERE run_id = ? ORDER BY cycle ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run history: %w", err)
	}
	defer rows.Close()

	var outcomes []CycleOutcome
	for rows.Next() {
		var o CycleOutcome
		var state, category string
		var patternID sql.NullInt64
		if err := rows.Scan(&o.Cycle, &state, &o.Problem, &category, &patternID, &o.Detail); err != nil {
			return nil, fmt.Errorf("scanning cycle record: %w", err)
		}
		o.State = State(state)
		o.Category = classify.Category(category)
		if patternID.Valid {
			o.PatternID = patternID.Int64
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
