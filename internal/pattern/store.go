// Package pattern persists problem/solution patterns and retrieves them by
// lexical similarity. The store is the only mutable, long-lived state of
// the pipeline.
package pattern

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/OscarLawrence/UCP/internal/classify"
	"github.com/OscarLawrence/UCP/internal/db"
	"github.com/OscarLawrence/UCP/internal/lexical"
)

// Store manages persistence of solution patterns.
type Store struct {
	db *db.DB
}

// NewStore creates a new pattern store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Add inserts a pattern and returns its assigned id. Usage count starts
// at zero regardless of the input value.
func (s *Store) Add(ctx context.Context, p Pattern) (int64, error) {
	return s.add(ctx, s.db.DB, p)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) add(ctx context.Context, ex execer, p Pattern) (int64, error) {
	steps, err := json.Marshal(p.Steps)
	if err != nil {
		return 0, fmt.Errorf("encoding steps: %w", err)
	}

	res, err := ex.ExecContext(ctx,
		`INSERT INTO patterns (problem_summary, solution_summary, category, steps, usage_count, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		p.ProblemSummary, p.SolutionSummary, string(p.Category), string(steps), time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting pattern: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading pattern id: %w", err)
	}
	return id, nil
}

// AddWithSources inserts a pattern and increments the usage count of every
// source pattern in the same transaction, so concurrent recordings cannot
// double-count a retrieval or race on id assignment.
func (s *Store) AddWithSources(ctx context.Context, p Pattern, sourceIDs []int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := s.add(ctx, tx, p)
	if err != nil {
		return 0, err
	}

	for _, src := range sourceIDs {
		if _, err := tx.ExecContext(ctx,
			`UPDATE patterns SET usage_count = usage_count + 1 WHERE id = ?`, src,
		); err != nil {
			return 0, fmt.Errorf("incrementing usage of pattern %d: %w", src, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing pattern: %w", err)
	}
	return id, nil
}

// Get retrieves a pattern by id, or nil if it does not exist.
func (s *Store) Get(ctx context.Context, id int64) (*Pattern, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, problem_summary, solution_summary, category, steps, usage_count, created_at
		 FROM patterns WHERE id = ?`, id)

	p, err := scanPattern(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting pattern %d: %w", id, err)
	}
	return p, nil
}

// List returns all readable patterns in insertion order. Rows whose stored
// steps fail to parse are skipped with a logged warning rather than
// aborting the whole read.
func (s *Store) List(ctx context.Context) ([]Pattern, error) {
	patterns, skipped, err := s.selectPatterns(ctx,
		`SELECT id, problem_summary, solution_summary, category, steps, usage_count, created_at
		 FROM patterns ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	warnSkipped(skipped)
	return patterns, nil
}

// Query returns up to k patterns ranked for the given problem text.
// Candidates are filtered to the matching category first; if no pattern
// matches the category (or no category is given), all patterns are
// candidates. Ranking is by shared-token overlap descending, ties broken
// by higher usage count, then oldest creation time.
func (s *Store) Query(ctx context.Context, problemText string, category classify.Category, k int) ([]Pattern, error) {
	if k <= 0 {
		return nil, nil
	}

	var (
		candidates []Pattern
		skipped    int
		err        error
	)
	if category != "" {
		candidates, skipped, err = s.selectPatterns(ctx,
			`SELECT id, problem_summary, solution_summary, category, steps, usage_count, created_at
			 FROM patterns WHERE category = ?`, string(category))
		if err != nil {
			return nil, err
		}
	}
	if len(candidates) == 0 {
		var allSkipped int
		candidates, allSkipped, err = s.selectPatterns(ctx,
			`SELECT id, problem_summary, solution_summary, category, steps, usage_count, created_at
			 FROM patterns`)
		if err != nil {
			return nil, err
		}
		skipped += allSkipped
	}
	warnSkipped(skipped)

	type ranked struct {
		p       Pattern
		overlap float64
	}
	scored := make([]ranked, 0, len(candidates))
	for _, p := range candidates {
		scored = append(scored, ranked{p: p, overlap: lexical.Overlap(problemText, p.ProblemSummary)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.overlap != b.overlap {
			return a.overlap > b.overlap
		}
		if a.p.UsageCount != b.p.UsageCount {
			return a.p.UsageCount > b.p.UsageCount
		}
		if !a.p.CreatedAt.Equal(b.p.CreatedAt) {
			return a.p.CreatedAt.Before(b.p.CreatedAt)
		}
		return a.p.ID < b.p.ID
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	result := make([]Pattern, 0, len(scored))
	for _, r := range scored {
		result = append(result, r.p)
	}
	return result, nil
}

// Count returns the number of stored patterns, readable or not.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM patterns`).Scan(&count)
	return count, err
}

// Check reports how many stored patterns exist and how many are readable.
// Called at startup so corrupted records surface as a visible warning
// instead of silently changing retrieval behavior.
func (s *Store) Check(ctx context.Context) (total, readable int, err error) {
	total, err = s.Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("counting patterns: %w", err)
	}
	patterns, _, err := s.selectPatterns(ctx,
		`SELECT id, problem_summary, solution_summary, category, steps, usage_count, created_at
		 FROM patterns`)
	if err != nil {
		return 0, 0, err
	}
	return total, len(patterns), nil
}

// selectPatterns runs the query and scans rows, skipping any row whose
// steps column fails to parse. The skip count is returned so callers can
// report it.
func (s *Store) selectPatterns(ctx context.Context, query string, args ...any) ([]Pattern, int, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying patterns: %w", err)
	}
	defer rows.Close()

	var patterns []Pattern
	skipped := 0
	for rows.Next() {
		p, err := scanPattern(rows.Scan)
		if err != nil {
			skipped++
			continue
		}
		patterns = append(patterns, *p)
	}
	return patterns, skipped, rows.Err()
}

// scanPattern decodes one pattern row. An unparsable steps column makes
// the whole record unreadable.
func scanPattern(scan func(dest ...any) error) (*Pattern, error) {
	var p Pattern
	var category, steps string
	if err := scan(&p.ID, &p.ProblemSummary, &p.SolutionSummary, &category, &steps, &p.UsageCount, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Category = classify.Category(category)
	if err := json.Unmarshal([]byte(steps), &p.Steps); err != nil {
		return nil, fmt.Errorf("decoding steps of pattern %d: %w", p.ID, err)
	}
	return &p, nil
}

func warnSkipped(skipped int) {
	if skipped > 0 {
		log.Printf("warning: skipped %d unreadable pattern record(s)", skipped)
	}
}
