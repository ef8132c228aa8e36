package pattern

import (
	"context"
	"testing"

	"github.com/OscarLawrence/UCP/internal/classify"
	"github.com/OscarLawrence/UCP/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestAddAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id, err := store.Add(ctx, Pattern{
		ProblemSummary:  "Manual review creates a bottleneck",
		SolutionSummary: "Automate the review checklist",
		Category:        classify.CategoryInefficiency,
		Steps:           []string{"Write the checklist", "Share it with the team"},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	p, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p == nil {
		t.Fatal("expected pattern, got nil")
	}
	if p.ProblemSummary != "Manual review creates a bottleneck" {
		t.Errorf("problem = %q", p.ProblemSummary)
	}
	if p.Category != classify.CategoryInefficiency {
		t.Errorf("category = %s", p.Category)
	}
	if len(p.Steps) != 2 {
		t.Errorf("steps = %v", p.Steps)
	}
	if p.UsageCount != 0 {
		t.Errorf("usage count = %d, want 0", p.UsageCount)
	}
}

func TestGetMissing(t *testing.T) {
	store := setupStore(t)

	p, err := store.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for missing id, got %+v", p)
	}
}

func TestIDsAreMonotonic(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 3; i++ {
		id, err := store.Add(ctx, Pattern{
			ProblemSummary:  "Deploys are slow",
			SolutionSummary: "Cache build artifacts",
			Category:        classify.CategoryInefficiency,
		})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if id <= last {
			t.Fatalf("id %d not greater than previous %d", id, last)
		}
		last = id
	}
}

func TestAddWithSourcesIncrementsUsage(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	src1, err := store.Add(ctx, Pattern{
		ProblemSummary:  "Slow manual deploys",
		SolutionSummary: "Automate the pipeline",
		Category:        classify.CategoryInefficiency,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	src2, err := store.Add(ctx, Pattern{
		ProblemSummary:  "Repetitive release checks",
		SolutionSummary: "Script the checks",
		Category:        classify.CategoryInefficiency,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	id, err := store.AddWithSources(ctx, Pattern{
		ProblemSummary:  "Slow repetitive releases",
		SolutionSummary: "Automate the pipeline. Script the checks",
		Category:        classify.CategoryInefficiency,
		Steps:           []string{"Share the scripts"},
	}, []int64{src1, src2})
	if err != nil {
		t.Fatalf("AddWithSources: %v", err)
	}
	if id <= src2 {
		t.Errorf("derived pattern id %d should follow sources", id)
	}

	for _, src := range []int64{src1, src2} {
		p, err := store.Get(ctx, src)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if p.UsageCount != 1 {
			t.Errorf("pattern %d usage = %d, want 1", src, p.UsageCount)
		}
	}
}

func TestQueryRanksByOverlap(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	far, err := store.Add(ctx, Pattern{
		ProblemSummary:  "Printer queue jams on large jobs",
		SolutionSummary: "Chunk the jobs",
		Category:        classify.CategoryInefficiency,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	near, err := store.Add(ctx, Pattern{
		ProblemSummary:  "Manual request processing takes hours",
		SolutionSummary: "Automate request intake",
		Category:        classify.CategoryInefficiency,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := store.Query(ctx, "Our team manually processes every request, which takes hours",
		classify.CategoryInefficiency, 2)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].ID != near {
		t.Errorf("first candidate = %d, want %d", got[0].ID, near)
	}
	if got[1].ID != far {
		t.Errorf("second candidate = %d, want %d", got[1].ID, far)
	}
}

func TestQueryFallsBackAcrossCategories(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id, err := store.Add(ctx, Pattern{
		ProblemSummary:  "Services emit conflicting timestamps",
		SolutionSummary: "Adopt a shared clock source",
		Category:        classify.CategoryInconsistency,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	// No scaling pattern exists, so the query falls back to all patterns.
	got, err := store.Query(ctx, "The queue hits maximum load", classify.CategoryScaling, 3)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 || got[0].ID != id {
		t.Errorf("expected fallback to pattern %d, got %+v", id, got)
	}
}

func TestQueryTruncatesToK(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := store.Add(ctx, Pattern{
			ProblemSummary:  "Deploys are slow",
			SolutionSummary: "Cache artifacts",
			Category:        classify.CategoryInefficiency,
		}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	got, err := store.Query(ctx, "slow deploys", classify.CategoryInefficiency, 3)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 candidates, got %d", len(got))
	}
}

func TestQueryEmptyStore(t *testing.T) {
	store := setupStore(t)

	got, err := store.Query(context.Background(), "anything", classify.CategoryInefficiency, 3)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %+v", got)
	}
}

func TestCorruptStepsRowIsSkipped(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	good, err := store.Add(ctx, Pattern{
		ProblemSummary:  "Deploys are slow",
		SolutionSummary: "Cache artifacts",
		Category:        classify.CategoryInefficiency,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Corrupt a row's steps column directly.
	if _, err := store.db.Exec(
		`INSERT INTO patterns (problem_summary, solution_summary, category, steps) VALUES (?, ?, ?, ?)`,
		"broken", "broken", "inefficiency", "{not json",
	); err != nil {
		t.Fatalf("inserting corrupt row: %v", err)
	}

	patterns, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(patterns) != 1 || patterns[0].ID != good {
		t.Errorf("expected only the readable pattern, got %+v", patterns)
	}

	total, readable, err := store.Check(ctx)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if total != 2 || readable != 1 {
		t.Errorf("Check = (%d, %d), want (2, 1)", total, readable)
	}
}

func TestCount(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if count, err := store.Count(ctx); err != nil || count != 0 {
		t.Fatalf("Count = (%d, %v), want (0, nil)", count, err)
	}

	if _, err := store.Add(ctx, Pattern{
		ProblemSummary:  "Deploys are slow",
		SolutionSummary: "Cache artifacts",
		Category:        classify.CategoryInefficiency,
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if count, err := store.Count(ctx); err != nil || count != 1 {
		t.Fatalf("Count = (%d, %v), want (1, nil)", count, err)
	}
}
