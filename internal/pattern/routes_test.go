package pattern

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/OscarLawrence/UCP/internal/classify"
)

func setupRouter(t *testing.T) (chi.Router, *Store) {
	t.Helper()
	store := setupStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r, store
}

func TestListPatternsEmpty(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/api/patterns/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var patterns []Pattern
	if err := json.Unmarshal(w.Body.Bytes(), &patterns); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(patterns) != 0 {
		t.Errorf("expected empty list, got %+v", patterns)
	}
}

func TestCreatePattern(t *testing.T) {
	r, _ := setupRouter(t)

	body := `{"problem_summary":"Manual review creates a bottleneck","solution_summary":"Automate the checklist","category":"inefficiency","steps":["Write checklist"]}`
	req := httptest.NewRequest("POST", "/api/patterns/", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created Pattern
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if created.ID <= 0 {
		t.Errorf("expected assigned id, got %d", created.ID)
	}
	if created.Category != classify.CategoryInefficiency {
		t.Errorf("category = %s", created.Category)
	}
}

func TestCreatePatternInfersCategory(t *testing.T) {
	r, store := setupRouter(t)

	body := `{"problem_summary":"Manual review creates a bottleneck","solution_summary":"Automate the checklist"}`
	req := httptest.NewRequest("POST", "/api/patterns/", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created Pattern
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if created.Category != classify.CategoryInefficiency {
		t.Errorf("inferred category = %s, want inefficiency", created.Category)
	}

	p, err := store.Get(context.Background(), created.ID)
	if err != nil || p == nil {
		t.Fatalf("Get(%d) = (%+v, %v)", created.ID, p, err)
	}
}

func TestCreatePatternUnknownCategory(t *testing.T) {
	r, _ := setupRouter(t)

	body := `{"problem_summary":"Manual review","solution_summary":"Automate","category":"urgent"}`
	req := httptest.NewRequest("POST", "/api/patterns/", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreatePatternUninferrable(t *testing.T) {
	r, _ := setupRouter(t)

	body := `{"problem_summary":"The weather was pleasant","solution_summary":"Enjoy it"}`
	req := httptest.NewRequest("POST", "/api/patterns/", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when category cannot be inferred, got %d", w.Code)
	}
}

func TestCreatePatternMissingFields(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest("POST", "/api/patterns/", strings.NewReader(`{"problem_summary":"x"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGetPattern(t *testing.T) {
	r, store := setupRouter(t)

	id, err := store.Add(context.Background(), Pattern{
		ProblemSummary:  "Deploys are slow",
		SolutionSummary: "Cache artifacts",
		Category:        classify.CategoryInefficiency,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/patterns/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var p Pattern
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID != id {
		t.Errorf("id = %d, want %d", p.ID, id)
	}
}

func TestGetPatternNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/api/patterns/99", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestGetPatternBadID(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/api/patterns/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
