package pattern

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/OscarLawrence/UCP/internal/classify"
)

// RegisterRoutes mounts the pattern store API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/patterns", func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Post("/", handleCreate(store))
		r.Get("/{id}", handleGet(store))
	})
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patterns, err := store.List(r.Context())
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if patterns == nil {
			patterns = []Pattern{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(patterns)
	}
}

type createRequest struct {
	ProblemSummary  string            `json:"problem_summary"`
	SolutionSummary string            `json:"solution_summary"`
	Category        classify.Category `json:"category"`
	Steps           []string          `json:"steps"`
}

func handleCreate(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.ProblemSummary == "" || req.SolutionSummary == "" {
			http.Error(w, `{"error":"problem_summary and solution_summary are required"}`, http.StatusBadRequest)
			return
		}

		// Classify the problem text when no category is given.
		if req.Category == "" {
			record, err := classify.Classify(req.ProblemSummary)
			if err != nil {
				if errors.Is(err, classify.ErrNoProblemDetected) {
					http.Error(w, `{"error":"category could not be inferred; specify one explicitly"}`, http.StatusBadRequest)
					return
				}
				http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
				return
			}
			req.Category = record.Category
		} else if !classify.Valid(req.Category) {
			http.Error(w, `{"error":"unknown category"}`, http.StatusBadRequest)
			return
		}

		id, err := store.Add(r.Context(), Pattern{
			ProblemSummary:  req.ProblemSummary,
			SolutionSummary: req.SolutionSummary,
			Category:        req.Category,
			Steps:           req.Steps,
		})
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		created, err := store.Get(r.Context(), id)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, `{"error":"invalid pattern id"}`, http.StatusBadRequest)
			return
		}

		p, err := store.Get(r.Context(), id)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if p == nil {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(p)
	}
}
