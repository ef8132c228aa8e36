package engine

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/OscarLawrence/UCP/internal/classify"
	"github.com/OscarLawrence/UCP/internal/synth"
)

// RegisterRoutes mounts the pipeline API routes.
func RegisterRoutes(r chi.Router, e *Engine) {
	r.Post("/api/process", handleProcess(e))
	r.Post("/api/solve", handleSolve(e))
	r.Post("/api/autonomous", handleAutonomous(e))
	r.Get("/api/status", handleStatus(e))
}

type textRequest struct {
	Text string `json:"text"`
}

func handleProcess(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req textRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Text == "" {
			http.Error(w, `{"error":"text is required"}`, http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(e.Process(req.Text))
	}
}

// solveFailure is the JSON body for the typed non-crash outcomes of the
// solve path.
type solveFailure struct {
	Outcome       string   `json:"outcome"`
	Detail        string   `json:"detail,omitempty"`
	ViolatedRules []string `json:"violated_rules,omitempty"`
}

func handleSolve(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req textRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Text == "" {
			http.Error(w, `{"error":"text is required"}`, http.StatusBadRequest)
			return
		}

		proposal, err := e.Solve(r.Context(), req.Text)
		if err != nil {
			writeSolveFailure(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(proposal)
	}
}

// writeSolveFailure maps the typed solve outcomes to 422 responses and
// anything else to a 500.
func writeSolveFailure(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	var rejected *PolicyRejectedError
	switch {
	case errors.Is(err, classify.ErrNoProblemDetected):
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(solveFailure{Outcome: "no_problem_detected"})
	case errors.Is(err, synth.ErrInsufficientPatterns):
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(solveFailure{Outcome: "insufficient_patterns"})
	case errors.As(err, &rejected):
		rules := make([]string, 0, len(rejected.Verdict.ViolatedRules))
		for _, rule := range rejected.Verdict.ViolatedRules {
			rules = append(rules, string(rule))
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(solveFailure{Outcome: "policy_rejected", ViolatedRules: rules})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(solveFailure{Outcome: "error", Detail: err.Error()})
	}
}

type autonomousRequest struct {
	Text          string `json:"text"`
	MaxIterations int    `json:"max_iterations"`
}

type autonomousResponse struct {
	RunID    string         `json:"run_id"`
	Outcomes []CycleOutcome `json:"outcomes"`
}

func handleAutonomous(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req autonomousRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Text == "" {
			http.Error(w, `{"error":"text is required"}`, http.StatusBadRequest)
			return
		}
		if req.MaxIterations <= 0 {
			req.MaxIterations = 5
		}

		controller := NewController(e, req.MaxIterations)
		outcomes, err := controller.Run(r.Context(), req.Text)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if outcomes == nil {
			outcomes = []CycleOutcome{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(autonomousResponse{RunID: controller.RunID(), Outcomes: outcomes})
	}
}

func handleStatus(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := e.Status(r.Context())
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
