// Package classify assigns free-text problem descriptions to one of six
// fixed problem categories and scores their priority.
package classify

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one of the six recognized problem kinds.
type Category string

const (
	CategoryInefficiency  Category = "inefficiency"
	CategoryInconsistency Category = "inconsistency"
	CategoryComplexity    Category = "complexity"
	CategoryFragility     Category = "fragility"
	CategoryIsolation     Category = "isolation"
	CategoryScaling       Category = "scaling"
)

// ErrNoProblemDetected signals that no category indicator matched the
// text. It is a valid outcome, not a defect; callers must handle it
// explicitly instead of receiving a defaulted category.
var ErrNoProblemDetected = errors.New("no problem detected")

// Record is the transient result of one classification call. It is not
// persisted unless a solution derived from it is accepted.
type Record struct {
	Text           string   `json:"text"`
	Category       Category `json:"category"`
	IndicatorCount int      `json:"indicator_count"`
	Priority       float64  `json:"priority"`
}

// categoryDef couples a category with its indicator keywords and impact
// weight. Slice order is the tie-break priority order: when two categories
// score the same indicator count, the earlier-declared one wins.
type categoryDef struct {
	category   Category
	impact     float64
	indicators []string
}

var categories = []categoryDef{
	{CategoryInefficiency, 1.0, []string{
		"slow", "bottleneck", "delay", "waste", "redundant", "manual",
		"repetitive", "time-consuming", "inefficient", "suboptimal",
	}},
	{CategoryInconsistency, 0.9, []string{
		"inconsistent", "conflicting", "contradictory", "incompatible",
		"mismatch", "divergent", "different standards", "fragmented",
	}},
	{CategoryComplexity, 0.8, []string{
		"complex", "complicated", "convoluted", "difficult", "hard to understand",
		"unclear", "confusing", "overwhelming", "tangled",
	}},
	{CategoryFragility, 0.85, []string{
		"breaks", "fails", "unstable", "unreliable", "fragile", "brittle",
		"error-prone", "crashes", "bugs", "vulnerable",
	}},
	{CategoryIsolation, 0.75, []string{
		"isolated", "disconnected", "siloed", "separated",
		"no communication", "lack of coordination", "not connected",
	}},
	{CategoryScaling, 0.7, []string{
		"doesn't scale", "limited capacity", "resource constraints",
		"performance degradation", "maximum load",
	}},
}

// collaborationKeywords drive the connection-potential factor of the
// priority score.
var collaborationKeywords = []string{
	"team", "people", "users", "together", "collaborat", "communicat",
	"coordinat", "share", "partner",
}

// Classify scans the text for category indicators and returns the winning
// category with its priority score. Priority is the indicator count times
// the category's impact weight times a connection-potential factor derived
// from collaboration-related keywords.
func Classify(text string) (*Record, error) {
	lower := strings.ToLower(text)

	best := -1
	bestCount := 0
	for i, def := range categories {
		count := 0
		for _, indicator := range def.indicators {
			count += strings.Count(lower, indicator)
		}
		// Strict greater-than keeps declaration order as the tie-break.
		if count > bestCount {
			best = i
			bestCount = count
		}
	}

	if best < 0 {
		return nil, fmt.Errorf("classifying %q: %w", truncate(text, 40), ErrNoProblemDetected)
	}

	def := categories[best]
	return &Record{
		Text:           text,
		Category:       def.category,
		IndicatorCount: bestCount,
		Priority:       float64(bestCount) * def.impact * connectionPotential(lower),
	}, nil
}

// connectionPotential is 1.0 for text with no collaboration keywords and
// grows by 0.5 per distinct keyword present.
func connectionPotential(lower string) float64 {
	factor := 1.0
	for _, kw := range collaborationKeywords {
		if strings.Contains(lower, kw) {
			factor += 0.5
		}
	}
	return factor
}

// Describe renders a short human-readable summary of the record.
func (r *Record) Describe() string {
	templates := map[Category]string{
		CategoryInefficiency:  "Process inefficiency detected",
		CategoryInconsistency: "Consistency problem identified",
		CategoryComplexity:    "Complexity barrier found",
		CategoryFragility:     "Reliability issue detected",
		CategoryIsolation:     "Connection gap identified",
		CategoryScaling:       "Scaling limitation found",
	}
	label, ok := templates[r.Category]
	if !ok {
		label = "Problem detected"
	}
	return fmt.Sprintf("%s: %s", label, truncate(r.Text, 120))
}

// Valid reports whether c is one of the six recognized categories.
func Valid(c Category) bool {
	for _, def := range categories {
		if def.category == c {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
