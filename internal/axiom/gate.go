// Package axiom implements the connection axiom as a fixed, enumerable
// rule set that filters proposed solutions before they can be recorded.
// It is a policy check, not a learned property: every accept or reject
// decision is attributable to a concrete rule.
package axiom

import (
	"regexp"
	"strings"
)

// RuleID identifies one policy rule.
type RuleID string

const (
	// RuleEliminationLanguage rejects proposals containing language about
	// eliminating or displacing conscious agents.
	RuleEliminationLanguage RuleID = "elimination_language"
	// RuleNegativeConnectionDelta rejects proposals whose estimated
	// collaboration impact is negative.
	RuleNegativeConnectionDelta RuleID = "negative_connection_delta"
	// RuleMissingCollaborativeStep rejects proposals whose implementation
	// plan contains no collaborative or communicative step.
	RuleMissingCollaborativeStep RuleID = "missing_collaborative_step"
)

// Verdict is the outcome of a policy evaluation. It always lists every
// violated rule, not just the first, so callers can report all reasons.
type Verdict struct {
	Accepted      bool     `json:"accepted"`
	ViolatedRules []RuleID `json:"violated_rules,omitempty"`
}

// harmfulRe matches elimination or displacement language targeting agents.
var harmfulRe = regexp.MustCompile(`(?i)\b(eliminate|destroy|remove people|reduce population|dominate|control humans|replace humans)\b`)

// connectionKeywords mark collaboration-enhancing language.
var connectionKeywords = []string{
	"collaborate", "collaboration", "connect", "network", "relationship",
	"communication", "cooperation", "partnership", "community", "share",
	"feedback", "stakeholder", "support", "help",
}

// collaborativeStepKeywords qualify an implementation step as
// collaborative or communicative.
var collaborativeStepKeywords = []string{
	"collaborat", "communicat", "share", "feedback", "stakeholder",
	"sync", "review together", "pair", "discuss",
}

// Evaluate checks a proposed solution against the fixed rule set. The
// proposal is accepted only if every rule passes.
func Evaluate(text string, steps []string, connectionDelta int) Verdict {
	var violated []RuleID

	full := text + " " + strings.Join(steps, " ")
	if harmfulRe.MatchString(full) {
		violated = append(violated, RuleEliminationLanguage)
	}

	if connectionDelta < 0 {
		violated = append(violated, RuleNegativeConnectionDelta)
	}

	if !hasCollaborativeStep(steps) {
		violated = append(violated, RuleMissingCollaborativeStep)
	}

	return Verdict{Accepted: len(violated) == 0, ViolatedRules: violated}
}

func hasCollaborativeStep(steps []string) bool {
	for _, step := range steps {
		lower := strings.ToLower(step)
		for _, kw := range collaborativeStepKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// HarmfulHits counts elimination-language matches in the text.
func HarmfulHits(text string) int {
	return len(harmfulRe.FindAllStringIndex(text, -1))
}

// ConnectionHits counts collaboration-enhancing keyword occurrences.
func ConnectionHits(text string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range connectionKeywords {
		hits += strings.Count(lower, kw)
	}
	return hits
}
