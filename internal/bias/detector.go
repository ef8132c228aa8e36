// Package bias detects recurring verbose or manipulative language patterns
// in free text against a static catalog of six categories.
package bias

import (
	"sort"

	"github.com/OscarLawrence/UCP/internal/lexical"
)

// Finding is a single located bias match. Findings are immutable once
// produced.
type Finding struct {
	Category Category `json:"category"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Match    string   `json:"match"`
	Weight   float64  `json:"weight"`
}

// Detect scans the text against every catalog rule and returns the findings
// in order of occurrence. Rules are evaluated in catalog declaration order;
// when two rules match overlapping spans the earlier-declared rule wins and
// the later match is dropped. Identical input always yields identical
// output.
func Detect(text string) []Finding {
	var findings []Finding

	for _, entry := range catalog {
		for _, rule := range entry.rules {
			for _, loc := range rule.FindAllStringIndex(text, -1) {
				if overlapsAny(findings, loc[0], loc[1]) {
					continue
				}
				findings = append(findings, Finding{
					Category: entry.category,
					Start:    loc[0],
					End:      loc[1],
					Match:    text[loc[0]:loc[1]],
					Weight:   entry.weight,
				})
			}
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Start < findings[j].Start
	})
	return findings
}

// overlapsAny reports whether [start,end) intersects any accepted finding.
func overlapsAny(findings []Finding, start, end int) bool {
	for _, f := range findings {
		if start < f.End && f.Start < end {
			return true
		}
	}
	return false
}

// Score normalizes the summed finding weights into [0,1]. The normalizer
// grows with text length so long documents tolerate more raw matches
// before the score saturates.
func Score(findings []Finding, text string) float64 {
	if len(findings) == 0 {
		return 0
	}

	var total float64
	for _, f := range findings {
		total += f.Weight
	}

	norm := 1.0 + float64(lexical.WordCount(text))/25.0
	score := total / norm
	if score > 1 {
		score = 1
	}
	return score
}

// CountByCategory aggregates findings into per-category hit counts.
func CountByCategory(findings []Finding) map[Category]int {
	counts := make(map[Category]int)
	for _, f := range findings {
		counts[f.Category]++
	}
	return counts
}
