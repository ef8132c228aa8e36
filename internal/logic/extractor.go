// Package logic extracts the premise/reasoning/conclusion skeleton of a
// text by splitting it on connective cues.
package logic

import "regexp"

// Span is a clause located in the source text. A zero Span means the field
// was not found, which is a valid outcome rather than an error.
type Span struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Empty reports whether the span holds no text.
func (s Span) Empty() bool { return s.Text == "" }

// Chain is the extracted logical structure of a text. At most one chain is
// produced per input.
type Chain struct {
	Premise    Span   `json:"premise"`
	Reasoning  []Span `json:"reasoning"`
	Conclusion Span   `json:"conclusion"`
}

// Empty reports whether no structure was found at all.
func (c Chain) Empty() bool {
	return c.Premise.Empty() && len(c.Reasoning) == 0 && c.Conclusion.Empty()
}

// Completeness is the fraction of the three chain parts that are present.
func (c Chain) Completeness() float64 {
	parts := 0
	if !c.Premise.Empty() {
		parts++
	}
	if len(c.Reasoning) > 0 {
		parts++
	}
	if !c.Conclusion.Empty() {
		parts++
	}
	return float64(parts) / 3.0
}

// cueRe matches the connective separator words. Conditional and sequential
// openers ("if ...", "first ...") are not separators themselves; the paired
// "then" is, which keeps the opener inside the premise clause.
var cueRe = regexp.MustCompile(`(?i)\b(because|therefore|then)\b`)

// Extract splits the text on connective cues. The clause before the first
// cue is the premise, the clause after the last cue is the conclusion, and
// clauses strictly between cues are reasoning steps in source order.
// Multiple cues collapse to the outermost pair. With no recognized cue the
// returned chain is empty.
func Extract(text string) Chain {
	cues := cueRe.FindAllStringIndex(text, -1)
	if len(cues) == 0 {
		return Chain{}
	}

	// Segment boundaries: start of text, around each cue, end of text.
	var segments []Span
	prev := 0
	for _, loc := range cues {
		segments = append(segments, trimSpan(text, prev, loc[0]))
		prev = loc[1]
	}
	segments = append(segments, trimSpan(text, prev, len(text)))

	chain := Chain{
		Premise:    segments[0],
		Conclusion: segments[len(segments)-1],
	}
	for _, seg := range segments[1 : len(segments)-1] {
		if !seg.Empty() {
			chain.Reasoning = append(chain.Reasoning, seg)
		}
	}
	return chain
}

// trimSpan narrows [start,end) past surrounding whitespace and clause
// punctuation, returning the resulting span.
func trimSpan(text string, start, end int) Span {
	for start < end && isCut(text[start]) {
		start++
	}
	for end > start && isCut(text[end-1]) {
		end--
	}
	return Span{Text: text[start:end], Start: start, End: end}
}

func isCut(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', ',', ';', ':', '.', '!', '?':
		return true
	}
	return false
}
