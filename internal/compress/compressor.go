// Package compress produces a shortened rewrite of a text from its bias
// findings and extracted logical chain.
package compress

import (
	"regexp"
	"strings"

	"github.com/OscarLawrence/UCP/internal/bias"
	"github.com/OscarLawrence/UCP/internal/logic"
)

// Result is the outcome of one compression pass. All fields are derived
// from the inputs and immutable once constructed.
type Result struct {
	OriginalText     string  `json:"original_text"`
	CompressedText   string  `json:"compressed_text"`
	BiasScore        float64 `json:"bias_score"`
	CompressionRatio float64 `json:"compression_ratio"`
	EnhancementScore float64 `json:"enhancement_score"`
}

var (
	spaceRe      = regexp.MustCompile(`\s+`)
	danglingRe   = regexp.MustCompile(` +([,.;:!?])`)
	edgeCutChars = " \t\n\r,;:"
)

// Compress removes every bias-finding span from the text and, when a
// logical chain was found, reassembles the result from the chain clauses
// alone. Without a chain it collapses whitespace of what remains. The
// output is never longer than the input and never empty: when removal
// would leave nothing, the original text is returned with ratio 1.0.
func Compress(text string, findings []bias.Finding, chain logic.Chain) Result {
	score := bias.Score(findings, text)

	if len(findings) == 0 && chain.Empty() {
		return identity(text, score, chain)
	}

	var compressed string
	if !chain.Empty() {
		compressed = reassemble(text, findings, chain)
	} else {
		compressed = tidy(removeSpans(text, 0, len(text), findings))
	}

	if compressed == "" || len(compressed) > len(text) {
		return identity(text, score, chain)
	}

	ratio := 1.0
	if len(text) > 0 {
		ratio = float64(len(compressed)) / float64(len(text))
	}

	return Result{
		OriginalText:     text,
		CompressedText:   compressed,
		BiasScore:        score,
		CompressionRatio: ratio,
		EnhancementScore: enhancement(ratio, score, chain),
	}
}

// identity returns the input unchanged with ratio 1.0.
func identity(text string, score float64, chain logic.Chain) Result {
	return Result{
		OriginalText:     text,
		CompressedText:   text,
		BiasScore:        score,
		CompressionRatio: 1.0,
		EnhancementScore: enhancement(1.0, score, chain),
	}
}

// reassemble rebuilds the text from the chain clauses in premise,
// reasoning, conclusion order, dropping any filler outside the chain and
// subtracting bias spans inside it.
func reassemble(text string, findings []bias.Finding, chain logic.Chain) string {
	spans := make([]logic.Span, 0, len(chain.Reasoning)+2)
	if !chain.Premise.Empty() {
		spans = append(spans, chain.Premise)
	}
	spans = append(spans, chain.Reasoning...)
	if !chain.Conclusion.Empty() {
		spans = append(spans, chain.Conclusion)
	}

	var parts []string
	for _, span := range spans {
		part := tidy(removeSpans(text, span.Start, span.End, findings))
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ". ") + "."
}

// removeSpans returns text[start:end] with every finding span excised.
func removeSpans(text string, start, end int, findings []bias.Finding) string {
	var sb strings.Builder
	pos := start
	for _, f := range findings {
		if f.End <= pos || f.Start >= end {
			continue
		}
		cutStart := f.Start
		if cutStart < pos {
			cutStart = pos
		}
		sb.WriteString(text[pos:cutStart])
		pos = f.End
		if pos > end {
			pos = end
		}
	}
	if pos < end {
		sb.WriteString(text[pos:end])
	}
	return sb.String()
}

// tidy collapses runs of whitespace, reattaches punctuation orphaned by
// span removal, and trims clause punctuation from the edges.
func tidy(text string) string {
	text = spaceRe.ReplaceAllString(text, " ")
	text = danglingRe.ReplaceAllString(text, "$1")
	return strings.Trim(text, edgeCutChars)
}

// enhancement combines compression benefit, chain completeness, and a
// capped bias penalty into a single score with a 0.3 floor.
func enhancement(ratio, biasScore float64, chain logic.Chain) float64 {
	penalty := biasScore
	if penalty > 0.5 {
		penalty = 0.5
	}
	score := ((1 - ratio) + chain.Completeness() - penalty) / 2
	if score < 0.3 {
		return 0.3
	}
	return score
}
