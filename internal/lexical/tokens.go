// Package lexical provides the tokenization and overlap scoring shared by
// pattern retrieval and solution confidence.
package lexical

import "strings"

// Tokenize lowercases the text and splits it into alphanumeric tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

// TokenSet returns the distinct tokens of the text.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}

// Overlap computes the shared-token fraction of two texts: the number of
// distinct tokens they have in common divided by the number of distinct
// tokens overall. Returns 0 when either text has no tokens.
func Overlap(a, b string) float64 {
	setA := TokenSet(a)
	setB := TokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			shared++
		}
	}

	union := len(setA) + len(setB) - shared
	return float64(shared) / float64(union)
}

// WordCount returns the number of tokens in the text.
func WordCount(text string) int {
	return len(Tokenize(text))
}
