package bias

import "regexp"

// Category identifies one of the six recognized bias kinds.
type Category string

const (
	CategoryNarrativePadding      Category = "narrative_padding"
	CategoryEmotionalManipulation Category = "emotional_manipulation"
	CategoryAuthorityAppeal       Category = "authority_appeal"
	CategoryConfirmationSeeking   Category = "confirmation_seeking"
	CategoryHedgingUncertainty    Category = "hedging_uncertainty"
	CategoryVerboseRedundancy     Category = "verbose_redundancy"
)

// catalogEntry is one bias category with its detection rules and the weight
// every finding in the category carries.
type catalogEntry struct {
	category Category
	weight   float64
	phrases  []string
	rules    []*regexp.Regexp
}

// catalog is the static table of bias categories. Declaration order is the
// evaluation order and must not change: overlapping-match tie-breaks depend
// on it.
var catalog = []*catalogEntry{
	{
		category: CategoryNarrativePadding,
		weight:   0.20,
		phrases: []string{
			`let me explain`, `it's important to understand`, `as you can see`,
			`obviously`, `clearly`, `of course`, `needless to say`,
		},
	},
	{
		category: CategoryEmotionalManipulation,
		weight:   0.30,
		phrases: []string{
			`exciting`, `amazing`, `incredible`, `revolution(?:ary|ize|ise)`,
			`breakthrough`, `game-changing`, `transformative`,
		},
	},
	{
		category: CategoryAuthorityAppeal,
		weight:   0.25,
		phrases: []string{
			`experts say`, `studies show`, `research indicates`,
			`according to`, `as proven by`, `established fact`,
		},
	},
	{
		category: CategoryConfirmationSeeking,
		weight:   0.20,
		phrases: []string{
			`don't you think`, `wouldn't you agree`, `right\?`,
			`makes sense`, `does that sound`, `what do you think`,
		},
	},
	{
		category: CategoryHedgingUncertainty,
		weight:   0.10,
		phrases: []string{
			`might`, `could`, `perhaps`, `possibly`, `maybe`,
			`seems like`, `appears to`, `tends to`, `generally`,
		},
	},
	{
		category: CategoryVerboseRedundancy,
		weight:   0.15,
		phrases: []string{
			`in other words`, `to put it simply`, `what this means`,
			`in essence`, `basically`, `fundamentally`,
		},
	},
}

func init() {
	for _, entry := range catalog {
		for _, phrase := range entry.phrases {
			// Leading word boundary prevents substring hits such as
			// "right?" matching inside "bright?".
			entry.rules = append(entry.rules, regexp.MustCompile(`(?i)\b`+phrase))
		}
	}
}

// Categories returns the catalog's categories in declaration order.
func Categories() []Category {
	cats := make([]Category, 0, len(catalog))
	for _, entry := range catalog {
		cats = append(cats, entry.category)
	}
	return cats
}

// Weight returns the fixed finding weight of a category, or 0 for an
// unknown category.
func Weight(cat Category) float64 {
	for _, entry := range catalog {
		if entry.category == cat {
			return entry.weight
		}
	}
	return 0
}
