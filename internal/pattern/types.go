package pattern

import (
	"time"

	"github.com/OscarLawrence/UCP/internal/classify"
)

// Pattern is a stored problem/solution pair usable as a template for
// future solutions. Patterns are owned exclusively by the Store; ids are
// assigned monotonically and never reused.
type Pattern struct {
	ID              int64             `json:"id"`
	ProblemSummary  string            `json:"problem_summary"`
	SolutionSummary string            `json:"solution_summary"`
	Category        classify.Category `json:"category"`
	Steps           []string          `json:"steps"`
	UsageCount      int               `json:"usage_count"`
	CreatedAt       time.Time         `json:"created_at"`
}
