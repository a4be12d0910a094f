package budget

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/model"
)

// minIDPrefix is the shortest ID prefix accepted as a reference.
const minIDPrefix = 4

// Find resolves ref against budgets by exact ID, case-insensitive name, or
// unambiguous ID prefix, in that order. A miss returns a
// *common.NotFoundError carrying the closest name when one is near enough.
func Find(budgets []model.Budget, ref string) (model.Budget, error) {
	ref = strings.TrimSpace(ref)

	for _, b := range budgets {
		if b.ID == ref {
			return b, nil
		}
	}
	for _, b := range budgets {
		if strings.EqualFold(b.Name, ref) {
			return b, nil
		}
	}

	if len(ref) >= minIDPrefix {
		var match *model.Budget
		for i := range budgets {
			if strings.HasPrefix(budgets[i].ID, ref) {
				if match != nil {
					match = nil
					break
				}
				match = &budgets[i]
			}
		}
		if match != nil {
			return *match, nil
		}
	}

	return model.Budget{}, &common.NotFoundError{
		Kind:       "budget",
		Ref:        ref,
		Suggestion: closestName(budgets, ref),
	}
}

// closestName returns the budget name nearest to ref, or "" when nothing
// is within 40% of the longer string's length.
func closestName(budgets []model.Budget, ref string) string {
	best := ""
	bestScore := 0.4
	needle := strings.ToLower(ref)
	for _, b := range budgets {
		name := strings.ToLower(b.Name)
		maxLen := max(len(name), len(needle))
		if maxLen == 0 {
			continue
		}
		score := float64(levenshtein.ComputeDistance(needle, name)) / float64(maxLen)
		if score < bestScore {
			best, bestScore = b.Name, score
		}
	}
	return best
}
