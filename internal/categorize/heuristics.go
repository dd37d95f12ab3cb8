package categorize

import "strings"

const (
	RefundsAndReturns = "Refunds & Returns"
	Payments          = "Payments"
)

// heuristic overrides any other category, including one from the source file.
func heuristic(merchant string) (string, bool) {
	m := strings.ToLower(merchant)

	switch {
	case strings.Contains(m, "refund"), strings.Contains(m, "return"):
		return RefundsAndReturns, true
	case strings.Contains(m, "payment"):
		return Payments, true
	}

	return "", false
}

func heuristicCategories() []string {
	return []string{RefundsAndReturns, Payments}
}
