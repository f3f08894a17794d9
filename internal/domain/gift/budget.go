package gift

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// BudgetUnlimited is the sentinel upper bound used when a budget string does
// not constrain the maximum ("any", "500+", unparsable input).
var BudgetUnlimited = decimal.NewFromInt(1_000_000)

// BudgetRange is the parsed numeric form of a user budget string.
type BudgetRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

var budgetNumberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseBudget derives a numeric range from a free-text budget string.
//
//	"50-100"  -> [50, 100]
//	"100"     -> [0, 100]
//	"500+"    -> [500, unlimited]
//	"any", "" or unparsable -> [0, unlimited]
//
// Currency symbols and whitespace are tolerated. The result always satisfies
// Min <= Max; parsing never fails.
func ParseBudget(raw string) BudgetRange {
	unrestricted := BudgetRange{Min: decimal.Zero, Max: BudgetUnlimited}

	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" || s == "any" {
		return unrestricted
	}

	numbers := budgetNumberRe.FindAllString(s, -1)
	switch len(numbers) {
	case 0:
		return unrestricted
	case 1:
		value, err := decimal.NewFromString(numbers[0])
		if err != nil {
			return unrestricted
		}
		// "500+" means open-ended above the value
		if strings.Contains(s, "+") {
			return BudgetRange{Min: value, Max: BudgetUnlimited}
		}
		return BudgetRange{Min: decimal.Zero, Max: value}
	default:
		min, errMin := decimal.NewFromString(numbers[0])
		max, errMax := decimal.NewFromString(numbers[1])
		if errMin != nil || errMax != nil {
			return unrestricted
		}
		if min.GreaterThan(max) {
			min, max = max, min
		}
		return BudgetRange{Min: min, Max: max}
	}
}

// Overlaps reports whether the gift's budget interval intersects the range.
func (r BudgetRange) Overlaps(min, max decimal.Decimal) bool {
	return !min.GreaterThan(r.Max) && !r.Min.GreaterThan(max)
}

// Unrestricted reports whether the range does not constrain the catalog query.
func (r BudgetRange) Unrestricted() bool {
	return r.Min.IsZero() && r.Max.Equal(BudgetUnlimited)
}
