package gift

import (
	"fmt"
	"strings"
)

// Criteria captures the recipient attributes of one recommendation request.
type Criteria struct {
	Age        *int
	Gender     string
	Interests  string
	Profession string
	Occasion   string
	Budget     string
}

// Description renders the criteria as a compact human-readable line for
// provider prompts. Absent attributes are omitted.
func (c Criteria) Description() string {
	parts := make([]string, 0, 5)
	if c.Age != nil {
		parts = append(parts, fmt.Sprintf("Age: %d", *c.Age))
	}
	if c.Gender != "" {
		parts = append(parts, "Gender: "+c.Gender)
	}
	if c.Interests != "" {
		parts = append(parts, "Interests: "+c.Interests)
	}
	if c.Profession != "" {
		parts = append(parts, "Profession: "+c.Profession)
	}
	if c.Occasion != "" && c.Occasion != "any" {
		parts = append(parts, "Occasion: "+c.Occasion)
	}
	return strings.Join(parts, ", ")
}

// BudgetRange parses the raw budget string.
func (c Criteria) BudgetRange() BudgetRange {
	return ParseBudget(c.Budget)
}
