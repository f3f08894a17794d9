// Package gift provides the catalog domain model and behaviors.
package gift

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Gift models one catalog record, either seeded or produced by the AI
// generator.
type Gift struct {
	ID          uint
	PublicID    string
	Name        string
	NameEN      *string
	Description string
	PriceRange  string
	BudgetMin   decimal.Decimal
	BudgetMax   decimal.Decimal
	ImageURL    *string
	AIGenerated bool
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayName prefers the English name when one was resolved.
func (g *Gift) DisplayName() string {
	if g.NameEN != nil && *g.NameEN != "" {
		return *g.NameEN
	}
	return g.Name
}

// Repository defines storage operations for catalog gifts.
type Repository interface {
	FindByBudgetOverlap(ctx context.Context, min, max decimal.Decimal) ([]*Gift, error)
	Insert(ctx context.Context, g *Gift) (*Gift, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	UpdateImage(ctx context.Context, id uint, url string) error
	ListNames(ctx context.Context) ([]string, error)
	ListAll(ctx context.Context) ([]*Gift, error)
	FindMissingImages(ctx context.Context) ([]*Gift, error)
	DeleteByIDs(ctx context.Context, ids []uint) error
}
