package dbschema

import (
	"github.com/shopspring/decimal"

	"gift-server/internal/domain/gift"
	"gift-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Gift{})
}

// ===============================================
// Gift Schema
// ===============================================

// Gift represents the database schema for catalog gifts
type Gift struct {
	BaseModel
	PublicID    string          `gorm:"uniqueIndex;size:64;not null"`
	Name        string          `gorm:"size:255;not null;index"`
	NameEN      *string         `gorm:"size:255"`
	Description string          `gorm:"type:text"`
	PriceRange  string          `gorm:"size:64"`
	BudgetMin   decimal.Decimal `gorm:"type:decimal(12,2);not null;index:idx_gifts_budget"`
	BudgetMax   decimal.Decimal `gorm:"type:decimal(12,2);not null;index:idx_gifts_budget"`
	ImageURL    *string         `gorm:"size:512"`
	AIGenerated bool            `gorm:"not null;default:false"`
	Tags        []Tag           `gorm:"many2many:gift_tags"`
}

// TableName specifies the table name for Gift
func (Gift) TableName() string {
	return "gifts"
}

// ===============================================
// Conversion Methods
// ===============================================

// EtoD converts database schema to domain gift (Entity to Domain)
func (g *Gift) EtoD() *gift.Gift {
	tags := make([]string, 0, len(g.Tags))
	for _, t := range g.Tags {
		tags = append(tags, t.Name)
	}
	return &gift.Gift{
		ID:          g.ID,
		PublicID:    g.PublicID,
		Name:        g.Name,
		NameEN:      g.NameEN,
		Description: g.Description,
		PriceRange:  g.PriceRange,
		BudgetMin:   g.BudgetMin,
		BudgetMax:   g.BudgetMax,
		ImageURL:    g.ImageURL,
		AIGenerated: g.AIGenerated,
		Tags:        tags,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// NewSchemaGift creates a database schema from a domain gift. Tag links are
// managed through the tag repository, not through this conversion.
func NewSchemaGift(g *gift.Gift) *Gift {
	return &Gift{
		BaseModel: BaseModel{
			ID:        g.ID,
			CreatedAt: g.CreatedAt,
			UpdatedAt: g.UpdatedAt,
		},
		PublicID:    g.PublicID,
		Name:        g.Name,
		NameEN:      g.NameEN,
		Description: g.Description,
		PriceRange:  g.PriceRange,
		BudgetMin:   g.BudgetMin,
		BudgetMax:   g.BudgetMax,
		ImageURL:    g.ImageURL,
		AIGenerated: g.AIGenerated,
	}
}
