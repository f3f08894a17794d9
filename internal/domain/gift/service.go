package gift

import (
	"context"
	"strings"

	"gift-server/internal/utils/idgen"
	"gift-server/internal/utils/platformerrors"
)

// CatalogService wraps the gift repository with domain-level validation.
type CatalogService struct {
	repo Repository
}

// NewCatalogService constructs a CatalogService with required dependencies.
func NewCatalogService(repo Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

// QueryByBudget returns all gifts whose [BudgetMin, BudgetMax] interval
// overlaps the requested range.
func (s *CatalogService) QueryByBudget(ctx context.Context, budget BudgetRange) ([]*Gift, error) {
	gifts, err := s.repo.FindByBudgetOverlap(ctx, budget.Min, budget.Max)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to query gifts by budget")
	}
	return gifts, nil
}

// Insert persists a new gift after normalizing its fields.
func (s *CatalogService) Insert(ctx context.Context, g *Gift) (*Gift, error) {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"gift name is required", nil, "a4b91742-6f6e-4d38-9f6b-2e7c1a0d5c11")
	}
	if g.BudgetMin.GreaterThan(g.BudgetMax) {
		g.BudgetMin, g.BudgetMax = g.BudgetMax, g.BudgetMin
	}
	if g.PublicID == "" {
		publicID, err := idgen.GenerateSecureID("gift", 12)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate gift id")
		}
		g.PublicID = publicID
	}

	persisted, err := s.repo.Insert(ctx, g)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to insert gift")
	}
	return persisted, nil
}

// ExistsByName reports whether a gift with the exact persisted name exists.
// The match is case-sensitive.
func (s *CatalogService) ExistsByName(ctx context.Context, name string) (bool, error) {
	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check gift name")
	}
	return exists, nil
}

// UpdateImage records a resolved image URL for an existing gift.
func (s *CatalogService) UpdateImage(ctx context.Context, id uint, url string) error {
	if err := s.repo.UpdateImage(ctx, id, url); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update gift image")
	}
	return nil
}

// ListNames returns every persisted gift name, used to steer the generator
// away from duplicates.
func (s *CatalogService) ListNames(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListNames(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list gift names")
	}
	return names, nil
}

// FindMissingImages returns gifts without a resolved image URL.
func (s *CatalogService) FindMissingImages(ctx context.Context) ([]*Gift, error) {
	gifts, err := s.repo.FindMissingImages(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list gifts missing images")
	}
	return gifts, nil
}
