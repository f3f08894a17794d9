package giftrepo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gift-server/internal/domain/gift"
	"gift-server/internal/infrastructure/database/dbschema"
	"gift-server/internal/utils/platformerrors"
)

type GiftGormRepository struct {
	db *gorm.DB
}

var _ gift.Repository = (*GiftGormRepository)(nil)

func NewGiftGormRepository(db *gorm.DB) gift.Repository {
	return &GiftGormRepository{db: db}
}

// FindByBudgetOverlap implements gift.Repository.
func (repo *GiftGormRepository) FindByBudgetOverlap(ctx context.Context, min, max decimal.Decimal) ([]*gift.Gift, error) {
	var rows []dbschema.Gift
	err := repo.db.WithContext(ctx).
		Preload("Tags").
		Where("budget_min <= ? AND budget_max >= ?", max, min).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to query gifts by budget")
	}

	result := make([]*gift.Gift, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, nil
}

// Insert implements gift.Repository.
func (repo *GiftGormRepository) Insert(ctx context.Context, g *gift.Gift) (*gift.Gift, error) {
	row := dbschema.NewSchemaGift(g)
	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to insert gift")
	}

	persisted := *g
	persisted.ID = row.ID
	persisted.CreatedAt = row.CreatedAt
	persisted.UpdatedAt = row.UpdatedAt
	return &persisted, nil
}

// ExistsByName implements gift.Repository. The comparison is forced binary
// because utf8mb4 collations fold case.
func (repo *GiftGormRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Gift{}).
		Where("BINARY name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count gifts by name")
	}
	return count > 0, nil
}

// UpdateImage implements gift.Repository.
func (repo *GiftGormRepository) UpdateImage(ctx context.Context, id uint, url string) error {
	result := repo.db.WithContext(ctx).
		Model(&dbschema.Gift{}).
		Where("id = ?", id).
		Update("image_url", url)
	if result.Error != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to update gift image")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"gift not found", nil, "62c4f9a0-1db3-4e87-95f2-3ab8d07c6e19")
	}
	return nil
}

// ListNames implements gift.Repository.
func (repo *GiftGormRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Gift{}).
		Order("id ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list gift names")
	}
	return names, nil
}

// ListAll implements gift.Repository.
func (repo *GiftGormRepository) ListAll(ctx context.Context) ([]*gift.Gift, error) {
	var rows []dbschema.Gift
	err := repo.db.WithContext(ctx).Preload("Tags").Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list gifts")
	}

	result := make([]*gift.Gift, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, nil
}

// FindMissingImages implements gift.Repository.
func (repo *GiftGormRepository) FindMissingImages(ctx context.Context) ([]*gift.Gift, error) {
	var rows []dbschema.Gift
	err := repo.db.WithContext(ctx).
		Where("image_url IS NULL OR image_url = ''").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list gifts without images")
	}

	result := make([]*gift.Gift, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, nil
}

// DeleteByIDs implements gift.Repository.
func (repo *GiftGormRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM gift_tags WHERE gift_id IN ?", ids).Error; err != nil {
			return err
		}
		return tx.Delete(&dbschema.Gift{}, ids).Error
	})
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to delete gifts")
	}
	return nil
}
