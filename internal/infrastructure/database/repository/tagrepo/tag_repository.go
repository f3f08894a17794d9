package tagrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gift-server/internal/domain/tag"
	"gift-server/internal/infrastructure/database/dbschema"
	"gift-server/internal/utils/platformerrors"
)

type TagGormRepository struct {
	db *gorm.DB
}

var _ tag.Repository = (*TagGormRepository)(nil)

func NewTagGormRepository(db *gorm.DB) tag.Repository {
	return &TagGormRepository{db: db}
}

// EnsureTag implements tag.Repository.
func (repo *TagGormRepository) EnsureTag(ctx context.Context, category tag.Category, name string) (uint, error) {
	row := dbschema.Tag{Name: name, Category: string(category)}
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "category"}},
			DoNothing: true,
		}).
		Create(&row).Error
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to ensure tag")
	}
	if row.ID != 0 {
		return row.ID, nil
	}

	// Conflict path: the tag already existed, fetch its id.
	var existing dbschema.Tag
	err = repo.db.WithContext(ctx).
		Where("name = ? AND category = ?", name, string(category)).
		First(&existing).Error
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to load existing tag")
	}
	return existing.ID, nil
}

// LinkGift implements tag.Repository.
func (repo *TagGormRepository) LinkGift(ctx context.Context, giftID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, tagID := range tagIDs {
			err := tx.Exec(
				"INSERT IGNORE INTO gift_tags (gift_id, tag_id) VALUES (?, ?)",
				giftID, tagID,
			).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to link gift tags")
	}
	return nil
}
