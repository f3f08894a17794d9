package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gift-server/internal/domain/user"
	"gift-server/internal/infrastructure/database/dbschema"
	"gift-server/internal/utils/platformerrors"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) user.Repository {
	return &UserGormRepository{db: db}
}

// Create implements user.Repository.
func (repo *UserGormRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	row := dbschema.NewSchemaUser(u)
	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create user")
	}
	return row.EtoD(), nil
}

// FindByEmail implements user.Repository.
func (repo *UserGormRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var row dbschema.User
	err := repo.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"user not found", err, "0b6d47e9-8f21-4c5a-b3d0-94a1c7e25f68")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find user by email")
	}
	return row.EtoD(), nil
}

// FindByPublicID implements user.Repository.
func (repo *UserGormRepository) FindByPublicID(ctx context.Context, publicID string) (*user.User, error) {
	var row dbschema.User
	err := repo.db.WithContext(ctx).Where("public_id = ?", publicID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"user not found", err, "d58e2a03-6b74-4f19-a8c2-31f0b9d6c4e7")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find user by public id")
	}
	return row.EtoD(), nil
}

// ExistsByEmail implements user.Repository.
func (repo *UserGormRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&dbschema.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count users by email")
	}
	return count > 0, nil
}
