package dbschema

import (
	"gift-server/internal/domain/user"
	"gift-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User represents the persisted account schema.
type User struct {
	BaseModel
	PublicID     string `gorm:"uniqueIndex;size:64;not null"`
	Email        string `gorm:"type:varchar(320);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
}

// NewSchemaUser converts a domain user into a schema instance.
func NewSchemaUser(u *user.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		BaseModel: BaseModel{
			ID:        u.ID,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		PublicID:     u.PublicID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
	}
}

// EtoD converts a schema user back to the domain representation.
func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}

	return &user.User{
		ID:           u.ID,
		PublicID:     u.PublicID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
