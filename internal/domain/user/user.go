// Package user provides account management and token-based authentication.
package user

import (
	"context"
	"time"
)

// User is one registered account.
type User struct {
	ID           uint
	PublicID     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Repository defines storage operations for users.
type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPublicID(ctx context.Context, publicID string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
