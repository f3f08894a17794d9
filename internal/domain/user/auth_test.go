package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gift-server/internal/utils/platformerrors"
)

type memoryUserRepo struct {
	nextID uint
	users  map[string]*User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1, users: map[string]*User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, u *User) (*User, error) {
	copied := *u
	copied.ID = r.nextID
	copied.CreatedAt = time.Now()
	r.nextID++
	r.users[copied.Email] = &copied
	return &copied, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func (r *memoryUserRepo) FindByPublicID(_ context.Context, publicID string) (*User, error) {
	for _, u := range r.users {
		if u.PublicID == publicID {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *memoryUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func newTestAuth() *AuthService {
	return NewAuthService(newMemoryUserRepo(), "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newTestAuth()
	ctx := context.Background()

	created, err := auth.Register(ctx, "Anna@Example.COM", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", created.Email)
	assert.NotEqual(t, "correct horse", created.PasswordHash)
	assert.NotEmpty(t, created.PublicID)

	token, account, err := auth.Login(ctx, "anna@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, created.PublicID, account.PublicID)

	claims, err := auth.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.PublicID, claims.UserPublicID)
	assert.Equal(t, "anna@example.com", claims.Email)
}

func TestRegisterValidation(t *testing.T) {
	auth := newTestAuth()
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"bad email", "not-an-email", "long enough password"},
		{"short password", "ok@example.com", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tt.email, tt.password)
			assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newTestAuth()
	ctx := context.Background()

	_, err := auth.Register(ctx, "dup@example.com", "password123")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "DUP@example.com", "password456")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newTestAuth()
	ctx := context.Background()

	_, err := auth.Register(ctx, "bob@example.com", "password123")
	require.NoError(t, err)

	_, _, unknownErr := auth.Login(ctx, "nobody@example.com", "password123")
	_, _, wrongErr := auth.Login(ctx, "bob@example.com", "wrong-password")

	assert.True(t, platformerrors.IsErrorType(unknownErr, platformerrors.ErrorTypeUnauthorized))
	assert.True(t, platformerrors.IsErrorType(wrongErr, platformerrors.ErrorTypeUnauthorized))
	// The two failures carry the same message so callers cannot probe for accounts.
	assert.Contains(t, unknownErr.Error(), "invalid email or password")
	assert.Contains(t, wrongErr.Error(), "invalid email or password")
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	repo := newMemoryUserRepo()
	auth := NewAuthService(repo, "test-secret", -time.Minute)
	ctx := context.Background()

	_, err := auth.Register(ctx, "old@example.com", "password123")
	require.NoError(t, err)
	token, _, err := auth.Login(ctx, "old@example.com", "password123")
	require.NoError(t, err)

	_, err = auth.VerifyToken(ctx, token)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))
}

func TestVerifyTokenRejectsForeignSecret(t *testing.T) {
	auth := newTestAuth()
	other := NewAuthService(newMemoryUserRepo(), "other-secret", time.Hour)
	ctx := context.Background()

	_, err := other.Register(ctx, "eve@example.com", "password123")
	require.NoError(t, err)
	token, _, err := other.Login(ctx, "eve@example.com", "password123")
	require.NoError(t, err)

	_, err = auth.VerifyToken(ctx, token)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))
}
