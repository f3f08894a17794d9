package user

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"gift-server/internal/utils/idgen"
	"gift-server/internal/utils/platformerrors"
)

const (
	minPasswordLength = 8
	tokenIssuer       = "gift-server"
	publicIDLength    = 12
)

// Claims are the verified contents of an access token.
type Claims struct {
	UserPublicID string
	Email        string
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService registers accounts and issues HS256 access tokens.
type AuthService struct {
	repo     Repository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(repo Repository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{repo: repo, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Register creates a new account with a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"invalid email address", err, "3f1c2a84-9db0-4c77-a2f4-5b6d8e901a23")
	}
	if len(password) < minPasswordLength {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"password must be at least 8 characters", nil, "7d4e9b12-5a3c-4f80-b1e6-0c2d9a8f7654")
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check existing email")
	}
	if exists {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
			"email is already registered", nil, "b82f6c10-44ad-4e59-9d37-1e5a0cf3d9b8")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to hash password")
	}
	publicID, err := idgen.GenerateSecureID("user", publicIDLength)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate user id")
	}

	created, err := s.repo.Create(ctx, &User{
		PublicID:     publicID,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create user")
	}
	return created, nil
}

// Login verifies credentials and returns a signed access token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, invalidCredentials(ctx, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, invalidCredentials(ctx, err)
	}

	token, err := s.issueToken(account)
	if err != nil {
		return "", nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to sign token")
	}
	return token, account, nil
}

// VerifyToken validates an access token and returns its claims.
func (s *AuthService) VerifyToken(ctx context.Context, raw string) (*Claims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			"invalid or expired token", err, "e09a3d57-26fb-48c1-8b04-7c5d1f2e6a90")
	}
	return &Claims{UserPublicID: claims.Subject, Email: claims.Email}, nil
}

func (s *AuthService) issueToken(account *User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email: account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   account.PublicID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func invalidCredentials(ctx context.Context, err error) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
		"invalid email or password", err, "51c7e8f2-0b9a-4d66-8a3f-dd412c6b0e75")
}
