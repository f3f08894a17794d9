package authhandler

import (
	"context"

	"github.com/go-playground/validator/v10"

	"gift-server/internal/domain/user"
	"gift-server/internal/infrastructure/metrics"
	"gift-server/internal/interfaces/httpserver/requests/authreq"
	"gift-server/internal/interfaces/httpserver/responses/authres"
	"gift-server/internal/utils/platformerrors"
)

type AuthHandler struct {
	auth     *user.AuthService
	validate *validator.Validate
}

func NewAuthHandler(auth *user.AuthService) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register creates a new account.
func (h *AuthHandler) Register(
	ctx context.Context,
	req authreq.RegisterRequest,
) (*authres.UserResponse, error) {
	if err := h.validate.Struct(req); err != nil {
		metrics.AuthRequestsTotal.WithLabelValues("register", "failure").Inc()
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation, "invalid registration payload", err, "auth-register-002")
	}

	created, err := h.auth.Register(ctx, req.Email, req.Password)
	if err != nil {
		metrics.AuthRequestsTotal.WithLabelValues("register", "failure").Inc()
		return nil, err
	}

	metrics.AuthRequestsTotal.WithLabelValues("register", "success").Inc()
	response := authres.NewUserResponse(created)
	return &response, nil
}

// Login verifies credentials and issues an access token.
func (h *AuthHandler) Login(
	ctx context.Context,
	req authreq.LoginRequest,
) (*authres.LoginResponse, error) {
	if err := h.validate.Struct(req); err != nil {
		metrics.AuthRequestsTotal.WithLabelValues("login", "failure").Inc()
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation, "invalid login payload", err, "auth-login-002")
	}

	token, account, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		metrics.AuthRequestsTotal.WithLabelValues("login", "failure").Inc()
		return nil, err
	}

	metrics.AuthRequestsTotal.WithLabelValues("login", "success").Inc()
	return &authres.LoginResponse{
		Token: token,
		User:  authres.NewUserResponse(account),
	}, nil
}
