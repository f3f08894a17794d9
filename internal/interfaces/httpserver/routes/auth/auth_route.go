package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gift-server/internal/interfaces/httpserver/handlers/authhandler"
	"gift-server/internal/interfaces/httpserver/requests/authreq"
	"gift-server/internal/interfaces/httpserver/responses"
	"gift-server/internal/utils/platformerrors"
)

// AuthRoute handles authentication routes
type AuthRoute struct {
	authHandler *authhandler.AuthHandler
}

// NewAuthRoute creates a new auth route
func NewAuthRoute(authHandler *authhandler.AuthHandler) *AuthRoute {
	return &AuthRoute{
		authHandler: authHandler,
	}
}

// RegisterRouter registers auth routes
func (a *AuthRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/auth/register", a.register)
	router.POST("/auth/login", a.login)
}

// register godoc
// @Summary Register account
// @Description Create a new account with email and password
// @Tags Auth API
// @Accept json
// @Produce json
// @Param request body authreq.RegisterRequest true "Register request"
// @Success 201 {object} authres.UserResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /auth/register [post]
func (a *AuthRoute) register(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req authreq.RegisterRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "auth-register-001")
		return
	}

	response, err := a.authHandler.Register(ctx, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to register")
		return
	}

	reqCtx.JSON(http.StatusCreated, response)
}

// login godoc
// @Summary Log in
// @Description Verify credentials and issue an access token
// @Tags Auth API
// @Accept json
// @Produce json
// @Param request body authreq.LoginRequest true "Login request"
// @Success 200 {object} authres.LoginResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /auth/login [post]
func (a *AuthRoute) login(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req authreq.LoginRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "auth-login-001")
		return
	}

	response, err := a.authHandler.Login(ctx, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to log in")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}
