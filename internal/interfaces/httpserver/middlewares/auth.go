package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gift-server/internal/domain/user"
	"gift-server/internal/interfaces/httpserver/responses"
)

const claimsContextKey = "auth_claims"

// AuthMiddleware validates Bearer tokens issued by the auth service.
func AuthMiddleware(auth *user.AuthService, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			logger.Warn().
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Msg("unauthenticated request")
			responses.HandleErrorWithStatus(c, http.StatusUnauthorized, errors.New("authentication required"), "unauthorized")
			return
		}

		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			responses.HandleErrorWithStatus(c, http.StatusUnauthorized, errors.New("malformed authorization header"), "unauthorized")
			return
		}

		claims, err := auth.VerifyToken(c.Request.Context(), raw)
		if err != nil {
			logger.Warn().Err(err).Msg("token validation failed")
			responses.HandleErrorWithStatus(c, http.StatusUnauthorized, err, "unauthorized")
			return
		}

		c.Set(claimsContextKey, claims)
		c.Set("user_id", claims.UserPublicID)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}

// ClaimsFromContext returns the authenticated token claims, if any.
func ClaimsFromContext(c *gin.Context) (*user.Claims, bool) {
	val, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := val.(*user.Claims)
	return claims, ok
}
