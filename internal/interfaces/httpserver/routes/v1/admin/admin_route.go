package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gift-server/internal/interfaces/httpserver/handlers/adminhandler"
	"gift-server/internal/interfaces/httpserver/responses"
)

// AdminRoute handles catalog administration routes
type AdminRoute struct {
	handler *adminhandler.AdminHandler
}

// NewAdminRoute creates a new admin route
func NewAdminRoute(handler *adminhandler.AdminHandler) *AdminRoute {
	return &AdminRoute{
		handler: handler,
	}
}

// RegisterRoutes registers admin routes
func (r *AdminRoute) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.GET("/refresh-images", r.refreshImages)
}

// refreshImages godoc
// @Summary Refresh catalog images
// @Description Backfill images for every catalog gift missing one
// @Tags Admin API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} giftres.RefreshImagesResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/admin/refresh-images [get]
func (r *AdminRoute) refreshImages(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	response, err := r.handler.RefreshImages(ctx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to refresh images")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}
