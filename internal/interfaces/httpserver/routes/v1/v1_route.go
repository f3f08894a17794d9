package v1

import (
	"github.com/gin-gonic/gin"

	"gift-server/internal/interfaces/httpserver/routes/v1/admin"
	"gift-server/internal/interfaces/httpserver/routes/v1/gifts"
)

type V1Route struct {
	gifts      *gifts.GiftRoute
	adminRoute *admin.AdminRoute
}

func NewV1Route(
	gifts *gifts.GiftRoute,
	adminRoute *admin.AdminRoute,
) *V1Route {
	return &V1Route{
		gifts,
		adminRoute,
	}
}

// RegisterRouter registers all v1 routes on the protected router.
func (r *V1Route) RegisterRouter(router gin.IRouter) {
	v1Group := router.Group("/v1")
	r.gifts.RegisterRoutes(v1Group)
	r.adminRoute.RegisterRoutes(v1Group)
}
