package gifts

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gift-server/internal/interfaces/httpserver/handlers/gifthandler"
	"gift-server/internal/interfaces/httpserver/requests/recommendreq"
	"gift-server/internal/interfaces/httpserver/responses"
	"gift-server/internal/utils/platformerrors"
)

// GiftRoute handles gift recommendation routes
type GiftRoute struct {
	handler *gifthandler.GiftHandler
}

// NewGiftRoute creates a new gift route
func NewGiftRoute(handler *gifthandler.GiftHandler) *GiftRoute {
	return &GiftRoute{
		handler: handler,
	}
}

// RegisterRoutes registers gift routes
func (r *GiftRoute) RegisterRoutes(rg *gin.RouterGroup) {
	gifts := rg.Group("/gifts")
	gifts.POST("/recommend", r.recommend)
	gifts.GET("/recommend/status/:request_id", r.status)
}

// recommend godoc
// @Summary Recommend gifts
// @Description Return catalog gifts matching the recipient criteria, optionally starting a background AI generation
// @Tags Gifts API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body recommendreq.RecommendRequest true "Recommendation request"
// @Success 200 {object} giftres.RecommendResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/gifts/recommend [post]
func (r *GiftRoute) recommend(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req recommendreq.RecommendRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "gift-recommend-001")
		return
	}

	response, err := r.handler.Recommend(ctx, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to recommend gifts")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// status godoc
// @Summary Generation status
// @Description Report background AI generation progress. A completed or error status is returned once and then reset to pending.
// @Tags Gifts API
// @Security BearerAuth
// @Produce json
// @Param request_id path string true "Request id returned by the recommend call"
// @Success 200 {object} giftres.StatusResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/gifts/recommend/status/{request_id} [get]
func (r *GiftRoute) status(reqCtx *gin.Context) {
	requestID := reqCtx.Param("request_id")
	reqCtx.JSON(http.StatusOK, r.handler.Status(requestID))
}
