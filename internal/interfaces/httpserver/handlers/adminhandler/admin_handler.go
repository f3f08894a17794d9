package adminhandler

import (
	"context"

	"gift-server/internal/domain/recommend"
	"gift-server/internal/interfaces/httpserver/responses/giftres"
	"gift-server/internal/utils/platformerrors"
)

type AdminHandler struct {
	orchestrator *recommend.Orchestrator
}

func NewAdminHandler(orchestrator *recommend.Orchestrator) *AdminHandler {
	return &AdminHandler{
		orchestrator: orchestrator,
	}
}

// RefreshImages backfills images for catalog gifts missing one.
func (h *AdminHandler) RefreshImages(ctx context.Context) (*giftres.RefreshImagesResponse, error) {
	updated, err := h.orchestrator.RefreshImages(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to refresh images")
	}
	return &giftres.RefreshImagesResponse{Updated: updated}, nil
}
