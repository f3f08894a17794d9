package gifthandler

import (
	"context"
	"strings"

	"gift-server/internal/domain/gift"
	"gift-server/internal/domain/recommend"
	"gift-server/internal/interfaces/httpserver/requests/recommendreq"
	"gift-server/internal/interfaces/httpserver/responses/giftres"
	"gift-server/internal/utils/platformerrors"
)

type GiftHandler struct {
	orchestrator *recommend.Orchestrator
}

func NewGiftHandler(orchestrator *recommend.Orchestrator) *GiftHandler {
	return &GiftHandler{
		orchestrator: orchestrator,
	}
}

// Recommend runs the synchronous recommendation flow and, when AI gifts were
// requested, launches the background generation.
func (h *GiftHandler) Recommend(
	ctx context.Context,
	req recommendreq.RecommendRequest,
) (*giftres.RecommendResponse, error) {
	criteria := gift.Criteria{
		Age:        req.Age,
		Gender:     strings.TrimSpace(req.Gender),
		Interests:  strings.TrimSpace(req.Interests),
		Profession: strings.TrimSpace(req.Profession),
		Occasion:   strings.TrimSpace(req.Occasion),
		Budget:     strings.TrimSpace(req.Budget),
	}

	result, err := h.orchestrator.Recommend(ctx, recommend.Request{
		Criteria:    criteria,
		UseAI:       req.UseAI,
		AIGiftCount: req.AIGiftCount,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to recommend gifts")
	}

	response := giftres.NewRecommendResponse(result)
	return &response, nil
}

// Status reports background generation progress for a request id.
func (h *GiftHandler) Status(requestID string) giftres.StatusResponse {
	return giftres.NewStatusResponse(h.orchestrator.PollStatus(requestID))
}
