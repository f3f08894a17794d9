package giftres

import (
	"gift-server/internal/domain/gift"
	"gift-server/internal/domain/recommend"
	"gift-server/internal/utils/functional"
)

// GiftResponse is the wire representation of one gift.
type GiftResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	NameEN      *string  `json:"name_en,omitempty"`
	Description string   `json:"description"`
	PriceRange  string   `json:"price_range"`
	ImageURL    *string  `json:"image_url,omitempty"`
	AISuggested bool     `json:"ai_suggested"`
	Tags        []string `json:"tags,omitempty"`
}

// RecommendResponse is the immediate answer to a recommendation request.
type RecommendResponse struct {
	Gifts     []GiftResponse `json:"gifts"`
	AIStatus  string         `json:"ai_status"`
	RequestID string         `json:"request_id,omitempty"`
}

// StatusResponse reports background generation progress.
type StatusResponse struct {
	Status    string         `json:"status"`
	Gifts     []GiftResponse `json:"gifts"`
	Total     int            `json:"total,omitempty"`
	Completed int            `json:"completed,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// RefreshImagesResponse is the admin image backfill result.
type RefreshImagesResponse struct {
	Updated int `json:"updated"`
}

// NewGiftResponse converts a domain gift for the wire.
func NewGiftResponse(g *gift.Gift) GiftResponse {
	return GiftResponse{
		ID:          g.PublicID,
		Name:        g.Name,
		NameEN:      g.NameEN,
		Description: g.Description,
		PriceRange:  g.PriceRange,
		ImageURL:    g.ImageURL,
		AISuggested: g.AIGenerated,
		Tags:        g.Tags,
	}
}

// NewGiftResponses converts a gift list, preserving order.
func NewGiftResponses(gifts []*gift.Gift) []GiftResponse {
	return functional.Map(gifts, NewGiftResponse)
}

// NewRecommendResponse converts the orchestrator result.
func NewRecommendResponse(result *recommend.Result) RecommendResponse {
	return RecommendResponse{
		Gifts:     NewGiftResponses(result.Gifts),
		AIStatus:  result.AIStatus,
		RequestID: result.RequestID,
	}
}

// NewStatusResponse converts a status snapshot.
func NewStatusResponse(snapshot recommend.Snapshot) StatusResponse {
	return StatusResponse{
		Status:    string(snapshot.State),
		Gifts:     NewGiftResponses(snapshot.Gifts),
		Total:     snapshot.Total,
		Completed: snapshot.Completed,
		Error:     snapshot.Error,
	}
}
