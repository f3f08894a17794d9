package recommendreq

// RecommendRequest is the body of POST /v1/gifts/recommend. Every recipient
// attribute is optional; missing attributes simply widen the search.
type RecommendRequest struct {
	Age         *int   `json:"age" binding:"omitempty,gte=0,lte=120"`
	Gender      string `json:"gender" binding:"omitempty,max=32"`
	Interests   string `json:"interests" binding:"omitempty,max=512"`
	Profession  string `json:"profession" binding:"omitempty,max=128"`
	Occasion    string `json:"occasion" binding:"omitempty,max=64"`
	Budget      string `json:"budget" binding:"omitempty,max=32"`
	UseAI       bool   `json:"use_ai"`
	AIGiftCount int    `json:"ai_gift_count" binding:"omitempty,gte=1,lte=50"`
}
