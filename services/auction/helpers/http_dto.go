package helpers

import "auction-marketplace/internal/models"

// Request/Response DTOs
type PlaceBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	AuctionID string  `json:"auction_id"`
	UserID    string  `json:"user_id"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuctionListQuery is the query string of GET /auctions
type AuctionListQuery struct {
	Page        int    `form:"page" binding:"omitempty,gte=1"`
	Limit       int    `form:"limit" binding:"omitempty,gte=1"`
	Category    string `form:"category"`
	Status      string `form:"status"`
	AuctionType string `form:"auctionType"`
	Approved    *bool  `form:"approved"`
}

type AuctionResponse struct {
	Auction models.Auction `json:"auction"`
}

type ProfilesResponse struct {
	Profiles []models.ProfileSummary `json:"profiles"`
}

type AddUserResponse struct {
	UserID string `json:"userId"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
