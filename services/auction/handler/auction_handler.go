package handler

import (
	"net/http"

	auction "auction-marketplace/internal/auctionService"
	model "auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/services/auction/helpers"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	actor, ok := helpers.CurrentActor(c, "CreateAuctionHandler")
	if !ok {
		return
	}

	var req auction.CreateAuctionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	created, err := h.service.CreateAuction(c.Request.Context(), actor, req)
	if err != nil {
		helpers.RespondError(c, "CreateAuctionHandler", err, map[string]any{"user": actor.Email})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.AuctionResponse{Auction: created}, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": created.ID,
		"user":       actor.Email,
		"type":       created.AuctionType,
		"status":     created.Status,
	})
}

// ListAuctionsHandler handles GET /auctions
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	var query helpers.AuctionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		helpers.HandleBindError(c, "ListAuctionsHandler", err)
		return
	}

	page, err := h.service.ListAuctions(c.Request.Context(), repository.AuctionFilter{
		Category:    query.Category,
		Status:      query.Status,
		AuctionType: query.AuctionType,
		Approved:    query.Approved,
		Page:        query.Page,
		Limit:       query.Limit,
	})
	if err != nil {
		helpers.RespondError(c, "ListAuctionsHandler", err, nil)
		return
	}
	if page.Auctions == nil {
		page.Auctions = []model.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, page, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"count": len(page.Auctions),
		"total": page.Pagination.Total,
	})
}

// ApproveAuctionHandler handles PUT /auctions/:id
func (h *AuctionHandler) ApproveAuctionHandler(c *gin.Context) {
	actor, ok := helpers.CurrentActor(c, "ApproveAuctionHandler")
	if !ok {
		return
	}

	id := c.Param("id")
	approved, err := h.service.ApproveAuction(c.Request.Context(), actor, id)
	if err != nil {
		helpers.RespondError(c, "ApproveAuctionHandler", err, map[string]any{"auction_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction approved successfully")
	helpers.LogSuccess("ApproveAuctionHandler", "auction approved successfully", map[string]any{
		"auction_id":     id,
		"scheduledstart": approved.ScheduledStart,
		"status":         approved.Status,
	})
}

// DeleteAuctionHandler handles DELETE /auctions/:id
func (h *AuctionHandler) DeleteAuctionHandler(c *gin.Context) {
	actor, ok := helpers.CurrentActor(c, "DeleteAuctionHandler")
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.service.DeleteAuction(c.Request.Context(), actor, id); err != nil {
		helpers.RespondError(c, "DeleteAuctionHandler", err, map[string]any{"auction_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction and related bids deleted successfully")
	helpers.LogSuccess("DeleteAuctionHandler", "auction deleted", map[string]any{"auction_id": id})
}

// ListListingsHandler handles GET /listings
func (h *AuctionHandler) ListListingsHandler(c *gin.Context) {
	actor, ok := helpers.CurrentActor(c, "ListListingsHandler")
	if !ok {
		return
	}

	listings, err := h.service.ListListings(c.Request.Context(), actor, c.Query("email"))
	if err != nil {
		helpers.RespondError(c, "ListListingsHandler", err, map[string]any{"user": actor.Email})
		return
	}
	if listings == nil {
		listings = []model.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, listings, "listings retrieved successfully")
	helpers.LogSuccess("ListListingsHandler", "listings retrieved successfully", map[string]any{
		"user":  actor.Email,
		"count": len(listings),
	})
}

// GetListingHandler handles GET /listings/:id
func (h *AuctionHandler) GetListingHandler(c *gin.Context) {
	id := c.Param("id")
	listing, err := h.service.GetListing(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, "GetListingHandler", err, map[string]any{"auction_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, listing, "listing retrieved successfully")
}

// EditListingHandler handles PUT /listings/:id
func (h *AuctionHandler) EditListingHandler(c *gin.Context) {
	actor, ok := helpers.CurrentActor(c, "EditListingHandler")
	if !ok {
		return
	}

	var req auction.ListingUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "EditListingHandler", err)
		return
	}

	id := c.Param("id")
	updated, err := h.service.EditListing(c.Request.Context(), actor, id, req)
	if err != nil {
		helpers.RespondError(c, "EditListingHandler", err, map[string]any{"auction_id": id, "user": actor.Email})
		return
	}

	utils.JSONResponse(c, http.StatusOK, updated, "listing updated successfully")
	helpers.LogSuccess("EditListingHandler", "listing updated successfully", map[string]any{
		"auction_id": id,
		"user":       actor.Email,
	})
}

// DeleteListingHandler handles DELETE /listings/:id
func (h *AuctionHandler) DeleteListingHandler(c *gin.Context) {
	actor, ok := helpers.CurrentActor(c, "DeleteListingHandler")
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.service.DeleteListing(c.Request.Context(), actor, id); err != nil {
		helpers.RespondError(c, "DeleteListingHandler", err, map[string]any{"auction_id": id, "user": actor.Email})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "listing deleted successfully")
	helpers.LogSuccess("DeleteListingHandler", "listing deleted", map[string]any{"auction_id": id, "user": actor.Email})
}
