package auction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/metrics"
	"auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/utils"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/datatypes"
)

// CreateAuctionInput is the assembled listing submitted by a seller
type CreateAuctionInput struct {
	AuctionType        string                 `json:"auctionType"`
	AuctionSubType     string                 `json:"auctionSubType"`
	Category           string                 `json:"category"`
	ProductName        string                 `json:"productName"`
	ProductDescription string                 `json:"productDescription"`
	ProductImages      []string               `json:"productImages"`
	ProductDocuments   []string               `json:"productDocuments"`
	Attributes         json.RawMessage        `json:"attributes"`
	Specifications     json.RawMessage        `json:"specifications"`
	SKU                string                 `json:"sku"`
	Brand              string                 `json:"brand"`
	Model              string                 `json:"model"`
	StartPrice         float64                `json:"startPrice"`
	TargetPrice        float64                `json:"targetPrice"`
	BidIncrementType   string                 `json:"bidIncrementType"`
	BidIncrementRules  []models.IncrementRule `json:"bidIncrementRules"`
	LaunchType         string                 `json:"launchType"`
	ScheduledStart     *time.Time             `json:"scheduledStart"`
	AuctionDuration    models.AuctionDuration `json:"auctionDuration"`
	IsMultiLot         bool                   `json:"isMultiLot"`
	Lots               []models.Lot           `json:"lots"`
	RequiredDocuments  json.RawMessage        `json:"requiredDocuments"`
}

// ListingUpdate holds the fields a seller may still change on an editable listing.
// Nil fields are left untouched.
type ListingUpdate struct {
	ProductName        *string                 `json:"productname"`
	ProductDescription *string                 `json:"productdescription"`
	StartPrice         *float64                `json:"startprice"`
	MinimumIncrement   *float64                `json:"minimumincrement"`
	AuctionDuration    *models.AuctionDuration `json:"auctionduration"`
	TargetPrice        *float64                `json:"targetprice"`
}

// Pagination describes one page of a listing query
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// AuctionPage is one page of auctions with its pagination block
type AuctionPage struct {
	Auctions   []models.Auction `json:"auctions"`
	Pagination Pagination       `json:"pagination"`
}

// AuctionService implements the auction lifecycle: create, approve, edit and delete
type AuctionService struct {
	repo       repository.AuctionDB
	increments IncrementEvaluator
	sanitizer  *bluemonday.Policy
	now        func() time.Time
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(repo repository.AuctionDB, increments IncrementEvaluator) *AuctionService {
	return &AuctionService{
		repo:       repo,
		increments: increments,
		sanitizer:  bluemonday.UGCPolicy(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateAuction validates a submitted listing and stores it pending approval.
// Nothing is written unless every check passes.
func (s *AuctionService) CreateAuction(ctx context.Context, actor models.Actor, in CreateAuctionInput) (models.Auction, error) {
	if !actor.CanSell() {
		return models.Auction{}, fmt.Errorf("service: %w - role %q cannot create auctions", auctionerrors.ErrForbidden, actor.Role)
	}

	if err := validateClassification(in); err != nil {
		return models.Auction{}, err
	}
	if err := validateProduct(in); err != nil {
		return models.Auction{}, err
	}

	var documents []models.RequiredDocument
	if in.AuctionType == models.AuctionTypeReverse {
		if !(in.TargetPrice > 0) {
			return models.Auction{}, auctionerrors.Invalid("targetPrice", "Target price must be greater than zero for reverse auctions")
		}
		parsed, err := ParseRequiredDocuments(in.RequiredDocuments)
		if err != nil {
			return models.Auction{}, err
		}
		documents = parsed
	}
	if in.StartPrice < 0 || math.IsInf(in.StartPrice, 0) || math.IsNaN(in.StartPrice) {
		return models.Auction{}, auctionerrors.Invalid("startPrice", "Start price cannot be negative")
	}

	policy, err := s.increments.Evaluate(in.AuctionSubType, in.BidIncrementType, in.BidIncrementRules)
	if err != nil {
		return models.Auction{}, err
	}

	now := s.now()
	start, status, err := ResolveLaunch(in.LaunchType, in.ScheduledStart, now)
	if err != nil {
		return models.Auction{}, err
	}

	auction := models.Auction{
		ID:                 utils.GenerateID(),
		CreatedBy:          actor.Email,
		Category:           strings.TrimSpace(in.Category),
		AuctionType:        in.AuctionType,
		AuctionSubType:     in.AuctionSubType,
		ProductName:        strings.TrimSpace(in.ProductName),
		ProductDescription: s.sanitizer.Sanitize(in.ProductDescription),
		ProductImages:      datatypes.JSONSlice[string](in.ProductImages),
		ProductDocuments:   datatypes.JSONSlice[string](in.ProductDocuments),
		Attributes:         jsonObject(in.Attributes),
		Specifications:     jsonObject(in.Specifications),
		SKU:                in.SKU,
		Brand:              in.Brand,
		Model:              in.Model,
		StartPrice:         in.StartPrice,
		TargetPrice:        in.TargetPrice,
		MinimumIncrement:   policy.MinimumIncrement,
		Percent:            policy.Percent,
		BidIncrementType:   policy.Type,
		BidIncrementRules:  datatypes.JSONSlice[models.IncrementRule](policy.Rules),
		LaunchType:         in.LaunchType,
		ScheduledStart:     start,
		AuctionDuration:    datatypes.NewJSONType(in.AuctionDuration),
		Status:             status,
		Approved:           false,
		Editable:           true,
		IsMultiLot:         in.IsMultiLot,
		Lots:               datatypes.JSONSlice[models.Lot](in.Lots),
		Participants:       datatypes.JSONSlice[string]{},
		Questions:          datatypes.JSONSlice[models.Question]{},
		BidCount:           0,
		RequiredDocuments:  datatypes.JSONSlice[models.RequiredDocument](documents),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if auction.IsMultiLot && auction.ProductName == "" {
		auction.ProductName = in.Lots[0].Name
	}
	auction.CurrentBid = auction.OpeningBid()

	if err := s.repo.CreateAuction(ctx, &auction); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction for %s: %w", actor.Email, err)
	}

	metrics.RecordTransition(metrics.TransitionCreated)
	return auction, nil
}

func validateClassification(in CreateAuctionInput) error {
	if strings.TrimSpace(in.AuctionType) == "" || strings.TrimSpace(in.AuctionSubType) == "" {
		return auctionerrors.Invalid("auctionType", "Auction type and sub-type are required")
	}
	if in.AuctionType != models.AuctionTypeForward && in.AuctionType != models.AuctionTypeReverse {
		return auctionerrors.Invalid("auctionType", "Auction type must be forward or reverse")
	}
	return nil
}

func validateProduct(in CreateAuctionInput) error {
	if !in.IsMultiLot {
		if strings.TrimSpace(in.ProductName) == "" {
			return auctionerrors.Invalid("productName", "Product name is required")
		}
		return nil
	}

	if len(in.Lots) == 0 {
		return auctionerrors.Invalid("lots", "At least one lot is required for multi-lot auctions")
	}
	for i, lot := range in.Lots {
		if strings.TrimSpace(lot.Name) == "" || strings.TrimSpace(lot.Description) == "" || lot.Quantity <= 0 || !(lot.StartPrice > 0) {
			return auctionerrors.Invalid("lots", "Lot %d: name, description, quantity and start price are required", i+1)
		}
	}
	return nil
}

// ParseRequiredDocuments accepts either a JSON array or a JSON string holding
// one, and requires every entry to be an object with a non-empty name
func ParseRequiredDocuments(raw json.RawMessage) ([]models.RequiredDocument, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, auctionerrors.Invalid("requiredDocuments", "Required documents are required for reverse auctions")
	}

	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, auctionerrors.Invalid("requiredDocuments", "Invalid required documents format")
		}
		raw = bytes.TrimSpace([]byte(encoded))
	}

	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, auctionerrors.Invalid("requiredDocuments", "Invalid required documents format")
	}

	documents := make([]models.RequiredDocument, 0, len(entries))
	for i, entry := range entries {
		name, ok := entry["name"].(string)
		if !ok || strings.TrimSpace(name) == "" {
			return nil, auctionerrors.Invalid("requiredDocuments", "Required document %d must have a name", i+1)
		}
		documents = append(documents, models.RequiredDocument{Name: strings.TrimSpace(name)})
	}
	return documents, nil
}

// jsonObject stores an absent or null blob as an empty object
func jsonObject(raw json.RawMessage) datatypes.JSON {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}

// ApproveAuction marks an auction approved and settles its start time
func (s *AuctionService) ApproveAuction(ctx context.Context, actor models.Actor, id string) (models.Auction, error) {
	if !actor.IsAdmin() {
		return models.Auction{}, fmt.Errorf("service: %w - only admins approve auctions", auctionerrors.ErrForbidden)
	}

	auction, err := s.repo.UpdateAuction(ctx, id, func(a *models.Auction) error {
		ApplyApproval(a, s.now())
		return nil
	})
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to approve auction %s: %w", id, err)
	}

	metrics.RecordTransition(metrics.TransitionApproved)
	return auction, nil
}

// DeleteAuction rejects an auction, removing it and its bids
func (s *AuctionService) DeleteAuction(ctx context.Context, actor models.Actor, id string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("service: %w - only admins reject auctions", auctionerrors.ErrForbidden)
	}
	if err := s.repo.DeleteAuction(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete auction %s: %w", id, err)
	}

	metrics.RecordTransition(metrics.TransitionDeleted)
	return nil
}

// ListAuctions returns one filtered page of auctions
func (s *AuctionService) ListAuctions(ctx context.Context, filter repository.AuctionFilter) (AuctionPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = repository.DefaultListLimit
	}

	auctions, total, err := s.repo.ListAuctions(ctx, filter)
	if err != nil {
		return AuctionPage{}, fmt.Errorf("service: failed to list auctions: %w", err)
	}

	return AuctionPage{
		Auctions: auctions,
		Pagination: Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		},
	}, nil
}

// ListListings returns the caller's own listings. Admins may name another seller.
func (s *AuctionService) ListListings(ctx context.Context, actor models.Actor, email string) ([]models.Auction, error) {
	owner := actor.Email
	if actor.IsAdmin() && strings.TrimSpace(email) != "" {
		owner = strings.TrimSpace(email)
	}
	if owner == "" {
		return nil, fmt.Errorf("service: %w - no identity for listing query", auctionerrors.ErrUnauthorized)
	}

	auctions, err := s.repo.ListAuctionsByCreator(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list listings for %s: %w", owner, err)
	}
	return auctions, nil
}

// GetListing returns a single auction
func (s *AuctionService) GetListing(ctx context.Context, id string) (models.Auction, error) {
	auction, err := s.repo.GetAuction(ctx, id)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get listing %s: %w", id, err)
	}
	return auction, nil
}

// EditListing applies a seller's edit to a still-editable listing
func (s *AuctionService) EditListing(ctx context.Context, actor models.Actor, id string, update ListingUpdate) (models.Auction, error) {
	if err := validateListingUpdate(update); err != nil {
		return models.Auction{}, err
	}

	auction, err := s.repo.UpdateAuction(ctx, id, func(a *models.Auction) error {
		if !a.Editable {
			return auctionerrors.ErrNotEditable
		}
		if !actor.IsAdmin() && !actor.Owns(*a) {
			return fmt.Errorf("%w - %s does not own auction %s", auctionerrors.ErrForbidden, actor.Email, a.ID)
		}
		return s.applyListingUpdate(a, update)
	})
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to edit listing %s: %w", id, err)
	}

	metrics.RecordTransition(metrics.TransitionEdited)
	return auction, nil
}

func validateListingUpdate(update ListingUpdate) error {
	if update.ProductName != nil && strings.TrimSpace(*update.ProductName) == "" {
		return auctionerrors.Invalid("productname", "Product name cannot be empty")
	}
	if update.StartPrice != nil && *update.StartPrice < 0 {
		return auctionerrors.Invalid("startprice", "Start price cannot be negative")
	}
	if update.TargetPrice != nil && *update.TargetPrice < 0 {
		return auctionerrors.Invalid("targetprice", "Target price cannot be negative")
	}
	if update.MinimumIncrement != nil && *update.MinimumIncrement < 0 {
		return auctionerrors.Invalid("minimumincrement", "Minimum increment cannot be negative")
	}
	if d := update.AuctionDuration; d != nil && (d.Days < 0 || d.Hours < 0 || d.Minutes < 0) {
		return auctionerrors.Invalid("auctionduration", "Auction duration cannot be negative")
	}
	return nil
}

func (s *AuctionService) applyListingUpdate(a *models.Auction, update ListingUpdate) error {
	if update.MinimumIncrement != nil {
		switch {
		case a.AuctionSubType == models.SubTypeYankee && *update.MinimumIncrement != 0:
			return auctionerrors.Invalid("minimumincrement", "Yankee auctions do not use a minimum increment")
		case a.BidIncrementType != models.IncrementFixed:
			return auctionerrors.Invalid("minimumincrement", "Minimum increment can only be edited on fixed increment auctions")
		case a.BidIncrementType == models.IncrementFixed && a.AuctionSubType != models.SubTypeYankee && !(*update.MinimumIncrement > 0):
			return auctionerrors.Invalid("minimumincrement", "Minimum increment must be a positive number for fixed type")
		}
		a.MinimumIncrement = *update.MinimumIncrement
		if a.BidIncrementType == models.IncrementFixed && len(a.BidIncrementRules) == 1 {
			a.BidIncrementRules[0].IncrementValue = *update.MinimumIncrement
		}
	}
	if update.ProductName != nil {
		a.ProductName = strings.TrimSpace(*update.ProductName)
	}
	if update.ProductDescription != nil {
		a.ProductDescription = s.sanitizer.Sanitize(*update.ProductDescription)
	}
	if update.StartPrice != nil {
		a.StartPrice = *update.StartPrice
	}
	if update.TargetPrice != nil {
		if a.IsReverse() && !(*update.TargetPrice > 0) {
			return auctionerrors.Invalid("targetprice", "Target price must be greater than zero for reverse auctions")
		}
		a.TargetPrice = *update.TargetPrice
	}
	if update.AuctionDuration != nil {
		a.AuctionDuration = datatypes.NewJSONType(*update.AuctionDuration)
	}
	if a.BidCount == 0 {
		a.CurrentBid = a.OpeningBid()
	}
	return nil
}

// DeleteListing removes a listing on behalf of its creator or an admin
func (s *AuctionService) DeleteListing(ctx context.Context, actor models.Actor, id string) error {
	auction, err := s.repo.GetAuction(ctx, id)
	if err != nil {
		return fmt.Errorf("service: failed to delete listing %s: %w", id, err)
	}
	if !actor.IsAdmin() && !actor.Owns(auction) {
		return fmt.Errorf("service: %w - %s does not own auction %s", auctionerrors.ErrForbidden, actor.Email, id)
	}
	if err := s.repo.DeleteAuction(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete listing %s: %w", id, err)
	}

	metrics.RecordTransition(metrics.TransitionDeleted)
	return nil
}
