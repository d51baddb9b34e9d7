package bidding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	auction "auction-marketplace/internal/auctionService"
	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/metrics"
	"auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/utils"
)

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	repo repository.AuctionDB
	now  func() time.Time
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB) *BiddingService {
	return &BiddingService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// PlaceBid validates and records a bid. The auction row stays locked from the
// standing-price check until the bid and the new standing are stored.
func (s *BiddingService) PlaceBid(ctx context.Context, actor models.Actor, auctionID string, amount float64) (models.Bid, error) {
	if err := s.validateBid(actor, auctionID, amount); err != nil {
		metrics.BidsRejected.Inc()
		return models.Bid{}, err
	}

	var auctionType string
	bid, err := s.repo.RecordBidForAuction(ctx, auctionID, func(a *models.Auction) (models.Bid, error) {
		now := s.now()
		if err := checkOpen(*a, now); err != nil {
			return models.Bid{}, err
		}
		if actor.Owns(*a) {
			return models.Bid{}, fmt.Errorf("%w - sellers cannot bid on their own auction", auctionerrors.ErrForbidden)
		}
		if err := checkAmount(*a, amount); err != nil {
			return models.Bid{}, err
		}

		a.CurrentBid = amount
		a.CurrentBidder = actor.UserID
		a.BidCount++
		a.Editable = false
		if !a.HasParticipant(actor.UserID) {
			a.Participants = append(a.Participants, actor.UserID)
		}
		auctionType = a.AuctionType

		return models.Bid{
			ID:        utils.GenerateID(),
			AuctionID: a.ID,
			UserID:    actor.UserID,
			Amount:    amount,
			CreatedAt: now,
		}, nil
	})
	if err != nil {
		if errors.Is(err, auctionerrors.ErrBidTooLow) || errors.Is(err, auctionerrors.ErrAuctionClosed) {
			metrics.BidsRejected.Inc()
		}
		return models.Bid{}, fmt.Errorf("service: failed to record bid for auction %s by user %s: %w", auctionID, actor.UserID, err)
	}

	metrics.BidsPlaced.WithLabelValues(auctionType).Inc()
	return bid, nil
}

// validateBid checks input validity before touching storage
func (s *BiddingService) validateBid(actor models.Actor, auctionID string, amount float64) error {
	if !actor.CanBid() {
		return fmt.Errorf("service: %w - role %q cannot place bids", auctionerrors.ErrForbidden, actor.Role)
	}
	if auctionID == "" || actor.UserID == "" {
		return fmt.Errorf("service: %w - missing auctionID or userID", auctionerrors.ErrInvalidBid)
	}
	if !(amount > 0) || math.IsInf(amount, 0) {
		return fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}
	return nil
}

// checkOpen rejects bids on auctions that are unapproved, not yet started or finished
func checkOpen(a models.Auction, now time.Time) error {
	switch {
	case !a.Approved:
		return fmt.Errorf("%w - auction %s is pending approval", auctionerrors.ErrAuctionClosed, a.ID)
	case a.Ended:
		return fmt.Errorf("%w - auction %s has ended", auctionerrors.ErrAuctionClosed, a.ID)
	case a.ScheduledStart.After(now):
		return fmt.Errorf("%w - auction %s starts at %s", auctionerrors.ErrAuctionClosed, a.ID, a.ScheduledStart.Format(time.RFC3339))
	}
	if d := a.AuctionDuration.Data().Duration(); d > 0 && !now.Before(a.ScheduledStart.Add(d)) {
		return fmt.Errorf("%w - auction %s closed at %s", auctionerrors.ErrAuctionClosed, a.ID, a.ScheduledStart.Add(d).Format(time.RFC3339))
	}
	return nil
}

// checkAmount enforces the bidding direction and the increment policy.
// The opening bid may match the standing price; later bids must beat it by the increment.
func checkAmount(a models.Auction, amount float64) error {
	current := a.CurrentBid
	if a.BidCount == 0 {
		if a.IsReverse() && amount > current {
			return fmt.Errorf("%w - opening bid must not exceed %.2f", auctionerrors.ErrBidTooLow, current)
		}
		if !a.IsReverse() && amount < current {
			return fmt.Errorf("%w - opening bid must be at least %.2f", auctionerrors.ErrBidTooLow, current)
		}
		return nil
	}

	step := auction.RequiredIncrement(a, current)
	if a.IsReverse() {
		if amount >= current || amount > current-step {
			return fmt.Errorf("%w - bid must be at most %.2f", auctionerrors.ErrBidTooLow, current-step)
		}
		return nil
	}
	if amount <= current || amount < current+step {
		return fmt.Errorf("%w - bid must be at least %.2f", auctionerrors.ErrBidTooLow, current+step)
	}
	return nil
}

// GetBidsForAuction returns all bids for an auction, best first
func (s *BiddingService) GetBidsForAuction(ctx context.Context, auctionID string) ([]models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.repo.GetBidsByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}

	return bids, nil
}

// GetWinningBid returns the best ranked bid for an auction
func (s *BiddingService) GetWinningBid(ctx context.Context, auctionID string) (models.Bid, error) {
	if auctionID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	winningBid, err := s.repo.GetWinningBid(ctx, auctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for auction %s: %w", auctionID, err)
	}

	return winningBid, nil
}
