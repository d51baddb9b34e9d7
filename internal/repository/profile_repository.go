package repository

import (
	"context"
	"errors"
	"fmt"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// CreateProfile inserts a new profile, rejecting an email that is already registered
func (r *GormRepo) CreateProfile(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Profile{}).Where("email = ?", profile.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("create profile %s: %w", profile.Email, err)
		}
		if count > 0 {
			return fmt.Errorf("create profile %s: %w", profile.Email, auctionerrors.ErrEmailTaken)
		}
		if err := tx.Create(profile).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("create profile %s: %w", profile.Email, auctionerrors.ErrEmailTaken)
			}
			return fmt.Errorf("create profile %s: %w", profile.Email, err)
		}
		return nil
	})
}

// GetProfile loads one profile by id
func (r *GormRepo) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return models.Profile{}, fmt.Errorf("get profile %s: %w", id, notFound(err, auctionerrors.ErrProfileNotFound))
	}
	return profile, nil
}

// GetProfileByEmail loads the profile registered under a normalized email
func (r *GormRepo) GetProfileByEmail(ctx context.Context, email string) (models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "email = ?", email).Error; err != nil {
		return models.Profile{}, fmt.Errorf("get profile by email %s: %w", email, notFound(err, auctionerrors.ErrProfileNotFound))
	}
	return profile, nil
}

type groupCount struct {
	Owner string
	Total int64
}

// ListProfileSummaries returns every non-admin profile with its auction and bid counts
func (r *GormRepo) ListProfileSummaries(ctx context.Context) ([]models.ProfileSummary, error) {
	db := r.db.WithContext(ctx)

	var profiles []models.Profile
	if err := db.Where("role <> ?", models.RoleAdmin).Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	var auctionCounts []groupCount
	err := db.Model(&models.Auction{}).
		Select("createdby AS owner, COUNT(*) AS total").
		Group("createdby").
		Scan(&auctionCounts).Error
	if err != nil {
		return nil, fmt.Errorf("count auctions per profile: %w", err)
	}

	var bidCounts []groupCount
	err = db.Model(&models.Bid{}).
		Select("user_id AS owner, COUNT(*) AS total").
		Group("user_id").
		Scan(&bidCounts).Error
	if err != nil {
		return nil, fmt.Errorf("count bids per profile: %w", err)
	}

	auctionsBy := lo.SliceToMap(auctionCounts, func(c groupCount) (string, int64) { return c.Owner, c.Total })
	bidsBy := lo.SliceToMap(bidCounts, func(c groupCount) (string, int64) { return c.Owner, c.Total })

	return lo.Map(profiles, func(p models.Profile, _ int) models.ProfileSummary {
		return models.ProfileSummary{
			Profile:      p,
			AuctionCount: auctionsBy[p.Email],
			BidCount:     bidsBy[p.ID],
		}
	}), nil
}

// DeleteProfile removes a user and everything that hangs off them in one transaction.
// Sellers lose their auctions (and those auctions' bids); buyers lose their bids and
// every auction they bid on gets its standing recomputed from the remaining bids.
func (r *GormRepo) DeleteProfile(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Clauses(forUpdate).First(&profile, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete profile %s: %w", id, notFound(err, auctionerrors.ErrProfileNotFound))
		}

		if profile.CanSell() {
			if err := deleteAuctionsOf(tx, profile.Email); err != nil {
				return fmt.Errorf("delete profile %s: %w", id, err)
			}
		}

		if profile.CanBid() {
			if err := withdrawBidsOf(tx, profile.ID); err != nil {
				return fmt.Errorf("delete profile %s: %w", id, err)
			}
		}

		if err := tx.Where("id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return fmt.Errorf("delete profile %s: %w", id, err)
		}
		return nil
	})
}

func deleteAuctionsOf(tx *gorm.DB, email string) error {
	var ids []string
	if err := tx.Model(&models.Auction{}).Where("createdby = ?", email).Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("find auctions of %s: %w", email, err)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("auction_id IN ?", ids).Delete(&models.Bid{}).Error; err != nil {
		return fmt.Errorf("delete bids on auctions of %s: %w", email, err)
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.Auction{}).Error; err != nil {
		return fmt.Errorf("delete auctions of %s: %w", email, err)
	}
	return nil
}

func withdrawBidsOf(tx *gorm.DB, userID string) error {
	var auctionIDs []string
	err := tx.Model(&models.Bid{}).
		Where("user_id = ?", userID).
		Distinct("auction_id").
		Pluck("auction_id", &auctionIDs).Error
	if err != nil {
		return fmt.Errorf("find auctions bid on by %s: %w", userID, err)
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Bid{}).Error; err != nil {
		return fmt.Errorf("delete bids of %s: %w", userID, err)
	}
	if len(auctionIDs) == 0 {
		return nil
	}

	var affected []models.Auction
	if err := tx.Clauses(forUpdate).Where("id IN ?", auctionIDs).Find(&affected).Error; err != nil {
		return fmt.Errorf("load auctions bid on by %s: %w", userID, err)
	}

	for i := range affected {
		auction := &affected[i]
		var remaining []models.Bid
		if err := tx.Where("auction_id = ?", auction.ID).Find(&remaining).Error; err != nil {
			return fmt.Errorf("load remaining bids of auction %s: %w", auction.ID, err)
		}
		auction.ApplyStanding(remaining)
		auction.Participants = lo.Filter(auction.Participants, func(p string, _ int) bool { return p != userID })
		auction.Questions = lo.Filter(auction.Questions, func(q models.Question, _ int) bool { return q.User != userID })
		if err := tx.Save(auction).Error; err != nil {
			return fmt.Errorf("recompute auction %s: %w", auction.ID, err)
		}
	}
	return nil
}
