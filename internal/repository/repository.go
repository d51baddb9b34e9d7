//go:generate mockgen -package=repository -destination=mock_repository.go -source=repository.go

package repository

import (
	"context"
	"errors"
	"fmt"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultListLimit is the page size used when the caller does not pass one
const DefaultListLimit = 10000

// AuctionDB defines the auction and bid storage interface for the marketplace
type AuctionDB interface {
	CreateAuction(ctx context.Context, auction *models.Auction) error
	GetAuction(ctx context.Context, id string) (models.Auction, error)
	ListAuctions(ctx context.Context, filter AuctionFilter) ([]models.Auction, int64, error)
	ListAuctionsByCreator(ctx context.Context, email string) ([]models.Auction, error)
	UpdateAuction(ctx context.Context, id string, mutate func(*models.Auction) error) (models.Auction, error)
	DeleteAuction(ctx context.Context, id string) error
	RecordBidForAuction(ctx context.Context, auctionID string, build func(*models.Auction) (models.Bid, error)) (models.Bid, error)
	GetBidsByAuction(ctx context.Context, auctionID string) ([]models.Bid, error)
	GetWinningBid(ctx context.Context, auctionID string) (models.Bid, error)
}

// ProfileDB defines the user profile storage interface
type ProfileDB interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfile(ctx context.Context, id string) (models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (models.Profile, error)
	ListProfileSummaries(ctx context.Context) ([]models.ProfileSummary, error)
	DeleteProfile(ctx context.Context, id string) error
}

// AuctionFilter narrows ListAuctions. Zero values mean "no filter".
type AuctionFilter struct {
	Category    string
	Status      string
	AuctionType string
	Approved    *bool
	Page        int
	Limit       int
}

func (f AuctionFilter) normalized() AuctionFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultListLimit
	}
	return f
}

func (f AuctionFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.AuctionType != "" {
		db = db.Where("auctiontype = ?", f.AuctionType)
	}
	if f.Approved != nil {
		db = db.Where("approved = ?", *f.Approved)
	}
	return db
}

// GormRepo is the relational implementation of AuctionDB and ProfileDB.
// Every multi-statement write runs inside a single transaction.
type GormRepo struct {
	db *gorm.DB
}

// NewGormRepo creates a repository on top of an opened gorm connection
func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

var forUpdate = clause.Locking{Strength: "UPDATE"}

// CreateAuction inserts a fully validated auction row
func (r *GormRepo) CreateAuction(ctx context.Context, auction *models.Auction) error {
	if err := r.db.WithContext(ctx).Create(auction).Error; err != nil {
		return fmt.Errorf("create auction %s: %w", auction.ID, err)
	}
	return nil
}

// GetAuction loads one auction by id
func (r *GormRepo) GetAuction(ctx context.Context, id string) (models.Auction, error) {
	var auction models.Auction
	if err := r.db.WithContext(ctx).First(&auction, "id = ?", id).Error; err != nil {
		return models.Auction{}, fmt.Errorf("get auction %s: %w", id, notFound(err, auctionerrors.ErrAuctionNotFound))
	}
	return auction, nil
}

// ListAuctions returns one page of auctions, newest first, plus the total match count
func (r *GormRepo) ListAuctions(ctx context.Context, filter AuctionFilter) ([]models.Auction, int64, error) {
	filter = filter.normalized()
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Auction{}).Scopes(filter.scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count auctions: %w", err)
	}

	auctions := []models.Auction{}
	err := db.Scopes(filter.scope).
		Order("created_at DESC").
		Order("id DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&auctions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list auctions: %w", err)
	}
	return auctions, total, nil
}

// ListAuctionsByCreator returns every auction created by email, newest first
func (r *GormRepo) ListAuctionsByCreator(ctx context.Context, email string) ([]models.Auction, error) {
	auctions := []models.Auction{}
	err := r.db.WithContext(ctx).
		Where("createdby = ?", email).
		Order("created_at DESC").
		Find(&auctions).Error
	if err != nil {
		return nil, fmt.Errorf("list auctions for %s: %w", email, err)
	}
	return auctions, nil
}

// UpdateAuction locks the row, lets mutate change it and saves the result.
// An error from mutate aborts the transaction and is returned unchanged.
func (r *GormRepo) UpdateAuction(ctx context.Context, id string, mutate func(*models.Auction) error) (models.Auction, error) {
	var auction models.Auction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(forUpdate).First(&auction, "id = ?", id).Error; err != nil {
			return fmt.Errorf("update auction %s: %w", id, notFound(err, auctionerrors.ErrAuctionNotFound))
		}
		if err := mutate(&auction); err != nil {
			return err
		}
		if err := tx.Save(&auction).Error; err != nil {
			return fmt.Errorf("update auction %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return models.Auction{}, err
	}
	return auction, nil
}

// DeleteAuction removes an auction and all of its bids atomically
func (r *GormRepo) DeleteAuction(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var auction models.Auction
		if err := tx.Clauses(forUpdate).Select("id").First(&auction, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete auction %s: %w", id, notFound(err, auctionerrors.ErrAuctionNotFound))
		}
		if err := tx.Where("auction_id = ?", id).Delete(&models.Bid{}).Error; err != nil {
			return fmt.Errorf("delete bids of auction %s: %w", id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Auction{}).Error; err != nil {
			return fmt.Errorf("delete auction %s: %w", id, err)
		}
		return nil
	})
}

// RecordBidForAuction locks the auction, lets build validate the bid and update
// the standing price, then stores the bid and the auction together
func (r *GormRepo) RecordBidForAuction(ctx context.Context, auctionID string, build func(*models.Auction) (models.Bid, error)) (models.Bid, error) {
	var bid models.Bid
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var auction models.Auction
		if err := tx.Clauses(forUpdate).First(&auction, "id = ?", auctionID).Error; err != nil {
			return fmt.Errorf("record bid for auction %s: %w", auctionID, notFound(err, auctionerrors.ErrAuctionNotFound))
		}
		built, err := build(&auction)
		if err != nil {
			return err
		}
		built.AuctionID = auction.ID
		if err := tx.Create(&built).Error; err != nil {
			return fmt.Errorf("record bid for auction %s: %w", auctionID, err)
		}
		if err := tx.Save(&auction).Error; err != nil {
			return fmt.Errorf("update standing of auction %s: %w", auctionID, err)
		}
		bid = built
		return nil
	})
	if err != nil {
		return models.Bid{}, err
	}
	return bid, nil
}

// GetBidsByAuction returns all bids for an auction, best ranked first
func (r *GormRepo) GetBidsByAuction(ctx context.Context, auctionID string) ([]models.Bid, error) {
	auction, err := r.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	var bids []models.Bid
	err = r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order(models.RankOrder(auction.AuctionType)).
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, err)
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	return bids, nil
}

// GetWinningBid returns the best ranked bid for an auction
func (r *GormRepo) GetWinningBid(ctx context.Context, auctionID string) (models.Bid, error) {
	auction, err := r.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Bid{}, err
	}

	var bid models.Bid
	err = r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order(models.RankOrder(auction.AuctionType)).
		First(&bid).Error
	if err != nil {
		return models.Bid{}, fmt.Errorf("get winning bid for auction %s: %w", auctionID, notFound(err, auctionerrors.ErrNoBids))
	}
	return bid, nil
}

// notFound swaps gorm's record-not-found for the given domain error
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}
