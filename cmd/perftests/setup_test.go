package perftests

import (
	"context"
	"fmt"
	"testing"
	"time"

	bidding "auction-marketplace/internal/biddingService"
	model "auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const sellerEmail = "bench-seller@example.com"

// setupRepo opens a private in-memory database seeded with numAuctions open
// forward auctions starting at 100 with a fixed increment of 1
func setupRepo(b *testing.B, numAuctions int) (*repository.GormRepo, *bidding.BiddingService, []string) {
	b.Helper()
	utils.SetLogLevel("error")

	db, err := repository.Open(repository.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	if err != nil {
		b.Fatalf("open database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		b.Fatalf("migrate: %v", err)
	}
	b.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	repo := repository.NewGormRepo(db)
	ids := make([]string, numAuctions)
	start := time.Now().UTC().Add(-time.Minute)
	for i := range ids {
		auction := model.Auction{
			ID:               uuid.NewString(),
			CreatedBy:        sellerEmail,
			AuctionType:      model.AuctionTypeForward,
			AuctionSubType:   "english",
			ProductName:      fmt.Sprintf("Load test lot %d", i),
			StartPrice:       100,
			CurrentBid:       100,
			MinimumIncrement: 1,
			BidIncrementType: model.IncrementFixed,
			BidIncrementRules: datatypes.JSONSlice[model.IncrementRule]{
				{IncrementValue: 1, IncrementType: model.IncrementFixed},
			},
			LaunchType:      model.LaunchImmediate,
			ScheduledStart:  start,
			AuctionDuration: datatypes.NewJSONType(model.AuctionDuration{Days: 1}),
			Status:          model.StatusActive,
			Approved:        true,
			Editable:        true,
			CreatedAt:       start,
			UpdatedAt:       start,
		}
		if err := repo.CreateAuction(context.Background(), &auction); err != nil {
			b.Fatalf("seed auction: %v", err)
		}
		ids[i] = auction.ID
	}
	return repo, bidding.NewBiddingService(repo), ids
}

func bidder(id string) model.Actor {
	return model.Actor{UserID: id, Email: id + "@example.com", Role: model.RoleBuyer}
}
