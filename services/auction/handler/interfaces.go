package handler

//go:generate mockgen -package=handler -destination=mock_interfaces.go -source=interfaces.go

import (
	"context"
	"io"

	auction "auction-marketplace/internal/auctionService"
	model "auction-marketplace/internal/models"
	profile "auction-marketplace/internal/profileService"
	"auction-marketplace/internal/repository"
)

type AuctionServiceInterface interface {
	CreateAuction(ctx context.Context, actor model.Actor, in auction.CreateAuctionInput) (model.Auction, error)
	ApproveAuction(ctx context.Context, actor model.Actor, id string) (model.Auction, error)
	DeleteAuction(ctx context.Context, actor model.Actor, id string) error
	ListAuctions(ctx context.Context, filter repository.AuctionFilter) (auction.AuctionPage, error)
	ListListings(ctx context.Context, actor model.Actor, email string) ([]model.Auction, error)
	GetListing(ctx context.Context, id string) (model.Auction, error)
	EditListing(ctx context.Context, actor model.Actor, id string, update auction.ListingUpdate) (model.Auction, error)
	DeleteListing(ctx context.Context, actor model.Actor, id string) error
}

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, actor model.Actor, auctionID string, amount float64) (model.Bid, error)
	GetBidsForAuction(ctx context.Context, auctionID string) ([]model.Bid, error)
	GetWinningBid(ctx context.Context, auctionID string) (model.Bid, error)
}

type ProfileServiceInterface interface {
	Login(ctx context.Context, email, password string) (profile.Session, error)
	AddUser(ctx context.Context, actor model.Actor, in profile.NewUserInput) (model.Profile, error)
	ListProfiles(ctx context.Context, actor model.Actor) ([]model.ProfileSummary, error)
	DeleteProfile(ctx context.Context, actor model.Actor, id string) error
}

type UploadServiceInterface interface {
	Upload(ctx context.Context, kind, filename string, r io.Reader) (string, error)
}
