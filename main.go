package main

import (
	"context"
	"os"

	auction "auction-marketplace/internal/auctionService"
	"auction-marketplace/internal/auth"
	bidding "auction-marketplace/internal/biddingService"
	profile "auction-marketplace/internal/profileService"
	"auction-marketplace/internal/ratelimit"
	"auction-marketplace/internal/repository"
	"auction-marketplace/internal/server"
	"auction-marketplace/internal/storage"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	args, err := ParseArgs(os.Args[1:])
	if err != nil {
		utils.Fatal("failed to parse arguments", map[string]any{"error": err.Error()})
	}
	if err := args.Validate(); err != nil {
		utils.Fatal("invalid configuration", map[string]any{"error": err.Error()})
	}
	utils.SetLogLevel(args.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	ctx := context.Background()

	db, err := repository.Open(args.DB.Driver, args.DB.DataSource())
	if err != nil {
		utils.Fatal("failed to connect to database", map[string]any{"driver": args.DB.Driver, "error": err.Error()})
	}
	if err := repository.Migrate(db); err != nil {
		utils.Fatal("failed to migrate database", map[string]any{"error": err.Error()})
	}
	repo := repository.NewGormRepo(db)

	tokens, err := auth.NewManager(args.JWTSecret, args.JWTExpire)
	if err != nil {
		utils.Fatal("invalid session configuration", map[string]any{"error": err.Error()})
	}

	auctionSvc := auction.NewAuctionService(repo, auction.IncrementEvaluator{StrictRanges: args.StrictIncrementRanges})
	biddingSvc := bidding.NewBiddingService(repo)
	profileSvc := profile.NewProfileService(repo, tokens)

	if args.AdminEmail != "" {
		if err := profileSvc.EnsureAdmin(ctx, args.AdminEmail, args.AdminPassword); err != nil {
			utils.Fatal("failed to seed admin account", map[string]any{"error": err.Error()})
		}
	}

	deps := server.Dependencies{
		Auctions: auctionSvc,
		Bidding:  biddingSvc,
		Profiles: profileSvc,
		Tokens:   tokens,
		Accounts: repo,
	}

	if args.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     args.Redis.Addr,
			Password: args.Redis.Password,
			DB:       args.Redis.DB,
		})
		defer redisClient.Close()

		limiter, err := ratelimit.NewLimiter(redisClient, args.RateLimitRequests, args.RateLimitWindow)
		if err != nil {
			utils.Fatal("invalid rate limit configuration", map[string]any{"error": err.Error()})
		}
		deps.Limiter = limiter
	} else {
		utils.Warn("redis-addr not set, rate limiting disabled", nil)
	}

	if args.S3.Bucket != "" {
		client, err := storage.NewS3Client(ctx, args.S3)
		if err != nil {
			utils.Fatal("failed to create s3 client", map[string]any{"error": err.Error()})
		}
		store, err := storage.NewObjectStore(client, args.S3.Bucket, args.S3.PublicBaseURL)
		if err != nil {
			utils.Fatal("failed to create object store", map[string]any{"error": err.Error()})
		}
		deps.Uploads = storage.NewUploader(store, args.MaxUploadBytes)
	} else {
		utils.Warn("s3-bucket not set, uploads disabled", nil)
	}

	router := server.SetupRouter(deps)

	utils.Info("starting auction server", map[string]any{"addr": args.ServerURL, "db": args.DB.Driver})
	if err := router.Run(args.ServerURL); err != nil {
		utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
	}
}
