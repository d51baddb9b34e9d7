package server

import (
	"net/http"

	"auction-marketplace/internal/auth"
	model "auction-marketplace/internal/models"
	"auction-marketplace/internal/ratelimit"
	"auction-marketplace/services/auction/handler"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the services the HTTP API is built on.
// Limiter and Uploads are optional.
type Dependencies struct {
	Auctions handler.AuctionServiceInterface
	Bidding  handler.BiddingServiceInterface
	Profiles handler.ProfileServiceInterface
	Uploads  handler.UploadServiceInterface
	Tokens   *auth.Manager
	Accounts auth.ProfileLookup
	Limiter  *ratelimit.Limiter
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(MetricsMiddleware)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, nil, "ok")
	})

	auctionHandler := handler.NewAuctionHandler(deps.Auctions)
	biddingHandler := handler.NewBiddingHandler(deps.Bidding)
	profileHandler := handler.NewProfileHandler(deps.Profiles)

	api := router.Group("/api")
	if deps.Limiter != nil {
		api.Use(deps.Limiter.Middleware())
	}

	// public reads and login
	{
		api.POST("/login", profileHandler.LoginHandler)
		api.GET("/auctions", auctionHandler.ListAuctionsHandler)
		api.GET("/auctions/:id/bids", biddingHandler.GetBidsByAuctionHandler)
		api.GET("/auctions/:id/winning", biddingHandler.GetWinningBidHandler)
		api.GET("/listings/:id", auctionHandler.GetListingHandler)
	}

	authed := api.Group("")
	authed.Use(deps.Tokens.Middleware(), auth.ResolveProfile(deps.Accounts))

	sellers := auth.RequireRole(model.RoleSeller, model.RoleBoth, model.RoleAdmin)
	buyers := auth.RequireRole(model.RoleBuyer, model.RoleBoth)
	admins := auth.RequireRole(model.RoleAdmin)

	auctions := authed.Group("/auctions")
	{
		auctions.POST("", sellers, auctionHandler.CreateAuctionHandler)
		auctions.PUT("/:id", admins, auctionHandler.ApproveAuctionHandler)
		auctions.DELETE("/:id", admins, auctionHandler.DeleteAuctionHandler)
		auctions.POST("/:id/bids", buyers, biddingHandler.RecordBidHandler)
	}

	listings := authed.Group("/listings")
	{
		listings.GET("", auctionHandler.ListListingsHandler)
		listings.PUT("/:id", auctionHandler.EditListingHandler)
		listings.DELETE("/:id", auctionHandler.DeleteListingHandler)
	}

	profiles := authed.Group("", admins)
	{
		profiles.GET("/profiles", profileHandler.ListProfilesHandler)
		profiles.DELETE("/profiles/:id", profileHandler.DeleteProfileHandler)
		profiles.POST("/add-user", profileHandler.AddUserHandler)
	}

	if deps.Uploads != nil {
		uploadHandler := handler.NewUploadHandler(deps.Uploads)
		authed.POST("/uploads", sellers, uploadHandler.UploadHandler)
	}

	return router
}
