package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/auth"
	"auction-marketplace/internal/models"
	"auction-marketplace/internal/storage"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	if ve, ok := auctionerrors.AsValidation(err); ok {
		return http.StatusBadRequest, ve.Message
	}

	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrProfileNotFound):
		return http.StatusNotFound, "profile not found"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for auction"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, auctionerrors.ErrAuctionClosed):
		return http.StatusForbidden, "auction is not open for bidding"
	case errors.Is(err, auctionerrors.ErrNotEditable):
		return http.StatusForbidden, "auction is no longer editable"
	case errors.Is(err, auctionerrors.ErrForbidden):
		return http.StatusForbidden, "operation not permitted"
	case errors.Is(err, auctionerrors.ErrBadCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, auctionerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, storage.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "file too large"
	case errors.Is(err, storage.ErrUnsupportedType), errors.Is(err, storage.ErrUnknownKind):
		return http.StatusBadRequest, "unsupported upload"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError writes the mapped error response and logs it.
// Validation failures carry their own message as the error text.
func RespondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	if ve, ok := auctionerrors.AsValidation(err); ok {
		utils.JSONError(c, status, ve, message)
	} else {
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	}

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["status"] = status
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// CurrentActor returns the authenticated caller or answers 401 when there is none
func CurrentActor(c *gin.Context, handlerName string) (models.Actor, bool) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		RespondError(c, handlerName, auctionerrors.ErrUnauthorized, nil)
		return models.Actor{}, false
	}
	return actor, true
}

// ToBidResponse converts a stored bid into its wire form
func ToBidResponse(bid models.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.ID,
		AuctionID: bid.AuctionID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}
