package auctionerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoBids          = errors.New("no bids found for auction")
	ErrEmailTaken      = errors.New("email already registered")
)

// business logic errors
var (
	ErrValidation     = errors.New("validation failed")
	ErrInvalidBid     = errors.New("invalid bid")
	ErrBidTooLow      = errors.New("bid does not meet the required increment")
	ErrAuctionClosed  = errors.New("auction is not open for bidding")
	ErrNotEditable    = errors.New("auction is no longer editable")
	ErrForbidden      = errors.New("operation not permitted")
	ErrUnauthorized   = errors.New("authentication required")
	ErrBadCredentials = errors.New("invalid email or password")
)

// ValidationError carries the human readable message shown to the caller.
// It matches ErrValidation under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError for field with a formatted message
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsValidation extracts the ValidationError from an error chain
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
