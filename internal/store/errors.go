package store

import "errors"

// Typed failures returned by store operations. The HTTP layer maps these
// to status codes; nothing here is swallowed as a silent no-op.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("role must be customer or provider")

	ErrUserNotFound  = errors.New("user not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrBidNotFound   = errors.New("bid not found")

	ErrInvalidCategory   = errors.New("unknown category")
	ErrInvalidPriceRange = errors.New("prices must be positive and maxPrice >= minPrice")

	ErrOrderNotPending    = errors.New("order is not pending")
	ErrOrderNotInProgress = errors.New("order is not in progress")
	ErrOrderFinished      = errors.New("order already completed or cancelled")
	ErrOrderNotCompleted  = errors.New("order is not completed")

	ErrBidTooHigh    = errors.New("bid exceeds order maximum price")
	ErrInvalidAmount = errors.New("bid amount must be positive")
	ErrSelfBid       = errors.New("cannot bid on your own order")
	ErrNotProvider   = errors.New("only providers can bid")

	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrAlreadyRated  = errors.New("order already rated by this user")
	ErrNotParticipant = errors.New("user is not a participant of this order")

	ErrNotificationNotFound = errors.New("notification not found")
)
