package marketplace

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tchybbi/Smatico/internal/store"
)

// storeError maps typed store failures to HTTP responses.
func storeError(c echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, store.ErrOrderNotFound),
		errors.Is(err, store.ErrBidNotFound),
		errors.Is(err, store.ErrUserNotFound):
		code = http.StatusNotFound
	case errors.Is(err, store.ErrOrderNotPending),
		errors.Is(err, store.ErrOrderNotInProgress),
		errors.Is(err, store.ErrOrderFinished),
		errors.Is(err, store.ErrOrderNotCompleted),
		errors.Is(err, store.ErrAlreadyRated):
		code = http.StatusConflict
	case errors.Is(err, store.ErrSelfBid),
		errors.Is(err, store.ErrNotProvider),
		errors.Is(err, store.ErrNotParticipant):
		code = http.StatusForbidden
	case errors.Is(err, store.ErrBidTooHigh),
		errors.Is(err, store.ErrInvalidAmount),
		errors.Is(err, store.ErrInvalidRating),
		errors.Is(err, store.ErrInvalidCategory),
		errors.Is(err, store.ErrInvalidPriceRange):
		code = http.StatusBadRequest
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(code, echo.Map{"error": err.Error()})
}
