package onboarding

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tchybbi/Smatico/internal/store"
)

// Handler tracks whether the onboarding flow has been completed on this
// device.
type Handler struct {
	Store *store.Store
}

// GET /onboarding
func (h *Handler) Status(c echo.Context) error {
	seen, err := h.Store.HasSeenOnboarding(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read onboarding state"})
	}
	return c.JSON(http.StatusOK, echo.Map{"has_seen_onboarding": seen})
}

// POST /onboarding/complete
func (h *Handler) Complete(c echo.Context) error {
	if err := h.Store.CompleteOnboarding(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save onboarding state"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "ok"})
}
