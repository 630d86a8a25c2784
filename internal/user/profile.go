package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Tchybbi/Smatico/internal/store"
)

// Handler serves profile endpoints.
type Handler struct {
	Store *store.Store
}

// GET /user/:id/profile
func (h *Handler) GetPublicProfile(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing user id"})
	}

	u, err := h.Store.UserByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch user"})
	}

	profile := echo.Map{
		"id":             u.ID,
		"name":           u.Name,
		"role":           u.Role,
		"average_rating": u.AverageRating,
		"ratings_count":  len(u.Ratings),
		"created_at":     u.CreatedAt.Format(time.RFC3339),
	}

	return c.JSON(http.StatusOK, profile)
}
