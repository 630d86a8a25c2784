package alerts

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tchybbi/Smatico/internal/store"
)

// Handler serves the notifications screen.
type Handler struct {
	Store *store.Store
}

// ListNotifications returns current user's notifications, newest first.
func (h *Handler) ListNotifications(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": h.Store.NotificationsForUser(userID),
	})
}

// MarkNotificationRead marks a specific notification as read.
func (h *Handler) MarkNotificationRead(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	nid := c.Param("id")
	if nid == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing notification id"})
	}

	if err := h.Store.MarkNotificationRead(userID, nid); err != nil {
		if errors.Is(err, store.ErrNotificationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "ok"})
}
