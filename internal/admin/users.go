package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tchybbi/Smatico/internal/store"
)

// GET /admin/users
func (h *Handler) ListUsers(c echo.Context) error {
	users := h.Store.Users()
	out := make([]store.PublicUser, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}
