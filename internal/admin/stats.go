package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tchybbi/Smatico/internal/store"
)

// Handler serves the back-office endpoints.
type Handler struct {
	Store *store.Store
}

// GET /admin/stats
func (h *Handler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Stats())
}
