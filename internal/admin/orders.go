package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tchybbi/Smatico/internal/store"
)

// GET /admin/orders/cancelled - cancellation reasons for moderation
func (h *Handler) ListCancelledOrders(c echo.Context) error {
	orders := h.Store.FilteredOrders(store.Filter{Status: store.StatusCancelled})

	items := make([]echo.Map, 0, len(orders))
	for _, o := range orders {
		items = append(items, echo.Map{
			"id":           o.ID,
			"title":        o.Title,
			"customer_id":  o.CustomerID,
			"provider_id":  o.ProviderID,
			"cancelled_at": o.CancelledAt,
			"reason":       o.CancelReason,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": items})
}
