package marketplace

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tchybbi/Smatico/internal/alerts"
	"github.com/Tchybbi/Smatico/internal/messaging"
	"github.com/Tchybbi/Smatico/internal/store"
)

// Handler serves the order/bid/review surface.
type Handler struct {
	Store  *store.Store
	Events *alerts.Dispatcher
}

type CreateOrderRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" validate:"required"`
	Location    string  `json:"location"`
	MinPrice    float64 `json:"minPrice" validate:"required,gt=0"`
	MaxPrice    float64 `json:"maxPrice" validate:"required,gt=0"`
	ExpireDate  string  `json:"expireDate"`
}

type UpdateOrderRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Location    *string  `json:"location"`
	MinPrice    *float64 `json:"minPrice"`
	MaxPrice    *float64 `json:"maxPrice"`
	ExpireDate  *string  `json:"expireDate"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// =========================
// CreateOrder - Customer posts an order
// =========================
func (h *Handler) CreateOrder(c echo.Context) error {
	customerID, ok := c.Get("user_id").(string)
	if !ok || customerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	order, err := h.Store.CreateOrder(store.OrderData{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		ExpireDate:  req.ExpireDate,
		CustomerID:  customerID,
	})
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusCreated, order)
}

// =========================
// ListOrders - Filtered order feed
// =========================
func (h *Handler) ListOrders(c echo.Context) error {
	orders := h.Store.FilteredOrders(store.Filter{
		Status:     c.QueryParam("status"),
		CustomerID: c.QueryParam("customerId"),
		ProviderID: c.QueryParam("providerId"),
		Category:   c.QueryParam("category"),
	})
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// =========================
// GetOrder - Single order detail
// =========================
func (h *Handler) GetOrder(c echo.Context) error {
	order, err := h.Store.OrderByID(c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// =========================
// UpdateOrder - Owner edits order fields
// =========================
func (h *Handler) UpdateOrder(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("id")
	order, err := h.Store.OrderByID(orderID)
	if err != nil {
		return storeError(c, err)
	}
	if order.CustomerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your order"})
	}

	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updated, err := h.Store.UpdateOrder(orderID, store.OrderUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		ExpireDate:  req.ExpireDate,
	})
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// =========================
// CompleteOrder - Owner marks the work done
// =========================
func (h *Handler) CompleteOrder(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("id")
	order, err := h.Store.OrderByID(orderID)
	if err != nil {
		return storeError(c, err)
	}
	if order.CustomerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your order"})
	}

	completed, err := h.Store.CompleteOrder(orderID)
	if err != nil {
		return storeError(c, err)
	}

	h.Events.OrderCompleted(completed)
	messaging.BroadcastOrderCompleted(completed.ID)

	return c.JSON(http.StatusOK, completed)
}

// =========================
// CancelOrder - Owner or assigned provider cancels
// =========================
func (h *Handler) CancelOrder(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("id")
	order, err := h.Store.OrderByID(orderID)
	if err != nil {
		return storeError(c, err)
	}
	if order.CustomerID != userID && order.ProviderID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not a participant in this order"})
	}

	var req CancelOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	cancelled, err := h.Store.CancelOrder(orderID, req.Reason)
	if err != nil {
		return storeError(c, err)
	}

	h.Events.OrderCancelled(cancelled)
	messaging.BroadcastOrderCancelled(cancelled.ID, cancelled.CancelReason)

	return c.JSON(http.StatusOK, cancelled)
}
