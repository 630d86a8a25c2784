package marketplace

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tchybbi/Smatico/internal/messaging"
	"github.com/Tchybbi/Smatico/internal/store"
)

type PlaceBidRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// =========================
// PlaceBid - Provider bids on a pending order
// =========================
func (h *Handler) PlaceBid(c echo.Context) error {
	providerID, ok := c.Get("user_id").(string)
	if !ok || providerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order id in URL"})
	}

	var req PlaceBidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	bid, err := h.Store.PlaceBid(orderID, store.BidData{
		ProviderID: providerID,
		Amount:     req.Amount,
	})
	if err != nil {
		return storeError(c, err)
	}

	order, lookupErr := h.Store.OrderByID(orderID)
	if lookupErr == nil {
		h.Events.BidPlaced(order, bid)
	}
	messaging.BroadcastBidPlaced(orderID, bid)

	return c.JSON(http.StatusCreated, bid)
}

// =========================
// AcceptBid - Owner assigns the winning provider
// =========================
func (h *Handler) AcceptBid(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("id")
	bidID := c.Param("bidId")
	if orderID == "" || bidID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order or bid id in URL"})
	}

	order, err := h.Store.OrderByID(orderID)
	if err != nil {
		return storeError(c, err)
	}
	if order.CustomerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your order"})
	}

	accepted, err := h.Store.AcceptBid(orderID, bidID)
	if err != nil {
		return storeError(c, err)
	}

	h.Events.BidAccepted(accepted)
	messaging.BroadcastBidAccepted(accepted.ID, accepted.AcceptedBid)

	return c.JSON(http.StatusOK, accepted)
}
