package messaging

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/Tchybbi/Smatico/internal/store"
)

type wsEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type hub struct {
	orderID string
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

var (
	hubsMu sync.RWMutex
	hubs   = make(map[string]*hub)
)

func getHub(orderID string) *hub {
	hubsMu.Lock()
	defer hubsMu.Unlock()
	if h, ok := hubs[orderID]; ok {
		return h
	}
	h := &hub{orderID: orderID, clients: make(map[*websocket.Conn]bool)}
	hubs[orderID] = h
	return h
}

func (h *hub) broadcast(evt wsEvent) {
	payload, _ := json.Marshal(evt)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.WriteMessage(websocket.TextMessage, payload)
	}
}

func (h *hub) register(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *hub) unregister(c *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
	}
	h.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades order watchers to websocket connections.
type Handler struct {
	Store *store.Store
}

// OrderWS - websocket for realtime updates on an order. Only the order
// owner, the assigned provider and bidders may connect.
func (h *Handler) OrderWS(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order id"})
	}

	order, err := h.Store.OrderByID(orderID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
	}
	if !isParticipant(order, userID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not a participant in this order"})
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	hb := getHub(orderID)
	hb.register(ws)

	hb.broadcast(wsEvent{Type: "presence_join", Data: echo.Map{"user_id": userID}})

	// Read loop (discard client messages; protocol is server push).
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			hb.unregister(ws)
			_ = ws.Close()
			hb.broadcast(wsEvent{Type: "presence_leave", Data: echo.Map{"user_id": userID}})
			break
		}
	}
	return nil
}

func isParticipant(order store.Order, userID string) bool {
	if order.CustomerID == userID || order.ProviderID == userID {
		return true
	}
	for _, b := range order.Bids {
		if b.ProviderID == userID {
			return true
		}
	}
	return false
}

// BroadcastBidPlaced - publish a new bid event to the order hub.
func BroadcastBidPlaced(orderID string, bid store.Bid) {
	getHub(orderID).broadcast(wsEvent{Type: "bid_placed", Data: bid})
}

// BroadcastBidAccepted - publish the winning bid to the order hub.
func BroadcastBidAccepted(orderID string, bid *store.Bid) {
	getHub(orderID).broadcast(wsEvent{Type: "bid_accepted", Data: bid})
}

// BroadcastOrderCompleted - publish completion to the order hub.
func BroadcastOrderCompleted(orderID string) {
	getHub(orderID).broadcast(wsEvent{Type: "order_completed", Data: echo.Map{"order_id": orderID}})
}

// BroadcastOrderCancelled - publish cancellation to the order hub.
func BroadcastOrderCancelled(orderID, reason string) {
	getHub(orderID).broadcast(wsEvent{Type: "order_cancelled", Data: echo.Map{"order_id": orderID, "reason": reason}})
}
