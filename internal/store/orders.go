package store

import (
	"time"

	"github.com/google/uuid"
)

// OrderData is the input for CreateOrder.
type OrderData struct {
	Title       string
	Description string
	Category    string
	Location    string
	MinPrice    float64
	MaxPrice    float64
	ExpireDate  string
	CustomerID  string
}

// OrderUpdate carries the fields UpdateOrder may shallow-merge. Nil
// pointers leave the current value untouched.
type OrderUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Location    *string
	MinPrice    *float64
	MaxPrice    *float64
	ExpireDate  *string
}

// BidData is the input for PlaceBid. ProviderName is resolved from the
// user record.
type BidData struct {
	ProviderID string
	Amount     float64
}

// Filter selects orders by exact-match conjunction; empty fields are
// ignored.
type Filter struct {
	Status     string
	CustomerID string
	ProviderID string
	Category   string
}

// CreateOrder appends a new pending order for the given customer.
func (s *Store) CreateOrder(data OrderData) (Order, error) {
	if !validCategory(data.Category) {
		return Order{}, ErrInvalidCategory
	}
	if data.MinPrice <= 0 || data.MaxPrice <= 0 || data.MaxPrice < data.MinPrice {
		return Order{}, ErrInvalidPriceRange
	}

	s.mu.Lock()
	defer s.unlockAndPersist()

	if s.findUserLocked(data.CustomerID) == nil {
		return Order{}, ErrUserNotFound
	}

	order := Order{
		ID:          newOrderID(),
		Title:       data.Title,
		Description: data.Description,
		Category:    data.Category,
		Location:    data.Location,
		MinPrice:    data.MinPrice,
		MaxPrice:    data.MaxPrice,
		ExpireDate:  data.ExpireDate,
		CustomerID:  data.CustomerID,
		Status:      StatusPending,
		Bids:        []Bid{},
		CreatedAt:   time.Now().UTC(),
	}
	s.data.Orders = append(s.data.Orders, order)
	return cloneOrder(order), nil
}

// UpdateOrder shallow-merges the provided fields into the order.
func (s *Store) UpdateOrder(orderID string, upd OrderUpdate) (Order, error) {
	s.mu.Lock()
	defer s.unlockAndPersist()

	order := s.findOrderLocked(orderID)
	if order == nil {
		return Order{}, ErrOrderNotFound
	}
	if upd.Category != nil && !validCategory(*upd.Category) {
		return Order{}, ErrInvalidCategory
	}

	if upd.Title != nil {
		order.Title = *upd.Title
	}
	if upd.Description != nil {
		order.Description = *upd.Description
	}
	if upd.Category != nil {
		order.Category = *upd.Category
	}
	if upd.Location != nil {
		order.Location = *upd.Location
	}
	if upd.MinPrice != nil {
		order.MinPrice = *upd.MinPrice
	}
	if upd.MaxPrice != nil {
		order.MaxPrice = *upd.MaxPrice
	}
	if upd.ExpireDate != nil {
		order.ExpireDate = *upd.ExpireDate
	}
	return cloneOrder(*order), nil
}

// PlaceBid appends a bid to a pending order. The amount must be positive
// and within the order's maximum price, and the bidder must be a provider
// other than the order owner.
func (s *Store) PlaceBid(orderID string, data BidData) (Bid, error) {
	if data.Amount <= 0 {
		return Bid{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.unlockAndPersist()

	order := s.findOrderLocked(orderID)
	if order == nil {
		return Bid{}, ErrOrderNotFound
	}
	provider := s.findUserLocked(data.ProviderID)
	if provider == nil {
		return Bid{}, ErrUserNotFound
	}
	if provider.Role != RoleProvider {
		return Bid{}, ErrNotProvider
	}
	if order.CustomerID == data.ProviderID {
		return Bid{}, ErrSelfBid
	}
	if order.Status != StatusPending {
		return Bid{}, ErrOrderNotPending
	}
	if data.Amount > order.MaxPrice {
		return Bid{}, ErrBidTooHigh
	}

	bid := Bid{
		ID:           uuid.New().String(),
		ProviderID:   data.ProviderID,
		ProviderName: provider.Name,
		Amount:       data.Amount,
		CreatedAt:    time.Now().UTC(),
	}
	order.Bids = append(order.Bids, bid)
	return cloneBid(bid), nil
}

// AcceptBid moves a pending order to in_progress and assigns the bid's
// provider to it.
func (s *Store) AcceptBid(orderID, bidID string) (Order, error) {
	s.mu.Lock()
	defer s.unlockAndPersist()

	order := s.findOrderLocked(orderID)
	if order == nil {
		return Order{}, ErrOrderNotFound
	}
	if order.Status != StatusPending {
		return Order{}, ErrOrderNotPending
	}

	var accepted *Bid
	for i := range order.Bids {
		if order.Bids[i].ID == bidID {
			accepted = &order.Bids[i]
			break
		}
	}
	if accepted == nil {
		return Order{}, ErrBidNotFound
	}

	now := time.Now().UTC()
	ab := cloneBid(*accepted)
	order.Status = StatusInProgress
	order.AcceptedBid = &ab
	order.ProviderID = ab.ProviderID
	order.AcceptedAt = &now
	return cloneOrder(*order), nil
}

// CompleteOrder finishes an in-progress order.
func (s *Store) CompleteOrder(orderID string) (Order, error) {
	s.mu.Lock()
	defer s.unlockAndPersist()

	order := s.findOrderLocked(orderID)
	if order == nil {
		return Order{}, ErrOrderNotFound
	}
	if order.Status != StatusInProgress {
		return Order{}, ErrOrderNotInProgress
	}

	now := time.Now().UTC()
	order.Status = StatusCompleted
	order.CompletedAt = &now
	return cloneOrder(*order), nil
}

// CancelOrder cancels a pending or in-progress order with an optional
// reason. Terminal orders stay terminal.
func (s *Store) CancelOrder(orderID, reason string) (Order, error) {
	s.mu.Lock()
	defer s.unlockAndPersist()

	order := s.findOrderLocked(orderID)
	if order == nil {
		return Order{}, ErrOrderNotFound
	}
	if order.Status != StatusPending && order.Status != StatusInProgress {
		return Order{}, ErrOrderFinished
	}

	now := time.Now().UTC()
	order.Status = StatusCancelled
	order.CancelReason = reason
	order.CancelledAt = &now
	return cloneOrder(*order), nil
}

// OrderByID returns a copy of the order.
func (s *Store) OrderByID(orderID string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if order := s.findOrderLocked(orderID); order != nil {
		return cloneOrder(*order), nil
	}
	return Order{}, ErrOrderNotFound
}

// FilteredOrders returns copies of the orders matching every provided
// filter field, in insertion order.
func (s *Store) FilteredOrders(f Filter) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Order{}
	for i := range s.data.Orders {
		o := &s.data.Orders[i]
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if f.ProviderID != "" && o.ProviderID != f.ProviderID {
			continue
		}
		if f.Category != "" && o.Category != f.Category {
			continue
		}
		out = append(out, cloneOrder(*o))
	}
	return out
}

// unlockAndPersist releases the write lock and schedules a snapshot write.
// Used as a deferred pair with s.mu.Lock() in mutation paths; error
// returns schedule a redundant but harmless write of unchanged state.
func (s *Store) unlockAndPersist() {
	s.mu.Unlock()
	s.markDirty()
}
