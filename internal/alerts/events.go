package alerts

import (
	"fmt"
	"time"

	"github.com/Tchybbi/Smatico/internal/store"
)

// Welcome greets a new user on their notifications screen.
func (d *Dispatcher) Welcome(user store.User) {
	d.dispatch(TaskWelcome, NotificationPayload{
		UserID: user.ID,
		Type:   "welcome",
		Title:  fmt.Sprintf("Welcome to Smatico, %s!", user.Name),
		Body:   "Post an order or start bidding to get going.",
		SentAt: time.Now().UTC(),
	})
}

// BidPlaced notifies the order owner about a new bid.
func (d *Dispatcher) BidPlaced(order store.Order, bid store.Bid) {
	d.dispatch(TaskBidPlaced, NotificationPayload{
		UserID:    order.CustomerID,
		Type:      "bid_placed",
		Title:     fmt.Sprintf("New bid on %q", order.Title),
		Body:      fmt.Sprintf("%s offered %.0f AED.", bid.ProviderName, bid.Amount),
		Reference: order.ID,
		SentAt:    time.Now().UTC(),
	})
}

// BidAccepted notifies the provider whose bid won.
func (d *Dispatcher) BidAccepted(order store.Order) {
	if order.AcceptedBid == nil {
		return
	}
	d.dispatch(TaskBidAccepted, NotificationPayload{
		UserID:    order.AcceptedBid.ProviderID,
		Type:      "bid_accepted",
		Title:     fmt.Sprintf("Your bid on %q was accepted", order.Title),
		Body:      fmt.Sprintf("The order is now in progress at %.0f AED.", order.AcceptedBid.Amount),
		Reference: order.ID,
		SentAt:    time.Now().UTC(),
	})
}

// OrderCompleted notifies the assigned provider.
func (d *Dispatcher) OrderCompleted(order store.Order) {
	if order.ProviderID == "" {
		return
	}
	d.dispatch(TaskOrderCompleted, NotificationPayload{
		UserID:    order.ProviderID,
		Type:      "order_completed",
		Title:     fmt.Sprintf("Order %q completed", order.Title),
		Body:      "The customer marked the order as completed. You can now be rated.",
		Reference: order.ID,
		SentAt:    time.Now().UTC(),
	})
}

// OrderCancelled notifies the assigned provider, if any.
func (d *Dispatcher) OrderCancelled(order store.Order) {
	if order.ProviderID == "" {
		return
	}
	body := "The order was cancelled."
	if order.CancelReason != "" {
		body = fmt.Sprintf("The order was cancelled: %s", order.CancelReason)
	}
	d.dispatch(TaskOrderCancelled, NotificationPayload{
		UserID:    order.ProviderID,
		Type:      "order_cancelled",
		Title:     fmt.Sprintf("Order %q cancelled", order.Title),
		Body:      body,
		Reference: order.ID,
		SentAt:    time.Now().UTC(),
	})
}

// RatingReceived notifies the rated user.
func (d *Dispatcher) RatingReceived(review store.Review) {
	d.dispatch(TaskRatingReceived, NotificationPayload{
		UserID:    review.TargetUserID,
		Type:      "rating_received",
		Title:     "You received a new rating",
		Body:      fmt.Sprintf("Someone rated you %d out of 5.", review.Rating),
		Reference: review.OrderID,
		SentAt:    time.Now().UTC(),
	})
}
