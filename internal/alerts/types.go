package alerts

import "time"

// Task type constants
const (
	TaskWelcome        = "notify:welcome"
	TaskBidPlaced      = "notify:bid_placed"
	TaskBidAccepted    = "notify:bid_accepted"
	TaskOrderCompleted = "notify:order_completed"
	TaskOrderCancelled = "notify:order_cancelled"
	TaskRatingReceived = "notify:rating_received"
)

// NotificationPayload is the envelope every notification task carries. The
// worker turns it into an in-app notification for UserID.
type NotificationPayload struct {
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Reference string    `json:"reference,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}
