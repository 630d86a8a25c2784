package store

import "time"

// Order lifecycle statuses. Transitions are strictly forward:
// pending -> in_progress -> completed, with cancellation allowed from
// pending and in_progress only.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// User roles.
const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// Category ids offered when posting an order.
var Categories = []string{
	"cleaning",
	"repair",
	"installation",
	"tourism",
	"apartment_repair",
	"ac_repair",
}

// UserRating is one entry in a user's denormalized ratings list. ID is the
// id of the review the rating came from.
type UserRating struct {
	ID     string `json:"id"`
	Rating int    `json:"rating"`
}

// User is a registered account. Password holds the bcrypt hash and is part
// of the persisted snapshot; API responses must go through Public().
type User struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Password      string       `json:"password"`
	Role          string       `json:"role"`
	Ratings       []UserRating `json:"ratings"`
	AverageRating float64      `json:"averageRating"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// PublicUser is the credential-free view of a User.
type PublicUser struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	RatingsCount  int       `json:"ratings_count"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
}

// Public strips credentials for API responses.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		RatingsCount:  len(u.Ratings),
		AverageRating: u.AverageRating,
		CreatedAt:     u.CreatedAt,
	}
}

// Bid is a provider's offer on an order. Immutable once placed; owned by
// its order.
type Bid struct {
	ID           string    `json:"id"`
	ProviderID   string    `json:"providerId"`
	ProviderName string    `json:"providerName"`
	Amount       float64   `json:"amount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OrderRating records that fromUserId rated toUserId on this order. It is
// the order-side view of a Review and feeds the "already rated" guard.
type OrderRating struct {
	FromUserID string    `json:"fromUserId"`
	ToUserID   string    `json:"toUserId"`
	ReviewID   string    `json:"reviewId"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Order is a customer-posted request for service with a price range.
type Order struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Location    string        `json:"location"`
	MinPrice    float64       `json:"minPrice"`
	MaxPrice    float64       `json:"maxPrice"`
	ExpireDate  string        `json:"expireDate,omitempty"`
	CustomerID  string        `json:"customerId"`
	Status      string        `json:"status"`
	Bids        []Bid         `json:"bids"`
	AcceptedBid *Bid          `json:"acceptedBid,omitempty"`
	ProviderID  string        `json:"providerId,omitempty"`
	Ratings     []OrderRating `json:"ratings,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	AcceptedAt  *time.Time    `json:"acceptedAt,omitempty"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	CancelledAt *time.Time    `json:"cancelledAt,omitempty"`
	CancelReason string       `json:"cancelReason,omitempty"`
}

// Review is the canonical record of a rating between two order
// participants. Immutable once created.
type Review struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"orderId"`
	FromUserID   string    `json:"fromUserId"`
	TargetUserID string    `json:"targetUserId"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Notification is an in-app alert shown on the notifications screen.
type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	Reference string     `json:"reference,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}

// Snapshot is the complete application state persisted as one JSON blob
// under the appData key.
type Snapshot struct {
	Users           []User         `json:"users"`
	Orders          []Order        `json:"orders"`
	Reviews         []Review       `json:"reviews"`
	Notifications   []Notification `json:"notifications"`
	CurrentUser     *User          `json:"currentUser"`
	IsAuthenticated bool           `json:"isAuthenticated"`
}

func validCategory(id string) bool {
	for _, c := range Categories {
		if c == id {
			return true
		}
	}
	return false
}
