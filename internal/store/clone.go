package store

import "time"

// Deep-copy helpers. Every read path hands out copies so callers can never
// mutate the snapshot through a returned value.

func cloneUser(u User) User {
	out := u
	out.Ratings = append([]UserRating(nil), u.Ratings...)
	return out
}

func cloneBid(b Bid) Bid { return b }

func cloneOrder(o Order) Order {
	out := o
	out.Bids = append([]Bid(nil), o.Bids...)
	out.Ratings = append([]OrderRating(nil), o.Ratings...)
	if o.AcceptedBid != nil {
		ab := cloneBid(*o.AcceptedBid)
		out.AcceptedBid = &ab
	}
	out.AcceptedAt = cloneTime(o.AcceptedAt)
	out.CompletedAt = cloneTime(o.CompletedAt)
	out.CancelledAt = cloneTime(o.CancelledAt)
	return out
}

func cloneNotification(n Notification) Notification {
	out := n
	out.ReadAt = cloneTime(n.ReadAt)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneSnapshot(s Snapshot) Snapshot {
	out := Snapshot{
		Users:           make([]User, len(s.Users)),
		Orders:          make([]Order, len(s.Orders)),
		Reviews:         append([]Review(nil), s.Reviews...),
		Notifications:   make([]Notification, len(s.Notifications)),
		IsAuthenticated: s.IsAuthenticated,
	}
	if s.Reviews == nil {
		out.Reviews = []Review{}
	}
	for i, u := range s.Users {
		out.Users[i] = cloneUser(u)
	}
	for i, o := range s.Orders {
		out.Orders[i] = cloneOrder(o)
	}
	for i, n := range s.Notifications {
		out.Notifications[i] = cloneNotification(n)
	}
	if s.CurrentUser != nil {
		cu := cloneUser(*s.CurrentUser)
		out.CurrentUser = &cu
	}
	return out
}
