package store

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// ReviewData is the input for AddReview.
type ReviewData struct {
	OrderID      string
	FromUserID   string
	TargetUserID string
	Rating       int
	Comment      string
}

// RatingData is the input for RateOrderParticipant.
type RatingData struct {
	FromUserID string
	ToUserID   string
	Rating     int
	Comment    string
}

// AddReview creates a review and recomputes the target user's ratings
// list and average. The review collection, the user's ratings and the
// order's ratings are three views of the same fact; this updates the
// first two, RateOrderParticipant adds the third.
func (s *Store) AddReview(data ReviewData) (Review, error) {
	s.mu.Lock()
	defer s.unlockAndPersist()
	return s.addReviewLocked(data)
}

func (s *Store) addReviewLocked(data ReviewData) (Review, error) {
	if data.Rating < 1 || data.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	target := s.findUserLocked(data.TargetUserID)
	if target == nil {
		return Review{}, ErrUserNotFound
	}

	review := Review{
		ID:           uuid.New().String(),
		OrderID:      data.OrderID,
		FromUserID:   data.FromUserID,
		TargetUserID: data.TargetUserID,
		Rating:       data.Rating,
		Comment:      data.Comment,
		CreatedAt:    time.Now().UTC(),
	}
	s.data.Reviews = append(s.data.Reviews, review)

	target.Ratings = append(target.Ratings, UserRating{ID: review.ID, Rating: review.Rating})
	var sum int
	for _, r := range target.Ratings {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(target.Ratings))
	target.AverageRating = math.Round(avg*10) / 10

	return review, nil
}

// RateOrderParticipant composes AddReview with the order-side rating
// record. Only participants of a completed order may rate, once each.
func (s *Store) RateOrderParticipant(orderID string, data RatingData) (Review, error) {
	s.mu.Lock()
	defer s.unlockAndPersist()

	order := s.findOrderLocked(orderID)
	if order == nil {
		return Review{}, ErrOrderNotFound
	}
	if order.Status != StatusCompleted {
		return Review{}, ErrOrderNotCompleted
	}
	if data.FromUserID != order.CustomerID && data.FromUserID != order.ProviderID {
		return Review{}, ErrNotParticipant
	}
	for _, r := range order.Ratings {
		if r.FromUserID == data.FromUserID {
			return Review{}, ErrAlreadyRated
		}
	}

	review, err := s.addReviewLocked(ReviewData{
		OrderID:      orderID,
		FromUserID:   data.FromUserID,
		TargetUserID: data.ToUserID,
		Rating:       data.Rating,
		Comment:      data.Comment,
	})
	if err != nil {
		return Review{}, err
	}

	order.Ratings = append(order.Ratings, OrderRating{
		FromUserID: data.FromUserID,
		ToUserID:   data.ToUserID,
		ReviewID:   review.ID,
		Rating:     review.Rating,
		CreatedAt:  review.CreatedAt,
	})
	return review, nil
}

// ReviewsForUser returns the reviews targeting a user, newest first.
func (s *Store) ReviewsForUser(targetUserID string) []Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Review{}
	for i := len(s.data.Reviews) - 1; i >= 0; i-- {
		if s.data.Reviews[i].TargetUserID == targetUserID {
			out = append(out, s.data.Reviews[i])
		}
	}
	return out
}
