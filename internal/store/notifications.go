package store

import (
	"time"

	"github.com/google/uuid"
)

// AddNotification appends an in-app notification for a user.
func (s *Store) AddNotification(userID, ntype, title, body, reference string) (Notification, error) {
	s.mu.Lock()
	defer s.unlockAndPersist()

	if s.findUserLocked(userID) == nil {
		return Notification{}, ErrUserNotFound
	}

	n := Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      ntype,
		Title:     title,
		Body:      body,
		Reference: reference,
		CreatedAt: time.Now().UTC(),
	}
	s.data.Notifications = append(s.data.Notifications, n)
	return cloneNotification(n), nil
}

// NotificationsForUser returns a user's notifications, newest first.
func (s *Store) NotificationsForUser(userID string) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Notification{}
	for i := len(s.data.Notifications) - 1; i >= 0; i-- {
		if s.data.Notifications[i].UserID == userID {
			out = append(out, cloneNotification(s.data.Notifications[i]))
		}
	}
	return out
}

// MarkNotificationRead stamps readAt on an unread notification owned by
// the user.
func (s *Store) MarkNotificationRead(userID, notificationID string) error {
	s.mu.Lock()
	defer s.unlockAndPersist()

	for i := range s.data.Notifications {
		n := &s.data.Notifications[i]
		if n.ID == notificationID && n.UserID == userID {
			if n.ReadAt == nil {
				now := time.Now().UTC()
				n.ReadAt = &now
			}
			return nil
		}
	}
	return ErrNotificationNotFound
}
