package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/Tchybbi/Smatico/internal/storage"
)

// Storage keys, matching the layout the mobile client persisted.
const (
	KeyAppData    = "appData"
	KeySession    = "userSession"
	KeyOnboarding = "hasSeenOnboarding"
)

type session struct {
	UserID string `json:"userId"`
}

// Store is the single source of truth for all entities. Mutations commit
// to the in-memory snapshot synchronously and are mirrored to storage by a
// write-behind goroutine; callers never wait for the write. Close drains
// the queue so a clean shutdown is durable.
type Store struct {
	mu   sync.RWMutex
	data Snapshot

	kv storage.KV

	dirty  chan struct{}
	done   chan struct{}
	closeOnce sync.Once
}

// New creates a Store over the given storage backend and starts the
// persistence worker. Call Load before serving traffic.
func New(kv storage.KV) *Store {
	s := &Store{
		kv:    kv,
		data:  emptySnapshot(),
		dirty: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	go s.persistLoop()
	return s
}

func emptySnapshot() Snapshot {
	return Snapshot{
		Users:         []User{},
		Orders:        []Order{},
		Reviews:       []Review{},
		Notifications: []Notification{},
	}
}

// Load restores the snapshot and the device session from storage. A missing
// appData key initializes empty state and writes it back, mirroring the
// first-launch behavior of the client.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, KeyAppData)
	if err != nil {
		return fmt.Errorf("load app data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ok {
		var snap Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			return fmt.Errorf("decode app data: %w", err)
		}
		if snap.Users == nil {
			snap.Users = []User{}
		}
		if snap.Orders == nil {
			snap.Orders = []Order{}
		}
		if snap.Reviews == nil {
			snap.Reviews = []Review{}
		}
		if snap.Notifications == nil {
			snap.Notifications = []Notification{}
		}
		s.data = snap
	} else {
		s.data = emptySnapshot()
		b, err := json.Marshal(s.data)
		if err != nil {
			return fmt.Errorf("encode initial app data: %w", err)
		}
		if err := s.kv.Put(ctx, KeyAppData, b); err != nil {
			return fmt.Errorf("write initial app data: %w", err)
		}
	}

	// Restore the device session if the pointed-at user still exists.
	s.data.CurrentUser = nil
	s.data.IsAuthenticated = false
	rawSess, ok, err := s.kv.Get(ctx, KeySession)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if ok {
		var sess session
		if err := json.Unmarshal(rawSess, &sess); err != nil {
			return fmt.Errorf("decode session: %w", err)
		}
		if u := s.findUserLocked(sess.UserID); u != nil {
			cu := cloneUser(*u)
			s.data.CurrentUser = &cu
			s.data.IsAuthenticated = true
		}
	}
	return nil
}

// Close flushes pending writes and stops the persistence worker. The
// storage backend itself is closed by the caller.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.persistNow()
	})
	return err
}

// markDirty schedules a snapshot write. The channel is buffered with one
// slot so back-to-back mutations coalesce into a single write.
func (s *Store) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

func (s *Store) persistLoop() {
	for {
		select {
		case <-s.dirty:
			if err := s.persistNow(); err != nil {
				log.Printf("store: persist app data: %v", err)
			}
		case <-s.done:
			return
		}
	}
}

func (s *Store) persistNow() error {
	s.mu.RLock()
	b, err := json.Marshal(s.data)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return s.kv.Put(context.Background(), KeyAppData, b)
}

// saveSession writes the session pointer separately from the main
// snapshot. Failures are logged only; auth operations never fail on a
// storage write.
func (s *Store) saveSession(userID string) {
	b, _ := json.Marshal(session{UserID: userID})
	if err := s.kv.Put(context.Background(), KeySession, b); err != nil {
		log.Printf("store: save session: %v", err)
	}
}

func (s *Store) clearSession() {
	if err := s.kv.Delete(context.Background(), KeySession); err != nil {
		log.Printf("store: clear session: %v", err)
	}
}

// HasSeenOnboarding reports whether the onboarding flow was completed on
// this device.
func (s *Store) HasSeenOnboarding(ctx context.Context) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, KeyOnboarding)
	if err != nil {
		return false, err
	}
	return ok && string(raw) == "true", nil
}

// CompleteOnboarding marks the onboarding flow as seen.
func (s *Store) CompleteOnboarding(ctx context.Context) error {
	return s.kv.Put(ctx, KeyOnboarding, []byte("true"))
}

// Snapshot returns a deep copy of the full application state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.data)
}

// Stats is the back-office counters view.
type Stats struct {
	Users         int `json:"users"`
	Orders        int `json:"orders"`
	Reviews       int `json:"reviews"`
	Notifications int `json:"notifications"`
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Users:         len(s.data.Users),
		Orders:        len(s.data.Orders),
		Reviews:       len(s.data.Reviews),
		Notifications: len(s.data.Notifications),
	}
}

// CurrentUser returns the device-session user, if any.
func (s *Store) CurrentUser() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.CurrentUser == nil {
		return User{}, false
	}
	return cloneUser(*s.data.CurrentUser), true
}

// UserByID returns a copy of the user.
func (s *Store) UserByID(id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u := s.findUserLocked(id); u != nil {
		return cloneUser(*u), nil
	}
	return User{}, ErrUserNotFound
}

// Users returns copies of all users in registration order.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, len(s.data.Users))
	for i, u := range s.data.Users {
		out[i] = cloneUser(u)
	}
	return out
}

func (s *Store) findUserLocked(id string) *User {
	for i := range s.data.Users {
		if s.data.Users[i].ID == id {
			return &s.data.Users[i]
		}
	}
	return nil
}

func (s *Store) findOrderLocked(id string) *Order {
	for i := range s.data.Orders {
		if s.data.Orders[i].ID == id {
			return &s.data.Orders[i]
		}
	}
	return nil
}

// newOrderID keeps the ORD-<rand4>-<rand2> format the persisted snapshots
// already contain.
func newOrderID() string {
	return fmt.Sprintf("ORD-%d-%d", rand.Intn(10000), rand.Intn(100))
}
