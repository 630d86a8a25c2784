package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tchybbi/Smatico/internal/storage"
)

func TestLoadInitializesEmptySnapshot(t *testing.T) {
	kv := storage.NewMemory()
	st := New(kv)
	require.NoError(t, st.Load(context.Background()))
	defer st.Close()

	raw, ok, err := kv.Get(context.Background(), KeyAppData)
	require.NoError(t, err)
	require.True(t, ok, "first launch writes the empty snapshot back")

	var snap Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Empty(t, snap.Users)
	assert.False(t, snap.IsAuthenticated)
}

func TestSessionPointerPersisted(t *testing.T) {
	kv := storage.NewMemory()
	st := New(kv)
	require.NoError(t, st.Load(context.Background()))
	defer st.Close()

	u, err := st.SignUp(SignUpData{Name: "Amina", Email: "a@b.com", Password: "secret123", Role: RoleCustomer})
	require.NoError(t, err)

	raw, ok, err := kv.Get(context.Background(), KeySession)
	require.NoError(t, err)
	require.True(t, ok)
	var sess session
	require.NoError(t, json.Unmarshal(raw, &sess))
	assert.Equal(t, u.ID, sess.UserID)

	st.SignOut()
	_, ok, err = kv.Get(context.Background(), KeySession)
	require.NoError(t, err)
	assert.False(t, ok, "sign-out removes the session pointer")
}

func TestSessionRestoredOnLoad(t *testing.T) {
	kv := storage.NewMemory()
	st := New(kv)
	require.NoError(t, st.Load(context.Background()))

	u, err := st.SignUp(SignUpData{Name: "Amina", Email: "a@b.com", Password: "secret123", Role: RoleCustomer})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	restored := New(kv)
	require.NoError(t, restored.Load(context.Background()))
	defer restored.Close()

	cu, ok := restored.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, u.ID, cu.ID)
}

func TestStaleSessionIgnoredOnLoad(t *testing.T) {
	kv := storage.NewMemory()
	b, _ := json.Marshal(session{UserID: "gone"})
	require.NoError(t, kv.Put(context.Background(), KeySession, b))

	st := New(kv)
	require.NoError(t, st.Load(context.Background()))
	defer st.Close()

	_, ok := st.CurrentUser()
	assert.False(t, ok)
}

func TestSnapshotRoundTrip(t *testing.T) {
	kv := storage.NewMemory()
	st := New(kv)
	require.NoError(t, st.Load(context.Background()))

	customer, err := st.SignUp(SignUpData{Name: "Amina", Email: "a@b.com", Password: "secret123", Role: RoleCustomer})
	require.NoError(t, err)
	provider, err := st.SignUp(SignUpData{Name: "Bilal", Email: "b@b.com", Password: "secret123", Role: RoleProvider})
	require.NoError(t, err)

	// Session follows the customer; the provider record mutates below and
	// a stale currentUser copy would break byte-identity.
	_, err = st.SignIn("a@b.com", "secret123")
	require.NoError(t, err)

	order, err := st.CreateOrder(OrderData{Title: "Deep clean", Category: "cleaning", MinPrice: 100, MaxPrice: 200, CustomerID: customer.ID})
	require.NoError(t, err)
	bid, err := st.PlaceBid(order.ID, BidData{ProviderID: provider.ID, Amount: 150})
	require.NoError(t, err)
	_, err = st.AcceptBid(order.ID, bid.ID)
	require.NoError(t, err)
	_, err = st.CompleteOrder(order.ID)
	require.NoError(t, err)
	_, err = st.RateOrderParticipant(order.ID, RatingData{FromUserID: customer.ID, ToUserID: provider.ID, Rating: 5})
	require.NoError(t, err)

	require.NoError(t, st.Close())

	persisted, ok, err := kv.Get(context.Background(), KeyAppData)
	require.NoError(t, err)
	require.True(t, ok)

	restored := New(kv)
	require.NoError(t, restored.Load(context.Background()))
	defer restored.Close()

	again, err := json.Marshal(restored.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, string(persisted), string(again), "persist/restore/persist is byte-identical")
}

func TestCloseFlushesPendingWrites(t *testing.T) {
	kv := storage.NewMemory()
	st := New(kv)
	require.NoError(t, st.Load(context.Background()))

	customer, err := st.SignUp(SignUpData{Name: "Amina", Email: "a@b.com", Password: "secret123", Role: RoleCustomer})
	require.NoError(t, err)
	_, err = st.CreateOrder(OrderData{Title: "Deep clean", Category: "cleaning", MinPrice: 100, MaxPrice: 200, CustomerID: customer.ID})
	require.NoError(t, err)

	require.NoError(t, st.Close())

	raw, ok, err := kv.Get(context.Background(), KeyAppData)
	require.NoError(t, err)
	require.True(t, ok)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Len(t, snap.Users, 1)
	assert.Len(t, snap.Orders, 1)
}

func TestOnboardingMarker(t *testing.T) {
	kv := storage.NewMemory()
	st := New(kv)
	require.NoError(t, st.Load(context.Background()))
	defer st.Close()

	seen, err := st.HasSeenOnboarding(context.Background())
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, st.CompleteOnboarding(context.Background()))

	seen, err = st.HasSeenOnboarding(context.Background())
	require.NoError(t, err)
	assert.True(t, seen)

	raw, ok, err := kv.Get(context.Background(), KeyOnboarding)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", string(raw))
}
