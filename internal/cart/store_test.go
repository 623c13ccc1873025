package cart_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/promolab-cl/backend-promolab/internal/cart"
)

func TestStoreLifecycle(t *testing.T) {
	store := cart.NewStore(time.Hour, nil)

	c := store.Create()
	require.NotEmpty(t, c.ID)
	require.Empty(t, c.Lines)

	got, ok := store.Get(c.ID)
	require.True(t, ok)
	require.Equal(t, c.ID, got.ID)

	_, ok = store.Get("no-such-cart")
	require.False(t, ok)
}

func TestStoreDuplicateLinesAreKept(t *testing.T) {
	store := cart.NewStore(time.Hour, nil)
	c := store.Create()

	_, ok := store.AddLine(c.ID, cart.Line{ProductID: 7, Quantity: 2})
	require.True(t, ok)
	got, ok := store.AddLine(c.ID, cart.Line{ProductID: 7, Quantity: 5})
	require.True(t, ok)

	require.Len(t, got.Lines, 2)
	require.Equal(t, 2, got.Lines[0].Quantity)
	require.Equal(t, 5, got.Lines[1].Quantity)
}

func TestStoreRemoveDropsAllMatchingLines(t *testing.T) {
	store := cart.NewStore(time.Hour, nil)
	c := store.Create()
	store.AddLine(c.ID, cart.Line{ProductID: 7, Quantity: 2})
	store.AddLine(c.ID, cart.Line{ProductID: 9, Quantity: 1})
	store.AddLine(c.ID, cart.Line{ProductID: 7, Quantity: 5})

	got, ok := store.RemoveLines(c.ID, 7)
	require.True(t, ok)
	require.Len(t, got.Lines, 1)
	require.Equal(t, int64(9), got.Lines[0].ProductID)
}

func TestStoreClearKeepsCartAlive(t *testing.T) {
	store := cart.NewStore(time.Hour, nil)
	c := store.Create()
	store.AddLine(c.ID, cart.Line{ProductID: 7, Quantity: 2})

	got, ok := store.Clear(c.ID)
	require.True(t, ok)
	require.Empty(t, got.Lines)

	_, ok = store.Get(c.ID)
	require.True(t, ok)
}

func TestStoreExpiry(t *testing.T) {
	clock := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	store := cart.NewStore(time.Hour, now)

	c := store.Create()
	clock = clock.Add(30 * time.Minute)
	_, ok := store.Get(c.ID)
	require.True(t, ok, "half the TTL in, the cart is alive")

	// The read slid the deadline, so another 59 minutes is still fine.
	clock = clock.Add(59 * time.Minute)
	_, ok = store.Get(c.ID)
	require.True(t, ok)

	clock = clock.Add(2 * time.Hour)
	_, ok = store.Get(c.ID)
	require.False(t, ok, "past the TTL the cart reads as missing")
}

func TestStoreSweep(t *testing.T) {
	clock := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	store := cart.NewStore(time.Hour, now)

	store.Create()
	store.Create()
	require.Equal(t, 2, store.Len())

	clock = clock.Add(2 * time.Hour)
	require.Equal(t, 2, store.Sweep())
	require.Equal(t, 0, store.Len())
}

func TestStoreSnapshotsAreIsolated(t *testing.T) {
	store := cart.NewStore(time.Hour, nil)
	c := store.Create()
	got, _ := store.AddLine(c.ID, cart.Line{ProductID: 7, Quantity: 2})

	got.Lines[0].Quantity = 999
	fresh, _ := store.Get(c.ID)
	require.Equal(t, 2, fresh.Lines[0].Quantity)
}
