package waiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAndList(t *testing.T) {
	store := NewStore()

	first := store.Create("rest-1", 5, CallTypeWaiter, "", "")
	time.Sleep(2 * time.Millisecond)
	second := store.Create("rest-1", 7, CallTypePayment, "hesap lütfen", "")
	store.Create("rest-2", 3, CallTypeWaiter, "", "")

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, StatusActive, first.Status)

	calls := store.ListActive("rest-1")
	require.Len(t, calls, 2)
	// Yeniden eskiye sıralı
	assert.Equal(t, second.ID, calls[0].ID)
	assert.Equal(t, first.ID, calls[1].ID)
}

func TestStoreResolve(t *testing.T) {
	store := NewStore()
	call := store.Create("rest-1", 5, CallTypeWaiter, "", "")

	resolved, ok := store.Resolve(call.ID)
	require.True(t, ok)
	require.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, StatusResolved, resolved.Status)

	// Çözülen çağrı aktif listeden düşer
	assert.Empty(t, store.ListActive("rest-1"))

	// İkinci çözme zaman damgasını değiştirmez
	stamp := *resolved.ResolvedAt
	again, ok := store.Resolve(call.ID)
	require.True(t, ok)
	assert.Equal(t, stamp, *again.ResolvedAt)

	_, ok = store.Resolve("call_yok")
	assert.False(t, ok)
}

func TestStoreDelete(t *testing.T) {
	store := NewStore()
	call := store.Create("rest-1", 5, CallTypeWaiter, "", "")

	assert.True(t, store.Delete(call.ID))
	assert.False(t, store.Delete(call.ID))
	assert.Empty(t, store.ListActive("rest-1"))
}

func TestStorePruneResolved(t *testing.T) {
	store := NewStore()

	old := store.Create("rest-1", 1, CallTypeWaiter, "", "")
	store.Resolve(old.ID)
	past := time.Now().Add(-2 * time.Hour)
	store.calls[old.ID].ResolvedAt = &past

	fresh := store.Create("rest-1", 2, CallTypeWaiter, "", "")
	store.Resolve(fresh.ID)
	active := store.Create("rest-1", 3, CallTypeWaiter, "", "")

	removed := store.PruneResolved(time.Hour)
	assert.Equal(t, 1, removed)

	_, oldExists := store.calls[old.ID]
	assert.False(t, oldExists)
	_, freshExists := store.calls[fresh.ID]
	assert.True(t, freshExists)
	_, activeExists := store.calls[active.ID]
	assert.True(t, activeExists)
}
