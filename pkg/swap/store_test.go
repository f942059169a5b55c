package swap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowswap/pkg/quote"
)

func pendingTx(id string) *Transaction {
	return &Transaction{
		ID:        id,
		Status:    StatusPending,
		Quote:     quote.Quote{ID: "q-" + id},
		CreatedAt: time.Now(),
	}
}

func TestStoreInsertAndGet(t *testing.T) {
	store := NewStore()

	require.NoError(t, store.Insert(pendingTx("a")))
	err := store.Insert(pendingTx("a"))
	assert.Error(t, err, "duplicate ids must be rejected")

	got, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestStoreGetReturnsCopy(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(pendingTx("a")))

	got, err := store.Get("a")
	require.NoError(t, err)
	got.Status = StatusFailed

	again, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, again.Status)
}

func TestStoreListInsertionOrder(t *testing.T) {
	store := NewStore()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Insert(pendingTx(id)))
	}

	list := store.List()
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
	assert.Equal(t, "b", list[2].ID)
}

func TestStoreTransitions(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(pendingTx("ok")))
	require.NoError(t, store.Insert(pendingTx("bad")))

	require.NoError(t, store.MarkConfirmed("ok", "0xhash"))
	got, _ := store.Get("ok")
	assert.Equal(t, StatusConfirmed, got.Status)
	assert.Equal(t, "0xhash", got.SettlementHash)

	require.NoError(t, store.MarkFailed("bad", "", "submission failed"))
	got, _ = store.Get("bad")
	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, "submission failed", got.ErrorMessage)

	// Terminal states are final.
	assert.Error(t, store.MarkFailed("ok", "", "late failure"))
	assert.Error(t, store.MarkConfirmed("bad", "0xhash"))

	assert.ErrorIs(t, store.MarkConfirmed("missing", "0x"), ErrTransactionNotFound)
}
