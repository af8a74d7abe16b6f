package kvstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/apperrors"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/ports"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/repositories/kvstore"
	"github.com/mytechsolutions09/artistic-pro-admin/pkg/storage"
)

func newBadgerStore(t *testing.T) *kvstore.BadgerStore {
	t.Helper()
	db, err := storage.OpenBadger(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return kvstore.NewBadgerStore(db)
}

// Both implementations must satisfy the same contract, so each behavior is
// asserted against both.
func eachStore(t *testing.T, fn func(t *testing.T, store ports.KVStore)) {
	t.Run("badger", func(t *testing.T) { fn(t, newBadgerStore(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, kvstore.NewMemoryStore()) })
}

func TestKVStore_RoundTrip(t *testing.T) {
	eachStore(t, func(t *testing.T, store ports.KVStore) {
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "currency_settings", []byte(`{"defaultCurrency":"INR"}`)))

		got, err := store.Get(ctx, "currency_settings")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"defaultCurrency":"INR"}`), got)
	})
}

func TestKVStore_MissReturnsNotFound(t *testing.T) {
	eachStore(t, func(t *testing.T, store ports.KVStore) {
		_, err := store.Get(context.Background(), "no_such_key")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestKVStore_OverwriteReplacesValue(t *testing.T) {
	eachStore(t, func(t *testing.T, store ports.KVStore) {
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "user_preferred_currency", []byte("USD")))
		require.NoError(t, store.Set(ctx, "user_preferred_currency", []byte("EUR")))

		got, err := store.Get(ctx, "user_preferred_currency")
		require.NoError(t, err)
		assert.Equal(t, "EUR", string(got))
	})
}

func TestKVStore_DeleteIsIdempotent(t *testing.T) {
	eachStore(t, func(t *testing.T, store ports.KVStore) {
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "exchange_rates", []byte(`{}`)))
		require.NoError(t, store.Delete(ctx, "exchange_rates"))

		_, err := store.Get(ctx, "exchange_rates")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		// Deleting an absent key is not an error.
		assert.NoError(t, store.Delete(ctx, "exchange_rates"))
	})
}

func TestBadgerStore_ValuesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	db, err := storage.OpenBadger(dir)
	require.NoError(t, err)
	store := kvstore.NewBadgerStore(db)
	require.NoError(t, store.Set(ctx, "currency_settings", []byte(`{"baseCurrency":"INR"}`)))
	require.NoError(t, store.Close())

	db, err = storage.OpenBadger(dir)
	require.NoError(t, err)
	defer storage.CloseBadger(db)

	got, err := kvstore.NewBadgerStore(db).Get(ctx, "currency_settings")
	require.NoError(t, err)
	assert.JSONEq(t, `{"baseCurrency":"INR"}`, string(got))
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	original := []byte("USD")
	require.NoError(t, store.Set(ctx, "user_preferred_currency", original))
	original[0] = 'X'

	got, err := store.Get(ctx, "user_preferred_currency")
	require.NoError(t, err)
	assert.Equal(t, "USD", string(got), "stored value is insulated from caller mutation")

	got[0] = 'Y'
	again, err := store.Get(ctx, "user_preferred_currency")
	require.NoError(t, err)
	assert.Equal(t, "USD", string(again))
}
