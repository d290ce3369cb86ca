package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "nested", "kisan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLocaleStoreEmpty(t *testing.T) {
	store := NewLocaleStore(newTestDB(t), "client-a")

	code, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, code)
}

func TestLocaleStoreSetOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewLocaleStore(newTestDB(t), "client-a")

	require.NoError(t, store.Set(ctx, "hi"))
	require.NoError(t, store.Set(ctx, "mr"))

	code, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mr", code)
}

func TestLocaleStoreIsolatesClients(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	require.NoError(t, NewLocaleStore(db, "client-a").Set(ctx, "hi"))

	code, err := NewLocaleStore(db, "client-b").Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, code)
	assert.Equal(t, "client-b", NewLocaleStore(db, "client-b").ClientID())
}

func TestLocaleStoreClosedDB(t *testing.T) {
	db := newTestDB(t)
	store := NewLocaleStore(db, "client-a")
	require.NoError(t, db.Close())

	_, err := store.Get(context.Background())
	assert.Error(t, err)
	assert.Error(t, store.Set(context.Background(), "hi"))
}
