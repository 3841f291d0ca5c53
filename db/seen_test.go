package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"sportsdigest/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *db.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seen.db")
	require.NoError(t, db.Migrate(path))

	store, err := db.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestHasSeenUnknownGUID(t *testing.T) {
	store := openStore(t)

	seen, err := store.HasSeen(context.Background(), "never-marked")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestMarkThenHasSeen(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.MarkSeen(ctx, "abc12345"))

	seen, err := store.HasSeen(ctx, "abc12345")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = store.HasSeen(ctx, "other")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestMarkSeenTwice(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.MarkSeen(ctx, "abc12345"))
	require.NoError(t, store.MarkSeen(ctx, "abc12345"), "marking again is a no-op")
}

func TestMigrateIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.db")
	require.NoError(t, db.Migrate(path))
	require.NoError(t, db.Migrate(path), "rerunning migrations is safe")
}
