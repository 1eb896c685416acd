package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/progress/domain"
)

func openStore(t *testing.T) *SessionStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "sessions.db"), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	session := &domain.Session{ID: "s1", Username: "alice"}
	require.NoError(t, store.Save(ctx, session))
	assert.False(t, session.ExpiresAt.IsZero())

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, store.Save(ctx, &domain.Session{
		ID:        "old",
		Username:  "alice",
		CreatedAt: past,
		ExpiresAt: past.Add(time.Minute),
	}))
	require.NoError(t, store.Save(ctx, &domain.Session{ID: "fresh", Username: "bob"}))

	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	removed, err := store.Purge(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestSessionStoreExtend(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	require.NoError(t, store.Save(ctx, &domain.Session{ID: "s1", Username: "alice"}))
	require.NoError(t, store.Extend(ctx, "s1", 7200))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.ExpiresAt.After(time.Now().Add(90*time.Minute)))

	assert.ErrorIs(t, store.Extend(ctx, "missing", 60), domain.ErrSessionNotFound)
}
