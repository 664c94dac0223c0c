package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oekaki/charabot/pkg/session"
)

func newStore(t *testing.T) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore(session.Config{})
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestMemoryStore_GetCreatesDefault(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	sess, err := store.Get(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, "U1", sess.UserID)
	assert.Equal(t, session.StateAwaitingImage, sess.State)
	assert.Equal(t, session.ModeUnset, sess.Mode)
	assert.True(t, sess.Image.IsZero())
}

func TestMemoryStore_GetReturnsMutableHandle(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	sess, err := store.Get(ctx, "U1")
	require.NoError(t, err)
	sess.State = session.StateWaitingForHP
	sess.Attrs.Name = "yusha"

	again, err := store.Get(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, session.StateWaitingForHP, again.State)
	assert.Equal(t, "yusha", again.Attrs.Name)
}

func TestMemoryStore_DistinctUsersIsolated(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	a, err := store.Get(ctx, "U1")
	require.NoError(t, err)
	a.State = session.StateWaitingForLuck
	a.Attrs.HP = 99

	b, err := store.Get(ctx, "U2")
	require.NoError(t, err)
	assert.Equal(t, session.StateAwaitingImage, b.State)
	assert.Zero(t, b.Attrs.HP)
}

func TestMemoryStore_ClearIsIdempotent(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "U1")
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx, "U1"))
	require.NoError(t, store.Clear(ctx, "U1"))
	require.NoError(t, store.Clear(ctx, "never-existed"))

	sess, err := store.Get(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, session.StateAwaitingImage, sess.State)
}

func TestMemoryStore_EmptyUserID(t *testing.T) {
	store := newStore(t)

	_, err := store.Get(context.Background(), "")
	assert.ErrorIs(t, err, session.ErrEmptyUserID)
}

func TestMemoryStore_Len(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, _ = store.Get(ctx, "U1")
	_, _ = store.Get(ctx, "U2")

	n, err = store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMemoryStore_DeleteIdle(t *testing.T) {
	store := session.NewMemoryStore(session.Config{IdleTTL: 10 * time.Millisecond})
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	stale, err := store.Get(ctx, "stale")
	require.NoError(t, err)
	stale.LastActivityAt = time.Now().Add(-time.Minute)

	fresh, err := store.Get(ctx, "fresh")
	require.NoError(t, err)
	fresh.Touch()

	require.NoError(t, store.DeleteIdle(ctx))

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemoryStore_ConcurrentDistinctUsers(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := string(rune('A' + n%26))
			sess, err := store.Get(ctx, userID)
			if assert.NoError(t, err) {
				sess.Touch()
			}
		}(i)
	}
	wg.Wait()

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 26, n)
}

func TestAttributes_StatTotal(t *testing.T) {
	attrs := session.Attributes{HP: 50, Attack: 40, Defense: 30, Speed: 30, Magic: 30, Luck: 20}
	assert.Equal(t, 200, attrs.StatTotal())
}
