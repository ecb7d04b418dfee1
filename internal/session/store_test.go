package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regadmin/dashboard/internal/crypto"
	"regadmin/dashboard/internal/logging"
	"regadmin/dashboard/internal/model"
)

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, error)                { return "", f.err }
func (f failingKV) Set(context.Context, string, string, time.Duration) error { return f.err }
func (f failingKV) Delete(context.Context, ...string) error                   { return f.err }

func newTestStore() (*Store, *MemoryKV, *MemoryKV) {
	durable, sess := NewMemoryKV(), NewMemoryKV()
	return NewStore(durable, sess, time.Hour, time.Minute, logging.Discard()), durable, sess
}

func TestGetPrefersDurableTier(t *testing.T) {
	store, durable, sess := newTestStore()
	ctx := WithID(context.Background(), "sid-1")
	key := tokenKey(crypto.HashSessionID("sid-1"))

	require.NoError(t, sess.Set(ctx, key, "session-token", 0))
	token, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "session-token", token)

	require.NoError(t, durable.Set(ctx, key, "durable-token", 0))
	token, ok = store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "durable-token", token)
}

func TestGetSkipsEmptyAndFailingTiers(t *testing.T) {
	sess := NewMemoryKV()
	store := NewStore(failingKV{err: errors.New("redis down")}, sess, time.Hour, time.Minute, logging.Discard())
	ctx := WithID(context.Background(), "sid-2")

	_, ok := store.Get(ctx)
	assert.False(t, ok)

	require.NoError(t, sess.Set(ctx, tokenKey(crypto.HashSessionID("sid-2")), "tok", 0))
	token, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok", token)
}

func TestSetStoresUserInChosenTierAndDropsOther(t *testing.T) {
	store, durable, sess := newTestStore()
	ctx := WithID(context.Background(), "sid-3")
	user := model.User{ID: "u1", Email: "ops@example.local"}

	require.NoError(t, store.Set(ctx, "durable-token", user, Durable))
	assert.Equal(t, 2, durable.Len())

	require.NoError(t, store.Set(ctx, "session-token", user, Session))
	assert.Zero(t, durable.Len())
	assert.Equal(t, 2, sess.Len())

	token, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "session-token", token)

	cached, ok := store.User(ctx)
	require.True(t, ok)
	assert.Equal(t, user, cached)
}

func TestClearRemovesBothTiers(t *testing.T) {
	store, durable, sess := newTestStore()
	ctx := WithID(context.Background(), "sid-4")
	sid := crypto.HashSessionID("sid-4")

	for _, kv := range []*MemoryKV{durable, sess} {
		require.NoError(t, kv.Set(ctx, tokenKey(sid), "tok", 0))
		require.NoError(t, kv.Set(ctx, userKey(sid), `{"id":"u"}`, 0))
	}

	require.NoError(t, store.Clear(ctx))
	assert.Zero(t, durable.Len())
	assert.Zero(t, sess.Len())
	_, ok := store.Get(ctx)
	assert.False(t, ok)
	_, ok = store.User(ctx)
	assert.False(t, ok)
}

func TestClearStillClearsSessionTierWhenDurableFails(t *testing.T) {
	sess := NewMemoryKV()
	store := NewStore(failingKV{err: errors.New("redis down")}, sess, time.Hour, time.Minute, logging.Discard())
	ctx := WithID(context.Background(), "sid-5")
	require.NoError(t, sess.Set(ctx, tokenKey(crypto.HashSessionID("sid-5")), "tok", 0))

	err := store.Clear(ctx)
	require.Error(t, err)
	assert.Zero(t, sess.Len())
}

func TestWithoutSessionNothingIsFound(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()

	_, ok := store.Get(ctx)
	assert.False(t, ok)
	assert.NoError(t, store.Clear(ctx))
	assert.Error(t, store.Set(ctx, "tok", model.User{}, Session))
}
