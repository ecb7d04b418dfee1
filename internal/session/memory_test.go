package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKVExpiryAndSweep(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return now }

	require.NoError(t, kv.Set(ctx, "short", "a", time.Minute))
	require.NoError(t, kv.Set(ctx, "long", "b", time.Hour))
	require.NoError(t, kv.Set(ctx, "forever", "c", 0))

	value, err := kv.Get(ctx, "short")
	require.NoError(t, err)
	assert.Equal(t, "a", value)

	now = now.Add(2 * time.Minute)
	_, err = kv.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, kv.Sweep())
	assert.Equal(t, 1, kv.Len())

	value, err = kv.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "c", value)
}

func TestMemoryKVDelete(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "a", "1", 0))
	require.NoError(t, kv.Set(ctx, "b", "2", 0))

	require.NoError(t, kv.Delete(ctx, "a", "b", "missing"))
	assert.Zero(t, kv.Len())
}
