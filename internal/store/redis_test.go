package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBackend_RoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()
	backend := NewRedisBackend(client, "zuca:")
	ctx := context.Background()

	_, err := backend.Get(ctx, KeyChoir)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, backend.Put(ctx, KeyChoir, []byte(`[{"id":"c1"}]`)))
	assert.True(t, srv.Exists("zuca:"+KeyChoir))

	value, err := backend.Get(ctx, KeyChoir)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"c1"}]`, string(value))

	require.NoError(t, backend.Delete(ctx, KeyChoir))
	_, err = backend.Get(ctx, KeyChoir)
	require.ErrorIs(t, err, ErrNotFound)
}
