package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)

		rdb, err := NewRedisClient(context.Background(), Config{Addr: mr.Addr()})

		require.NoError(t, err)
		t.Cleanup(func() { _ = rdb.Close() })
		assert.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
		mr.CheckGet(t, "k", "v")
	})

	t.Run("failure: unreachable server", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		rdb, err := NewRedisClient(context.Background(), Config{Addr: addr})

		assert.Error(t, err)
		assert.Nil(t, rdb)
	})
}
