package adapter

import (
	"context"
	"testing"
	"time"

	"vidquiz/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectGet("k").SetVal("v")

	value, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_GetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectGet("absent").RedisNil()

	_, err := cache.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectSet("k", "v", 5*time.Minute).SetVal("OK")

	err := cache.Set(context.Background(), "k", "v", 5*time.Minute)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Delete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectDel("k").SetVal(1)

	err := cache.Delete(context.Background(), "k")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
