package cache_test

import (
	"context"
	"testing"
	"time"

	"ticket-booking/pkg/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type payload struct {
	Count int `json:"count"`
}

func newTestCache(t *testing.T) (*cache.Cache, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	return cache.NewWithClient(client, time.Minute, zap.NewNop()), mock
}

func TestCacheGet_Hit(t *testing.T) {
	c, mock := newTestCache(t)

	mock.ExpectGet("event_stats:abc").SetVal(`{"count":7}`)

	var got payload
	found := c.Get(context.Background(), "event_stats:abc", &got)

	assert.True(t, found)
	assert.Equal(t, 7, got.Count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheGet_Miss(t *testing.T) {
	c, mock := newTestCache(t)

	mock.ExpectGet("event_stats:abc").RedisNil()

	var got payload
	found := c.Get(context.Background(), "event_stats:abc", &got)

	assert.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheGet_CorruptEntryEvicted(t *testing.T) {
	c, mock := newTestCache(t)

	mock.ExpectGet("event_stats:abc").SetVal("{broken")
	mock.ExpectDel("event_stats:abc").SetVal(1)

	var got payload
	found := c.Get(context.Background(), "event_stats:abc", &got)

	assert.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheSet(t *testing.T) {
	c, mock := newTestCache(t)

	mock.ExpectSet("event_stats:abc", []byte(`{"count":3}`), time.Minute).SetVal("OK")

	c.Set(context.Background(), "event_stats:abc", payload{Count: 3})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheGet_ErrorTreatedAsMiss(t *testing.T) {
	c, mock := newTestCache(t)

	mock.ExpectGet("event_stats:abc").SetErr(redis.ErrClosed)

	var got payload
	found := c.Get(context.Background(), "event_stats:abc", &got)

	assert.False(t, found)
}

func TestEventStatsKey(t *testing.T) {
	assert.Equal(t, "event_stats:42", cache.EventStatsKey("42"))
}
