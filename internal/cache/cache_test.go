package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsPayload struct {
	Total   int     `json:"total"`
	Average float64 `json:"average"`
}

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	c := New(server.Addr(), "", 0, ttl)
	require.NotNil(t, c)
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c, server
}

func TestCacheRoundtrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	c.SetJSON("stats:u1", statsPayload{Total: 3, Average: 52.5})

	var got statsPayload
	require.True(t, c.GetJSON("stats:u1", &got))
	assert.Equal(t, 3, got.Total)
	assert.InDelta(t, 52.5, got.Average, 0.001)
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	var got statsPayload
	assert.False(t, c.GetJSON("stats:absent", &got))
}

func TestCacheCorruptEntryIsAMiss(t *testing.T) {
	c, server := newTestCache(t, time.Minute)

	require.NoError(t, server.Set("stats:u1", "{not json"))

	var got statsPayload
	assert.False(t, c.GetJSON("stats:u1", &got))
}

func TestCacheEntriesExpire(t *testing.T) {
	c, server := newTestCache(t, time.Minute)

	c.SetJSON("stats:u1", statsPayload{Total: 1})
	server.FastForward(2 * time.Minute)

	var got statsPayload
	assert.False(t, c.GetJSON("stats:u1", &got))
}

func TestCacheDelete(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	c.SetJSON("stats:u1", statsPayload{Total: 1})
	c.SetJSON("achievements:u1", statsPayload{Total: 2})
	c.Delete("stats:u1", "achievements:u1")

	var got statsPayload
	assert.False(t, c.GetJSON("stats:u1", &got))
	assert.False(t, c.GetJSON("achievements:u1", &got))
}

func TestNilCacheIsANoOp(t *testing.T) {
	c := New("", "", 0, time.Minute)
	require.Nil(t, c)

	c.SetJSON("stats:u1", statsPayload{Total: 1})
	c.Delete("stats:u1")

	var got statsPayload
	assert.False(t, c.GetJSON("stats:u1", &got))
	assert.NoError(t, c.Close())
}
