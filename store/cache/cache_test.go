package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute})
	defer c.Close()

	_, ok := c.Get("missing")
	require.False(t, ok)

	c.Set("key", "value")
	v, ok := c.Get("key")
	require.True(t, ok)
	require.Equal(t, "value", v)
}

func TestCacheExpiry(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute})
	defer c.Close()

	c.SetWithTTL("key", 1, -time.Second) // already expired
	_, ok := c.Get("key")
	require.False(t, ok)
}

func TestCacheDelete(t *testing.T) {
	evicted := make(map[string]any)
	c := New(Config{
		DefaultTTL: time.Minute,
		OnEviction: func(key string, value any) { evicted[key] = value },
	})
	defer c.Close()

	c.Set("key", 42)
	c.Delete("key")
	_, ok := c.Get("key")
	require.False(t, ok)
	require.Equal(t, 42, evicted["key"])
}

func TestCacheMaxItemsEvicts(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute, MaxItems: 2})
	defer c.Close()

	c.SetWithTTL("a", 1, time.Second) // closest to expiry, evicted first
	c.SetWithTTL("b", 2, time.Minute)
	c.SetWithTTL("c", 3, time.Minute)

	_, ok := c.Get("a")
	require.False(t, ok)
	_, ok = c.Get("b")
	require.True(t, ok)
	_, ok = c.Get("c")
	require.True(t, ok)
}

func TestCacheOverwriteDoesNotEvict(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute, MaxItems: 2})
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3) // overwrite must not push b out

	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 3, v)
	_, ok = c.Get("b")
	require.True(t, ok)
}
