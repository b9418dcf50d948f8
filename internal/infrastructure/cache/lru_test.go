package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestTTL(capacity int, ttl time.Duration) (*TTL[string, int], *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewTTL[string, int](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestTTL_BasicOperations(t *testing.T) {
	c, _ := newTestTTL(3, 0)

	c.Set("a", 1)
	c.Set("b", 2)

	val, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, val)

	val, ok = c.Get("missing")
	assert.False(t, ok)
	assert.Zero(t, val)

	c.Set("a", 10)
	val, _ = c.Get("a")
	assert.Equal(t, 10, val)
	assert.Equal(t, 2, c.size())
}

func TestTTL_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestTTL(2, 0)

	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a") // a is now most recent
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestTTL_Expiry(t *testing.T) {
	c, clock := newTestTTL(4, time.Minute)

	c.Set("a", 1)
	clock.Advance(59 * time.Second)
	_, ok := c.Get("a")
	require.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok, "entry expires at its deadline")
	assert.Zero(t, c.size(), "expired entry is dropped on access")
}

func TestTTL_SetRefreshesDeadline(t *testing.T) {
	c, clock := newTestTTL(4, time.Minute)

	c.Set("a", 1)
	clock.Advance(50 * time.Second)
	c.Set("a", 2)
	clock.Advance(50 * time.Second)

	val, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, val)
}

func TestTTL_ZeroCapacityHoldsOne(t *testing.T) {
	c, _ := newTestTTL(0, 0)
	c.Set("a", 1)
	c.Set("b", 2)
	assert.Equal(t, 1, c.size())
}

func TestTTL_ConcurrentAccess(t *testing.T) {
	c, _ := newTestTTL(50, time.Hour)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 200 {
				key := string(rune('a' + (n+j)%26))
				c.Set(key, j)
				_, _ = c.Get(key)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.size(), 50)
}
