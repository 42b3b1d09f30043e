package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lordsmint/portal-api/internal/cache"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingObserver struct {
	mu     sync.Mutex
	counts map[string]int
}

func (o *countingObserver) ObserveCache(result string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = map[string]int{}
	}
	o.counts[result]++
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestFetchJSON_MissThenHit(t *testing.T) {
	mr, client := newRedis(t)
	obs := &countingObserver{}
	c := cache.New(client, time.Minute, zap.NewNop(), obs)

	var loads int32
	loader := func(context.Context) (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		return []domain.Warehouse{{Name: "Lagos - LM", WarehouseName: "Lagos"}}, nil
	}

	key := cache.Key("warehouses", "all")
	var first []domain.Warehouse
	require.NoError(t, c.FetchJSON(context.Background(), key, &first, loader))
	require.Len(t, first, 1)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	var second []domain.Warehouse
	require.NoError(t, c.FetchJSON(context.Background(), key, &second, loader))
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
	assert.Equal(t, 1, obs.counts["miss"])
	assert.Equal(t, 1, obs.counts["hit"])
}

func TestFetchJSON_ExpiredEntryReloads(t *testing.T) {
	mr, client := newRedis(t)
	c := cache.New(client, time.Minute, zap.NewNop(), nil)

	var loads int32
	loader := func(context.Context) (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		return []string{"PLANT-A"}, nil
	}

	var out []string
	require.NoError(t, c.FetchJSON(context.Background(), "k", &out, loader))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, c.FetchJSON(context.Background(), "k", &out, loader))
	assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
}

func TestFetchJSON_LoaderErrorIsNotCached(t *testing.T) {
	mr, client := newRedis(t)
	c := cache.New(client, time.Minute, zap.NewNop(), nil)

	var out []string
	err := c.FetchJSON(context.Background(), "k", &out, func(context.Context) (interface{}, error) {
		return nil, errors.New("erp down")
	})
	require.EqualError(t, err, "erp down")
	assert.False(t, mr.Exists("k"))
}

func TestFetchJSON_RedisDownFallsThrough(t *testing.T) {
	mr, client := newRedis(t)
	obs := &countingObserver{}
	c := cache.New(client, time.Minute, zap.NewNop(), obs)
	mr.Close()

	var out []string
	err := c.FetchJSON(context.Background(), "k", &out, func(context.Context) (interface{}, error) {
		return []string{"fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, out)
	assert.Equal(t, 1, obs.counts["error"])
}

func TestFetchJSON_DisabledCacheCollapsesConcurrentLoads(t *testing.T) {
	c := cache.New(nil, time.Minute, zap.NewNop(), nil)
	assert.False(t, c.Enabled())

	release := make(chan struct{})
	var loads int32
	loader := func(context.Context) (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		<-release
		return []string{"x"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var out []string
			assert.NoError(t, c.FetchJSON(context.Background(), "same", &out, loader))
			assert.Equal(t, []string{"x"}, out)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
}

func TestFetchJSON_CallerCancellation(t *testing.T) {
	c := cache.New(nil, time.Minute, zap.NewNop(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out []string
	err := c.FetchJSON(ctx, "k", &out, func(context.Context) (interface{}, error) {
		time.Sleep(20 * time.Millisecond)
		return []string{"late"}, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvalidate(t *testing.T) {
	mr, client := newRedis(t)
	c := cache.New(client, time.Minute, zap.NewNop(), nil)
	require.NoError(t, mr.Set("portal:a", "1"))

	require.NoError(t, c.Invalidate(context.Background(), "portal:a"))
	assert.False(t, mr.Exists("portal:a"))

	assert.NoError(t, cache.New(nil, 0, zap.NewNop(), nil).Invalidate(context.Background(), "x"))
}
