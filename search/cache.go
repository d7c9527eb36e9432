package search

import (
	"github.com/dgraph-io/ristretto/v2"

	"github.com/eak1mov/go-lotmap/cell"
)

// storeCache keeps recently decoded cells, keyed by pack path and
// costed by populated-square count. A nil cache misses everything.
type storeCache struct {
	cache *ristretto.Cache[string, *cell.Store]
}

func newStoreCache(maxSquares int64) (*storeCache, error) {
	cache, err := ristretto.NewCache[string, *cell.Store](&ristretto.Config[string, *cell.Store]{
		NumCounters: 10_000,
		MaxCost:     maxSquares,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &storeCache{cache: cache}, nil
}

func (c *storeCache) get(packPath string) (*cell.Store, bool) {
	if c == nil {
		return nil, false
	}
	c.cache.Wait()
	return c.cache.Get(packPath)
}

func (c *storeCache) set(packPath string, store *cell.Store) {
	if c == nil {
		return
	}
	cost := max(int64(store.Len()), 1)
	c.cache.Set(packPath, store, cost)
	c.cache.Wait()
}
