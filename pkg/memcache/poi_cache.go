package mem

import (
	"sort"
	"strings"
	"sync"
	"time"

	"wayfarer/internal/models/response_models"
)

// POICache is the shared read path of the candidate supplier: concurrent
// requests read the same destination+interests entry. Writes are whole-entry
// replaces, last writer wins; staleness within the TTL is acceptable.
type POICache interface {
	Get(destination string, interests []string) ([]response_models.POI, bool)
	Set(destination string, interests []string, pois []response_models.POI, ttl time.Duration)
}

type poiCacheEntry struct {
	pois      []response_models.POI
	expiresAt time.Time
}

type POICacheStore struct {
	mu   sync.RWMutex
	data map[string]poiCacheEntry
}

func NewPOICache() *POICacheStore {
	return &POICacheStore{data: make(map[string]poiCacheEntry)}
}

func cacheKey(destination string, interests []string) string {
	sorted := make([]string, len(interests))
	copy(sorted, interests)
	sort.Strings(sorted)
	return strings.ToLower(destination) + "|" + strings.ToLower(strings.Join(sorted, ","))
}

func (c *POICacheStore) Get(destination string, interests []string) ([]response_models.POI, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.data[cacheKey(destination, interests)]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.pois, true
}

func (c *POICacheStore) Set(destination string, interests []string, pois []response_models.POI, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[cacheKey(destination, interests)] = poiCacheEntry{
		pois:      pois,
		expiresAt: time.Now().Add(ttl),
	}
}
