package collaborators

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"wayfarer/pkg/utils"
)

// Leg is a single directions estimate between two coordinates.
type Leg struct {
	DistanceMeters int
	DurationMin    int
}

// DirectionsServiceInterface optionally refines the geometric transfer
// estimate with real routing data. When unavailable the router's haversine
// estimate stands.
type DirectionsServiceInterface interface {
	EstimateLeg(ctx context.Context, fromLat, fromLon, toLat, toLon float64, mode string) (Leg, error)
}

type pairKey struct {
	Mode string
	A    string
	B    string
}

type legCacheEntry struct {
	Leg       Leg
	ExpiresAt time.Time
}

// LegCache memoizes directions lookups per coordinate pair. Route geometry is
// stable enough for a multi-day TTL.
type LegCache interface {
	Get(k pairKey) (Leg, bool)
	Set(k pairKey, v Leg, ttl time.Duration)
}

type inMemoryLegCache struct {
	mu    sync.RWMutex
	store map[pairKey]legCacheEntry
}

func NewInMemoryLegCache() LegCache {
	return &inMemoryLegCache{store: make(map[pairKey]legCacheEntry)}
}

func (c *inMemoryLegCache) Get(k pairKey) (Leg, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[k]
	if !ok || time.Now().After(it.ExpiresAt) {
		return Leg{}, false
	}
	return it.Leg, true
}

func (c *inMemoryLegCache) Set(k pairKey, v Leg, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[k] = legCacheEntry{Leg: v, ExpiresAt: time.Now().Add(ttl)}
}

// MapboxDirectionsClient queries the Mapbox directions API for leg estimates.
type MapboxDirectionsClient struct {
	HTTP        *http.Client
	AccessToken string
	Cache       LegCache
	DefaultTTL  time.Duration
	BaseURL     string
}

func NewMapboxDirectionsClient(accessToken string, cache LegCache) *MapboxDirectionsClient {
	return &MapboxDirectionsClient{
		HTTP:        &http.Client{Timeout: 15 * time.Second},
		AccessToken: accessToken,
		Cache:       cache,
		DefaultTTL:  7 * 24 * time.Hour,
		BaseURL:     "https://api.mapbox.com",
	}
}

func mapboxProfile(mode string) string {
	switch mode {
	case "driving", "transit":
		return "driving"
	case "cycling":
		return "cycling"
	default:
		return "walking"
	}
}

func (c *MapboxDirectionsClient) EstimateLeg(ctx context.Context, fromLat, fromLon, toLat, toLon float64, mode string) (Leg, error) {
	if c.AccessToken == "" {
		return Leg{}, utils.NewExternalSourceError("directions", utils.ErrAPIKeyMissing)
	}

	profile := mapboxProfile(mode)
	key := pairKey{
		Mode: profile,
		A:    fmt.Sprintf("%.5f,%.5f", fromLat, fromLon),
		B:    fmt.Sprintf("%.5f,%.5f", toLat, toLon),
	}
	if v, ok := c.Cache.Get(key); ok {
		return v, nil
	}

	coords := fmt.Sprintf("%f,%f;%f,%f", fromLon, fromLat, toLon, toLat)
	u, _ := url.Parse(fmt.Sprintf("%s/directions/v5/mapbox/%s/%s", c.BaseURL, profile, coords))
	q := url.Values{}
	q.Set("overview", "false")
	q.Set("access_token", c.AccessToken)
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Leg{}, utils.NewExternalSourceError("directions", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return Leg{}, utils.ErrRateLimited
	}
	if resp.StatusCode/100 != 2 {
		return Leg{}, utils.NewExternalSourceError("directions", fmt.Errorf("bad status: %s", resp.Status))
	}

	var payload struct {
		Routes []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Leg{}, utils.NewExternalSourceError("directions", err)
	}
	if len(payload.Routes) == 0 {
		return Leg{}, utils.NewExternalSourceError("directions", fmt.Errorf("no route returned"))
	}

	leg := Leg{
		DistanceMeters: int(payload.Routes[0].Distance + 0.5),
		DurationMin:    int(payload.Routes[0].Duration/60 + 0.5),
	}
	c.Cache.Set(key, leg, c.DefaultTTL)
	return leg, nil
}
