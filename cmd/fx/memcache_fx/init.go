package memcache_fx

import (
	"time"

	"go.uber.org/fx"

	mem "wayfarer/pkg/memcache"
)

var Module = fx.Provide(
	providePOICache,
	provideRateLimiter,
)

func providePOICache() mem.POICache {
	return mem.NewPOICache()
}

func provideRateLimiter() mem.RateLimiter {
	return mem.NewTokenBucketLimiter(30, time.Minute)
}
