package healthmanager

import (
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/rewards-dashboard/rpcfallback/healthmanager/rpcstatus"
)

const defaultHealthCacheCapacity = 1024

// HealthCache keeps the latest probe outcome per endpoint.
// Staleness is decided at read time from the record's LastCheckedAt, there is no
// eviction loop.
type HealthCache struct {
	ttl     time.Duration
	now     func() time.Time
	records *ttlcache.Cache[string, rpcstatus.EndpointHealth]
}

type HealthCacheOption func(*HealthCache)

// WithClock overrides the time source used for freshness checks.
func WithClock(now func() time.Time) HealthCacheOption {
	return func(c *HealthCache) {
		c.now = now
	}
}

// NewHealthCache creates an empty cache whose records expire after ttl.
func NewHealthCache(ttl time.Duration, opts ...HealthCacheOption) *HealthCache {
	c := &HealthCache{
		ttl: ttl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	// The store itself never expires entries, freshness belongs to Get.
	c.records = ttlcache.New[string, rpcstatus.EndpointHealth](
		ttlcache.WithTTL[string, rpcstatus.EndpointHealth](ttlcache.NoTTL),
		ttlcache.WithCapacity[string, rpcstatus.EndpointHealth](defaultHealthCacheCapacity),
		ttlcache.WithDisableTouchOnHit[string, rpcstatus.EndpointHealth](),
	)
	return c
}

// Get returns the record for url unless it is missing or older than the TTL.
func (c *HealthCache) Get(url string) (rpcstatus.EndpointHealth, bool) {
	item := c.records.Get(url)
	if item == nil {
		return rpcstatus.EndpointHealth{}, false
	}

	record := item.Value()
	if !record.IsFresh(c.now(), c.ttl) {
		return rpcstatus.EndpointHealth{}, false
	}
	return record, true
}

// Put stores record under its URL, replacing any previous one.
func (c *HealthCache) Put(record rpcstatus.EndpointHealth) {
	c.records.Set(record.URL, record, ttlcache.DefaultTTL)
}

// TTL returns the freshness window of the cache.
func (c *HealthCache) TTL() time.Duration {
	return c.ttl
}

// Now returns the cache's notion of the current time.
func (c *HealthCache) Now() time.Time {
	return c.now()
}
