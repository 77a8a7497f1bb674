package municipality

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"propertyguard/internal/council/models"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propertyguard_municipality_cache_hits_total",
		Help: "Municipality directory reads served from Redis",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propertyguard_municipality_cache_misses_total",
		Help: "Municipality directory reads that fell through to the database",
	})
)

const (
	directoryKey = "council:municipalities"

	// DefaultCacheTTL bounds staleness of the directory. Municipality
	// records change through operational processes, not API traffic, so
	// minutes of staleness is acceptable.
	DefaultCacheTTL = 5 * time.Minute
)

// Lister is the read side of the municipality store the cache wraps.
type Lister interface {
	List(ctx context.Context) ([]*models.Municipality, error)
}

// Cache is a Redis read-through cache over the municipality directory.
// Redis failures fall through to the wrapped store; the cache never turns a
// healthy database read into an error.
type Cache struct {
	inner  Lister
	client *redis.Client
	ttl    time.Duration
}

func NewCache(inner Lister, client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{inner: inner, client: client, ttl: ttl}
}

func (c *Cache) List(ctx context.Context) ([]*models.Municipality, error) {
	if cached, ok := c.get(ctx); ok {
		cacheHits.Inc()
		return cached, nil
	}
	cacheMisses.Inc()

	municipalities, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, municipalities)
	return municipalities, nil
}

func (c *Cache) get(ctx context.Context) ([]*models.Municipality, bool) {
	payload, err := c.client.Get(ctx, directoryKey).Bytes()
	if err != nil {
		// redis.Nil is the ordinary miss; anything else falls through
		// to the database the same way.
		return nil, false
	}
	var municipalities []*models.Municipality
	if err := json.Unmarshal(payload, &municipalities); err != nil {
		return nil, false
	}
	return municipalities, true
}

func (c *Cache) set(ctx context.Context, municipalities []*models.Municipality) {
	payload, err := json.Marshal(municipalities)
	if err != nil {
		return
	}
	c.client.Set(ctx, directoryKey, payload, c.ttl)
}

// Invalidate drops the cached directory. Call after municipality writes.
func (c *Cache) Invalidate(ctx context.Context) {
	c.client.Del(ctx, directoryKey)
}
