// Package prices retrieves reference BTC/ETH prices from an external
// simple-price feed and caches them. Prices are display enrichment only
// and never feed into stored totals.
package prices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheTTL bounds how stale a served price may be.
const CacheTTL = 60 * time.Second

const cacheKey = "reference_prices"

// ErrPriceUnavailable is returned when neither the cache nor the feed can
// supply prices.
var ErrPriceUnavailable = errors.New("reference prices unavailable")

// Prices carries the current reference prices in USD.
type Prices struct {
	Btc float64 `json:"btc"`
	Eth float64 `json:"eth"`
}

// Cache stores the most recent feed response for CacheTTL.
type Cache interface {
	Get(ctx context.Context) (Prices, bool)
	Set(ctx context.Context, p Prices)
}

// Feed fetches prices from a CoinGecko-style simple-price endpoint.
type Feed struct {
	baseURL string
	client  *http.Client
	cache   Cache
}

// NewFeed creates a feed against baseURL backed by cache.
func NewFeed(baseURL string, cache Cache) *Feed {
	return &Feed{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

type simplePriceResponse struct {
	Bitcoin  struct{ Usd float64 `json:"usd"` } `json:"bitcoin"`
	Ethereum struct{ Usd float64 `json:"usd"` } `json:"ethereum"`
}

// Current returns cached prices when fresh, otherwise fetches from the
// feed and refills the cache.
func (f *Feed) Current(ctx context.Context) (Prices, error) {
	if p, ok := f.cache.Get(ctx); ok {
		return p, nil
	}
	return f.Refresh(ctx)
}

// Refresh fetches from the feed unconditionally and refills the cache.
func (f *Feed) Refresh(ctx context.Context) (Prices, error) {
	url := f.baseURL + "/simple/price?ids=bitcoin,ethereum&vs_currencies=usd"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Prices{}, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Prices{}, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Prices{}, fmt.Errorf("%w: feed returned status %d", ErrPriceUnavailable, resp.StatusCode)
	}

	var body simplePriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Prices{}, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}

	p := Prices{Btc: body.Bitcoin.Usd, Eth: body.Ethereum.Usd}
	f.cache.Set(ctx, p)
	return p, nil
}

// MemoryCache is the in-process fallback cache used when Redis is not
// configured.
type MemoryCache struct {
	mu      sync.Mutex
	prices  Prices
	expires time.Time
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get(_ context.Context) (Prices, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Now().After(c.expires) {
		return Prices{}, false
	}
	return c.prices, true
}

func (c *MemoryCache) Set(_ context.Context, p Prices) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices = p
	c.expires = time.Now().Add(CacheTTL)
}

// RedisCache stores prices in Redis so multiple instances share one feed
// quota. Cache failures are treated as misses, never as errors.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a cache over an existing Redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context) (Prices, bool) {
	raw, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return Prices{}, false
	}
	var p Prices
	if err := json.Unmarshal(raw, &p); err != nil {
		return Prices{}, false
	}
	return p, true
}

func (c *RedisCache) Set(ctx context.Context, p Prices) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey, raw, CacheTTL)
}
