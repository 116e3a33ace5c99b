package marketdata

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	price  decimal.Decimal
	expiry time.Time
}

// PriceCache is a process-local price cache with per-entry expiry. A lookup
// past an entry's expiry evicts it and triggers a fresh fetch; concurrent
// misses for the same key collapse into a single fetch.
//
// The clock is injectable so tests can drive expiry deterministically.
type PriceCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
	group   singleflight.Group
}

// NewPriceCache creates a cache whose entries expire ttl after they are
// stored.
func NewPriceCache(ttl time.Duration) *PriceCache {
	return &PriceCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached price for key, or runs fetch to populate it.
// Fetch failures are not cached: the next lookup retries.
func (c *PriceCache) Get(key string, fetch func() (decimal.Decimal, error)) (decimal.Decimal, error) {
	if price, ok := c.lookup(key); ok {
		return price, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A concurrent caller may have populated the entry while this
		// goroutine waited on the flight group.
		if price, ok := c.lookup(key); ok {
			return price, nil
		}
		price, err := fetch()
		if err != nil {
			return decimal.Decimal{}, err
		}
		c.store(key, price)
		return price, nil
	})
	if err != nil {
		return decimal.Decimal{}, err
	}
	return v.(decimal.Decimal), nil
}

func (c *PriceCache) lookup(key string) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return decimal.Decimal{}, false
	}
	if !c.now().Before(entry.expiry) {
		delete(c.entries, key)
		return decimal.Decimal{}, false
	}
	return entry.price, true
}

func (c *PriceCache) store(key string, price decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{price: price, expiry: c.now().Add(c.ttl)}
}

// Len returns the number of entries currently held, expired or not.
func (c *PriceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
