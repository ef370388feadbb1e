// Package pricecache maintains the SOL/USD reference price behind an atomic
// snapshot. Readers never block and tolerate staleness; a background refresh
// loop replaces the snapshot on a fixed interval.
package pricecache

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// DefaultPriceUSD is returned before the first successful fetch.
const DefaultPriceUSD = 180.0

// DefaultTTL is the refresh interval.
const DefaultTTL = 5 * time.Minute

// Fetcher retrieves the current spot price.
type Fetcher func(ctx context.Context) (float64, error)

type snapshot struct {
	price     float64
	fetchedAt time.Time
}

// Cache is the shared read-mostly price state. Construct once per process.
type Cache struct {
	value  atomic.Value // snapshot
	ttl    time.Duration
	fetch  Fetcher
	logger *log.Logger
	clock  func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the refresh interval.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithFetcher replaces the spot price source.
func WithFetcher(f Fetcher) Option {
	return func(c *Cache) { c.fetch = f }
}

// WithLogger sets the logger; nil means silent.
func WithLogger(l *log.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// WithClock injects a deterministic time source for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *Cache) { c.clock = clock }
}

// New creates a Cache. No fetch happens until Refresh or Run.
func New(opts ...Option) *Cache {
	c := &Cache{
		ttl:   DefaultTTL,
		fetch: FetchBinance,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PriceUSD returns the last-known price and whether it came from a
// successful fetch. Before the first success it returns the hardcoded
// default with false.
func (c *Cache) PriceUSD() (float64, bool) {
	s, ok := c.value.Load().(snapshot)
	if !ok {
		return DefaultPriceUSD, false
	}
	return s.price, true
}

// Age returns the time since the last successful fetch, or a negative value
// when no fetch has ever succeeded.
func (c *Cache) Age() time.Duration {
	s, ok := c.value.Load().(snapshot)
	if !ok {
		return -1
	}
	return c.clock().Sub(s.fetchedAt)
}

// Refresh performs one fetch and swaps the snapshot on success. A failed
// fetch leaves the previous snapshot in place.
func (c *Cache) Refresh(ctx context.Context) error {
	price, err := c.fetch(ctx)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("pricecache: refresh failed: %v", err)
		}
		return err
	}
	c.value.Store(snapshot{price: price, fetchedAt: c.clock()})
	return nil
}

// Run refreshes immediately and then on every TTL tick until ctx is
// canceled. Errors are logged and retried on the next tick.
func (c *Cache) Run(ctx context.Context) {
	_ = c.Refresh(ctx)

	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.Refresh(ctx)
		}
	}
}
