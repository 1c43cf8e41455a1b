// Package cache provides an in-process implementation of ports.RateCache.
// The backing store is deliberately hidden behind the port so a shared
// external store can replace it without touching the conversion path.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/anthonyshull/franknfurter/internal/apperrors"
	"github.com/anthonyshull/franknfurter/internal/core/ports"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	rate      decimal.Decimal
	notFound  bool
	expiresAt time.Time
}

// MemoryRateCache caches directional rates with a fixed TTL. Stampede
// protection comes from two mechanisms: concurrent misses for one key
// collapse into a single compute via singleflight, and for a bounded grace
// window after expiry callers are served the just-expired value while another
// caller is already recomputing it.
//
// A compute returning apperrors.ErrRateNotFound is cached with the (shorter)
// negative TTL so a missing rate does not hammer the store, but a
// just-completed ingest becomes visible quickly.
type MemoryRateCache struct {
	ttl         time.Duration
	negativeTTL time.Duration
	grace       time.Duration

	mu       sync.Mutex
	entries  map[string]entry
	inFlight map[string]struct{}
	group    singleflight.Group

	now func() time.Time // swapped in tests
}

var _ ports.RateCache = (*MemoryRateCache)(nil)

// NewMemoryRateCache creates a cache with the given positive TTL, negative
// TTL for not-found results, and stale-grace window.
func NewMemoryRateCache(ttl, negativeTTL, grace time.Duration) *MemoryRateCache {
	return &MemoryRateCache{
		ttl:         ttl,
		negativeTTL: negativeTTL,
		grace:       grace,
		entries:     make(map[string]entry),
		inFlight:    make(map[string]struct{}),
		now:         time.Now,
	}
}

// GetRate returns the cached rate for (source, target, date) or computes and
// caches it. The key is directional on purpose: the value returned to callers
// depends on the requested direction.
func (c *MemoryRateCache) GetRate(ctx context.Context, source, target string, date time.Time, compute ports.ComputeRateFn) (decimal.Decimal, error) {
	key := source + "/" + target + "/" + date.Format(time.DateOnly)

	c.mu.Lock()
	e, ok := c.entries[key]
	_, refreshing := c.inFlight[key]
	now := c.now()
	c.mu.Unlock()

	if ok {
		if now.Before(e.expiresAt) {
			return e.value()
		}
		// Recently expired and someone else is already recomputing: serve the
		// stale value instead of piling onto the lookup.
		if refreshing && now.Before(e.expiresAt.Add(c.grace)) {
			return e.value()
		}
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		c.setInFlight(key, true)
		defer c.setInFlight(key, false)

		// Another waiter may have stored a fresh entry between our check and
		// the flight starting.
		c.mu.Lock()
		e, ok := c.entries[key]
		now := c.now()
		c.mu.Unlock()
		if ok && now.Before(e.expiresAt) {
			rate, err := e.value()
			if err != nil {
				return nil, err
			}
			return rate, nil
		}

		// The compute result is shared by every collapsed waiter, so it must
		// not die with the winning caller's context.
		rate, err := compute(context.WithoutCancel(ctx))
		switch {
		case err == nil:
			c.store(key, entry{rate: rate, expiresAt: c.now().Add(c.ttl)})
			return rate, nil
		case errors.Is(err, apperrors.ErrRateNotFound):
			c.store(key, entry{notFound: true, expiresAt: c.now().Add(c.negativeTTL)})
			return nil, err
		default:
			// Unexpected failures are never cached.
			return nil, err
		}
	})
	if err != nil {
		return decimal.Decimal{}, err
	}
	return v.(decimal.Decimal), nil
}

func (e entry) value() (decimal.Decimal, error) {
	if e.notFound {
		return decimal.Decimal{}, apperrors.ErrRateNotFound
	}
	return e.rate, nil
}

func (c *MemoryRateCache) store(key string, e entry) {
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

func (c *MemoryRateCache) setInFlight(key string, active bool) {
	c.mu.Lock()
	if active {
		c.inFlight[key] = struct{}{}
	} else {
		delete(c.inFlight, key)
	}
	c.mu.Unlock()
}
