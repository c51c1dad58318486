package jwks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"golang.org/x/sync/singleflight"
)

// Cache defines the interface for JWKS caching implementations.
// This abstraction allows swapping the underlying cache provider,
// for example for a Redis-backed cache shared between instances.
type Cache interface {
	// Get retrieves a JWKS from the cache or fetches it if not cached.
	Get(ctx context.Context, jwksURI string) (jwk.Set, error)
}

const (
	defaultCacheTTL      = 15 * time.Minute
	defaultFetchAttempts = 2
	fetchRetryDelay      = 250 * time.Millisecond

	// JWKS documents are typically well under 10KB; anything near
	// this limit is not a key set.
	maxJWKSBodySize = 1 * 1024 * 1024
)

// memoryCache is the default Cache. It keeps one entry per JWKS URI
// with a TTL, coalesces concurrent fetches for the same URI, and
// refreshes entries in the background once they pass 80% of their
// TTL so callers rarely wait on the network.
type memoryCache struct {
	client        *http.Client
	refreshTTL    time.Duration
	fetchAttempts int

	mu      sync.RWMutex
	entries map[string]*cacheEntry

	fetches singleflight.Group
}

type cacheEntry struct {
	set        jwk.Set
	expiresAt  time.Time
	refreshAt  time.Time   // Proactive refresh threshold (80% of TTL).
	refreshing atomic.Bool // Prevents multiple background refreshes.
}

func newMemoryCache(client *http.Client, refreshTTL time.Duration, fetchAttempts int) *memoryCache {
	if refreshTTL <= 0 {
		refreshTTL = defaultCacheTTL
	}
	if fetchAttempts <= 0 {
		fetchAttempts = defaultFetchAttempts
	}
	return &memoryCache{
		client:        client,
		refreshTTL:    refreshTTL,
		fetchAttempts: fetchAttempts,
		entries:       make(map[string]*cacheEntry),
	}
}

func (c *memoryCache) Get(ctx context.Context, jwksURI string) (jwk.Set, error) {
	if set, shouldRefresh, ok := c.lookup(jwksURI); ok {
		if shouldRefresh {
			c.triggerBackgroundRefresh(jwksURI)
		}
		return set, nil
	}

	// Cache miss or expired. Coalesce concurrent fetches for the
	// same URI so a burst of decodes costs one request.
	result, err, _ := c.fetches.Do(jwksURI, func() (interface{}, error) {
		// Another caller may have filled the entry while this one
		// waited for the flight.
		if set, _, ok := c.lookup(jwksURI); ok {
			return set, nil
		}

		set, headerTTL, err := c.fetch(ctx, jwksURI)
		if err != nil {
			return nil, err
		}
		c.store(jwksURI, set, headerTTL)
		return set, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(jwk.Set), nil
}

// lookup returns the cached set for the URI when it is still fresh,
// along with whether it has crossed its proactive refresh threshold.
func (c *memoryCache) lookup(jwksURI string) (jwk.Set, bool, bool) {
	now := time.Now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[jwksURI]
	if !ok || now.After(entry.expiresAt) {
		return nil, false, false
	}
	return entry.set, now.After(entry.refreshAt), true
}

func (c *memoryCache) store(jwksURI string, set jwk.Set, headerTTL time.Duration) {
	// Cache-Control max-age only ever extends the configured TTL;
	// the configured TTL acts as the minimum refresh interval.
	ttl := c.refreshTTL
	if headerTTL > 0 && ttl < headerTTL {
		ttl = headerTTL
	}

	now := time.Now()

	c.mu.Lock()
	entry, ok := c.entries[jwksURI]
	if !ok {
		entry = &cacheEntry{}
		c.entries[jwksURI] = entry
	}
	entry.set = set
	entry.expiresAt = now.Add(ttl)
	entry.refreshAt = now.Add(ttl * 4 / 5)
	c.mu.Unlock()
}

func (c *memoryCache) triggerBackgroundRefresh(jwksURI string) {
	c.mu.RLock()
	entry, ok := c.entries[jwksURI]
	c.mu.RUnlock()

	if ok && entry.refreshing.CompareAndSwap(false, true) {
		go c.backgroundRefresh(jwksURI, entry)
	}
}

// backgroundRefresh re-fetches a JWKS without blocking requests, so
// entries that are regularly read never expire in the foreground.
func (c *memoryCache) backgroundRefresh(jwksURI string, entry *cacheEntry) {
	defer entry.refreshing.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	set, headerTTL, err := c.fetch(ctx, jwksURI)
	if err != nil {
		// The stale entry stays valid until its TTL runs out; the
		// next foreground miss retries the fetch.
		return
	}
	c.store(jwksURI, set, headerTTL)
}

// fetch retrieves and parses a JWKS, retrying transient failures a
// bounded number of times.
func (c *memoryCache) fetch(ctx context.Context, jwksURI string) (jwk.Set, time.Duration, error) {
	var lastErr error
	for attempt := 0; attempt < c.fetchAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(fetchRetryDelay):
			}
		}

		set, headerTTL, err := c.fetchOnce(ctx, jwksURI)
		if err == nil {
			return set, headerTTL, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}
	return nil, 0, lastErr
}

// fetchOnce fetches a JWKS and extracts the TTL from the
// Cache-Control header. The returned TTL is 0 when the response
// carries no usable max-age.
func (c *memoryCache) fetchOnce(ctx context.Context, jwksURI string) (jwk.Set, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jwksURI, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("could not build request to fetch JWKS: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("could not fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("JWKS request returned status %d, expected 200", resp.StatusCode)
	}

	var headerTTL time.Duration
	if cacheControl := resp.Header.Get("Cache-Control"); cacheControl != "" {
		headerTTL = parseCacheControl(cacheControl)
	}

	set, err := jwk.ParseReader(io.LimitReader(resp.Body, maxJWKSBodySize))
	if err != nil {
		return nil, 0, fmt.Errorf("could not parse JWKS: %w", err)
	}

	return set, headerTTL, nil
}

// parseCacheControl extracts max-age from a Cache-Control header.
// Returns 0 if max-age is not present, invalid, or outside the
// accepted bounds of 1 second to 7 days.
func parseCacheControl(cacheControl string) time.Duration {
	const (
		maxAgePrefix = "max-age="
		minTTL       = 1 * time.Second
		maxTTL       = 7 * 24 * time.Hour
	)

	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		if !strings.HasPrefix(directive, maxAgePrefix) {
			continue
		}

		seconds, err := strconv.ParseInt(strings.TrimPrefix(directive, maxAgePrefix), 10, 64)
		if err != nil || seconds <= 0 {
			continue
		}

		ttl := time.Duration(seconds) * time.Second
		if ttl < minTTL || ttl > maxTTL {
			return 0
		}
		return ttl
	}

	return 0
}
