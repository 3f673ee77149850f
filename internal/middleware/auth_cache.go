package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/stockline/stockline/internal/auth"
	"github.com/stockline/stockline/internal/metrics"
	"github.com/stockline/stockline/internal/models"
)

const (
	sessionCacheTTL    = 5 * time.Minute
	negativeCacheTTL   = 30 * time.Second
	maxCacheEntries    = 10000
	cacheCleanupPeriod = 60 * time.Second

	identityLookupTimeout = 10 * time.Second
)

type cachedSession struct {
	session   *models.Session // nil for a cached failure
	fetchedAt time.Time
}

func (cs cachedSession) ttl() time.Duration {
	if cs.session == nil {
		return negativeCacheTTL
	}
	return sessionCacheTTL
}

// hashKey keeps raw credentials out of the cache.
func hashKey(credential string) string {
	h := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(h[:])
}

// CachedResolver wraps an auth.Resolver with a bounded in-memory cache.
// Rejected credentials are cached briefly so repeated bad credentials do not
// reach the identity store; lookups that could not complete are not cached. Concurrent misses for one credential share a lookup.
type CachedResolver struct {
	inner auth.Resolver
	mu    sync.RWMutex
	cache map[string]cachedSession
	group singleflight.Group
}

// NewCachedResolver creates a caching wrapper. ctx bounds the eviction goroutine.
func NewCachedResolver(ctx context.Context, inner auth.Resolver) *CachedResolver {
	c := &CachedResolver{
		inner: inner,
		cache: make(map[string]cachedSession),
	}
	go c.evictLoop(ctx)

	return c
}

func (c *CachedResolver) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(cacheCleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			c.evictExpiredLocked(time.Now())
			c.mu.Unlock()
		}
	}
}

func (c *CachedResolver) evictExpiredLocked(now time.Time) {
	for k, v := range c.cache {
		if now.Sub(v.fetchedAt) >= v.ttl() {
			delete(c.cache, k)
		}
	}
}

// Resolve implements auth.Resolver.
func (c *CachedResolver) Resolve(ctx context.Context, credential string) (*models.Session, error) {
	hk := hashKey(credential)

	c.mu.RLock()
	entry, ok := c.cache[hk]
	c.mu.RUnlock()

	if ok && time.Since(entry.fetchedAt) < entry.ttl() {
		metrics.IdentityCacheEvents.WithLabelValues("hit").Inc()
		if entry.session == nil {
			return nil, fmt.Errorf("%w: credential rejected (cached)", models.ErrAuthentication)
		}
		sess := *entry.session

		return &sess, nil
	}

	metrics.IdentityCacheEvents.WithLabelValues("miss").Inc()

	// The shared lookup outlives any single caller so one disconnecting
	// client cannot fail the others waiting on it.
	ch := c.group.DoChan(hk, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), identityLookupTimeout)
		defer cancel()

		sess, err := c.inner.Resolve(lookupCtx, credential)
		if err == nil && sess == nil {
			err = fmt.Errorf("%w: no session", models.ErrAuthentication)
		}
		c.store(hk, sess, err)
		return sess, err
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", models.ErrIdentityUnavailable, ctx.Err())
	}
	if res.Err != nil {
		return nil, res.Err
	}

	// Shared callers each get their own copy.
	sess := *(res.Val.(*models.Session))

	return &sess, nil
}

// rejection reports whether err is a definite verdict on the credential.
// Outages and timeouts say nothing about the credential and are not cached.
func rejection(err error) bool {
	return errors.Is(err, models.ErrAuthentication) &&
		!errors.Is(err, models.ErrIdentityUnavailable) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func (c *CachedResolver) store(hk string, sess *models.Session, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.cache) >= maxCacheEntries {
		c.evictExpiredLocked(time.Now())
		for k := range c.cache {
			if len(c.cache) < maxCacheEntries {
				break
			}
			delete(c.cache, k)
		}
	}

	if err != nil {
		if rejection(err) {
			c.cache[hk] = cachedSession{fetchedAt: time.Now()}
		}
		return
	}

	stored := *sess
	c.cache[hk] = cachedSession{session: &stored, fetchedAt: time.Now()}
}
