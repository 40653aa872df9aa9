package usercache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheUnavailable is an exported constant or variable used by the credential service.
var ErrCacheUnavailable = errors.New("user cache unavailable")

const defaultTTL = 15 * time.Minute

// Loader fetches a user from the source of truth on a cache miss. A nil
// user with a nil error means the user does not exist; that outcome is
// returned to the caller but never cached.
type Loader func(ctx context.Context, email string) (*User, error)

// Cache defines a public type used by credkit APIs.
//
// Cache instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Cache struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// New creates a Cache backed by the given Redis client. prefix sets the key
// namespace the cache owns exclusively; ttl bounds entry staleness.
func New(client redis.UniversalClient, prefix string, ttl time.Duration) *Cache {
	if prefix == "" {
		prefix = "uc"
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		redis:  client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *Cache) key(email string) string {
	return c.prefix + ":user:" + email
}

// Get returns the cached user for email, or (nil, nil) on a miss. Absence,
// expiry, and an undecodable snapshot are all indistinguishable misses.
//
//	Performance: 1 Redis GET.
func (c *Cache) Get(ctx context.Context, email string) (*User, error) {
	data, err := c.redis.Get(ctx, c.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}

	user, err := decodeSnapshot(data)
	if err != nil {
		return nil, nil
	}

	return user, nil
}

// Resolve returns the user for email, consulting the loader on a miss and
// caching a found result with a fresh TTL. Concurrent resolves for the same
// key may both miss and both populate; the writes carry equivalent data and
// the last one wins, which Redis keeps per-key atomic.
//
// Resolve may return an error when input validation, dependency calls, or security checks fail.
// Resolve does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Cache) Resolve(ctx context.Context, email string, loader Loader) (*User, error) {
	user, err := c.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = loader(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Negative results are never cached; the user may exist on the
		// next resolve.
		return nil, nil
	}

	data, err := encodeSnapshot(user)
	if err != nil {
		return nil, err
	}
	if err := c.redis.Set(ctx, c.key(email), data, c.ttl).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}

	return user.Clone(), nil
}

// Invalidate removes the entry for email immediately. Removing an absent
// entry is not an error.
//
//	Performance: 1 Redis DEL.
func (c *Cache) Invalidate(ctx context.Context, email string) error {
	if err := c.redis.Del(ctx, c.key(email)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}
