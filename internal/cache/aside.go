package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"lumen/internal/middleware"

	"github.com/redis/go-redis/v9"
)

func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

// Aside implements the cache-aside pattern: on a hit dest is unmarshaled from
// Redis; on a miss fetch is invoked and its result stored under key for ttl.
// When Redis is unavailable the fetch runs directly, so callers never observe
// cache failures.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			middleware.CacheHits.WithLabelValues(keyPrefix(key)).Inc()
			return nil
		}
		// Corrupt entry: drop it and fall through to the fetch.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		// Redis unreachable mid-flight; serve from the source.
		return fetch()
	}

	middleware.CacheMisses.WithLabelValues(keyPrefix(key)).Inc()
	if err := fetch(); err != nil {
		return err
	}

	if encoded, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, encoded, ttl)
	}
	return nil
}
