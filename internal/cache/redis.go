// Package cache layers Redis in front of the hot read paths. Every helper
// treats a nil client as "caching off", so the API keeps serving straight
// from the database when Redis is absent or unreachable.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"lumen/internal/middleware"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

const pingTimeout = 5 * time.Second

// metricsHook counts failed commands into the lumen_redis_errors_total series.
// A cache miss (redis.Nil) is not a failure.
type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

func parseAddr(addr string) (*redis.Options, error) {
	if strings.Contains(addr, "://") {
		return redis.ParseURL(addr)
	}
	return &redis.Options{Addr: addr}, nil
}

// InitRedis connects using either a redis:// URL or a bare host:port. An
// invalid address or unreachable server logs a warning and leaves caching
// off rather than failing startup.
func InitRedis(addr string) {
	opts, err := parseAddr(addr)
	if err != nil {
		middleware.Logger.Warn("Redis disabled: invalid address",
			slog.String("addr", addr),
			slog.String("error", err.Error()))
		client = nil
		return
	}

	c := redis.NewClient(opts)
	c.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis disabled: ping failed",
			slog.String("addr", opts.Addr),
			slog.String("error", err.Error()))
		client = nil
		return
	}

	middleware.Logger.Info("Redis connected", slog.String("addr", opts.Addr))
	client = c
}

// GetClient returns the current Redis client, nil when caching is off.
func GetClient() *redis.Client {
	return client
}

// SetClient replaces the client; used by tests with miniredis.
func SetClient(c *redis.Client) {
	client = c
}
