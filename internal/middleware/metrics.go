package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by operation name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheHits counts cache-aside hits by key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_cache_hits_total",
		Help: "Total number of cache hits by key prefix",
	}, []string{"prefix"})

	// CacheMisses counts cache-aside misses by key prefix.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_cache_misses_total",
		Help: "Total number of cache misses by key prefix",
	}, []string{"prefix"})

	// PostViews counts recorded post view events.
	PostViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lumen_post_views_total",
		Help: "Total number of post view increments",
	})

	// MediaServed counts media payloads served by kind (post, avatar, cover).
	MediaServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_media_served_total",
		Help: "Total number of media payloads served by kind",
	}, []string{"kind"})
)

// SetupPrometheus registers the Prometheus HTTP middleware on the app and
// exposes the scrape endpoint at /metrics.
func SetupPrometheus(app *fiber.App, serviceName string) *fiberprometheus.FiberPrometheus {
	prom := fiberprometheus.New(serviceName)
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)
	return prom
}
