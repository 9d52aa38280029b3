package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lumen_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FeedRequests counts feed page fetches by filter kind (none, tag, category, both).
	FeedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_feed_requests_total",
		Help: "Total number of feed page requests by filter kind",
	}, []string{"filter"})

	// ReactionEvents counts reaction add/remove events.
	ReactionEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_reaction_events_total",
		Help: "Total number of reaction events by action",
	}, []string{"action"})

	// FollowEvents counts follow and unfollow events.
	FollowEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_follow_events_total",
		Help: "Total number of follow graph mutations by action",
	}, []string{"action"})

	// BookmarkEvents counts bookmark add/remove events.
	BookmarkEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_bookmark_events_total",
		Help: "Total number of bookmark mutations by action",
	}, []string{"action"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
