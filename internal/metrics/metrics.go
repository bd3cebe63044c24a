// Package metrics defines the prometheus collectors exported by the blog service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// Metrics groups the service's collectors. A nil *Metrics records nothing.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	SlugCollisions  *prometheus.CounterVec
	PostsCreated    prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		SlugCollisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slug_collisions_total",
			Help:      "Post slug uniqueness conflicts, by outcome of the timestamped retry.",
		}, []string{"outcome"}),
		PostsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_created_total",
			Help:      "Posts successfully created.",
		}),
	}
}

// Slug collision outcomes.
const (
	CollisionResolved = "resolved"
	CollisionFailed   = "failed"
)

// ObserveSlugCollision counts a slug conflict and how the retry ended.
func (m *Metrics) ObserveSlugCollision(outcome string) {
	if m == nil {
		return
	}
	m.SlugCollisions.WithLabelValues(outcome).Inc()
}

// ObservePostCreated counts a stored post.
func (m *Metrics) ObservePostCreated() {
	if m == nil {
		return
	}
	m.PostsCreated.Inc()
}
