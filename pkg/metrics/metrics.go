package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	likeRequests     *prometheus.CounterVec
	usersRegistered  prometheus.Counter
	postsCreated     prometheus.Counter
	requestDurations *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		likeRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blog",
			Name:      "like_requests_total",
			Help:      "Like requests by outcome.",
		}, []string{"outcome"}),
		usersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "blog",
			Name:      "users_registered_total",
			Help:      "Users created through registration.",
		}),
		postsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "blog",
			Name:      "posts_created_total",
			Help:      "Posts created.",
		}),
		requestDurations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "blog",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) LikeOutcome(outcome string) {
	if m == nil {
		return
	}
	m.likeRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) UserRegistered() {
	if m == nil {
		return
	}
	m.usersRegistered.Inc()
}

func (m *Metrics) PostCreated() {
	if m == nil {
		return
	}
	m.postsCreated.Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDurations.WithLabelValues(method, route, status).Observe(seconds)
}
