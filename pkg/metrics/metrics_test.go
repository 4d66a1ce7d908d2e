package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLikeOutcome(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.LikeOutcome("created")
	m.LikeOutcome("created")
	m.LikeOutcome("self_like")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.likeRequests.WithLabelValues("created")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.likeRequests.WithLabelValues("self_like")))
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.UserRegistered()
	m.PostCreated()
	m.PostCreated()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.usersRegistered))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.postsCreated))
}

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("POST", "/blog/user", "201", 0.01)

	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDurations))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.LikeOutcome("created")
		m.UserRegistered()
		m.PostCreated()
		m.ObserveRequest("GET", "/health", "200", 0.001)
	})
}
