package sina

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes, the value of the "outcome" label.
const (
	outcomeOK     = "ok"
	outcomeError  = "error"  // transport
	outcomeStatus = "status" // non-2xx
	outcomeDecode = "decode"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

// newMetrics registers the feed metrics on reg. A nil reg returns nil metrics,
// which record nothing.
func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "watchlist_feed_requests_total",
			Help: "Feed requests by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "watchlist_feed_request_duration_seconds",
			Help:    "Feed round-trip latency",
			Buckets: prometheus.DefBuckets,
		}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}
