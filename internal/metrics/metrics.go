package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all Prometheus metrics for the API. Metrics register against
// a private Prometheus registry so multiple instances can coexist.
type Registry struct {
	Prometheus *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	MembershipJoinsTotal  *prometheus.CounterVec
	PostVotesTotal        *prometheus.CounterVec
	PollVotesTotal        prometheus.Counter
	ProfileProjectedTotal *prometheus.CounterVec
}

// NewRegistry initializes and returns a new Registry with all metrics
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		Prometheus: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scaleup_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scaleup_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		MembershipJoinsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scaleup_membership_joins_total",
				Help: "Total community joins by source (direct, auto_match, approval)",
			},
			[]string{"source"},
		),
		PostVotesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scaleup_post_votes_total",
				Help: "Total post votes by direction",
			},
			[]string{"direction"},
		),
		PollVotesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "scaleup_poll_votes_total",
				Help: "Total poll vote rows written",
			},
		),
		ProfileProjectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scaleup_profiles_projected_total",
				Help: "Total profile projections by viewer relationship",
			},
			[]string{"relationship"},
		),
	}
}
