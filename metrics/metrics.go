package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the API's collectors on a private registry. A nil *Metrics records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	donations        prometheus.Counter
	donationAmount   prometheus.Counter
	orderTransitions *prometheus.CounterVec
	purgedTokens     prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nourishnet",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "nourishnet",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"method", "route"},
		),
		donations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nourishnet",
			Subsystem: "donor",
			Name:      "donations_total",
			Help:      "Donations processed successfully.",
		}),
		donationAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nourishnet",
			Subsystem: "donor",
			Name:      "donation_amount_total",
			Help:      "Sum of successful donation amounts.",
		}),
		orderTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nourishnet",
				Subsystem: "provider",
				Name:      "order_transitions_total",
				Help:      "Order status changes by target status.",
			},
			[]string{"status"},
		),
		purgedTokens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nourishnet",
			Subsystem: "cron",
			Name:      "purged_reset_tokens_total",
			Help:      "Expired password reset tokens cleared by the purge job.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.donations,
		m.donationAmount,
		m.orderTransitions,
		m.purgedTokens,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) ObserveDonation(amount float64) {
	if m == nil {
		return
	}
	m.donations.Inc()
	m.donationAmount.Add(amount)
}

func (m *Metrics) ObserveOrderTransition(status string) {
	if m == nil {
		return
	}
	m.orderTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) ObservePurge(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.purgedTokens.Add(float64(n))
}
