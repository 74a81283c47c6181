package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "propertycalc"

// Metrics holds the collectors of one registry. Collectors are safe for
// concurrent use.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests      *prometheus.CounterVec
	HTTPLatency       *prometheus.HistogramVec
	Calculations      *prometheus.CounterVec
	CreditEvaluations *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		HTTPLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		Calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "calculations_total", Help: "Calculator runs."},
			[]string{"category", "outcome"}, // outcome: ok|invalid
		),
		CreditEvaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "credit_evaluations_total", Help: "Credit evaluations."},
			[]string{"tier", "approved"},
		),
	}
	m.registry.MustRegister(m.HTTPRequests, m.HTTPLatency, m.Calculations, m.CreditEvaluations)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(route, method string, status int, dur time.Duration) {
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func (m *Metrics) ObserveCalculation(category string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "invalid"
	}
	m.Calculations.WithLabelValues(category, outcome).Inc()
}

func (m *Metrics) ObserveCreditEvaluation(tier string, approved bool) {
	m.CreditEvaluations.WithLabelValues(tier, strconv.FormatBool(approved)).Inc()
}
