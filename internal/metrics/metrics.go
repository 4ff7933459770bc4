// Package metrics provides Prometheus metrics for validation and HTTP traffic.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	goshape "github.com/reoring/goshape"
)

const namespace = "goshape"

// Metrics holds all collectors. Each instance owns its registry so tests can
// build several side by side.
type Metrics struct {
	Registry *prometheus.Registry

	Validations     *prometheus.CounterVec
	Issues          *prometheus.CounterVec
	Projections     *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Total number of validations by shape and outcome",
		}, []string{"shape", "outcome"}),
		Issues: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "issues_total",
			Help:      "Total number of validation issues by shape and code",
		}, []string{"shape", "code"}),
		Projections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projections_total",
			Help:      "Total number of projections by source, target and outcome",
		}, []string{"source", "target", "outcome"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "method", "status"}),
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveValidation records one validation of shape and its issues.
func (m *Metrics) ObserveValidation(shape string, err error) {
	m.Validations.WithLabelValues(shape, outcome(err)).Inc()
	var iss goshape.Issues
	if errors.As(err, &iss) {
		for _, it := range iss {
			m.Issues.WithLabelValues(shape, it.Code).Inc()
		}
	}
}

// ObserveProjection records one projection.
func (m *Metrics) ObserveProjection(source, target string, err error) {
	m.Projections.WithLabelValues(source, target, outcome(err)).Inc()
}

// Middleware times every request by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
