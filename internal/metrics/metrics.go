// Package metrics exposes Prometheus collectors for the HTTP surface and the
// submit pipeline.
package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-studentservices/pkg/form"
)

const namespace = "studentservices"

// Submission outcomes recorded by ObserveSubmit.
const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

// Metrics groups the collectors. Construct with New.
type Metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	submissions *prometheus.CounterVec
	validations *prometheus.CounterVec
	handled     prometheus.Counter
}

// New creates and registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"route", "method"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Form submissions by outcome",
		}, []string{"outcome"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_errors_total",
			Help:      "Validation messages produced on submit, by field",
		}, []string{"field"}),
		handled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_handled_total",
			Help:      "Submissions delivered to the terminal handler",
		}),
	}

	reg.MustRegister(m.requests, m.duration, m.submissions, m.validations, m.handled)
	return m
}

// Middleware records request counts and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// ObserveSubmit records the outcome of a controller Submit call.
func (m *Metrics) ObserveSubmit(err error) {
	var invalid *form.ValidationError
	switch {
	case err == nil:
		m.submissions.WithLabelValues(OutcomeAccepted).Inc()
	case errors.As(err, &invalid):
		m.submissions.WithLabelValues(OutcomeInvalid).Inc()
		for field := range invalid.Fields {
			m.validations.WithLabelValues(field).Inc()
		}
	default:
		m.submissions.WithLabelValues(OutcomeFailed).Inc()
	}
}

// InstrumentHandler counts submissions that reach next.
func (m *Metrics) InstrumentHandler(next form.SubmitHandler) form.SubmitHandler {
	return form.HandlerFunc(func(ctx context.Context, sub form.Submission) error {
		m.handled.Inc()
		return next.Handle(ctx, sub)
	})
}
