// Package metrics exposes batch delivery counters over Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bft-labs/sqsbatch/internal/domain"
)

// Registry holds the delivery metrics on a private Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	messagesSent    *prometheus.CounterVec
	messagesDropped *prometheus.CounterVec
	flushAttempts   *prometheus.HistogramVec
	flushDuration   *prometheus.HistogramVec
}

// NewRegistry creates a registry with all metrics registered.
func NewRegistry() *Registry {
	registry := prometheus.NewRegistry()

	r := &Registry{
		registry: registry,

		messagesSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sqsbatch_messages_sent_total",
				Help: "Total number of messages acknowledged by the queue",
			},
			[]string{"queue"},
		),

		messagesDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sqsbatch_messages_dropped_total",
				Help: "Total number of messages still rejected after the final attempt",
			},
			[]string{"queue", "code"},
		),

		flushAttempts: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sqsbatch_flush_attempts",
				Help:    "Number of send attempts used per flush",
				Buckets: []float64{1, 2, 3, 4, 6, 8, 11},
			},
			[]string{"queue"},
		),

		flushDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sqsbatch_flush_duration_seconds",
				Help:    "Time spent in a flush including retries and backoff",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"queue", "status"}, // status: success, partial, error
		),
	}

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(
		r.messagesSent,
		r.messagesDropped,
		r.flushAttempts,
		r.flushDuration,
	)

	return r
}

// Handler returns an HTTP handler for the Prometheus metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		Registry:          r.registry,
	})
}

// Gatherer returns the underlying registry for inspection.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Observer returns a flush observer that records into r under the queue label.
func (r *Registry) Observer(queue string) *Observer {
	return &Observer{registry: r, queue: queue}
}

// Observer records buffer events for one queue. It implements the success,
// drop and flush observer ports.
type Observer struct {
	registry *Registry
	queue    string
}

// OnSuccess counts acknowledged messages.
func (o *Observer) OnSuccess(ids []string) {
	o.registry.messagesSent.WithLabelValues(o.queue).Add(float64(len(ids)))
}

// OnDropped counts dropped messages by failure code.
func (o *Observer) OnDropped(items []domain.FailedItem) {
	for _, f := range items {
		code := f.Code
		if code == "" {
			code = "unknown"
		}
		o.registry.messagesDropped.WithLabelValues(o.queue, code).Inc()
	}
}

// OnFlush records attempts and latency of a finished flush.
func (o *Observer) OnFlush(report domain.FlushReport, elapsed time.Duration, err error) {
	status := "success"
	switch {
	case err != nil:
		status = "error"
	case len(report.Dropped) > 0:
		status = "partial"
	}

	o.registry.flushAttempts.WithLabelValues(o.queue).Observe(float64(report.Attempts))
	o.registry.flushDuration.WithLabelValues(o.queue, status).Observe(elapsed.Seconds())
}
