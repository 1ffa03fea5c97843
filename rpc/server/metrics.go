package server

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// Metrics holds the counters of a single server instance.
// All methods are safe on a nil receiver so components can run without metrics.
type Metrics struct {
	set               *metrics.Set
	activeConnections atomic.Int64
	requestDuration   *metrics.Histogram
}

// NewMetrics creates an empty metrics set
func NewMetrics() *Metrics {
	m := &Metrics{set: metrics.NewSet()}
	m.requestDuration = m.set.NewHistogram("rksok_request_duration_seconds")
	m.set.NewGauge("rksok_connections_active", func() float64 {
		return float64(m.activeConnections.Load())
	})
	return m
}

// Request counts a finished request by verb and response status
func (m *Metrics) Request(verb, status string, start time.Time) {
	if m == nil {
		return
	}
	m.set.GetOrCreateCounter(fmt.Sprintf(`rksok_requests_total{verb=%q,status=%q}`, verb, status)).Inc()
	m.requestDuration.UpdateDuration(start)
}

// Stage counts a pipeline stage transition
func (m *Metrics) Stage(s Stage) {
	if m == nil {
		return
	}
	m.set.GetOrCreateCounter(fmt.Sprintf(`rksok_pipeline_stage_total{stage=%q}`, s)).Inc()
}

// Validation counts an approval verdict
func (m *Metrics) Validation(o ValidationOutcome) {
	if m == nil {
		return
	}
	m.set.GetOrCreateCounter(fmt.Sprintf(`rksok_validation_total{outcome=%q}`, o)).Inc()
}

// StorageError counts a failed storage operation
func (m *Metrics) StorageError(op string) {
	if m == nil {
		return
	}
	m.set.GetOrCreateCounter(fmt.Sprintf(`rksok_storage_errors_total{op=%q}`, op)).Inc()
}

// ConnectionOpened increments the active connection gauge
func (m *Metrics) ConnectionOpened() {
	if m == nil {
		return
	}
	m.activeConnections.Add(1)
}

// ConnectionClosed decrements the active connection gauge and counts the closed stage
func (m *Metrics) ConnectionClosed() {
	if m == nil {
		return
	}
	m.activeConnections.Add(-1)
	m.Stage(StageClosed)
}

// WritePrometheus writes all metrics in the prometheus text format
func (m *Metrics) WritePrometheus(w io.Writer) {
	if m == nil {
		return
	}
	m.set.WritePrometheus(w)
}
