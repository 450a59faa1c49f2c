// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package metrics exposes designer and simulation metrics to Prometheus.
//
package metrics

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	sim "github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "logicsim"

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
//
type Metrics struct {
	registry *prometheus.Registry

	propagations *prometheus.CounterVec
	iterations   prometheus.Histogram
	unconverged  prometheus.Counter
	actions      *prometheus.CounterVec
	components   prometheus.Gauge
	connections  prometheus.Gauge
}

// New creates the collectors and registers them on a new registry, along
// with the Go runtime collectors.
//
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		propagations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "propagations_total",
			Help:      "Number of propagation runs, by mode (full or settle).",
		}, []string{"mode"}),
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "iterations",
			Help:      "Evaluation passes per propagation run.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 55, 100},
		}),
		unconverged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "unconverged_total",
			Help:      "Number of propagation runs stopped by the iteration cap.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "designer",
			Name:      "actions_total",
			Help:      "Designer actions, by action and status.",
		}, []string{"action", "status"}),
		components: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "circuit",
			Name:      "components",
			Help:      "Number of components in the circuit.",
		}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "circuit",
			Name:      "connections",
			Help:      "Number of connections in the circuit.",
		}),
	}
	m.registry.MustRegister(
		m.propagations,
		m.iterations,
		m.unconverged,
		m.actions,
		m.components,
		m.connections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying Prometheus registry.
//
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Propagated records a propagation run. full is false for warm starts.
//
func (m *Metrics) Propagated(full bool, r sim.Result) {
	if m == nil {
		return
	}
	mode := "settle"
	if full {
		mode = "full"
	}
	m.propagations.WithLabelValues(mode).Inc()
	m.iterations.Observe(float64(r.Iterations))
	if !r.Converged {
		m.unconverged.Inc()
	}
}

// Action records a designer action and whether it failed.
//
func (m *Metrics) Action(name string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.actions.WithLabelValues(name, status).Inc()
}

// Size records the size of the circuit.
//
func (m *Metrics) Size(components, connections int) {
	if m == nil {
		return
	}
	m.components.Set(float64(components))
	m.connections.Set(float64(connections))
}

// Handler returns an HTTP handler serving the metrics.
//
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve serves the metrics on /metrics at addr until ctx is done.
//
func (m *Metrics) Serve(ctx context.Context, addr string, log *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "metrics listen")
	}
	log.Info("serving metrics", "addr", l.Addr().String())

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(l) }()
	select {
	case err = <-errc:
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = srv.Shutdown(sctx)
	}
	if err == http.ErrServerClosed {
		err = nil
	}
	return errors.Wrap(err, "metrics server")
}
