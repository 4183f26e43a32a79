// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus instrumentation for the HTTP server.

It tracks in-flight requests, request counts and latencies labelled by route
pattern, and the outcome of every request identity resolution.

Usage:

	registry := metrics.New()
	router.Use(registry.Instrument)
	router.Handle("/metrics", registry.Handler())
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// unmatchedRoute labels requests that did not hit a registered route.
const unmatchedRoute = "unmatched"

// Registry owns the application's collectors.
type Registry struct {
	registry *prometheus.Registry

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	identityResolutions *prometheus.CounterVec
}

// New creates a registry with HTTP, identity, Go runtime and process collectors.
func New() *Registry {
	registry := &Registry{
		registry: prometheus.NewRegistry(),

		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),

		identityResolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "identity_resolutions_total",
				Help: "Request identity resolutions by outcome and reason.",
			},
			[]string{"outcome", "reason"},
		),
	}

	registry.registry.MustRegister(
		registry.httpInFlight,
		registry.httpRequestsTotal,
		registry.httpRequestDuration,
		registry.identityResolutions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

// Handler serves the Prometheus exposition format.
func (registry *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(registry.registry, promhttp.HandlerOpts{Registry: registry.registry})
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (registry *Registry) Gatherer() prometheus.Gatherer {
	return registry.registry
}

// ObserveResolution counts one identity resolution.
// It satisfies middleware.ResolutionObserver.
func (registry *Registry) ObserveResolution(resolution sec.Resolution) {
	registry.identityResolutions.WithLabelValues(string(resolution.Outcome), string(resolution.Reason)).Inc()
}

// Instrument measures request count, latency and concurrency.
//
// The route label is chi's matched pattern (/api/tasks/{id}), read after the
// handler ran so nested routers have filled it in.
func (registry *Registry) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		registry.httpInFlight.Inc()
		defer registry.httpInFlight.Dec()

		start := time.Now()
		recorder := &statusWriter{ResponseWriter: writer, code: http.StatusOK}
		next.ServeHTTP(recorder, request)

		route := unmatchedRoute
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := strconv.Itoa(recorder.code)
		registry.httpRequestDuration.WithLabelValues(request.Method, route, status).Observe(time.Since(start).Seconds())
		registry.httpRequestsTotal.WithLabelValues(request.Method, route, status).Inc()
	})
}

// statusWriter remembers the response code.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
