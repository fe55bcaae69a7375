// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics exposes the Prometheus instruments of the board API.
//
// Every instrument is registered on an explicit [prometheus.Registry] so tests
// can build isolated sets without touching the global default registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Token validation outcomes beyond the codec failure kinds.
const (
	OutcomeOK          = "ok"
	OutcomeUnknownUser = "unknown_user"
	OutcomeStoreError  = "store_error"
)

// Principal cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds all Prometheus instruments.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	TokenValidations    *prometheus.CounterVec
	PrincipalCache      *prometheus.CounterVec
}

// New creates and registers all instruments on registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "board_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "board_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		TokenValidations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "board_token_validations_total",
				Help: "Bearer token validations by outcome",
			},
			[]string{"outcome"},
		),
		PrincipalCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "board_principal_cache_lookups_total",
				Help: "Principal cache lookups by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.TokenValidations,
		m.PrincipalCache,
	)

	return m
}

// ObserveTokenValidation counts one validation outcome. Safe on a nil receiver.
func (m *Metrics) ObserveTokenValidation(outcome string) {
	if m == nil {
		return
	}
	m.TokenValidations.WithLabelValues(outcome).Inc()
}

// ObservePrincipalCache counts one cache lookup. Safe on a nil receiver.
func (m *Metrics) ObservePrincipalCache(result string) {
	if m == nil {
		return
	}
	m.PrincipalCache.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Middleware instruments request count and latency.
//
// Paths are deliberately not a label: board and user ids would explode cardinality.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(recorder, request)

			m.HTTPRequestsTotal.WithLabelValues(request.Method, strconv.Itoa(recorder.status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(request.Method).Observe(time.Since(start).Seconds())
		})
	}
}
