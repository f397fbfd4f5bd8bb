// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics declares the Prometheus collectors exported on /metrics.

Collectors are registered once with the default registry through promauto and
updated by the middleware chain, the movie handler and the movie cache.
*/
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fiver"

var (
	// HTTPRequestsTotal counts finished requests by route pattern.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	// RepresentationsTotal counts rendered resource responses by negotiated mode.
	RepresentationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hateoas",
			Name:      "representations_total",
			Help:      "Total number of rendered representations by mode",
		},
		[]string{"mode"},
	)

	// PatchesTotal counts partial updates by outcome (applied, rejected, invalid).
	PatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "movie",
			Name:      "patches_total",
			Help:      "Total number of partial updates by outcome",
		},
		[]string{"outcome"},
	)

	// CacheLookupsTotal counts movie cache lookups by result (hit, miss, error).
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total number of movie cache lookups by result",
		},
		[]string{"result"},
	)
)

// Patch outcomes.
const (
	PatchApplied  = "applied"
	PatchRejected = "rejected"
	PatchInvalid  = "invalid"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)
