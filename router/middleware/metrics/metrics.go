// Copyright 2026 The Gantry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics records per-route request counts and latencies as
// Prometheus metrics. Because mounted engine routes keep their full
// templates (for example "/blog/posts/:id"), engine traffic shows up
// under stable, readable label values instead of catch-all patterns.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gantry-dev/gantry/router"
)

// Option configures the metrics middleware.
type Option func(*config)

type config struct {
	registerer prometheus.Registerer
	namespace  string
	buckets    []float64
}

func defaultConfig() *config {
	return &config{
		registerer: prometheus.DefaultRegisterer,
		namespace:  "gantry",
		buckets:    prometheus.DefBuckets,
	}
}

// WithRegisterer sets the Prometheus registerer the collectors are
// registered with. Defaults to prometheus.DefaultRegisterer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.registerer = reg
		}
	}
}

// WithNamespace sets the metric namespace. Defaults to "gantry".
func WithNamespace(ns string) Option {
	return func(cfg *config) {
		if ns != "" {
			cfg.namespace = ns
		}
	}
}

// WithBuckets sets the latency histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(cfg *config) {
		if len(buckets) > 0 {
			cfg.buckets = buckets
		}
	}
}

// New returns a middleware that observes request count and duration,
// labeled by method, route template, and status code.
//
// Example:
//
//	r := router.MustNew()
//	r.Use(metrics.New())
func New(opts ...Option) router.HandlerFunc {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   cfg.buckets,
		},
		[]string{"method", "route"},
	)
	cfg.registerer.MustRegister(requests, duration)

	return func(c *router.Context) {
		start := time.Now()
		c.Next()

		route := c.RouteTemplate()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		code := c.StatusCode()
		if code == 0 {
			code = 200
		}
		status := strconv.Itoa(code)

		requests.WithLabelValues(method, route, status).Inc()
		duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
