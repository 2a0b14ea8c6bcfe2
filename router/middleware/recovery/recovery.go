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

// Package recovery recovers from handler panics and converts them into
// 500 responses instead of dropped connections.
package recovery

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gantry-dev/gantry/router"
)

// Option configures the recovery middleware.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	handler func(c *router.Context, err any)
}

func defaultConfig() *config {
	return &config{
		logger:  slog.Default(),
		handler: defaultHandler,
	}
}

func defaultHandler(c *router.Context, _ any) {
	c.JSON(http.StatusInternalServerError, map[string]any{
		"error": "Internal server error",
		"code":  "INTERNAL_ERROR",
	})
}

// WithLogger sets the logger used for recovered panics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithHandler sets a custom response handler for recovered panics.
func WithHandler(fn func(c *router.Context, err any)) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.handler = fn
		}
	}
}

// New returns a middleware that recovers from panics in downstream
// handlers, logs the panic with a stack trace, and responds 500. Register
// it early in the chain so it covers as much as possible.
//
// Example:
//
//	r := router.MustNew()
//	r.Use(recovery.New(recovery.WithLogger(logger)))
func New(opts ...Option) router.HandlerFunc {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *router.Context) {
		defer func() {
			if err := recover(); err != nil {
				cfg.logger.Error("panic recovered",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"route", c.RouteTemplate(),
					"stack", string(debug.Stack()),
				)
				cfg.handler(c, err)
				c.Abort()
			}
		}()
		c.Next()
	}
}
