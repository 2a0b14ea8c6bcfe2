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

package recovery

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gantry-dev/gantry/router"
)

func TestRecovery_PanicBecomes500(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := router.MustNew()
	r.Use(New(WithLogger(logger)))
	r.GET("/boom", func(c *router.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "kaboom")
}

func TestRecovery_HealthyRequestUntouched(t *testing.T) {
	t.Parallel()

	r := router.MustNew()
	r.Use(New())
	r.GET("/ok", func(c *router.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRecovery_CustomHandler(t *testing.T) {
	t.Parallel()

	r := router.MustNew()
	r.Use(New(
		WithLogger(slog.New(slog.DiscardHandler)),
		WithHandler(func(c *router.Context, err any) {
			c.String(http.StatusServiceUnavailable, "try later")
		}),
	))
	r.GET("/boom", func(c *router.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "try later", w.Body.String())
}

func TestRecovery_CoversMountedEngineRoutes(t *testing.T) {
	t.Parallel()

	sub := router.MustNew()
	sub.GET("/panics", func(c *router.Context) {
		panic("engine panic")
	})

	r := router.MustNew()
	r.Use(New(WithLogger(slog.New(slog.DiscardHandler))))
	if err := r.Mount("/blog", sub, router.InheritMiddleware()); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/blog/panics", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
