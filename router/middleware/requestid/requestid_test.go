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

package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantry-dev/gantry/router"
)

func TestRequestID_GeneratesUUID(t *testing.T) {
	t.Parallel()

	r := router.MustNew()
	r.Use(New())
	var seen string
	r.GET("/", func(c *router.Context) {
		seen = Get(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	header := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, header)
	assert.Equal(t, header, seen)
	_, err := uuid.Parse(header)
	assert.NoError(t, err, "generated ID should be a UUID")
}

func TestRequestID_ClientIDReused(t *testing.T) {
	t.Parallel()

	r := router.MustNew()
	r.Use(New())
	r.GET("/", func(c *router.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "client-id", w.Header().Get("X-Request-ID"))
}

func TestRequestID_ClientIDRejected(t *testing.T) {
	t.Parallel()

	r := router.MustNew()
	r.Use(New(WithAllowClientID(false)))
	r.GET("/", func(c *router.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "client-id", w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestID_CustomHeaderAndGenerator(t *testing.T) {
	t.Parallel()

	r := router.MustNew()
	r.Use(New(
		WithHeader("X-Correlation-ID"),
		WithGenerator(func() string { return "fixed" }),
	))
	r.GET("/", func(c *router.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "fixed", w.Header().Get("X-Correlation-ID"))
}

func TestGet_WithoutMiddleware(t *testing.T) {
	t.Parallel()

	r := router.MustNew()
	var got string
	r.GET("/", func(c *router.Context) {
		got = Get(c)
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, got)
}
