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

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantry-dev/gantry/engine"
	"github.com/gantry-dev/gantry/logging"
	"github.com/gantry-dev/gantry/router"
)

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	base := []Option{
		WithBanner(false),
		WithLogger(logging.Noop()),
	}
	return New("testapp", append(base, opts...)...)
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	a := New("svc", WithBanner(false))
	assert.Equal(t, "svc", a.Name())
	assert.Equal(t, "0.0.0", a.Version())
	assert.Equal(t, EnvironmentDevelopment, a.Environment())
	assert.False(t, a.Booted())
	assert.NotNil(t, a.Router())
	assert.NotNil(t, a.Helpers())
	assert.NotNil(t, a.Generators())
}

func TestMount_DuplicatePrefixRejected(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	require.NoError(t, a.Mount("/blog", engine.New("blog")))

	err := a.Mount("/blog", engine.New("other"))
	require.ErrorIs(t, err, ErrDuplicateMount)
}

func TestMount_DuplicateEngineNameRejected(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	require.NoError(t, a.Mount("/blog", engine.New("blog")))

	err := a.Mount("/weblog", engine.New("blog"))
	require.ErrorIs(t, err, ErrDuplicateMount)
}

func TestMount_AfterBootRejected(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	require.NoError(t, a.Boot(context.Background()))

	err := a.Mount("/late", engine.New("late"))
	require.ErrorIs(t, err, ErrAlreadyBooted)
}

func TestEngine_Lookup(t *testing.T) {
	t.Parallel()

	blog := engine.New("blog")
	a := newTestApp(t)
	require.NoError(t, a.Mount("/blog", blog))

	got, err := a.Engine("blog")
	require.NoError(t, err)
	assert.Same(t, blog, got)

	_, err = a.Engine("shop")
	require.ErrorIs(t, err, ErrEngineNotFound)

	assert.Len(t, a.Engines(), 1)
}

func TestSeed_HostOnly(t *testing.T) {
	t.Parallel()

	var ran []string
	blog := engine.New("blog", engine.WithSeed(func(ctx context.Context) error {
		ran = append(ran, "blog")
		return nil
	}))

	a := newTestApp(t, WithSeed(func(ctx context.Context) error {
		ran = append(ran, "host")
		return nil
	}))
	require.NoError(t, a.Mount("/blog", blog))

	// Host seed never triggers engine seeds.
	require.NoError(t, a.Seed(context.Background()))
	assert.Equal(t, []string{"host"}, ran)

	// Engine seed never triggers the host's.
	ran = nil
	require.NoError(t, blog.Seed(context.Background()))
	assert.Equal(t, []string{"blog"}, ran)
}

func TestServeHTTP_DispatchesHostAndEngines(t *testing.T) {
	t.Parallel()

	blog := engine.New("blog")
	blog.Router().GET("/posts", func(c *router.Context) {
		c.String(http.StatusOK, "posts")
	})

	a := newTestApp(t)
	a.Router().GET("/", func(c *router.Context) {
		c.String(http.StatusOK, "home")
	})
	require.NoError(t, a.Mount("/blog", blog))
	require.NoError(t, a.Boot(context.Background()))

	w := httptest.NewRecorder()
	a.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "home", w.Body.String())

	w = httptest.NewRecorder()
	a.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/blog/posts", nil))
	assert.Equal(t, "posts", w.Body.String())

	// Unmatched inside the mount prefix falls to host 404, never a panic.
	w = httptest.NewRecorder()
	a.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/blog/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHostMiddlewareDoesNotWrapEngineRoutes(t *testing.T) {
	t.Parallel()

	var order []string
	blog := engine.New("blog")
	blog.Use(func(c *router.Context) {
		order = append(order, "engine-mw")
		c.Next()
	})
	blog.Router().GET("/posts", func(c *router.Context) {
		order = append(order, "engine-handler")
		c.Status(http.StatusOK)
	})

	a := newTestApp(t)
	a.Use(func(c *router.Context) {
		order = append(order, "host-mw")
		c.Next()
	})
	a.Router().GET("/home", func(c *router.Context) {
		order = append(order, "host-handler")
		c.Status(http.StatusOK)
	})
	require.NoError(t, a.Mount("/blog", blog))
	require.NoError(t, a.Boot(context.Background()))

	a.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/blog/posts", nil))
	assert.Equal(t, []string{"engine-mw", "engine-handler"}, order)

	order = nil
	a.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/home", nil))
	assert.Equal(t, []string{"host-mw", "host-handler"}, order)
}

func TestRun_RequiresBoot(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	err := a.Run(context.Background(), ":0")
	require.ErrorIs(t, err, ErrNotBooted)
}
