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

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRequest(r *Router, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_BasicRouting(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.GET("/hello", func(c *Context) {
		c.String(http.StatusOK, "world")
	})

	w := performRequest(r, http.MethodGet, "/hello")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "world", w.Body.String())
}

func TestRouter_MethodHelpers(t *testing.T) {
	t.Parallel()

	r := MustNew()
	handler := func(c *Context) { c.Status(http.StatusNoContent) }

	r.GET("/r", handler)
	r.POST("/r", handler)
	r.PUT("/r", handler)
	r.DELETE("/r", handler)
	r.PATCH("/r", handler)
	r.HEAD("/r", handler)
	r.OPTIONS("/r", handler)

	for _, method := range []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		http.MethodPatch, http.MethodHead, http.MethodOptions,
	} {
		w := performRequest(r, method, "/r")
		assert.Equal(t, http.StatusNoContent, w.Code, "method %s", method)
	}
}

func TestRouter_PathParameters(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.GET("/users/:id/posts/:post", func(c *Context) {
		c.String(http.StatusOK, "%s/%s", c.Param("id"), c.Param("post"))
	})

	w := performRequest(r, http.MethodGet, "/users/42/posts/7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42/7", w.Body.String())
}

func TestRouter_LiteralBeatsParam(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.GET("/users/me", func(c *Context) {
		c.String(http.StatusOK, "literal")
	})
	r.GET("/users/:id", func(c *Context) {
		c.String(http.StatusOK, "param:%s", c.Param("id"))
	})

	w := performRequest(r, http.MethodGet, "/users/me")
	assert.Equal(t, "literal", w.Body.String())

	w = performRequest(r, http.MethodGet, "/users/42")
	assert.Equal(t, "param:42", w.Body.String())
}

func TestRouter_ParamBacktracking(t *testing.T) {
	t.Parallel()

	// /files/special dead-ends for /files/special/x, the param branch
	// must still match.
	r := MustNew()
	r.GET("/files/special", func(c *Context) {
		c.String(http.StatusOK, "special")
	})
	r.GET("/files/:name/meta", func(c *Context) {
		c.String(http.StatusOK, "meta:%s", c.Param("name"))
	})

	w := performRequest(r, http.MethodGet, "/files/special/meta")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "meta:special", w.Body.String())
}

func TestRouter_Wildcard(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.GET("/assets/*filepath", func(c *Context) {
		c.String(http.StatusOK, "%s", c.Param("filepath"))
	})

	w := performRequest(r, http.MethodGet, "/assets/css/app.css")
	assert.Equal(t, "css/app.css", w.Body.String())

	w = performRequest(r, http.MethodGet, "/assets/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", w.Body.String())
}

func TestRouter_MiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	r := MustNew()
	r.Use(func(c *Context) {
		order = append(order, "first")
		c.Next()
		order = append(order, "first-after")
	})
	r.Use(func(c *Context) {
		order = append(order, "second")
		c.Next()
	})
	r.GET("/", func(c *Context) {
		order = append(order, "handler")
		c.Status(http.StatusOK)
	})

	performRequest(r, http.MethodGet, "/")
	assert.Equal(t, []string{"first", "second", "handler", "first-after"}, order)
}

func TestRouter_Abort(t *testing.T) {
	t.Parallel()

	handlerRan := false
	r := MustNew()
	r.Use(func(c *Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	})
	r.GET("/secret", func(c *Context) {
		handlerRan = true
		c.Status(http.StatusOK)
	})

	w := performRequest(r, http.MethodGet, "/secret")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, handlerRan, "handler must not run after abort")
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.GET("/exists", func(c *Context) { c.Status(http.StatusOK) })

	w := performRequest(r, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CustomNoRoute(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.NoRoute(func(c *Context) {
		c.String(http.StatusNotFound, "custom 404")
	})

	w := performRequest(r, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "custom 404", w.Body.String())
}

func TestRouter_NamedRoutes(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.GET("/users/:id", func(c *Context) { c.Status(http.StatusOK) }).SetName("users.show")

	url, err := r.URL("users.show", "id", "42")
	require.NoError(t, err)
	assert.Equal(t, "/users/42", url)

	_, err = r.URL("users.show")
	require.ErrorIs(t, err, ErrMissingRouteParameter)

	_, err = r.URL("nope")
	require.ErrorIs(t, err, ErrRouteNotFound)
}

func TestRouter_RouteExists(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.GET("/ping", func(c *Context) { c.Status(http.StatusOK) })

	assert.True(t, r.RouteExists(http.MethodGet, "/ping"))
	assert.False(t, r.RouteExists(http.MethodPost, "/ping"))
	assert.False(t, r.RouteExists(http.MethodGet, "/pong"))
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.GET("/a", func(c *Context) {}).SetName("a")
	r.POST("/b", func(c *Context) {})

	routes := r.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, RouteInfo{Method: http.MethodGet, Path: "/a", Name: "a"}, routes[0])
	assert.Equal(t, RouteInfo{Method: http.MethodPost, Path: "/b"}, routes[1])
}

func TestRouter_ConflictPanics(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.GET("/dup", func(c *Context) {})

	assert.Panics(t, func() {
		r.GET("/dup", func(c *Context) {})
	})
}

func TestRouter_InvalidPathPanics(t *testing.T) {
	t.Parallel()

	r := MustNew()
	assert.Panics(t, func() {
		r.GET("no-leading-slash", func(c *Context) {})
	})
	assert.Panics(t, func() {
		r.GET("/no-handler")
	})
}

func TestContext_QueryAndValues(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.Use(func(c *Context) {
		c.Set("requestID", "abc")
		c.Next()
	})
	r.GET("/search", func(c *Context) {
		id, ok := c.Get("requestID")
		require.True(t, ok)
		c.String(http.StatusOK, "%s/%s", c.Query("q"), id.(string))
	})

	w := performRequest(r, http.MethodGet, "/search?q=term")
	assert.Equal(t, "term/abc", w.Body.String())
}

func TestContext_JSON(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.GET("/json", func(c *Context) {
		c.JSON(http.StatusCreated, map[string]any{"ok": true})
	})

	w := performRequest(r, http.MethodGet, "/json")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestContext_RouteTemplate(t *testing.T) {
	t.Parallel()

	var template string
	r := MustNew()
	r.GET("/orders/:id", func(c *Context) {
		template = c.RouteTemplate()
		c.Status(http.StatusOK)
	})

	performRequest(r, http.MethodGet, "/orders/9")
	assert.Equal(t, "/orders/:id", template)
}
