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
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Option defines functional options for router configuration.
type Option func(*Router)

// WithLogger sets the logger used for router diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Router matches HTTP requests to registered routes and executes handler
// chains. It is safe for concurrent request handling; route registration
// is expected to happen at boot, before serving begins.
//
// Example:
//
//	r := router.MustNew()
//	r.GET("/users/:id", func(c *router.Context) {
//	    c.String(http.StatusOK, "user %s", c.Param("id"))
//	})
//	http.ListenAndServe(":8080", r)
type Router struct {
	trees  map[string]*node
	treeMu sync.RWMutex

	middleware   []HandlerFunc
	middlewareMu sync.RWMutex

	noRouteHandler HandlerFunc
	noRouteMu      sync.RWMutex

	routes   []*Route
	named    map[string]*Route
	routesMu sync.RWMutex

	logger *slog.Logger
}

// New creates a new router instance with optional configuration.
// The returned router is ready to use and safe for concurrent access.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		trees:  make(map[string]*node),
		named:  make(map[string]*Route),
		logger: noopLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// MustNew creates a new Router instance and panics if configuration is
// invalid. Convenience wrapper for startup code.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("router.MustNew: %v", err))
	}
	return r
}

// Use adds global middleware executed for all routes registered directly on
// this router. Mounted subrouter routes keep their own chains.
func (r *Router) Use(middleware ...HandlerFunc) {
	r.middlewareMu.Lock()
	defer r.middlewareMu.Unlock()
	r.middleware = append(r.middleware, middleware...)
}

// Middleware returns a copy of the global middleware chain.
func (r *Router) Middleware() []HandlerFunc {
	r.middlewareMu.RLock()
	defer r.middlewareMu.RUnlock()
	out := make([]HandlerFunc, len(r.middleware))
	copy(out, r.middleware)
	return out
}

// NoRoute sets a custom handler for requests that match no registered
// route. Setting nil restores the default http.NotFound behavior.
func (r *Router) NoRoute(handler HandlerFunc) {
	r.noRouteMu.Lock()
	defer r.noRouteMu.Unlock()
	r.noRouteHandler = handler
}

// noRoute returns the configured not-found handler, or nil.
func (r *Router) noRoute() HandlerFunc {
	r.noRouteMu.RLock()
	defer r.noRouteMu.RUnlock()
	return r.noRouteHandler
}

// GET adds a GET route.
func (r *Router) GET(path string, handlers ...HandlerFunc) *Route {
	return r.handle(http.MethodGet, path, handlers)
}

// POST adds a POST route.
func (r *Router) POST(path string, handlers ...HandlerFunc) *Route {
	return r.handle(http.MethodPost, path, handlers)
}

// PUT adds a PUT route.
func (r *Router) PUT(path string, handlers ...HandlerFunc) *Route {
	return r.handle(http.MethodPut, path, handlers)
}

// DELETE adds a DELETE route.
func (r *Router) DELETE(path string, handlers ...HandlerFunc) *Route {
	return r.handle(http.MethodDelete, path, handlers)
}

// PATCH adds a PATCH route.
func (r *Router) PATCH(path string, handlers ...HandlerFunc) *Route {
	return r.handle(http.MethodPatch, path, handlers)
}

// HEAD adds a HEAD route.
func (r *Router) HEAD(path string, handlers ...HandlerFunc) *Route {
	return r.handle(http.MethodHead, path, handlers)
}

// OPTIONS adds an OPTIONS route.
func (r *Router) OPTIONS(path string, handlers ...HandlerFunc) *Route {
	return r.handle(http.MethodOptions, path, handlers)
}

// Group creates a route group with the given path prefix and optional
// group middleware.
func (r *Router) Group(prefix string, middleware ...HandlerFunc) *Group {
	return &Group{
		router:     r,
		prefix:     prefix,
		middleware: middleware,
	}
}

// handle registers a route. Registration errors are programmer errors and
// panic immediately so a misconfigured route table cannot boot.
func (r *Router) handle(method, path string, handlers []HandlerFunc) *Route {
	route, err := r.addRoute(method, path, handlers, false)
	if err != nil {
		panic(fmt.Sprintf("router: %v", err))
	}
	return route
}

// addRoute registers a route in the method tree and the route list.
// skipGlobal marks routes whose chain was fully assembled at mount time;
// global middleware is not prepended at dispatch for those.
func (r *Router) addRoute(method, path string, handlers []HandlerFunc, skipGlobal bool) (*Route, error) {
	if path == "" || path[0] != '/' {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	if len(handlers) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNilHandler, method, path)
	}

	route := &Route{
		method:     method,
		path:       path,
		handlers:   handlers,
		router:     r,
		skipGlobal: skipGlobal,
	}

	r.treeMu.Lock()
	tree, ok := r.trees[method]
	if !ok {
		tree = &node{}
		r.trees[method] = tree
	}
	err := tree.addRoute(route)
	r.treeMu.Unlock()
	if err != nil {
		return nil, err
	}

	r.routesMu.Lock()
	r.routes = append(r.routes, route)
	r.routesMu.Unlock()

	return route, nil
}

// match resolves the request path to a route, recording params into c.
func (r *Router) match(method, path string, c *Context) *Route {
	r.treeMu.RLock()
	tree := r.trees[method]
	r.treeMu.RUnlock()
	if tree == nil {
		return nil
	}
	return tree.getRoute(path, c)
}

// ServeHTTP implements http.Handler. It matches the request, assembles the
// handler chain (global middleware plus route handlers, unless the route
// carries a mount-time chain), and executes it through a pooled Context.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	rw := &responseWriter{ResponseWriter: w}
	c := acquireContext(rw, req, r)
	defer releaseContext(c)

	route := r.match(req.Method, req.URL.Path, c)
	if route == nil {
		r.handleNotFound(c)
		return
	}

	c.route = route
	c.routes = route.origin

	if route.skipGlobal {
		c.handlers = route.handlers
	} else {
		r.middlewareMu.RLock()
		chain := make([]HandlerFunc, 0, len(r.middleware)+len(route.handlers))
		chain = append(chain, r.middleware...)
		r.middlewareMu.RUnlock()
		c.handlers = append(chain, route.handlers...)
	}

	c.Next()
}

// handleNotFound runs the configured NoRoute handler or the default 404.
func (r *Router) handleNotFound(c *Context) {
	if handler := r.noRoute(); handler != nil {
		c.handlers = []HandlerFunc{handler}
		c.Next()
		return
	}
	http.NotFound(c.Response, c.Request)
}

// RouteInfo describes a registered route.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Routes returns information about every registered route, in registration
// order.
func (r *Router) Routes() []RouteInfo {
	r.routesMu.RLock()
	defer r.routesMu.RUnlock()

	infos := make([]RouteInfo, 0, len(r.routes))
	for _, route := range r.routes {
		infos = append(infos, RouteInfo{
			Method: route.method,
			Path:   route.path,
			Name:   route.Name(),
		})
	}
	return infos
}

// RouteExists reports whether a route is registered for the method and path.
func (r *Router) RouteExists(method, path string) bool {
	return r.match(method, path, nil) != nil
}

// setName registers a route under a name for reverse routing. Renaming is
// allowed; the previous name is released.
func (r *Router) setName(name string, route *Route, previous string) {
	r.routesMu.Lock()
	defer r.routesMu.Unlock()
	if previous != "" {
		delete(r.named, previous)
	}
	if name != "" {
		r.named[name] = route
	}
}

// namedRoute returns the route registered under name, or nil.
func (r *Router) namedRoute(name string) *Route {
	r.routesMu.RLock()
	defer r.routesMu.RUnlock()
	return r.named[name]
}

// URL builds the path for a named route, substituting params given as
// alternating key/value pairs.
//
// Example:
//
//	r.GET("/users/:id", showUser).SetName("users.show")
//	url, err := r.URL("users.show", "id", "42") // "/users/42"
func (r *Router) URL(name string, params ...string) (string, error) {
	route := r.namedRoute(name)
	if route == nil {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	return route.buildPath(params...)
}
