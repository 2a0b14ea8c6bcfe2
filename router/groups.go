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

import "net/http"

// Group organizes related routes under a common path prefix with shared
// middleware. Group middleware runs after the router's global middleware
// and before the route handlers.
//
// Example:
//
//	api := r.Group("/api/v1", authMiddleware)
//	api.GET("/users/:id", getUser) // Final path: /api/v1/users/:id
type Group struct {
	router     *Router
	prefix     string
	middleware []HandlerFunc
	namePrefix string
}

// Use adds middleware executed for all routes in this group.
func (g *Group) Use(middleware ...HandlerFunc) {
	g.middleware = append(g.middleware, middleware...)
}

// SetNamePrefix appends a prefix for all route names registered through
// this group, enabling hierarchical route naming. Returns the group for
// chaining.
//
// Example:
//
//	api := r.Group("/api").SetNamePrefix("api.")
//	api.GET("/users", handler).SetName("users") // named "api.users"
func (g *Group) SetNamePrefix(prefix string) *Group {
	g.namePrefix = g.namePrefix + prefix
	return g
}

// Group creates a nested group. Prefix, middleware, and name prefix are
// inherited from the parent.
func (g *Group) Group(prefix string, middleware ...HandlerFunc) *Group {
	allMiddleware := make([]HandlerFunc, 0, len(g.middleware)+len(middleware))
	allMiddleware = append(allMiddleware, g.middleware...)
	allMiddleware = append(allMiddleware, middleware...)

	return &Group{
		router:     g.router,
		prefix:     g.prefix + prefix,
		middleware: allMiddleware,
		namePrefix: g.namePrefix,
	}
}

// GET adds a GET route under the group's prefix.
func (g *Group) GET(path string, handlers ...HandlerFunc) *Route {
	return g.addRoute(http.MethodGet, path, handlers)
}

// POST adds a POST route under the group's prefix.
func (g *Group) POST(path string, handlers ...HandlerFunc) *Route {
	return g.addRoute(http.MethodPost, path, handlers)
}

// PUT adds a PUT route under the group's prefix.
func (g *Group) PUT(path string, handlers ...HandlerFunc) *Route {
	return g.addRoute(http.MethodPut, path, handlers)
}

// DELETE adds a DELETE route under the group's prefix.
func (g *Group) DELETE(path string, handlers ...HandlerFunc) *Route {
	return g.addRoute(http.MethodDelete, path, handlers)
}

// PATCH adds a PATCH route under the group's prefix.
func (g *Group) PATCH(path string, handlers ...HandlerFunc) *Route {
	return g.addRoute(http.MethodPatch, path, handlers)
}

// HEAD adds a HEAD route under the group's prefix.
func (g *Group) HEAD(path string, handlers ...HandlerFunc) *Route {
	return g.addRoute(http.MethodHead, path, handlers)
}

// OPTIONS adds an OPTIONS route under the group's prefix.
func (g *Group) OPTIONS(path string, handlers ...HandlerFunc) *Route {
	return g.addRoute(http.MethodOptions, path, handlers)
}

// addRoute combines the group prefix and middleware with the route.
func (g *Group) addRoute(method, path string, handlers []HandlerFunc) *Route {
	fullPath := g.prefix + path
	if fullPath == "" {
		fullPath = "/"
	}

	allHandlers := make([]HandlerFunc, 0, len(g.middleware)+len(handlers))
	allHandlers = append(allHandlers, g.middleware...)
	allHandlers = append(allHandlers, handlers...)

	route := g.router.handle(method, fullPath, allHandlers)
	route.group = g
	return route
}
