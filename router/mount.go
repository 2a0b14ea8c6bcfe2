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
	"net/http"
	"strings"
)

// mountCfg holds configuration for a mounted subrouter.
type mountCfg struct {
	inheritMiddleware bool
	extraMiddleware   []HandlerFunc
	namePrefix        string
	label             string
	notFoundHandler   HandlerFunc
}

// MountOption configures how a subrouter is mounted.
type MountOption func(*mountCfg)

// InheritMiddleware makes the subrouter inherit the parent router's global
// middleware. Parent middleware runs before subrouter middleware.
func InheritMiddleware() MountOption {
	return func(cfg *mountCfg) {
		cfg.inheritMiddleware = true
	}
}

// WithMiddleware adds additional middleware to the mounted routes. These
// run after inherited and subrouter middleware but before route handlers.
func WithMiddleware(m ...HandlerFunc) MountOption {
	return func(cfg *mountCfg) {
		cfg.extraMiddleware = append(cfg.extraMiddleware, m...)
	}
}

// NamePrefix adds a prefix to all route names in the subrouter so that
// names from different mounts never collide in the parent's name table.
//
// Example:
//
//	r.Mount("/admin", sub, router.NamePrefix("admin."))
//	// Route named "users" becomes "admin.users"
func NamePrefix(prefix string) MountOption {
	return func(cfg *mountCfg) {
		cfg.namePrefix = prefix
	}
}

// Label sets the diagnostic label of the mounted route set, surfaced by
// [Routes.Label]. Defaults to the mount prefix without its leading slash.
func Label(label string) MountOption {
	return func(cfg *mountCfg) {
		cfg.label = label
	}
}

// WithNotFound sets a custom 404 handler used only for unmatched requests
// under the subrouter's prefix. Requests outside the prefix fall through
// to the parent's handler.
func WithNotFound(h HandlerFunc) MountOption {
	return func(cfg *mountCfg) {
		cfg.notFoundHandler = h
	}
}

// Mount mounts a subrouter at the given prefix by merging its routes into
// the parent router.
//
// Routes are copied with the prefix prepended, preserving the full route
// pattern: a subrouter route "/users/:id" mounted at "/admin" is matched
// and reported as "/admin/users/:id", not a catch-all.
//
// Each merged route carries a middleware chain assembled at mount time:
// parent global middleware (only with [InheritMiddleware]) followed by the
// subrouter's global middleware, then any [WithMiddleware] additions, then
// the route handlers. The parent's global middleware added after Mount
// never reaches mounted routes, which keeps subrouters isolated from later
// changes to the host.
//
// Merged routes resolve [Context.Routes] to the subrouter's own route set
// scoped to the mount prefix, so reverse routing inside a mounted handler
// produces externally valid paths.
//
// Example:
//
//	admin := router.MustNew()
//	admin.GET("/users/:id", getUser)
//	admin.POST("/users", createUser)
//
//	err := r.Mount("/admin", admin,
//	    router.InheritMiddleware(),
//	    router.WithMiddleware(adminLog),
//	    router.NamePrefix("admin."),
//	)
func (r *Router) Mount(prefix string, sub *Router, opts ...MountOption) error {
	if sub == nil {
		return nil
	}

	// Normalize prefix: ensure it starts with / and doesn't end with /.
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" || prefix[0] != '/' {
		prefix = "/" + prefix
	}

	cfg := &mountCfg{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.label == "" {
		cfg.label = strings.TrimPrefix(prefix, "/")
	}

	// Middleware chain for mounted routes, fixed at mount time.
	var chain []HandlerFunc
	if cfg.inheritMiddleware {
		chain = append(chain, r.Middleware()...)
	}
	chain = append(chain, sub.Middleware()...)
	chain = append(chain, cfg.extraMiddleware...)

	origin := sub.ScopedRouteSet(cfg.label, prefix)

	for _, route := range sub.routeList() {
		if err := r.mountRoute(prefix, route, chain, cfg.namePrefix, origin); err != nil {
			return fmt.Errorf("mount %s: %w", prefix, err)
		}
	}

	if cfg.notFoundHandler != nil {
		parentNoRoute := r.noRoute()
		r.NoRoute(func(c *Context) {
			path := c.Request.URL.Path
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				cfg.notFoundHandler(c)
			} else if parentNoRoute != nil {
				parentNoRoute(c)
			} else {
				c.Status(http.StatusNotFound)
			}
		})
	}

	r.logger.Debug("mounted subrouter",
		"prefix", prefix,
		"label", cfg.label,
		"routes", len(sub.routeList()),
	)
	return nil
}

// mountRoute registers a single subrouter route under the mount prefix.
func (r *Router) mountRoute(prefix string, route *Route, chain []HandlerFunc, namePrefix string, origin *Routes) error {
	fullPath := prefix + route.path
	if route.path == "/" {
		fullPath = prefix
	}

	handlers := make([]HandlerFunc, 0, len(chain)+len(route.handlers))
	handlers = append(handlers, chain...)
	handlers = append(handlers, route.handlers...)

	mounted, err := r.addRoute(route.method, fullPath, handlers, true)
	if err != nil {
		return err
	}
	mounted.origin = origin

	if name := route.Name(); name != "" {
		mounted.SetName(namePrefix + name)
	}
	return nil
}

// routeList returns a snapshot of the router's registered routes.
func (r *Router) routeList() []*Route {
	r.routesMu.RLock()
	defer r.routesMu.RUnlock()
	out := make([]*Route, len(r.routes))
	copy(out, r.routes)
	return out
}
