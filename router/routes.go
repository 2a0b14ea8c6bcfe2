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
	"strings"
	"sync"
)

// Route represents a single registered route. Routes are created through
// the router's method helpers and configured by chaining.
type Route struct {
	method   string
	path     string
	handlers []HandlerFunc

	mu   sync.Mutex
	name string

	router *Router
	group  *Group

	// origin is the route set helper of the router this route was mounted
	// from. Nil for routes registered directly.
	origin *Routes

	// skipGlobal marks routes whose middleware chain was assembled at
	// mount time; the owning router's global middleware is not prepended.
	skipGlobal bool
}

// Method returns the route's HTTP method.
func (r *Route) Method() string {
	return r.method
}

// Path returns the route's registered path pattern.
func (r *Route) Path() string {
	return r.path
}

// Name returns the route's name, or "".
func (r *Route) Name() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name
}

// SetName names the route for reverse routing. Group name prefixes are
// applied. Returns the route for chaining.
//
// Example:
//
//	r.GET("/posts/:id", showPost).SetName("posts.show")
func (r *Route) SetName(name string) *Route {
	if r.group != nil {
		name = r.group.namePrefix + name
	}

	r.mu.Lock()
	previous := r.name
	r.name = name
	r.mu.Unlock()

	r.router.setName(name, r, previous)
	return r
}

// buildPath substitutes params (alternating key/value pairs) into the
// route's pattern.
func (r *Route) buildPath(params ...string) (string, error) {
	if len(params)%2 != 0 {
		return "", fmt.Errorf("%w: odd parameter list for %q", ErrMissingRouteParameter, r.path)
	}

	values := make(map[string]string, len(params)/2)
	for i := 0; i < len(params); i += 2 {
		values[params[i]] = params[i+1]
	}

	segments := splitPath(r.path)
	built := make([]string, 0, len(segments))
	for _, segment := range segments {
		switch {
		case strings.HasPrefix(segment, ":"):
			name := strings.TrimPrefix(segment, ":")
			val, ok := values[name]
			if !ok {
				return "", fmt.Errorf("%w: %q for route %q", ErrMissingRouteParameter, name, r.path)
			}
			built = append(built, val)
		case strings.HasPrefix(segment, "*"):
			name := strings.TrimPrefix(segment, "*")
			if name == "" {
				name = "filepath"
			}
			// A wildcard may be left empty.
			if val, ok := values[name]; ok && val != "" {
				built = append(built, val)
			}
		default:
			built = append(built, segment)
		}
	}

	return "/" + strings.Join(built, "/"), nil
}

// Routes is the route set helper for a router, optionally scoped to a
// mount prefix. It supports introspection and reverse routing, and is what
// [Context.Routes] exposes to handlers so code inside a mounted engine
// resolves URLs against the engine's own routes.
type Routes struct {
	router      *Router
	label       string
	mountPrefix string
}

// RouteSet returns this router's own route set helper (no mount prefix).
func (r *Router) RouteSet() *Routes {
	return &Routes{router: r}
}

// ScopedRouteSet returns a route set helper for this router as mounted
// under the given prefix, labeled for diagnostics (typically the engine
// name).
func (r *Router) ScopedRouteSet(label, mountPrefix string) *Routes {
	return &Routes{
		router:      r,
		label:       label,
		mountPrefix: strings.TrimSuffix(mountPrefix, "/"),
	}
}

// Label returns the route set's label (the owning engine's name, or ""
// for the host application).
func (rs *Routes) Label() string {
	return rs.label
}

// MountPrefix returns the prefix this route set is mounted under, or "".
func (rs *Routes) MountPrefix() string {
	return rs.mountPrefix
}

// All returns information about every route in the set.
func (rs *Routes) All() []RouteInfo {
	return rs.router.Routes()
}

// Has reports whether the set contains a route with the given name.
func (rs *Routes) Has(name string) bool {
	return rs.router.namedRoute(name) != nil
}

// URL builds the path for a named route in this set, with the mount prefix
// applied. Inside an engine mounted at /blog, URL("posts.index") yields
// "/blog/posts" even though the engine's own pattern is "/posts".
func (rs *Routes) URL(name string, params ...string) (string, error) {
	path, err := rs.router.URL(name, params...)
	if err != nil {
		return "", err
	}
	if rs.mountPrefix == "" {
		return path, nil
	}
	if path == "/" {
		return rs.mountPrefix, nil
	}
	return rs.mountPrefix + path, nil
}
