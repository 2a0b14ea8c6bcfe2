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
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
)

// abortIndex is a sentinel handler index that stops chain execution.
const abortIndex = 1 << 30

// HandlerFunc defines a request handler. Middleware and terminal handlers
// share this signature; middleware calls [Context.Next] to continue the
// chain.
type HandlerFunc func(*Context)

// Context carries request-scoped state through the handler chain.
// A Context is valid only for the duration of the request that created it;
// do not retain it past the handler's return.
type Context struct {
	// Request is the incoming HTTP request.
	Request *http.Request

	// Response is the response writer, wrapped to capture status and size.
	Response http.ResponseWriter

	handlers []HandlerFunc
	index    int

	paramKeys   []string
	paramValues []string

	route  *Route
	routes *Routes
	router *Router

	keys map[string]any
}

// contextPool reuses Context allocations across requests.
var contextPool = sync.Pool{
	New: func() any {
		return &Context{
			paramKeys:   make([]string, 0, 8),
			paramValues: make([]string, 0, 8),
		}
	},
}

// acquireContext gets a reset Context from the pool.
func acquireContext(w http.ResponseWriter, req *http.Request, r *Router) *Context {
	c := contextPool.Get().(*Context)
	c.Request = req
	c.Response = w
	c.handlers = nil
	c.index = -1
	c.paramKeys = c.paramKeys[:0]
	c.paramValues = c.paramValues[:0]
	c.route = nil
	c.routes = nil
	c.router = r
	c.keys = nil
	return c
}

// releaseContext returns a Context to the pool.
func releaseContext(c *Context) {
	c.Request = nil
	c.Response = nil
	contextPool.Put(c)
}

// Next advances to the next handler in the chain. Middleware calls this to
// hand control downstream; code after the call runs on the way back up.
func (c *Context) Next() {
	c.index++
	for c.index < len(c.handlers) {
		c.handlers[c.index](c)
		c.index++
	}
}

// Abort stops the chain. Remaining handlers do not run, including the
// terminal route handler.
func (c *Context) Abort() {
	c.index = abortIndex
}

// AbortWithStatus writes the status code and stops the chain.
func (c *Context) AbortWithStatus(code int) {
	c.Status(code)
	c.Abort()
}

// IsAborted reports whether the chain was aborted.
func (c *Context) IsAborted() bool {
	return c.index >= abortIndex
}

// addParam records a matched path parameter.
func (c *Context) addParam(key, value string) {
	c.paramKeys = append(c.paramKeys, key)
	c.paramValues = append(c.paramValues, value)
}

// Param returns the value of the named path parameter, or "".
func (c *Context) Param(name string) string {
	for i, k := range c.paramKeys {
		if k == name {
			return c.paramValues[i]
		}
	}
	return ""
}

// Query returns the first query value for the given key, or "".
func (c *Context) Query(key string) string {
	return c.Request.URL.Query().Get(key)
}

// Set stores a request-scoped value. Middleware uses this to pass data to
// downstream handlers.
func (c *Context) Set(key string, value any) {
	if c.keys == nil {
		c.keys = make(map[string]any)
	}
	c.keys[key] = value
}

// Get retrieves a request-scoped value stored with Set.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.keys[key]
	return v, ok
}

// Route returns the matched route, or nil when no route matched (for
// example inside a NoRoute handler).
func (c *Context) Route() *Route {
	return c.route
}

// RouteTemplate returns the matched route's full pattern (for example
// "/blog/posts/:id" for a mounted engine route), or "".
func (c *Context) RouteTemplate() string {
	if c.route == nil {
		return ""
	}
	return c.route.path
}

// Routes returns the route set helper of the router that served this
// request. Inside a mounted engine this is the engine's own route set, so
// reverse routing resolves against the engine's routes with its mount
// prefix applied.
func (c *Context) Routes() *Routes {
	if c.routes != nil {
		return c.routes
	}
	return c.router.RouteSet()
}

// StatusCode returns the status code written to the response so far, or
// 200 once the body has been written without an explicit code. Returns 0
// before anything has been written.
func (c *Context) StatusCode() int {
	if rw, ok := c.Response.(*responseWriter); ok {
		if !rw.Written() {
			return 0
		}
		return rw.StatusCode()
	}
	return 0
}

// Status writes the HTTP status code.
func (c *Context) Status(code int) {
	c.Response.WriteHeader(code)
}

// String writes a formatted plain-text response with the given status code.
func (c *Context) String(code int, format string, values ...any) error {
	c.Response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.Response.WriteHeader(code)
	_, err := fmt.Fprintf(c.Response, format, values...)
	return err
}

// JSON writes a JSON response with the given status code.
func (c *Context) JSON(code int, v any) error {
	c.Response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.Response.WriteHeader(code)
	return json.NewEncoder(c.Response).Encode(v)
}

// File serves the named file from the OS filesystem.
func (c *Context) File(filepath string) {
	http.ServeFile(c.Response, c.Request, filepath)
}

// responseWriter wraps http.ResponseWriter to capture status code and size
// and to suppress superfluous WriteHeader calls.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int64
	written    bool
}

// WriteHeader captures the status code and prevents duplicate calls.
func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.ResponseWriter.WriteHeader(code)
		rw.written = true
	}
}

// Write captures the response size and marks headers as written.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.written = true
	}
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}

// StatusCode returns the HTTP status code.
func (rw *responseWriter) StatusCode() int {
	if rw.statusCode == 0 {
		return http.StatusOK
	}
	return rw.statusCode
}

// Size returns the response size in bytes.
func (rw *responseWriter) Size() int64 {
	return rw.size
}

// Written returns true if headers have been written.
func (rw *responseWriter) Written() bool {
	return rw.written
}

// Hijack implements http.Hijacker.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, ErrResponseWriterNotHijacker
}

// Flush implements http.Flusher.
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
