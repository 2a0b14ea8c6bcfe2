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

// Package router provides HTTP routing for gantry applications and engines.
//
// A Router matches requests against static segments, :param segments, and
// trailing *wildcard segments, then executes the handler chain through a
// pooled [Context]. Routers compose: [Router.Mount] merges a subrouter's
// route set into a parent under a path prefix, which is how engines become
// reachable inside a host application.
//
// Routes can be named for reverse routing:
//
//	r := router.MustNew()
//	r.GET("/users/:id", showUser).SetName("users.show")
//	url, _ := r.URL("users.show", "id", "42") // "/users/42"
//
// Each request's Context exposes the [Routes] helper of the route set that
// served it, so handlers inside a mounted engine see the engine's own
// routes rather than the host's.
package router
