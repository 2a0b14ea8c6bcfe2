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

import "errors"

var (
	// ErrRouteNotFound indicates that the specified route could not be found.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMissingRouteParameter indicates that a required parameter for the route is missing.
	ErrMissingRouteParameter = errors.New("missing required parameter")

	// ErrRouteConflict indicates that a route is already registered for the method and path.
	ErrRouteConflict = errors.New("route already registered")

	// ErrInvalidPath indicates a route path that does not start with a slash.
	ErrInvalidPath = errors.New("route path must start with '/'")

	// ErrNilHandler indicates that a route was registered without handlers.
	ErrNilHandler = errors.New("route requires at least one handler")

	// ErrResponseWriterNotHijacker indicates that ResponseWriter does not implement http.Hijacker.
	ErrResponseWriterNotHijacker = errors.New("responseWriter does not implement http.Hijacker")
)
