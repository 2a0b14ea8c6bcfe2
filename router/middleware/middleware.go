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

// Package middleware holds shared definitions used by the middleware
// subpackages, such as the context keys they communicate through.
package middleware

// contextKey is a private type for request context keys, preventing
// collisions with keys from other packages.
type contextKey string

// RequestIDKey is the request context key under which the requestid
// middleware stores the request's ID.
const RequestIDKey contextKey = "gantry.request_id"
