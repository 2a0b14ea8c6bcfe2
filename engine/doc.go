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

// Package engine provides mountable sub-applications.
//
// An Engine is a miniature application: it owns a router, a middleware
// stack, a configuration scope, view helpers, initializers, static assets,
// and a seed function. A host application mounts engines under path
// prefixes; each engine handles requests below its prefix with its own
// stack while sharing the host's process, configuration layers, and
// initializer graph.
//
// Engines come in two flavors. A plain engine shares the host's helper and
// naming namespace, like a library that extends the application. An
// isolated engine (see [WithIsolation]) keeps its helpers, route names,
// and table names in its own namespace so that it can be developed and
// mounted without coordinating names with the host.
//
// Example:
//
//	blog := engine.New("blog", engine.WithIsolation())
//	blog.Router().GET("/posts", listPosts)
//	blog.Helpers().Register("format_date", formatDate)
//
//	host := app.New("example")
//	host.Mount("/blog", blog)
package engine
