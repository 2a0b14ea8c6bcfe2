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

// Package app hosts a gantry application: a root router plus any number
// of mounted engines, booted through a single ordered initializer graph.
//
// Boot runs in fixed phases. Configuration is loaded first, engines are
// mounted next, the middleware stack is assembled after that, and the
// configuration layers and generator scopes are frozen last. Initializers
// declared by the application or its engines slot into that sequence via
// the anchors in the initializer package.
//
// Example:
//
//	blog := engine.New("blog", engine.WithIsolation())
//	blog.Router().GET("/posts", listPosts)
//
//	a := app.New("example",
//	    app.WithVersion("1.4.0"),
//	    app.WithEnvironment(app.EnvironmentDevelopment),
//	)
//	a.Mount("/blog", blog)
//
//	if err := a.Boot(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//	a.Run(context.Background(), ":8080")
package app
