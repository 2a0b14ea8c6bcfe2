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
	"io/fs"
	"net/http"
	"strings"
)

// Static serves static files from the filesystem directory root under the
// given URL prefix.
//
// SECURITY: serving goes through http.FileServer, which cleans paths and
// prevents traversal outside root (e.g. "../../../etc/passwd"). Ensure the
// root directory only contains files intended to be publicly accessible.
//
// Example:
//
//	r.Static("/assets", "./public")      // Serve ./public/* at /assets/*
//	r.Static("/uploads", "/var/uploads") // Serve /var/uploads/* at /uploads/*
func (r *Router) Static(relativePath, root string) {
	r.StaticFS(relativePath, http.Dir(root))
}

// StaticDirFS serves static files from the given fs.FS, typically an
// embedded filesystem.
//
// Example:
//
//	//go:embed public
//	var publicFS embed.FS
//
//	sub, _ := fs.Sub(publicFS, "public")
//	r.StaticDirFS("/assets", sub)
func (r *Router) StaticDirFS(relativePath string, fsys fs.FS) {
	r.StaticFS(relativePath, http.FS(fsys))
}

// StaticFS serves static files from the given http.FileSystem under the
// URL prefix. Registers both GET and HEAD routes per RFC 7231.
//
// The file path is resolved from the matched wildcard parameter rather
// than the raw request path, so the routes keep working when the router is
// mounted under a prefix.
func (r *Router) StaticFS(relativePath string, fsys http.FileSystem) {
	if len(relativePath) == 0 {
		panic("router: relativePath cannot be empty")
	}

	// Ensure the pattern starts with / and ends with a named wildcard.
	if relativePath[0] != '/' {
		relativePath = "/" + relativePath
	}
	relativePath = strings.TrimSuffix(relativePath, "/")
	pattern := relativePath + "/*filepath"

	fileServer := http.FileServer(fsys)
	handler := func(c *Context) {
		req := c.Request.Clone(c.Request.Context())
		req.URL.Path = "/" + c.Param("filepath")
		req.URL.RawPath = ""
		fileServer.ServeHTTP(c.Response, req)
	}

	// HEAD must be supported for any resource that supports GET.
	r.GET(pattern, handler)
	r.HEAD(pattern, handler)
}

// StaticFile serves a single file at the given URL path, useful for
// favicon.ico or robots.txt. Registers both GET and HEAD routes.
//
// Example:
//
//	r.StaticFile("/favicon.ico", "./assets/favicon.ico")
func (r *Router) StaticFile(relativePath, filepath string) {
	if len(relativePath) == 0 {
		panic("router: relativePath cannot be empty")
	}
	if len(filepath) == 0 {
		panic("router: filepath cannot be empty")
	}

	if relativePath[0] != '/' {
		relativePath = "/" + relativePath
	}

	handler := func(c *Context) {
		c.File(filepath)
	}

	r.GET(relativePath, handler)
	r.HEAD(relativePath, handler)
}
