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

package engine

import "strings"

// AssetPrefix returns the engine's asset prefix, "/<name>-assets" unless
// overridden with [WithAssetPrefix].
func (e *Engine) AssetPrefix() string {
	return e.assetPrefix
}

// AssetPath builds the externally visible path of an engine asset:
// "<mount_prefix><asset_prefix>/<asset_type>/<file>". Asset links
// rendered by engine views stay correct wherever the engine is mounted.
//
// Example:
//
//	// engine "blog" mounted at /blog
//	blog.AssetPath("stylesheets", "app.css")
//	// "/blog/blog-assets/stylesheets/app.css"
func (e *Engine) AssetPath(assetType, file string) string {
	var b strings.Builder
	b.WriteString(e.mountPrefix)
	b.WriteString(e.assetPrefix)
	if assetType != "" {
		b.WriteByte('/')
		b.WriteString(strings.Trim(assetType, "/"))
	}
	b.WriteByte('/')
	b.WriteString(strings.TrimPrefix(file, "/"))
	return b.String()
}
