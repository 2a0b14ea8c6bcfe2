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

import (
	"io/fs"
	"log/slog"
	"strings"

	"github.com/gantry-dev/gantry/config"
)

// Option configures an Engine at construction.
type Option func(*Engine)

// WithIsolation namespaces the engine: helpers resolve only against the
// engine's own registry (host helpers require an explicit Host() lookup),
// route names are prefixed "<name>.", and table names are prefixed
// "<name>_".
func WithIsolation() Option {
	return func(e *Engine) {
		e.isolated = true
	}
}

// WithLogger sets the engine's logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithAssetPrefix overrides the engine's asset prefix. The default is
// "/<name>-assets".
func WithAssetPrefix(prefix string) Option {
	return func(e *Engine) {
		if prefix == "" {
			return
		}
		if !strings.HasPrefix(prefix, "/") {
			prefix = "/" + prefix
		}
		e.assetPrefix = strings.TrimSuffix(prefix, "/")
	}
}

// WithPublicFS sets the filesystem the engine serves static assets from,
// typically an embed.FS sub-tree. Assets are registered on the engine's
// router under the asset prefix and therefore surface below the mount
// prefix on the host.
func WithPublicFS(fsys fs.FS) Option {
	return func(e *Engine) {
		e.publicFS = fsys
	}
}

// WithExtensionsFS sets the filesystem holding the engine's extension
// settings files, loaded into the host's shared extension registry at
// boot.
func WithExtensionsFS(fsys fs.FS) Option {
	return func(e *Engine) {
		e.extensionsFS = fsys
	}
}

// WithSeed sets the engine's seed function.
func WithSeed(seed SeedFunc) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithConfig gives the engine its own configuration scope. At boot the
// host stacks this scope above its own, so engine values win for the
// engine's reads without leaking into the host.
func WithConfig(opts ...config.Option) Option {
	return func(e *Engine) {
		e.cfg = config.MustNew(opts...)
	}
}

// WithGenerator records a generator preference (for example the ORM or
// template engine used by the engine's generators). Applied to the
// engine's generator scope when the engine is attached.
func WithGenerator(kind, value string) Option {
	return func(e *Engine) {
		e.generatorSet = append(e.generatorSet, generatorSetting{kind: kind, value: value})
	}
}
