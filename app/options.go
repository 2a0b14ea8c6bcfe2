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

package app

import (
	"io/fs"
	"time"

	"github.com/gantry-dev/gantry/config"
	"github.com/gantry-dev/gantry/logging"
)

// Option configures an App at construction.
type Option func(*App)

// WithVersion sets the service version reported in logs and the banner.
func WithVersion(version string) Option {
	return func(a *App) {
		if version != "" {
			a.version = version
		}
	}
}

// WithEnvironment sets the environment name. The banner strips color in
// production.
func WithEnvironment(env string) Option {
	return func(a *App) {
		if env != "" {
			a.environment = env
		}
	}
}

// WithLogger replaces the application logger.
func WithLogger(logger *logging.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.log = logger
		}
	}
}

// WithConfig sets the host configuration scope. Loaded during boot,
// before engines are mounted.
func WithConfig(opts ...config.Option) Option {
	return func(a *App) {
		a.cfg = config.MustNew(opts...)
	}
}

// WithDefaults sets the lowest-precedence configuration scope. Values
// here lose to both host and engine settings.
func WithDefaults(values map[string]any) Option {
	return func(a *App) {
		a.defaults = config.MustNew(config.WithValues(values))
	}
}

// WithGenerator records a root generator preference, inherited by every
// engine that does not set its own value for the kind.
func WithGenerator(kind, value string) Option {
	return func(a *App) {
		a.generators.Set(kind, value)
	}
}

// WithExtensionsFS sets the filesystem holding the host's extension
// settings files. Host extensions load before any engine's, so on a name
// collision the host wins.
func WithExtensionsFS(fsys fs.FS) Option {
	return func(a *App) {
		a.extensionsFS = fsys
	}
}

// WithSeed sets the host seed function.
func WithSeed(seed SeedFunc) Option {
	return func(a *App) {
		a.seed = seed
	}
}

// WithBanner controls the startup banner. Enabled by default.
func WithBanner(enabled bool) Option {
	return func(a *App) {
		a.showBanner = enabled
	}
}

// WithReadTimeout sets the HTTP server read timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.server.readTimeout = d
		}
	}
}

// WithWriteTimeout sets the HTTP server write timeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.server.writeTimeout = d
		}
	}
}

// WithIdleTimeout sets the HTTP server idle timeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.server.idleTimeout = d
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.server.shutdownTimeout = d
		}
	}
}
