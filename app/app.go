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
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/gantry-dev/gantry/config"
	"github.com/gantry-dev/gantry/engine"
	"github.com/gantry-dev/gantry/initializer"
	"github.com/gantry-dev/gantry/logging"
	"github.com/gantry-dev/gantry/router"
)

// Environment names recognized by the framework.
const (
	EnvironmentDevelopment = "development"
	EnvironmentStaging     = "staging"
	EnvironmentProduction  = "production"
)

// SeedFunc populates the host application's own data.
type SeedFunc func(ctx context.Context) error

// serverConfig holds the HTTP server tunables applied by Run.
type serverConfig struct {
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
}

func defaultServerConfig() serverConfig {
	return serverConfig{
		readTimeout:       15 * time.Second,
		readHeaderTimeout: 5 * time.Second,
		writeTimeout:      15 * time.Second,
		idleTimeout:       60 * time.Second,
		shutdownTimeout:   10 * time.Second,
	}
}

// mountEntry records an engine mount declared before boot.
type mountEntry struct {
	prefix string
	engine *engine.Engine
	opts   []router.MountOption
}

// App is the host application: root router, configuration layers, helper
// registry, mounted engines, and the initializer graph that boots them.
type App struct {
	name        string
	version     string
	environment string

	log    *logging.Logger
	router *router.Router

	cfg      *config.Config
	defaults *config.Config
	layers   *config.Layers

	generators *config.Generators
	helpers    *engine.Helpers
	extensions *engine.Extensions

	extensionsFS fs.FS

	graph  *initializer.Graph
	mounts []mountEntry
	seed   SeedFunc

	server     serverConfig
	showBanner bool

	mu     sync.Mutex
	booted bool
}

// New creates an application with the given service name.
func New(name string, opts ...Option) *App {
	a := &App{
		name:        name,
		version:     "0.0.0",
		environment: EnvironmentDevelopment,
		log:         logging.MustNew(logging.WithServiceName(name)),
		router:      router.MustNew(),
		generators:  config.NewGenerators(nil),
		helpers:     engine.NewHostHelpers(),
		graph:       initializer.NewGraph(),
		server:      defaultServerConfig(),
		showBanner:  true,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.extensions = engine.NewExtensions(a.log.Logger())
	return a
}

// Name returns the service name.
func (a *App) Name() string { return a.name }

// Version returns the service version.
func (a *App) Version() string { return a.version }

// Environment returns the configured environment name.
func (a *App) Environment() string { return a.environment }

// Router returns the host router.
func (a *App) Router() *router.Router { return a.router }

// Use adds middleware to the host stack. Host middleware never wraps
// mounted engine routes.
func (a *App) Use(middleware ...router.HandlerFunc) {
	a.router.Use(middleware...)
}

// Helpers returns the host helper registry.
func (a *App) Helpers() *engine.Helpers { return a.helpers }

// Generators returns the application's root generator scope.
func (a *App) Generators() *config.Generators { return a.generators }

// Extensions returns the shared extension registry.
func (a *App) Extensions() *engine.Extensions { return a.extensions }

// Settings returns the application's layered configuration view. Nil
// before boot.
func (a *App) Settings() *config.Layers { return a.layers }

// Logger returns the application logger.
func (a *App) Logger() *logging.Logger { return a.log }

// AddInitializer registers a boot initializer on the application's graph.
func (a *App) AddInitializer(init initializer.Initializer) error {
	return a.graph.Add(init)
}

// Mount registers an engine under a path prefix. The engine's routes are
// merged into the host router during boot; until then the mount is only
// recorded. Extra router mount options are passed through.
func (a *App) Mount(prefix string, e *engine.Engine, opts ...router.MountOption) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.booted {
		return fmt.Errorf("mount %s: %w", prefix, ErrAlreadyBooted)
	}
	for _, m := range a.mounts {
		if m.prefix == prefix {
			return fmt.Errorf("%w: prefix %s", ErrDuplicateMount, prefix)
		}
		if m.engine.Name() == e.Name() {
			return fmt.Errorf("%w: engine %s", ErrDuplicateMount, e.Name())
		}
	}

	a.mounts = append(a.mounts, mountEntry{prefix: prefix, engine: e, opts: opts})
	return nil
}

// MustMount is Mount that panics on error, for startup wiring.
func (a *App) MustMount(prefix string, e *engine.Engine, opts ...router.MountOption) {
	if err := a.Mount(prefix, e, opts...); err != nil {
		panic(fmt.Sprintf("app: %v", err))
	}
}

// Engine returns a mounted engine by name.
func (a *App) Engine(name string) (*engine.Engine, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, m := range a.mounts {
		if m.engine.Name() == name {
			return m.engine, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, name)
}

// Engines returns the mounted engines in mount order.
func (a *App) Engines() []*engine.Engine {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*engine.Engine, 0, len(a.mounts))
	for _, m := range a.mounts {
		out = append(out, m.engine)
	}
	return out
}

// Seed runs the host application's seed function only. Engines seed
// through their own Seed methods; neither side triggers the other.
func (a *App) Seed(ctx context.Context) error {
	if a.seed == nil {
		return nil
	}
	if err := a.seed(ctx); err != nil {
		return fmt.Errorf("app %s: seed: %w", a.name, err)
	}
	return nil
}

// ServeHTTP dispatches through the host router. Engine-prefixed requests
// run the engine's own stack; unmatched paths inside a mount prefix fall
// through to the host's not-found handling.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Booted reports whether Boot has completed successfully.
func (a *App) Booted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.booted
}
