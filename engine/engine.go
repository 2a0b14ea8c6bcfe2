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
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/gantry-dev/gantry/config"
	"github.com/gantry-dev/gantry/initializer"
	"github.com/gantry-dev/gantry/router"
)

var (
	// ErrAlreadyAttached is returned when an engine is mounted twice.
	ErrAlreadyAttached = errors.New("engine already attached to a host")

	// ErrNotAttached is returned by operations that need a mount prefix
	// before the engine has been mounted.
	ErrNotAttached = errors.New("engine not attached to a host")
)

// SeedFunc populates an engine's own data. Host and engine seeds never
// run each other.
type SeedFunc func(ctx context.Context) error

// Engine is a mountable sub-application with its own router, middleware,
// configuration scope, helpers, initializers, and assets.
type Engine struct {
	name   string
	router *router.Router
	logger *slog.Logger

	isolated bool

	cfg          *config.Config
	layers       *config.Layers
	generatorSet []generatorSetting
	generators   *config.Generators

	initializers []initializer.Initializer

	helpers *Helpers

	assetPrefix  string
	publicFS     fs.FS
	extensionsFS fs.FS

	seed SeedFunc

	mountPrefix string
	attached    bool
}

type generatorSetting struct {
	kind  string
	value string
}

// New creates an engine with the given name. The name identifies the
// engine in logs, route-name prefixes, and isolated table names; it must
// be non-empty.
func New(name string, opts ...Option) *Engine {
	if name == "" {
		panic("engine: name cannot be empty")
	}

	e := &Engine{
		name:        name,
		router:      router.MustNew(),
		logger:      slog.Default(),
		assetPrefix: "/" + name + "-assets",
	}
	e.helpers = newHelpers(e)

	for _, opt := range opts {
		opt(e)
	}

	if e.publicFS != nil {
		e.router.StaticDirFS(e.assetPrefix, e.publicFS)
	}
	return e
}

// Name returns the engine's name.
func (e *Engine) Name() string {
	return e.name
}

// Isolated reports whether the engine keeps its helpers, route names, and
// table names in its own namespace.
func (e *Engine) Isolated() bool {
	return e.isolated
}

// Router returns the engine's own router. Routes registered here are
// merged into the host under the mount prefix at boot.
func (e *Engine) Router() *router.Router {
	return e.router
}

// Use adds middleware to the engine's stack. Engine middleware wraps only
// the engine's own routes, never the host's.
func (e *Engine) Use(middleware ...router.HandlerFunc) {
	e.router.Use(middleware...)
}

// Helpers returns the engine's helper registry.
func (e *Engine) Helpers() *Helpers {
	return e.helpers
}

// Config returns the engine's own configuration scope, or nil when the
// engine declares none.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Generators returns the engine's generator scope. Nil until the engine
// is attached to a host.
func (e *Engine) Generators() *config.Generators {
	return e.generators
}

// AddInitializer declares an initializer contributed to the host's boot
// graph. The host namespaces the name as "<engine>.<name>" and constrains
// it to run after engines are mounted and before the middleware stack is
// built, unless the initializer declares tighter edges itself.
func (e *Engine) AddInitializer(init initializer.Initializer) *Engine {
	e.initializers = append(e.initializers, init)
	return e
}

// Initializers returns the engine's declared initializers.
func (e *Engine) Initializers() []initializer.Initializer {
	out := make([]initializer.Initializer, len(e.initializers))
	copy(out, e.initializers)
	return out
}

// MountPrefix returns the prefix the engine is mounted under, or "" before
// attachment.
func (e *Engine) MountPrefix() string {
	return e.mountPrefix
}

// Attach binds the engine to its host: records the mount prefix, links the
// helper registry to the host's, and creates the engine's generator scope
// as a child of the host's. Called by the host during mounting; an engine
// can be attached only once.
func (e *Engine) Attach(prefix string, hostHelpers *Helpers, hostGenerators *config.Generators) error {
	if e.attached {
		return fmt.Errorf("%w: %s", ErrAlreadyAttached, e.name)
	}
	e.attached = true
	e.mountPrefix = prefix
	e.helpers.host = hostHelpers

	e.generators = config.NewGenerators(hostGenerators)
	for _, s := range e.generatorSet {
		e.generators.Set(s.kind, s.value)
	}
	return nil
}

// BindSettings gives the engine its layered configuration view: the
// engine's own scope stacked above the host's. Called by the host during
// boot.
func (e *Engine) BindSettings(layers *config.Layers) {
	e.layers = layers
}

// Settings returns the engine's layered configuration view. Reads hit the
// engine's own scope first and fall back to the host's; missing keys
// reported through Fetch wrap config.ErrNoSuchOption. Nil before boot.
func (e *Engine) Settings() *config.Layers {
	return e.layers
}

// Seed runs the engine's own seed function. Engines without one return
// nil. The host's seed is never invoked from here.
func (e *Engine) Seed(ctx context.Context) error {
	if e.seed == nil {
		return nil
	}
	if err := e.seed(ctx); err != nil {
		return fmt.Errorf("engine %s: seed: %w", e.name, err)
	}
	return nil
}

// RouteNamePrefix returns the prefix applied to the engine's route names
// when mounted: "<name>." for isolated engines, "" otherwise.
func (e *Engine) RouteNamePrefix() string {
	if e.isolated {
		return e.name + "."
	}
	return ""
}
