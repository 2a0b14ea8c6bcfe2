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

	"github.com/gantry-dev/gantry/config"
	"github.com/gantry-dev/gantry/initializer"
	"github.com/gantry-dev/gantry/router"
)

// Boot runs the application's initializer graph once: configuration is
// loaded, engine initializers and routes are folded in, and the
// configuration layers and generator scopes are frozen.
//
// The phases are pinned to the graph's anchors, so initializers added by
// the application or its engines interleave deterministically:
//
//	bootstrap → load_config → mount_engines → build_middleware_stack → finalize
//
// Engine initializers without explicit edges are constrained to run after
// mount_engines and before build_middleware_stack. Any ordering conflict
// (duplicate name, unknown reference, cycle) fails Boot; the application
// must not start.
func (a *App) Boot(ctx context.Context) error {
	a.mu.Lock()
	if a.booted {
		a.mu.Unlock()
		return ErrAlreadyBooted
	}
	mounts := make([]mountEntry, len(a.mounts))
	copy(mounts, a.mounts)
	a.mu.Unlock()

	phases := []initializer.Initializer{
		{
			Name:   "app.load_config",
			After:  []string{initializer.AnchorBootstrap},
			Before: []string{initializer.AnchorConfigLoaded},
			Run:    a.loadConfig,
		},
		{
			Name:   "app.mount_engines",
			After:  []string{initializer.AnchorConfigLoaded},
			Before: []string{initializer.AnchorEngines},
			Run: func(ctx context.Context) error {
				return a.mountEngines(ctx, mounts)
			},
		},
		{
			Name:   "app.finalize",
			After:  []string{initializer.AnchorMiddlewareStack},
			Before: []string{initializer.AnchorFinalize},
			Run:    a.finalize,
		},
	}
	for _, phase := range phases {
		if err := a.graph.Add(phase); err != nil {
			return fmt.Errorf("boot: %w", err)
		}
	}

	for _, m := range mounts {
		for _, init := range m.engine.Initializers() {
			namespaced := init
			namespaced.Name = m.engine.Name() + "." + init.Name
			namespaced.After = append([]string{initializer.AnchorEngines}, init.After...)
			namespaced.Before = append([]string{initializer.AnchorMiddlewareStack}, init.Before...)
			if err := a.graph.Add(namespaced); err != nil {
				return fmt.Errorf("boot: engine %s: %w", m.engine.Name(), err)
			}
		}
	}

	if err := a.graph.Run(ctx); err != nil {
		return fmt.Errorf("boot: %w", err)
	}

	a.mu.Lock()
	a.booted = true
	a.mu.Unlock()

	a.log.Info("application booted",
		"service", a.name,
		"version", a.version,
		"environment", a.environment,
		"engines", len(mounts),
	)
	return nil
}

// MustBoot is Boot that panics on error.
func (a *App) MustBoot(ctx context.Context) {
	if err := a.Boot(ctx); err != nil {
		panic(fmt.Sprintf("app: boot: %v", err))
	}
}

// loadConfig loads the host scope and every engine scope, then assembles
// the layered views.
func (a *App) loadConfig(ctx context.Context) error {
	if a.defaults != nil {
		if err := a.defaults.Load(ctx); err != nil {
			return fmt.Errorf("load defaults: %w", err)
		}
	}
	if a.cfg != nil {
		if err := a.cfg.Load(ctx); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	a.layers = config.NewLayers(a.cfg, a.defaults)

	for _, m := range a.mounts {
		if ecfg := m.engine.Config(); ecfg != nil {
			if err := ecfg.Load(ctx); err != nil {
				return fmt.Errorf("engine %s: load config: %w", m.engine.Name(), err)
			}
		}
		m.engine.BindSettings(config.NewLayers(m.engine.Config(), a.cfg, a.defaults))
	}
	return nil
}

// mountEngines loads extension settings (host first, then engines in
// mount order) and merges every engine router into the host.
func (a *App) mountEngines(_ context.Context, mounts []mountEntry) error {
	if err := a.extensions.Load(a.extensionsFS, a.name); err != nil {
		return err
	}

	for _, m := range mounts {
		e := m.engine

		if err := a.extensions.Load(e.ExtensionsFS(), e.Name()); err != nil {
			return fmt.Errorf("engine %s: %w", e.Name(), err)
		}

		if err := e.Attach(m.prefix, a.helpers, a.generators); err != nil {
			return err
		}

		opts := append([]router.MountOption{
			router.Label(e.Name()),
			router.NamePrefix(e.RouteNamePrefix()),
		}, m.opts...)
		if err := a.router.Mount(m.prefix, e.Router(), opts...); err != nil {
			return err
		}

		a.log.Info("engine mounted",
			"engine", e.Name(),
			"prefix", m.prefix,
			"isolated", e.Isolated(),
		)
	}
	return nil
}

// finalize freezes the configuration layers and generator scopes so reads
// stay stable for the life of the process.
func (a *App) finalize(context.Context) error {
	if err := a.layers.Freeze(); err != nil {
		return err
	}
	for _, m := range a.mounts {
		if layers := m.engine.Settings(); layers != nil {
			if err := layers.Freeze(); err != nil {
				return fmt.Errorf("engine %s: %w", m.engine.Name(), err)
			}
		}
		if gens := m.engine.Generators(); gens != nil {
			gens.Freeze()
		}
	}
	a.generators.Freeze()
	return nil
}
