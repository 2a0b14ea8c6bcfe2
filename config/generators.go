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

package config

import (
	"maps"
	"sync"
)

// Well-known generator kinds. Arbitrary kinds are accepted; these cover the
// common scaffolding concerns.
const (
	KindORM            = "orm"
	KindTemplateEngine = "template_engine"
	KindTestFramework  = "test_framework"
)

// Generators holds per-concern code-scaffolding settings (ORM choice,
// template engine, test framework). Each scope resolves independently per
// kind: a value set on this scope wins, otherwise the parent scope is
// consulted. An engine scope with no value for a kind therefore inherits
// the application's, while its own settings never leak upward.
//
// Freeze snapshots the resolution at boot; afterwards a parent write cannot
// retroactively change what this scope resolves.
type Generators struct {
	mu       sync.RWMutex
	parent   *Generators
	settings map[string]string
	frozen   bool
	resolved map[string]string
}

// NewGenerators creates a generator scope inheriting from parent.
// A nil parent creates a root scope.
func NewGenerators(parent *Generators) *Generators {
	return &Generators{
		parent:   parent,
		settings: make(map[string]string),
	}
}

// Set records a value for a generator kind in this scope.
// Writes after Freeze are ignored; the frozen resolution is authoritative.
// Returns the Generators for chaining in builder-style configuration.
func (g *Generators) Set(kind, value string) *Generators {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.frozen {
		return g
	}
	g.settings[kind] = value
	return g
}

// Own returns the value set directly on this scope, without consulting the
// parent.
func (g *Generators) Own(kind string) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	v, ok := g.settings[kind]
	return v, ok
}

// Lookup resolves the value for a kind: this scope first, then the parent
// chain. Once frozen, only the snapshot taken at freeze time is consulted.
func (g *Generators) Lookup(kind string) (string, bool) {
	g.mu.RLock()
	if g.frozen {
		v, ok := g.resolved[kind]
		g.mu.RUnlock()
		return v, ok
	}
	if v, ok := g.settings[kind]; ok {
		g.mu.RUnlock()
		return v, true
	}
	parent := g.parent
	g.mu.RUnlock()

	if parent != nil {
		return parent.Lookup(kind)
	}
	return "", false
}

// Value resolves the value for a kind, returning "" if no scope defines it.
func (g *Generators) Value(kind string) string {
	v, _ := g.Lookup(kind)
	return v
}

// Freeze snapshots the resolved view of every kind known to this scope or
// any ancestor. After Freeze, parent writes no longer affect resolution and
// Set becomes a no-op. Freeze is idempotent.
func (g *Generators) Freeze() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.frozen {
		return
	}

	resolved := make(map[string]string)
	// Ancestors first so closer scopes override.
	for _, scope := range g.chain() {
		scope.mu.RLock()
		maps.Copy(resolved, scope.settings)
		scope.mu.RUnlock()
	}
	maps.Copy(resolved, g.settings)

	g.resolved = resolved
	g.frozen = true
}

// chain returns the ancestor scopes ordered root-first, excluding g itself.
func (g *Generators) chain() []*Generators {
	var ancestors []*Generators
	for p := g.parent; p != nil; p = p.parent {
		ancestors = append([]*Generators{p}, ancestors...)
	}
	return ancestors
}

// Frozen reports whether this scope has been frozen.
func (g *Generators) Frozen() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.frozen
}
