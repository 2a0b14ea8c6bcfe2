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
	"fmt"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/spf13/cast"
)

// Layers composes configuration scopes with per-key precedence.
// The first scope has the highest precedence: an engine's own settings are
// consulted before the inherited application scope, which is consulted
// before framework defaults. Lookup is per key, never an all-or-nothing
// object swap.
//
// Before Freeze, lookups read through to the live scopes. Freeze resolves
// the full view once; afterwards reads come from the immutable snapshot and
// later writes to an underlying scope cannot change resolved values.
//
// Example:
//
//	layers := config.NewLayers(engineCfg, appCfg, defaults)
//	timeout := layers.DurationOr("request.timeout", 5*time.Second)
type Layers struct {
	mu       sync.RWMutex
	scopes   []*Config
	frozen   bool
	snapshot map[string]any
}

// NewLayers creates a layered view over the given scopes, highest
// precedence first. Nil scopes are skipped.
func NewLayers(scopes ...*Config) *Layers {
	kept := make([]*Config, 0, len(scopes))
	for _, s := range scopes {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Layers{scopes: kept}
}

// Freeze resolves the layered view into an immutable snapshot.
// Scopes are deep-merged from lowest to highest precedence, so every key
// ends up with the value its most specific scope declared. Freeze is called
// once at boot, after initializers have run; calling it again is an error.
func (l *Layers) Freeze() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.frozen {
		return ErrFrozen
	}

	// mergo installs nested maps by reference, so each scope is deep-cloned
	// first. Otherwise a post-freeze Set on a scope would mutate the snapshot
	// through the shared maps.
	snapshot := make(map[string]any)
	for i := len(l.scopes) - 1; i >= 0; i-- {
		values := cloneValues(*l.scopes[i].Values())
		if err := mergo.Map(&snapshot, values, mergo.WithOverride); err != nil {
			return NewError(fmt.Sprintf("layer[%d]", i), "merge", err)
		}
	}

	l.snapshot = snapshot
	l.frozen = true
	return nil
}

// cloneValues copies a values map recursively so the caller can hold it
// without sharing nested maps or slices with the source.
func cloneValues(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneValues(val)
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = cloneValue(item)
		}
		return items
	default:
		return v
	}
}

// Frozen reports whether the layered view has been frozen.
func (l *Layers) Frozen() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.frozen
}

// Get returns the value for the key, consulting scopes in precedence order,
// or the frozen snapshot once Freeze has run. Returns nil if no scope
// defines the key.
func (l *Layers) Get(key string) any {
	if l == nil || key == "" {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.frozen {
		return lookupPath(l.snapshot, key)
	}

	for _, scope := range l.scopes {
		if val := scope.Get(key); val != nil {
			return val
		}
	}
	return nil
}

// Has reports whether any scope defines the key.
func (l *Layers) Has(key string) bool {
	return l.Get(key) != nil
}

// Fetch returns the value for the key, or ErrNoSuchOption if no scope
// defines it. Isolated engines use this for strict lookups.
func (l *Layers) Fetch(key string) (any, error) {
	val := l.Get(key)
	if val == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchOption, key)
	}
	return val, nil
}

// String returns the value for the key as a string, or "" if absent.
func (l *Layers) String(key string) string {
	return cast.ToString(l.Get(key))
}

// Int returns the value for the key as an int, or 0 if absent.
func (l *Layers) Int(key string) int {
	return cast.ToInt(l.Get(key))
}

// Bool returns the value for the key as a bool, or false if absent.
func (l *Layers) Bool(key string) bool {
	return cast.ToBool(l.Get(key))
}

// StringOr returns the value for the key as a string, or the default if absent.
func (l *Layers) StringOr(key, defaultVal string) string {
	val := l.Get(key)
	if val == nil {
		return defaultVal
	}
	return cast.ToString(val)
}

// IntOr returns the value for the key as an int, or the default if absent.
func (l *Layers) IntOr(key string, defaultVal int) int {
	val := l.Get(key)
	if val == nil {
		return defaultVal
	}
	return cast.ToInt(val)
}

// BoolOr returns the value for the key as a bool, or the default if absent.
func (l *Layers) BoolOr(key string, defaultVal bool) bool {
	val := l.Get(key)
	if val == nil {
		return defaultVal
	}
	return cast.ToBool(val)
}

// DurationOr returns the value for the key as a time.Duration, or the
// default if absent.
func (l *Layers) DurationOr(key string, defaultVal time.Duration) time.Duration {
	val := l.Get(key)
	if val == nil {
		return defaultVal
	}
	return cast.ToDuration(val)
}
