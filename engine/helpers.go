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
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownHelper is returned when a helper name resolves to nothing in
// the registry's visible scope.
var ErrUnknownHelper = errors.New("unknown helper")

// HelperFunc is a named view helper.
type HelperFunc func(args ...any) string

// Helpers is a helper registry with scope-aware resolution.
//
// For a non-isolated engine, lookups fall through to the host registry, so
// the engine sees host helpers alongside its own. For an isolated engine,
// lookups see only the engine's own helpers; host helpers stay reachable
// through an explicit [Helpers.Host] call. Host lookups never see engine
// helpers in either mode.
type Helpers struct {
	mu    sync.RWMutex
	funcs map[string]HelperFunc

	// owner is nil for the host application's registry.
	owner *Engine
	host  *Helpers
}

// NewHostHelpers creates the host application's helper registry.
func NewHostHelpers() *Helpers {
	return &Helpers{funcs: make(map[string]HelperFunc)}
}

func newHelpers(owner *Engine) *Helpers {
	return &Helpers{funcs: make(map[string]HelperFunc), owner: owner}
}

// Register adds a helper under the given name, replacing any previous
// helper of that name in this registry. Returns the registry for
// chaining.
func (h *Helpers) Register(name string, fn HelperFunc) *Helpers {
	if name == "" || fn == nil {
		return h
	}
	h.mu.Lock()
	h.funcs[name] = fn
	h.mu.Unlock()
	return h
}

// Lookup resolves a helper by name within the registry's visible scope.
func (h *Helpers) Lookup(name string) (HelperFunc, bool) {
	h.mu.RLock()
	fn, ok := h.funcs[name]
	h.mu.RUnlock()
	if ok {
		return fn, true
	}

	// Isolated engines see only their own helpers.
	if h.owner != nil && !h.owner.isolated && h.host != nil {
		return h.host.Lookup(name)
	}
	return nil, false
}

// Has reports whether the name resolves in the visible scope.
func (h *Helpers) Has(name string) bool {
	_, ok := h.Lookup(name)
	return ok
}

// Call invokes a helper by name.
func (h *Helpers) Call(name string, args ...any) (string, error) {
	fn, ok := h.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownHelper, name)
	}
	return fn(args...), nil
}

// Host returns the host application's registry for qualified access. An
// isolated engine reaches host helpers only through here. Returns the
// registry itself when it already belongs to the host, and nil when the
// engine is not yet attached.
func (h *Helpers) Host() *Helpers {
	if h.owner == nil {
		return h
	}
	return h.host
}
