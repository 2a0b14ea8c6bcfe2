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

// Package initializer provides named, orderable boot-time setup steps.
//
// Each initializer declares before/after relationships to other named
// initializers or to the fixed anchors. A [Graph] resolves the constraints
// into a deterministic total order, with ties broken by declaration order.
// Conflicting constraints are a fatal configuration error: the application
// must not start.
//
// Engine-contributed initializers are inserted at [AnchorEngines], which
// always falls after the host's configuration-loading steps and before the
// middleware stack is built.
package initializer

import (
	"context"
	"errors"
)

// Fixed anchor names. Anchors are ordinary graph nodes with no work
// attached; they exist to give other initializers stable reference points.
const (
	// AnchorBootstrap is the first anchor in every graph.
	AnchorBootstrap = "bootstrap"

	// AnchorConfigLoaded marks the point where the host application's
	// configuration sources have been loaded and merged.
	AnchorConfigLoaded = "load_config"

	// AnchorEngines is the insertion point for engine-contributed
	// initializers. It is constrained after AnchorConfigLoaded and before
	// AnchorMiddlewareStack.
	AnchorEngines = "mount_engines"

	// AnchorMiddlewareStack marks the point where the host's middleware
	// stack is assembled.
	AnchorMiddlewareStack = "build_middleware_stack"

	// AnchorFinalize is the last anchor in every graph.
	AnchorFinalize = "finalize"
)

var (
	// ErrDuplicateName indicates two initializers were registered under
	// the same name.
	ErrDuplicateName = errors.New("duplicate initializer name")

	// ErrUnknownReference indicates a before/after constraint names an
	// initializer that does not exist.
	ErrUnknownReference = errors.New("unknown initializer reference")

	// ErrCycle indicates the declared constraints contain a cycle and no
	// valid total order exists.
	ErrCycle = errors.New("initializer ordering cycle")

	// ErrEmptyName indicates an initializer was registered without a name.
	ErrEmptyName = errors.New("initializer name cannot be empty")
)

// RunFunc is the work attached to an initializer. Anchors have no RunFunc.
type RunFunc func(ctx context.Context) error

// Initializer is a named unit of boot-time setup logic with declared
// ordering relationships.
type Initializer struct {
	// Name uniquely identifies the initializer within a graph.
	Name string

	// After lists initializers or anchors that must run before this one.
	After []string

	// Before lists initializers or anchors that must run after this one.
	Before []string

	// Run performs the setup work. A nil Run is valid (anchors use this).
	Run RunFunc
}
