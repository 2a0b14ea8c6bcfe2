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

package initializer

import (
	"context"
	"fmt"
	"sync"
)

// node is an initializer plus its declaration index for tie-breaking.
type node struct {
	init  Initializer
	index int
}

// Graph collects initializers and resolves them into a deterministic total
// order. The zero value is not usable; create graphs with NewGraph.
//
// Graph construction happens once at boot, before any concurrent request
// handling begins. It is guarded by a mutex so engines registered from
// option funcs cannot race, but the resolved order is immutable.
type Graph struct {
	mu     sync.Mutex
	nodes  []*node
	byName map[string]*node
}

// NewGraph creates a Graph pre-populated with the fixed anchors, chained in
// their documented order: bootstrap, load_config, mount_engines,
// build_middleware_stack, finalize.
func NewGraph() *Graph {
	g := &Graph{byName: make(map[string]*node)}

	anchors := []string{
		AnchorBootstrap,
		AnchorConfigLoaded,
		AnchorEngines,
		AnchorMiddlewareStack,
		AnchorFinalize,
	}
	for i, name := range anchors {
		init := Initializer{Name: name}
		if i > 0 {
			init.After = []string{anchors[i-1]}
		}
		// Anchors are fixed; registration cannot fail.
		if err := g.Add(init); err != nil {
			panic(fmt.Sprintf("initializer: anchor registration failed: %v", err))
		}
	}
	return g
}

// Add registers an initializer. Registration order is significant: when two
// initializers have no constraint between them, the one added first runs
// first.
func (g *Graph) Add(init Initializer) error {
	if init.Name == "" {
		return ErrEmptyName
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.byName[init.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, init.Name)
	}

	n := &node{init: init, index: len(g.nodes)}
	g.nodes = append(g.nodes, n)
	g.byName[init.Name] = n
	return nil
}

// MustAdd registers an initializer and panics on error.
func (g *Graph) MustAdd(init Initializer) {
	if err := g.Add(init); err != nil {
		panic(fmt.Sprintf("initializer: %v", err))
	}
}

// Len returns the number of registered initializers, anchors included.
func (g *Graph) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes)
}

// Sort resolves all declared constraints into a total order.
//
// The order is deterministic: a Kahn topological sort where, among the
// ready nodes, the lowest declaration index is always chosen. Unknown
// references and cycles are fatal errors; the caller must not boot the
// application when Sort fails.
func (g *Graph) Sort() ([]Initializer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// edges[a] holds nodes that must run after a.
	edges := make(map[*node][]*node, len(g.nodes))
	indegree := make(map[*node]int, len(g.nodes))
	for _, n := range g.nodes {
		indegree[n] = 0
	}

	addEdge := func(from, to *node) {
		edges[from] = append(edges[from], to)
		indegree[to]++
	}

	for _, n := range g.nodes {
		for _, name := range n.init.After {
			dep, ok := g.byName[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q declared after unknown %q", ErrUnknownReference, n.init.Name, name)
			}
			addEdge(dep, n)
		}
		for _, name := range n.init.Before {
			succ, ok := g.byName[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q declared before unknown %q", ErrUnknownReference, n.init.Name, name)
			}
			addEdge(n, succ)
		}
	}

	// Kahn's algorithm; among ready nodes the lowest declaration index
	// wins, which makes ties resolve in registration order.
	var ready []*node
	for _, n := range g.nodes {
		if indegree[n] == 0 {
			ready = append(ready, n)
		}
	}

	sorted := make([]Initializer, 0, len(g.nodes))
	for len(ready) > 0 {
		minAt := 0
		for i, n := range ready {
			if n.index < ready[minAt].index {
				minAt = i
			}
		}
		n := ready[minAt]
		ready = append(ready[:minAt], ready[minAt+1:]...)

		sorted = append(sorted, n.init)
		for _, succ := range edges[n] {
			indegree[succ]--
			if indegree[succ] == 0 {
				ready = append(ready, succ)
			}
		}
	}

	if len(sorted) != len(g.nodes) {
		var stuck []string
		for _, n := range g.nodes {
			if indegree[n] > 0 {
				stuck = append(stuck, n.init.Name)
			}
		}
		return nil, fmt.Errorf("%w: involves %v", ErrCycle, stuck)
	}

	return sorted, nil
}

// Run sorts the graph and executes every initializer in order. Anchors and
// other initializers without a Run function are skipped. The first error
// aborts the run.
func (g *Graph) Run(ctx context.Context) error {
	sorted, err := g.Sort()
	if err != nil {
		return err
	}

	for _, init := range sorted {
		if init.Run == nil {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := init.Run(ctx); err != nil {
			return fmt.Errorf("initializer %q: %w", init.Name, err)
		}
	}
	return nil
}
