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

package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	t.Parallel()

	assert.Nil(t, splitPath("/"))
	assert.Equal(t, []string{"users"}, splitPath("/users"))
	assert.Equal(t, []string{"users", ":id"}, splitPath("/users/:id"))
	assert.Equal(t, []string{"a", "b"}, splitPath("/a/b/"))
}

func TestTree_AddAndGet(t *testing.T) {
	t.Parallel()

	root := &node{}
	routeA := &Route{method: "GET", path: "/a"}
	routeB := &Route{method: "GET", path: "/a/:id"}

	require.NoError(t, root.addRoute(routeA))
	require.NoError(t, root.addRoute(routeB))

	assert.Same(t, routeA, root.getRoute("/a", nil))
	assert.Same(t, routeB, root.getRoute("/a/42", nil))
	assert.Nil(t, root.getRoute("/b", nil))
}

func TestTree_DuplicateRouteConflict(t *testing.T) {
	t.Parallel()

	root := &node{}
	require.NoError(t, root.addRoute(&Route{method: "GET", path: "/x"}))

	err := root.addRoute(&Route{method: "GET", path: "/x"})
	require.ErrorIs(t, err, ErrRouteConflict)
}

func TestTree_ConflictingParamNames(t *testing.T) {
	t.Parallel()

	root := &node{}
	require.NoError(t, root.addRoute(&Route{method: "GET", path: "/u/:id"}))

	err := root.addRoute(&Route{method: "GET", path: "/u/:name"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicting param names")
}

func TestTree_WildcardMustBeLast(t *testing.T) {
	t.Parallel()

	root := &node{}
	err := root.addRoute(&Route{method: "GET", path: "/files/*path/extra"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be last")
}

func TestTree_WildcardDefaultName(t *testing.T) {
	t.Parallel()

	root := &node{}
	require.NoError(t, root.addRoute(&Route{method: "GET", path: "/files/*"}))
	assert.Equal(t, "filepath", root.children["files"].wildcard.paramName)
}

func TestTree_Walk(t *testing.T) {
	t.Parallel()

	root := &node{}
	paths := []string{"/a", "/a/:id", "/b/*rest"}
	for _, p := range paths {
		require.NoError(t, root.addRoute(&Route{method: "GET", path: p}))
	}

	var visited []string
	root.walk(func(r *Route) {
		visited = append(visited, r.path)
	})
	assert.ElementsMatch(t, paths, visited)
}
