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
	"fmt"
	"strings"
)

// node is a segment of the route tree. Children are keyed by their literal
// segment; a node may additionally carry one :param child and one trailing
// *wildcard child. Matching prefers literal children, then the param child,
// then the wildcard.
type node struct {
	children  map[string]*node
	param     *node
	paramName string
	wildcard  *node
	route     *Route
}

// splitPath splits a route path into segments, dropping the leading slash.
// "/" yields an empty slice.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// addRoute inserts a route into the tree. It returns ErrRouteConflict when
// another route already terminates at the same position.
func (n *node) addRoute(route *Route) error {
	segments := splitPath(route.path)

	current := n
	for i, segment := range segments {
		switch {
		case strings.HasPrefix(segment, "*"):
			if i != len(segments)-1 {
				return fmt.Errorf("wildcard segment %q must be last in %q", segment, route.path)
			}
			name := strings.TrimPrefix(segment, "*")
			if name == "" {
				name = "filepath"
			}
			if current.wildcard == nil {
				current.wildcard = &node{paramName: name}
			}
			current = current.wildcard

		case strings.HasPrefix(segment, ":"):
			name := strings.TrimPrefix(segment, ":")
			if name == "" {
				return fmt.Errorf("param segment missing name in %q", route.path)
			}
			if current.param == nil {
				current.param = &node{}
				current.paramName = name
			} else if current.paramName != name {
				return fmt.Errorf("conflicting param names %q and %q at %q", current.paramName, name, route.path)
			}
			current = current.param

		default:
			if current.children == nil {
				current.children = make(map[string]*node)
			}
			child, ok := current.children[segment]
			if !ok {
				child = &node{}
				current.children[segment] = child
			}
			current = child
		}
	}

	if current.route != nil {
		return fmt.Errorf("%w: %s %s", ErrRouteConflict, route.method, route.path)
	}
	current.route = route
	return nil
}

// getRoute matches a request path against the tree, recording path
// parameters into the context. Returns nil when nothing matches.
func (n *node) getRoute(path string, c *Context) *Route {
	return n.match(splitPath(path), c)
}

// match resolves segments recursively so param backtracking stays simple:
// if the literal branch dead-ends, the param branch is still tried.
func (n *node) match(segments []string, c *Context) *Route {
	if len(segments) == 0 {
		if n.route != nil {
			return n.route
		}
		// A wildcard also matches the empty remainder.
		if n.wildcard != nil && n.wildcard.route != nil {
			if c != nil {
				c.addParam(n.wildcard.paramName, "")
			}
			return n.wildcard.route
		}
		return nil
	}

	head, rest := segments[0], segments[1:]

	if child, ok := n.children[head]; ok {
		if route := child.match(rest, c); route != nil {
			return route
		}
	}

	if n.param != nil && head != "" {
		mark := 0
		if c != nil {
			mark = len(c.paramKeys)
			c.addParam(n.paramName, head)
		}
		if route := n.param.match(rest, c); route != nil {
			return route
		}
		if c != nil {
			c.paramKeys = c.paramKeys[:mark]
			c.paramValues = c.paramValues[:mark]
		}
	}

	if n.wildcard != nil && n.wildcard.route != nil {
		if c != nil {
			c.addParam(n.wildcard.paramName, strings.Join(segments, "/"))
		}
		return n.wildcard.route
	}

	return nil
}

// walk visits every route in the subtree.
func (n *node) walk(fn func(*Route)) {
	if n.route != nil {
		fn(n.route)
	}
	for _, child := range n.children {
		child.walk(fn)
	}
	if n.param != nil {
		n.param.walk(fn)
	}
	if n.wildcard != nil {
		n.wildcard.walk(fn)
	}
}
