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

package source

import (
	"context"
	"os"
	"strings"
)

// OSEnvVar is a configuration source that loads values from environment
// variables sharing a common prefix. Variable names are lowercased and
// underscores create nested structures, so with prefix "APP_" the variable
// APP_SERVER_PORT becomes server.port.
type OSEnvVar struct {
	prefix string
}

// NewOSEnvVar creates an environment variable source with the given prefix.
func NewOSEnvVar(prefix string) *OSEnvVar {
	return &OSEnvVar{prefix: prefix}
}

// Load reads all matching environment variables into a nested map.
func (e *OSEnvVar) Load(_ context.Context) (map[string]any, error) {
	values := make(map[string]any)

	for _, entry := range os.Environ() {
		key, value, found := strings.Cut(entry, "=")
		if !found || !strings.HasPrefix(key, e.prefix) {
			continue
		}

		key = strings.ToLower(strings.TrimPrefix(key, e.prefix))
		if key == "" {
			continue
		}

		setNested(values, strings.Split(key, "_"), value)
	}

	return values, nil
}

// setNested writes value into the map under the given key path, creating
// intermediate maps as needed. A scalar already present at an intermediate
// segment is replaced by a map.
func setNested(m map[string]any, path []string, value string) {
	for i, segment := range path {
		if i == len(path)-1 {
			m[segment] = value
			return
		}
		next, ok := m[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[segment] = next
		}
		m = next
	}
}
