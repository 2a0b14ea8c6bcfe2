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

import "context"

// Source supplies one layer of raw configuration values. A Config merges
// its sources in registration order, later sources overriding earlier ones.
//
// Load must be safe to call concurrently.
type Source interface {
	// Load reads the source and returns its key-value pairs as a nested map.
	Load(ctx context.Context) (map[string]any, error)
}
