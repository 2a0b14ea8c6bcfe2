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
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/gantry-dev/gantry/config"
	"github.com/gantry-dev/gantry/config/codec"
)

// Extensions is the process-wide extension settings registry shared by the
// host and its engines. Each settings file contributes one named
// extension; names are first-come-first-served, so an engine shipping an
// extension the host already loaded is skipped with a warning and the
// host's settings stand.
type Extensions struct {
	mu       sync.Mutex
	settings map[string]map[string]any
	owners   map[string]string
	logger   *slog.Logger
}

// NewExtensions creates an empty extension registry.
func NewExtensions(logger *slog.Logger) *Extensions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extensions{
		settings: make(map[string]map[string]any),
		owners:   make(map[string]string),
		logger:   logger,
	}
}

// Load reads every settings file at the root of fsys into the registry.
// The extension name is the file name without its extension; the format
// is detected from the extension and decoded with the config codecs
// (YAML, TOML, or JSON). owner labels the contributor in duplicate
// warnings.
//
// A file whose name is already registered is skipped: the first loader
// wins, the duplicate is logged at warn level, and loading continues.
// Malformed files fail the load.
func (x *Extensions) Load(fsys fs.FS, owner string) error {
	if fsys == nil {
		return nil
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("extensions: read dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileName := entry.Name()

		codecType, err := config.DetectFormat(fileName)
		if err != nil {
			// Not a settings file.
			continue
		}

		name := strings.TrimSuffix(fileName, fileName[strings.LastIndex(fileName, "."):])

		x.mu.Lock()
		if prev, dup := x.owners[name]; dup {
			x.mu.Unlock()
			x.logger.Warn("duplicate extension skipped",
				"extension", name,
				"owner", owner,
				"loaded_by", prev,
			)
			continue
		}
		x.mu.Unlock()

		data, err := fs.ReadFile(fsys, fileName)
		if err != nil {
			return fmt.Errorf("extensions: read %s: %w", fileName, err)
		}

		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return fmt.Errorf("extensions: %s: %w", fileName, err)
		}

		var values map[string]any
		if err := decoder.Decode(data, &values); err != nil {
			return fmt.Errorf("extensions: decode %s: %w", fileName, err)
		}

		x.mu.Lock()
		x.settings[name] = values
		x.owners[name] = owner
		x.mu.Unlock()

		x.logger.Debug("extension loaded", "extension", name, "owner", owner)
	}
	return nil
}

// Get returns the settings of a loaded extension.
func (x *Extensions) Get(name string) (map[string]any, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	values, ok := x.settings[name]
	return values, ok
}

// Owner returns which loader contributed the extension.
func (x *Extensions) Owner(name string) (string, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	owner, ok := x.owners[name]
	return owner, ok
}

// Names returns the loaded extension names, sorted.
func (x *Extensions) Names() []string {
	x.mu.Lock()
	defer x.mu.Unlock()
	names := make([]string, 0, len(x.settings))
	for name := range x.settings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExtensionsFS returns the filesystem holding the engine's extension
// settings files, or nil.
func (e *Engine) ExtensionsFS() fs.FS {
	return e.extensionsFS
}
