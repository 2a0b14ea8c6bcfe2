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

// Package source provides configuration sources for loading data from
// files, byte content, and environment variables.
package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/gantry-dev/gantry/config/codec"
)

// File is a configuration source that loads data from a file or from
// byte content.
type File struct {
	path    string
	fsys    fs.FS
	data    []byte
	decoder codec.Decoder
}

// NewFile creates a File source that loads configuration from the given
// filesystem path. The decoder determines how the content is parsed.
func NewFile(path string, decoder codec.Decoder) *File {
	return &File{
		path:    path,
		decoder: decoder,
	}
}

// NewFSFile creates a File source that reads from an fs.FS instead of the
// OS filesystem. This is how engines ship embedded configuration.
func NewFSFile(fsys fs.FS, path string, decoder codec.Decoder) *File {
	return &File{
		path:    path,
		fsys:    fsys,
		decoder: decoder,
	}
}

// NewContent creates a File source that loads configuration from the
// provided byte slice. Useful for embedded or generated configuration.
func NewContent(data []byte, decoder codec.Decoder) *File {
	return &File{
		data:    data,
		decoder: decoder,
	}
}

// Load reads and decodes the configuration data.
func (f *File) Load(_ context.Context) (map[string]any, error) {
	data := f.data
	if data == nil {
		var err error
		if f.fsys != nil {
			data, err = fs.ReadFile(f.fsys, f.path)
		} else {
			data, err = os.ReadFile(f.path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", f.path, err)
		}
	}

	values := make(map[string]any)
	if err := f.decoder.Decode(data, &values); err != nil {
		return nil, fmt.Errorf("failed to decode config file %q: %w", f.path, err)
	}

	return values, nil
}
