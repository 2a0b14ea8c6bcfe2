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

package codec

import (
	"fmt"
	"sync"
)

// Codec combines encoding and decoding for one wire format.
type Codec interface {
	Encoder
	Decoder
}

var (
	mu     sync.RWMutex
	codecs = make(map[Type]Codec)
)

// Register makes the codec available under the given type. Registering a
// type twice replaces the earlier codec.
func Register(name Type, c Codec) {
	mu.Lock()
	defer mu.Unlock()
	codecs[name] = c
}

// Get retrieves the codec registered under the given type.
func Get(name Type) (Codec, error) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("no codec registered for type %q", name)
	}
	return c, nil
}

// GetEncoder retrieves the encoder registered under the given type.
func GetEncoder(name Type) (Encoder, error) {
	c, err := Get(name)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetDecoder retrieves the decoder registered under the given type.
func GetDecoder(name Type) (Decoder, error) {
	c, err := Get(name)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Types reports the registered codec types in unspecified order.
func Types() []Type {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Type, 0, len(codecs))
	for name := range codecs {
		out = append(out, name)
	}
	return out
}
