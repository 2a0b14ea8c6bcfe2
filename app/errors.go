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

package app

import "errors"

var (
	// ErrAlreadyBooted is returned when Boot is called twice.
	ErrAlreadyBooted = errors.New("application already booted")

	// ErrNotBooted is returned by operations that require a completed
	// boot, such as Run.
	ErrNotBooted = errors.New("application not booted")

	// ErrEngineNotFound is returned by Engine when no mounted engine has
	// the given name.
	ErrEngineNotFound = errors.New("engine not found")

	// ErrDuplicateMount is returned when two engines are mounted under
	// the same prefix or with the same name.
	ErrDuplicateMount = errors.New("duplicate engine mount")
)
