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

// Package config manages configuration for gantry applications and engines.
//
// A [Config] loads values from ordered sources (files, embedded content,
// environment variables), merges them with later sources overriding earlier
// ones, and exposes typed accessors. Struct binding, JSON-schema validation,
// and custom validators run during [Config.Load].
//
// [Layers] composes several Config scopes with per-key precedence: an
// engine-local setting wins over an inherited application value, which wins
// over framework defaults. Freezing a Layers at boot makes the resolved view
// immutable, so later writes to an underlying scope cannot retroactively
// change what an engine already reads.
//
// [Generators] carries per-concern scaffolding settings (ORM, template
// engine, test framework) with the same engine-over-application precedence,
// resolved independently for each kind.
//
// Example:
//
//	cfg := config.MustNew(
//	    config.WithFile("config.yaml"),
//	    config.WithEnv("APP_"),
//	)
//	cfg.MustLoad(context.Background())
//	port := cfg.IntOr("server.port", 8080)
package config
