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

// Package logging provides structured logging for gantry applications and
// engines, built on log/slog.
//
// A Logger carries service identity fields (name, version, environment) that
// are attached to every entry, and supports JSON, text, and console handlers.
// Use [NewContextLogger] inside request handlers to automatically correlate
// log entries with OpenTelemetry trace and span IDs.
//
// Example:
//
//	logger, err := logging.New(
//	    logging.WithServiceName("storefront"),
//	    logging.WithJSONHandler(),
//	    logging.WithLevel(logging.LevelDebug),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger.Info("booted", "engines", 2)
package logging
