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

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	logger, err := New()
	require.NoError(t, err)
	require.NotNil(t, logger.Logger())
}

func TestNew_UnknownHandlerType(t *testing.T) {
	t.Parallel()

	_, err := New(WithHandlerType("xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown handler type")
}

func TestLogger_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(
		WithJSONHandler(),
		WithOutput(&buf),
		WithServiceName("checkout"),
		WithServiceVersion("2.1.0"),
		WithEnvironment("test"),
	)
	require.NoError(t, err)

	logger.Info("engine mounted", "engine", "blog", "prefix", "/blog")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "engine mounted", entry["msg"])
	assert.Equal(t, "checkout", entry["service"])
	assert.Equal(t, "2.1.0", entry["version"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "blog", entry["engine"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(
		WithTextHandler(),
		WithOutput(&buf),
		WithLevel(LevelWarn),
	)
	require.NoError(t, err)

	logger.Debug("not visible")
	logger.Info("not visible either")
	logger.Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "not visible")
	assert.Contains(t, out, "visible")
}

func TestLogger_CustomLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, nil))

	logger, err := New(
		WithCustomLogger(custom),
		WithServiceName("host"),
	)
	require.NoError(t, err)

	logger.Info("hello")
	assert.Contains(t, buf.String(), "service=host")
}

func TestNoop_DiscardsEverything(t *testing.T) {
	t.Parallel()

	logger := Noop()
	// Must not panic, must not write anywhere visible.
	logger.Info("into the void")
	logger.Error("also into the void")
}

func TestContextLogger_WithoutSpan(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(WithTextHandler(), WithOutput(&buf))
	require.NoError(t, err)

	cl := NewContextLogger(context.Background(), logger)
	cl.Info("no trace context")

	assert.Empty(t, cl.TraceID())
	assert.Empty(t, cl.SpanID())
	assert.False(t, strings.Contains(buf.String(), fieldTraceID))
}
