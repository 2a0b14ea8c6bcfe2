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
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
	// ConsoleHandler outputs human-readable logs for development.
	ConsoleHandler HandlerType = "console"
)

// Level represents log level.
type Level = slog.Level

const (
	// LevelDebug is the debug log level.
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger provides structured logging with service identity fields.
//
// Thread-safety: all public methods are safe for concurrent use. The
// underlying slog.Logger is accessed atomically so a Logger can be shared
// freely between the host application and its engines.
type Logger struct {
	handlerType HandlerType
	output      io.Writer
	level       Level
	addSource   bool

	// Service information, attached to every entry (immutable after New).
	serviceName    string
	serviceVersion string
	environment    string

	// Custom logger bypasses handler construction entirely.
	customLogger *slog.Logger
	useCustom    bool

	registerGlobal bool

	slogger atomic.Pointer[slog.Logger]
}

// Option is a functional option for configuring the logger.
type Option func(*Logger)

// defaultLogger returns a Logger with default configuration.
func defaultLogger() *Logger {
	return &Logger{
		handlerType: JSONHandler,
		output:      os.Stdout,
		level:       LevelInfo,
	}
}

// New creates a new Logger with the given options.
//
// By default this does NOT register the logger as the global slog default.
// Use [WithGlobalLogger] to opt in. This allows multiple Logger instances
// to coexist in the same process, one per application or engine.
func New(opts ...Option) (*Logger, error) {
	l := defaultLogger()

	for _, opt := range opts {
		opt(l)
	}

	if err := l.initialize(); err != nil {
		return nil, fmt.Errorf("logging: initialization failed: %w", err)
	}

	return l, nil
}

// MustNew creates a new Logger and panics if configuration is invalid.
// Use this in main() or initialization code where panic is acceptable.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return l
}

// initialize builds the slog handler chain from the configured options.
func (l *Logger) initialize() error {
	if l.useCustom {
		if l.customLogger == nil {
			return fmt.Errorf("custom logger cannot be nil")
		}
		l.slogger.Store(l.withServiceAttrs(l.customLogger))
		if l.registerGlobal {
			slog.SetDefault(l.slogger.Load())
		}
		return nil
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     l.level,
		AddSource: l.addSource,
	}

	var handler slog.Handler
	switch l.handlerType {
	case JSONHandler:
		handler = slog.NewJSONHandler(l.output, handlerOpts)
	case TextHandler, ConsoleHandler:
		handler = slog.NewTextHandler(l.output, handlerOpts)
	default:
		return fmt.Errorf("unknown handler type: %q", l.handlerType)
	}

	l.slogger.Store(l.withServiceAttrs(slog.New(handler)))
	if l.registerGlobal {
		slog.SetDefault(l.slogger.Load())
	}
	return nil
}

// withServiceAttrs attaches the service identity fields, skipping empties.
func (l *Logger) withServiceAttrs(sl *slog.Logger) *slog.Logger {
	if l.serviceName != "" {
		sl = sl.With("service", l.serviceName)
	}
	if l.serviceVersion != "" {
		sl = sl.With("version", l.serviceVersion)
	}
	if l.environment != "" {
		sl = sl.With("environment", l.environment)
	}
	return sl
}

// Logger returns the underlying slog.Logger.
func (l *Logger) Logger() *slog.Logger {
	return l.slogger.Load()
}

// With returns a slog.Logger with additional attributes attached.
func (l *Logger) With(args ...any) *slog.Logger {
	return l.slogger.Load().With(args...)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.slogger.Load().Debug(msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.slogger.Load().Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.slogger.Load().Warn(msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.slogger.Load().Error(msg, args...)
}

// Noop returns a Logger that discards everything. It is used as the
// fallback wherever a logger was not configured.
func Noop() *Logger {
	l := defaultLogger()
	l.output = io.Discard
	// Initialization on a discard writer cannot fail.
	_ = l.initialize()
	return l
}
