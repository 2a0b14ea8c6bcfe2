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

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cast"

	"github.com/gantry-dev/gantry/config/codec"
	"github.com/gantry-dev/gantry/config/source"
)

// Option is a functional option that configures a Config instance.
type Option func(c *Config) error

// Config manages configuration data loaded from multiple sources.
// It provides thread-safe access to configuration values and supports
// binding to structs and validation.
//
// Config is safe for concurrent use by multiple goroutines.
type Config struct {
	values           *map[string]any
	sources          []Source
	binding          any
	tagName          string // Custom struct tag name (default: "config")
	mu               sync.RWMutex
	compiledSchema   *jsonschema.Schema
	customValidators []func(map[string]any) error

	decoderConfig *mapstructure.DecoderConfig
	decoderOnce   sync.Once
}

// WithSource adds a source to the configuration loader.
func WithSource(loader Source) Option {
	return func(c *Config) error {
		if loader == nil {
			return errors.New("source cannot be nil")
		}
		c.sources = append(c.sources, loader)
		return nil
	}
}

// WithFile returns an Option that loads configuration data from a file.
// The format is detected from the file extension (.yaml, .yml, .json,
// .toml); use WithFileAs for files without one.
//
// Paths support environment variable expansion using ${VAR} or $VAR syntax.
//
// Example:
//
//	cfg := config.MustNew(
//	    config.WithFile("config.yaml"),
//	    config.WithFile("override.json"),
//	)
func WithFile(path string) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)

		format, err := DetectFormat(path)
		if err != nil {
			return NewError("file-source", "detect-format", err)
		}

		decoder, err := codec.GetDecoder(format)
		if err != nil {
			return NewError("file-source", "get-decoder", err)
		}

		c.sources = append(c.sources, source.NewFile(path, decoder))
		return nil
	}
}

// WithFileAs returns an Option that loads configuration data from a file
// with an explicit format, overriding extension detection.
func WithFileAs(path string, codecType codec.Type) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)

		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("file-source", "get-decoder", err)
		}

		c.sources = append(c.sources, source.NewFile(path, decoder))
		return nil
	}
}

// WithFSFile returns an Option that loads configuration data from a file in
// an fs.FS. Engines use this to ship embedded configuration.
func WithFSFile(fsys fs.FS, path string) Option {
	return func(c *Config) error {
		format, err := DetectFormat(path)
		if err != nil {
			return NewError("fs-source", "detect-format", err)
		}

		decoder, err := codec.GetDecoder(format)
		if err != nil {
			return NewError("fs-source", "get-decoder", err)
		}

		c.sources = append(c.sources, source.NewFSFile(fsys, path, decoder))
		return nil
	}
}

// WithContent returns an Option that loads configuration data from a byte
// slice in the given format.
//
// Example:
//
//	yamlContent := []byte("server:\n  port: 8080")
//	cfg := config.MustNew(
//	    config.WithContent(yamlContent, codec.TypeYAML),
//	)
func WithContent(data []byte, codecType codec.Type) Option {
	return func(c *Config) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("content-source", "get-decoder", err)
		}

		c.sources = append(c.sources, source.NewContent(data, decoder))
		return nil
	}
}

// WithEnv returns an Option that loads configuration from environment
// variables sharing the given prefix. Variable names are lowercased and
// underscores create nested keys, so APP_SERVER_PORT becomes server.port.
func WithEnv(prefix string) Option {
	return func(c *Config) error {
		c.sources = append(c.sources, source.NewOSEnvVar(prefix))
		return nil
	}
}

// WithValues returns an Option that seeds the configuration with a literal
// map. This is the builder-style entry point engines use for programmatic
// settings.
func WithValues(values map[string]any) Option {
	return func(c *Config) error {
		if values == nil {
			return errors.New("values cannot be nil")
		}
		c.sources = append(c.sources, staticSource(values))
		return nil
	}
}

// staticSource adapts a literal map to the Source interface.
type staticSource map[string]any

func (s staticSource) Load(_ context.Context) (map[string]any, error) {
	return s, nil
}

// WithBinding returns an Option that binds configuration data to a struct
// during Load. The target must be a pointer.
func WithBinding(v any) Option {
	return func(c *Config) error {
		if v == nil {
			return errors.New("binding target cannot be nil")
		}
		if reflect.TypeOf(v).Kind() != reflect.Ptr {
			return errors.New("binding target must be a pointer")
		}
		c.binding = v
		return nil
	}
}

// WithTag sets a custom struct tag name for binding (default: "config").
func WithTag(tagName string) Option {
	return func(c *Config) error {
		if tagName == "" {
			return errors.New("tag name cannot be empty")
		}
		c.tagName = tagName
		return nil
	}
}

// WithJSONSchema adds a JSON Schema that loaded values must satisfy.
func WithJSONSchema(schema []byte) Option {
	return func(c *Config) error {
		// Unique schema name to avoid compiler resource caching.
		//nolint:gosec // rand.Int() is used for a unique schema name, not security sensitive
		schemaName := fmt.Sprintf("inline_%d.json", rand.Int())
		compiler := jsonschema.NewCompiler()

		jsonSchema, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
		if err != nil {
			return err
		}

		if err = compiler.AddResource(schemaName, jsonSchema); err != nil {
			return err
		}
		s, err := compiler.Compile(schemaName)
		if err != nil {
			return err
		}
		c.compiledSchema = s
		return nil
	}
}

// WithValidator adds a custom validation function run during Load.
func WithValidator(fn func(map[string]any) error) Option {
	return func(c *Config) error {
		c.customValidators = append(c.customValidators, fn)
		return nil
	}
}

// New creates a new Config instance with the provided options.
// Errors from individual options are joined and returned alongside the
// partially initialized Config.
func New(options ...Option) (*Config, error) {
	var errs error
	c := &Config{
		values:  &map[string]any{},
		sources: []Source{},
		tagName: "config",
	}

	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(c); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return c, errs
}

// MustNew creates a new Config instance and panics if any option fails.
// Use this in main() or initialization code where panic is acceptable.
func MustNew(options ...Option) *Config {
	cfg, err := New(options...)
	if err != nil {
		panic(fmt.Sprintf("config: failed to create config: %v", err))
	}
	return cfg
}

// Validator is an interface for structs that validate their own configuration.
type Validator interface {
	Validate() error
}

// getDecoderConfig returns a cached decoder configuration to reduce
// reflection overhead across repeated Load calls.
func (c *Config) getDecoderConfig() *mapstructure.DecoderConfig {
	c.decoderOnce.Do(func() {
		tagName := c.tagName
		if tagName == "" {
			tagName = "config"
		}
		c.decoderConfig = &mapstructure.DecoderConfig{
			TagName:          tagName,
			Squash:           true,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.StringToTimeHookFunc(time.RFC3339),
			),
		}
	})
	return c.decoderConfig
}

// normalizeMapKeys recursively lowercases map keys for case-insensitive merging.
func normalizeMapKeys(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	normalized := make(map[string]any)
	for k, v := range m {
		lowerKey := strings.ToLower(k)
		if nestedMap, ok := v.(map[string]any); ok {
			normalized[lowerKey] = normalizeMapKeys(nestedMap)
		} else {
			normalized[lowerKey] = v
		}
	}
	return normalized
}

// loadSources loads configuration data from all sources in order.
// Later sources override earlier ones per key.
func (c *Config) loadSources(ctx context.Context) (map[string]any, error) {
	newValues := make(map[string]any)
	for i, src := range c.sources {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		conf, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "load", err)
		}
		if conf == nil {
			conf = make(map[string]any)
		}

		normalized := normalizeMapKeys(conf)
		if err = mergo.Map(&newValues, normalized, mergo.WithOverride); err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "merge", err)
		}
	}

	return newValues, nil
}

// Load loads configuration data from the registered sources and merges it
// into the internal values map. Validation runs before the internal state is
// swapped, so a failed Load leaves the previous values intact.
//
// Errors:
//   - Returns error if ctx is nil
//   - Returns [Error] if any source fails to load
//   - Returns [Error] if JSON schema validation fails
//   - Returns [Error] if custom validators fail
//   - Returns [Error] if binding or struct validation fails
func (c *Config) Load(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context cannot be nil")
	}

	newValues, err := c.loadSources(ctx)
	if err != nil {
		return err
	}

	if c.compiledSchema != nil {
		if err = c.compiledSchema.Validate(newValues); err != nil {
			return NewError("json-schema", "validate", err)
		}
	}

	for i, fn := range c.customValidators {
		if fn == nil {
			continue
		}
		if err = fn(newValues); err != nil {
			return NewError(fmt.Sprintf("custom-validator[%d]", i), "validate", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.binding != nil {
		if err = c.bind(newValues); err != nil {
			return NewError("binding", "bind", err)
		}
	}

	c.values = &newValues
	return nil
}

// MustLoad loads configuration or panics on error.
func (c *Config) MustLoad(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		panic(err)
	}
}

// bind decodes values into the binding struct and runs its Validate method
// if it implements Validator.
func (c *Config) bind(values map[string]any) error {
	cfg := c.getDecoderConfig()
	cfg.Result = c.binding

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}

	if v, ok := c.binding.(Validator); ok {
		if err = v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Set writes a value under a dot-separated key path, creating intermediate
// maps as needed. Keys are stored lowercase. Set is how builder-style
// configuration blocks record programmatic values before boot.
func (c *Config) Set(key string, value any) {
	if key == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	segments := strings.Split(strings.ToLower(key), ".")
	current := *c.values
	for i, segment := range segments {
		if i == len(segments)-1 {
			current[segment] = value
			return
		}
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
}

// Values returns a pointer to the internal values map.
func (c *Config) Values() *map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.values == nil {
		emptyMap := make(map[string]any)
		return &emptyMap
	}
	return c.values
}

// getValueFromMap retrieves the value for a dot-separated path from the
// internal values map. Keys are case-insensitive since they are stored
// lowercase. Returns nil if the path does not resolve.
func (c *Config) getValueFromMap(path string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.values == nil {
		return nil
	}
	return lookupPath(*c.values, path)
}

// lookupPath resolves a dot-separated path in a nested map.
func lookupPath(m map[string]any, path string) any {
	normalized := strings.ToLower(path)

	// Direct key match first.
	if val, ok := m[normalized]; ok {
		return val
	}

	current := m
	segments := strings.Split(normalized, ".")
	for i, segment := range segments {
		val, ok := current[segment]
		if !ok {
			return nil
		}
		if i == len(segments)-1 {
			return val
		}
		nested, isMap := val.(map[string]any)
		if !isMap {
			return nil
		}
		current = nested
	}
	return nil
}

// Get returns the value associated with the given key, or nil if absent.
func (c *Config) Get(key string) any {
	if c == nil || key == "" {
		return nil
	}
	return c.getValueFromMap(key)
}

// Has reports whether the given key resolves to a value.
func (c *Config) Has(key string) bool {
	return c.Get(key) != nil
}

// Fetch returns the value for the given key, or ErrNoSuchOption if the key
// does not resolve. Use this where a missing option must be an error rather
// than a silent zero value.
func (c *Config) Fetch(key string) (any, error) {
	val := c.Get(key)
	if val == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchOption, key)
	}
	return val, nil
}

// String returns the value for the key as a string, or "" if absent.
func (c *Config) String(key string) string {
	if c == nil {
		return ""
	}
	return cast.ToString(c.Get(key))
}

// Int returns the value for the key as an int, or 0 if absent.
func (c *Config) Int(key string) int {
	if c == nil {
		return 0
	}
	return cast.ToInt(c.Get(key))
}

// Bool returns the value for the key as a bool, or false if absent.
func (c *Config) Bool(key string) bool {
	if c == nil {
		return false
	}
	return cast.ToBool(c.Get(key))
}

// Duration returns the value for the key as a time.Duration, or 0 if absent.
func (c *Config) Duration(key string) time.Duration {
	if c == nil {
		return 0
	}
	return cast.ToDuration(c.Get(key))
}

// StringSlice returns the value for the key as a []string, or empty if absent.
func (c *Config) StringSlice(key string) []string {
	if c == nil {
		return []string{}
	}
	return cast.ToStringSlice(c.Get(key))
}

// StringMap returns the value for the key as a map[string]any, or empty if absent.
func (c *Config) StringMap(key string) map[string]any {
	if c == nil {
		return map[string]any{}
	}
	return cast.ToStringMap(c.Get(key))
}

// StringOr returns the value for the key as a string, or the default if absent.
func (c *Config) StringOr(key, defaultVal string) string {
	if c == nil {
		return defaultVal
	}
	val := c.Get(key)
	if val == nil {
		return defaultVal
	}
	return cast.ToString(val)
}

// IntOr returns the value for the key as an int, or the default if absent.
func (c *Config) IntOr(key string, defaultVal int) int {
	if c == nil {
		return defaultVal
	}
	val := c.Get(key)
	if val == nil {
		return defaultVal
	}
	return cast.ToInt(val)
}

// BoolOr returns the value for the key as a bool, or the default if absent.
func (c *Config) BoolOr(key string, defaultVal bool) bool {
	if c == nil {
		return defaultVal
	}
	val := c.Get(key)
	if val == nil {
		return defaultVal
	}
	return cast.ToBool(val)
}

// DurationOr returns the value for the key as a time.Duration, or the
// default if absent.
func (c *Config) DurationOr(key string, defaultVal time.Duration) time.Duration {
	if c == nil {
		return defaultVal
	}
	val := c.Get(key)
	if val == nil {
		return defaultVal
	}
	return cast.ToDuration(val)
}
