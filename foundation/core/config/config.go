// File: config.go
// Title: Configuration Loading and Access
// Description: Implements the Config type: loading TOML and YAML documents,
//              dot-path access with typed getters, defaults and environment
//              overrides under a common prefix.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-09
// Modified: 2026-10-04
//
// Change History:
// - 2026-09-09 v0.1.0: TOML/YAML loading with dot-path getters
// - 2026-10-04 v0.2.0: Nested defaults, structured config errors

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
	"github.com/msto63/cplx/foundation/core/errors"
)

// Format is the syntax of a configuration document
type Format int

const (
	// FormatTOML is the default format
	FormatTOML Format = iota
	// FormatYAML covers .yaml and .yml files
	FormatYAML
	// FormatAuto selects the format from the file extension
	FormatAuto
)

// String returns the name of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	}
	return "unknown"
}

// DefaultEnvPrefix prefixes environment overrides: log.level -> CPLX_LOG_LEVEL
const DefaultEnvPrefix = "CPLX"

// Config is a parsed configuration document. It is safe for concurrent use.
type Config struct {
	mu           sync.RWMutex
	data         map[string]interface{}
	filePath     string
	format       Format
	envPrefix    string
	lastModified time.Time
}

// LoadOptions controls LoadWithOptions
type LoadOptions struct {
	Format    Format
	EnvPrefix string
	// Defaults may be nested maps or flat dot-path keys
	Defaults map[string]interface{}
}

// Load reads a configuration file, detecting its format from the extension
func Load(filePath string) (*Config, error) {
	return LoadWithOptions(filePath, LoadOptions{Format: FormatAuto, EnvPrefix: DefaultEnvPrefix})
}

// LoadWithOptions reads a configuration file
func LoadWithOptions(filePath string, options LoadOptions) (*Config, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewErrorBuilder(errors.ModuleConfig).
			Operation("load").
			Message("config file path is empty").
			Code(cplxerror.CodeRequiredField).
			Build()
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, errors.NewErrorBuilder(errors.ModuleConfig).
			Operation("load").
			Messagef("config file not found: %s", filePath).
			Cause(err).
			Code(cplxerror.CodeMissingConfig).
			Detail("path", filePath).
			Build()
	}

	format := options.Format
	if format == FormatAuto {
		format = detectFormat(filePath)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.NewErrorBuilder(errors.ModuleConfig).
			Operation("read").
			Messagef("cannot read config file %s", filePath).
			Cause(err).
			Code(cplxerror.CodeConfigError).
			Detail("path", filePath).
			Build()
	}

	data, err := parseContent(content, format)
	if err != nil {
		return nil, cplxerror.Wrap(err, "invalid config file "+filePath).WithDetail("path", filePath)
	}

	c := &Config{
		data:         data,
		filePath:     filePath,
		format:       format,
		envPrefix:    options.EnvPrefix,
		lastModified: info.ModTime(),
	}
	c.applyDefaults(options.Defaults)
	return c, nil
}

// LoadFromString parses an in-memory document
func LoadFromString(content string, format Format) (*Config, error) {
	if format == FormatAuto {
		format = FormatTOML
	}
	data, err := parseContent([]byte(content), format)
	if err != nil {
		return nil, err
	}
	return &Config{data: data, format: format}, nil
}

// Empty returns a configuration with no values; getters fall back to their
// defaults and environment overrides under envPrefix
func Empty(envPrefix string) *Config {
	return &Config{data: make(map[string]interface{}), format: FormatTOML, envPrefix: envPrefix}
}

func detectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func parseContent(content []byte, format Format) (map[string]interface{}, error) {
	data := make(map[string]interface{})

	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(content, &data)
	case FormatYAML:
		err = yaml.Unmarshal(content, &data)
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return nil, errors.NewErrorBuilder(errors.ModuleConfig).
			Operation("parse").
			Messagef("%s parse error", format).
			Cause(err).
			Code(cplxerror.CodeInvalidConfig).
			Detail("format", format.String()).
			Build()
	}
	if data == nil {
		data = make(map[string]interface{})
	}
	return data, nil
}

// applyDefaults fills keys missing from the document
func (c *Config) applyDefaults(defaults map[string]interface{}) {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if nested, ok := defaults[k].(map[string]interface{}); ok {
			for nk, nv := range flatten(k, nested) {
				if c.getValue(nk) == nil {
					c.setValue(nk, nv)
				}
			}
			continue
		}
		if c.getValue(k) == nil {
			c.setValue(k, defaults[k])
		}
	}
}

func flatten(prefix string, m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for k, v := range m {
		key := prefix + "." + k
		if nested, ok := v.(map[string]interface{}); ok {
			for nk, nv := range flatten(key, nested) {
				out[nk] = nv
			}
			continue
		}
		out[key] = v
	}
	return out
}

// lookup returns the environment override, if any, else the document value
func (c *Config) lookup(key string) (value interface{}, fromEnv bool) {
	if c.envPrefix != "" {
		if env, ok := os.LookupEnv(EnvKey(c.envPrefix, key)); ok && env != "" {
			return env, true
		}
	}
	return c.getValue(key), false
}

// EnvKey returns the environment variable that overrides key
func EnvKey(prefix, key string) string {
	k := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	if prefix == "" {
		return k
	}
	return strings.ToUpper(prefix) + "_" + k
}

func (c *Config) getValue(key string) interface{} {
	current := c.data
	parts := strings.Split(key, ".")
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil
		}
		if i == len(parts)-1 {
			return v
		}
		next, ok := v.(map[string]interface{})
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

func (c *Config) setValue(key string, value interface{}) {
	current := c.data
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// GetString returns the value at key rendered as a string
func (c *Config) GetString(key string, defaultValue ...string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch v := c.firstValue(key).(type) {
	case nil:
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func (c *Config) firstValue(key string) interface{} {
	v, _ := c.lookup(key)
	return v
}

// GetInt returns the value at key as an int; unconvertible values yield the default
func (c *Config) GetInt(key string, defaultValue ...int) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n, ok := toInt64(c.firstValue(key)); ok {
		return int(n)
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// GetBool returns the value at key as a bool
func (c *Config) GetBool(key string, defaultValue ...bool) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch v := c.firstValue(key).(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// GetFloat returns the value at key as a float64
func (c *Config) GetFloat(key string, defaultValue ...float64) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if f, ok := toFloat64(c.firstValue(key)); ok {
		return f
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// GetDuration returns the value at key parsed with time.ParseDuration;
// integers are taken as nanoseconds
func (c *Config) GetDuration(key string, defaultValue ...time.Duration) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch v := c.firstValue(key).(type) {
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	case time.Duration:
		return v
	default:
		if n, ok := toInt64(v); ok {
			return time.Duration(n)
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// GetStringSlice returns a list value; a comma-separated string (as set from
// the environment) is split
func (c *Config) GetStringSlice(key string, defaultValue ...[]string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch v := c.firstValue(key).(type) {
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = fmt.Sprint(item)
		}
		return out
	case string:
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return nil
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Has reports whether key is set in the document or the environment
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.firstValue(key) != nil
}

// Set overrides a value in memory; the file is not written
func (c *Config) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setValue(key, value)
}

// GetAll returns a deep copy of the document
func (c *Config) GetAll() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deepCopy(c.data)
}

func deepCopy(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		switch val := v.(type) {
		case map[string]interface{}:
			dst[k] = deepCopy(val)
		case []interface{}:
			dst[k] = append([]interface{}(nil), val...)
		default:
			dst[k] = v
		}
	}
	return dst
}

// FilePath returns the loaded file, or "" for in-memory configurations
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// Format returns the document format
func (c *Config) Format() Format {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.format
}

// EnvPrefix returns the prefix of environment overrides
func (c *Config) EnvPrefix() string {
	return c.envPrefix
}

// String summarizes the configuration
func (c *Config) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	parts := []string{"format: " + c.format.String()}
	if c.filePath != "" {
		parts = append(parts, "path: "+c.filePath)
	}
	if c.envPrefix != "" {
		parts = append(parts, "envPrefix: "+c.envPrefix)
	}
	parts = append(parts, fmt.Sprintf("keys: %d", len(c.data)))
	return "Config{" + strings.Join(parts, ", ") + "}"
}
