// ============================================================================
// cplx - Complex number toolkit
// ============================================================================
//
// Package:     config
// Description: Typed application settings on top of foundation/core/config
// Author:      msto63
// Created:     2026-09-29
// License:     MIT
// ============================================================================

package config

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	fconfig "github.com/msto63/cplx/foundation/core/config"
	cplxerror "github.com/msto63/cplx/foundation/core/error"
	"github.com/msto63/cplx/foundation/core/errors"
)

// Settings holds the complete application configuration
type Settings struct {
	General GeneralConfig `config:"general"`
	Log     LogConfig     `config:"log"`
	Output  OutputConfig  `config:"output"`
	Eval    EvalConfig    `config:"eval"`
	History HistoryConfig `config:"history"`
	Server  ServerConfig  `config:"server"`

	// source is the file the settings were read from, empty for defaults
	source string          `config:"-"`
	doc    *fconfig.Config `config:"-"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Environment string `config:"environment"`
	DataDir     string `config:"data_dir"`
}

// LogConfig configures the application logger
type LogConfig struct {
	Level  string `config:"level"`
	Format string `config:"format"`
	// File receives log output in addition to stderr when set
	File  string `config:"file"`
	Async bool   `config:"async"`
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	// Precision is the number of fractional digits
	Precision int `config:"precision"`
	// Notation is "fixed", "scientific" or "shortest"
	Notation string `config:"notation"`
}

// EvalConfig controls the evaluator
type EvalConfig struct {
	// Strict rejects non-finite operands and results with structured errors
	Strict bool `config:"strict"`
	// MaxMagnitude bounds operand magnitudes in strict mode; 0 disables the bound
	MaxMagnitude float64       `config:"max_magnitude"`
	CacheSize    int           `config:"cache_size"`
	CacheTTL     time.Duration `config:"cache_ttl"`
	Timeout      time.Duration `config:"timeout"`
}

// HistoryConfig configures the evaluation history
type HistoryConfig struct {
	Enabled   bool          `config:"enabled"`
	Path      string        `config:"path"`
	Retention time.Duration `config:"retention"`
	// MaxEntries bounds the number of rows kept by Prune; 0 keeps all
	MaxEntries int `config:"max_entries"`
}

// ServerConfig configures the websocket evaluation server
type ServerConfig struct {
	Host           string        `config:"host"`
	Port           int           `config:"port"`
	ReadLimit      int64         `config:"read_limit"`
	PingInterval   time.Duration `config:"ping_interval"`
	WriteTimeout   time.Duration `config:"write_timeout"`
	MaxConnections int           `config:"max_connections"`
	AllowedOrigins []string      `config:"allowed_origins"`
}

// Defaults returns the default values as a nested map, the form the
// foundation loader expects
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"general": map[string]interface{}{
			"environment": "development",
			"data_dir":    defaultDataDir(),
		},
		"log": map[string]interface{}{
			"level":  "info",
			"format": "console",
			"async":  false,
		},
		"output": map[string]interface{}{
			"precision": 6,
			"notation":  "fixed",
		},
		"eval": map[string]interface{}{
			"strict":        false,
			"max_magnitude": 0.0,
			"cache_size":    1024,
			"cache_ttl":     "10m",
			"timeout":       "5s",
		},
		"history": map[string]interface{}{
			"enabled":     true,
			"path":        "",
			"retention":   "720h",
			"max_entries": 10000,
		},
		"server": map[string]interface{}{
			"host":            "127.0.0.1",
			"port":            8765,
			"read_limit":      64 * 1024,
			"ping_interval":   "30s",
			"write_timeout":   "10s",
			"max_connections": 64,
		},
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "cplx")
	}
	return "./data"
}

// Rules returns the validation rules applied to every loaded file
func Rules() fconfig.ValidationRules {
	return fconfig.ValidationRules{
		"log.level":              {Type: "string", OneOf: []string{"trace", "debug", "info", "warn", "error", "fatal", "audit"}},
		"log.format":             {Type: "string", OneOf: []string{"json", "text", "console", "logfmt"}},
		"output.precision":       {Type: "int", Min: 0, Max: 17},
		"output.notation":        {Type: "string", OneOf: []string{"fixed", "scientific", "shortest"}},
		"eval.max_magnitude":     {Type: "float", Min: 0},
		"eval.cache_size":        {Type: "int", Min: 0},
		"eval.cache_ttl":         {Type: "duration"},
		"eval.timeout":           {Type: "duration"},
		"history.retention":      {Type: "duration"},
		"history.max_entries":    {Type: "int", Min: 0},
		"server.port":            {Type: "int", Min: 1, Max: 65535},
		"server.read_limit":      {Type: "int", Min: 256},
		"server.ping_interval":   {Type: "duration"},
		"server.write_timeout":   {Type: "duration"},
		"server.max_connections": {Type: "int", Min: 1},
	}
}

// Load reads settings from path. An empty path searches the standard
// locations and falls back to defaults when no file exists.
func Load(path string) (*Settings, error) {
	var (
		doc *fconfig.Config
		err error
	)
	if path == "" {
		opts := fconfig.DefaultDiscoveryOptions()
		opts.Defaults = Defaults()
		doc, err = fconfig.Discover(opts)
	} else {
		doc, err = fconfig.LoadWithOptions(os.ExpandEnv(path), fconfig.LoadOptions{
			Format:    fconfig.FormatAuto,
			EnvPrefix: fconfig.DefaultEnvPrefix,
			Defaults:  Defaults(),
		})
	}
	if err != nil {
		return nil, err
	}
	return FromConfig(doc)
}

// LoadFromString parses settings from an in-memory document
func LoadFromString(content string, format fconfig.Format) (*Settings, error) {
	doc, err := fconfig.LoadFromString(content, format)
	if err != nil {
		return nil, err
	}
	return FromConfig(withDefaults(doc))
}

// FromConfig validates doc and binds it onto Settings
func FromConfig(doc *fconfig.Config) (*Settings, error) {
	if err := doc.Validate(Rules()).Err(); err != nil {
		return nil, err
	}

	s := &Settings{source: doc.FilePath(), doc: doc}
	if err := doc.BindToStruct("", s); err != nil {
		return nil, err
	}
	s.expandEnvVars()
	if s.History.Path == "" {
		s.History.Path = filepath.Join(s.General.DataDir, "history.db")
	}
	return s, nil
}

// Default returns the settings used when no configuration file exists
func Default() *Settings {
	s, err := FromConfig(withDefaults(fconfig.Empty("")))
	if err != nil {
		// the built-in defaults always validate
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return s
}

// withDefaults fills every key missing from doc with its default
func withDefaults(doc *fconfig.Config) *fconfig.Config {
	for key, value := range flattenDefaults("", Defaults()) {
		if !doc.Has(key) {
			doc.Set(key, value)
		}
	}
	return doc
}

func flattenDefaults(prefix string, m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			for nk, nv := range flattenDefaults(key, nested) {
				out[nk] = nv
			}
			continue
		}
		out[key] = v
	}
	return out
}

// expandEnvVars expands environment variables in path settings
func (s *Settings) expandEnvVars() {
	s.General.DataDir = os.ExpandEnv(s.General.DataDir)
	s.History.Path = os.ExpandEnv(s.History.Path)
	s.Log.File = os.ExpandEnv(s.Log.File)
}

// Watch reloads the settings whenever their file changes and passes the
// validated result to onChange. Settings that fail validation are reported
// to onError and the previous ones stay in effect. Returns an error when the
// settings were not read from a file.
func (s *Settings) Watch(ctx context.Context, onChange func(*Settings), onError func(error)) error {
	if s.doc == nil || s.source == "" {
		return errors.NewErrorBuilder(errors.ModuleConfig).
			Operation("watch").
			Message("settings were not loaded from a file").
			Code(cplxerror.CodeConfigError).
			Build()
	}
	return s.doc.Watch(ctx, fconfig.DefaultWatchDebounce, func(_, updated *fconfig.Config) {
		next, err := FromConfig(withDefaults(updated))
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(next)
	}, onError)
}

// Source returns the file the settings were read from
func (s *Settings) Source() string {
	return s.source
}

// ServerAddress returns host:port of the websocket server
func (s *Settings) ServerAddress() string {
	return net.JoinHostPort(s.Server.Host, strconv.Itoa(s.Server.Port))
}

// FormatByte returns the strconv format byte for the configured notation
func (o OutputConfig) FormatByte() byte {
	switch o.Notation {
	case "scientific":
		return 'e'
	case "shortest":
		return 'g'
	default:
		return 'f'
	}
}

// FormatPrecision returns the precision passed to strconv; shortest
// notation uses the minimal round-tripping digits
func (o OutputConfig) FormatPrecision() int {
	if o.Notation == "shortest" {
		return -1
	}
	return o.Precision
}
