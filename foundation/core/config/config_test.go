// File: config_test.go
// Title: Configuration Tests
// Description: Tests for TOML/YAML loading, typed getters, environment
//              overrides, defaults, discovery, validation, binding and reload.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-09
// Modified: 2026-10-04
//
// Change History:
// - 2026-09-09 v0.1.0: Initial configuration tests
// - 2026-10-04 v0.2.0: Discovery, OneOf rules, Watch

package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
)

const sampleTOML = `
[log]
level = "debug"
format = "console"

[output]
precision = 8
format = "algebraic"

[server]
address = ":8765"
read_timeout = "15s"
origins = ["localhost", "127.0.0.1"]

[calc]
strict = true
tolerance = 1e-9
`

const sampleYAML = `
log:
  level: warn
output:
  precision: 4
server:
  origins:
    - example.org
calc:
  strict: false
  tolerance: 0.5
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		file       string
		content    string
		wantFormat Format
		level      string
		precision  int
		strict     bool
		tolerance  float64
		origins    []string
	}{
		{"toml", "cplx.toml", sampleTOML, FormatTOML, "debug", 8, true, 1e-9, []string{"localhost", "127.0.0.1"}},
		{"yaml", "cplx.yaml", sampleYAML, FormatYAML, "warn", 4, false, 0.5, []string{"example.org"}},
		{"yml", "cplx.yml", sampleYAML, FormatYAML, "warn", 4, false, 0.5, []string{"example.org"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadWithOptions(writeFile(t, dir, tt.file, tt.content), LoadOptions{Format: FormatAuto})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Format() != tt.wantFormat {
				t.Errorf("Format() = %v, want %v", cfg.Format(), tt.wantFormat)
			}
			if got := cfg.GetString("log.level"); got != tt.level {
				t.Errorf("log.level = %q, want %q", got, tt.level)
			}
			if got := cfg.GetInt("output.precision"); got != tt.precision {
				t.Errorf("output.precision = %d, want %d", got, tt.precision)
			}
			if got := cfg.GetBool("calc.strict"); got != tt.strict {
				t.Errorf("calc.strict = %v, want %v", got, tt.strict)
			}
			if got := cfg.GetFloat("calc.tolerance"); got != tt.tolerance {
				t.Errorf("calc.tolerance = %v, want %v", got, tt.tolerance)
			}
			if got := cfg.GetStringSlice("server.origins"); !reflect.DeepEqual(got, tt.origins) {
				t.Errorf("server.origins = %v, want %v", got, tt.origins)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		code cplxerror.Code
	}{
		{"empty path", "", cplxerror.CodeRequiredField},
		{"missing file", filepath.Join(dir, "absent.toml"), cplxerror.CodeMissingConfig},
		{"bad toml", writeFile(t, dir, "bad.toml", "[log\nlevel ="), cplxerror.CodeInvalidConfig},
		{"bad yaml", writeFile(t, dir, "bad.yaml", "log: [unclosed"), cplxerror.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !cplxerror.HasCode(err, tt.code) {
				t.Errorf("Load() error code = %v, want %v", cplxerror.GetCode(err), tt.code)
			}
		})
	}
}

func TestGetterDefaults(t *testing.T) {
	cfg, err := LoadFromString(sampleTOML, FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}

	if got := cfg.GetString("missing.key", "fallback"); got != "fallback" {
		t.Errorf("GetString default = %q", got)
	}
	if got := cfg.GetInt("log.level", 3); got != 3 {
		t.Errorf("GetInt on a string value = %d, want default 3", got)
	}
	if got := cfg.GetFloat("output.precision"); got != 8 {
		t.Errorf("GetFloat on an integer = %v, want 8", got)
	}
	if got := cfg.GetDuration("server.read_timeout"); got != 15*time.Second {
		t.Errorf("GetDuration = %v, want 15s", got)
	}
	if got := cfg.GetDuration("server.write_timeout", time.Minute); got != time.Minute {
		t.Errorf("GetDuration default = %v", got)
	}
	if got := cfg.GetString("output.precision"); got != "8" {
		t.Errorf("GetString on an integer = %q, want \"8\"", got)
	}
	if !cfg.Has("log.format") || cfg.Has("log.missing") || cfg.Has("log.level.deeper") {
		t.Error("Has() disagrees with the document")
	}
}

func TestEnvironmentOverride(t *testing.T) {
	cfg, err := LoadFromString(sampleTOML, FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}
	cfg.envPrefix = DefaultEnvPrefix

	t.Setenv("CPLX_OUTPUT_PRECISION", "12")
	t.Setenv("CPLX_CALC_STRICT", "false")
	t.Setenv("CPLX_SERVER_ORIGINS", "a.example, b.example")
	t.Setenv("CPLX_HISTORY_PATH", "/tmp/h.db")

	if got := cfg.GetInt("output.precision"); got != 12 {
		t.Errorf("output.precision = %d, want env override 12", got)
	}
	if cfg.GetBool("calc.strict") {
		t.Error("calc.strict not overridden by environment")
	}
	if got := cfg.GetStringSlice("server.origins"); !reflect.DeepEqual(got, []string{"a.example", "b.example"}) {
		t.Errorf("server.origins = %v", got)
	}
	if !cfg.Has("history.path") || cfg.GetString("history.path") != "/tmp/h.db" {
		t.Error("env-only key not visible")
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		prefix, key, want string
	}{
		{"CPLX", "log.level", "CPLX_LOG_LEVEL"},
		{"cplx", "server.read-timeout", "CPLX_SERVER_READ_TIMEOUT"},
		{"", "output.precision", "OUTPUT_PRECISION"},
	}
	for _, tt := range tests {
		if got := EnvKey(tt.prefix, tt.key); got != tt.want {
			t.Errorf("EnvKey(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
		}
	}
}

func TestDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cplx.toml", "[output]\nprecision = 3\n")

	cfg, err := LoadWithOptions(path, LoadOptions{
		Format: FormatAuto,
		Defaults: map[string]interface{}{
			"output":    map[string]interface{}{"precision": 6, "format": "algebraic"},
			"log.level": "info",
		},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.GetInt("output.precision"); got != 3 {
		t.Errorf("default overwrote file value: precision = %d", got)
	}
	if got := cfg.GetString("output.format"); got != "algebraic" {
		t.Errorf("nested default missing: output.format = %q", got)
	}
	if got := cfg.GetString("log.level"); got != "info" {
		t.Errorf("flat default missing: log.level = %q", got)
	}
}

func TestSetAndGetAll(t *testing.T) {
	cfg := Empty("")
	cfg.Set("a.b.c", 1)
	cfg.Set("a.d", "x")

	all := cfg.GetAll()
	inner := all["a"].(map[string]interface{})
	inner["d"] = "mutated"

	if cfg.GetString("a.d") != "x" {
		t.Error("GetAll() returned a shared map")
	}
	if cfg.GetInt("a.b.c") != 1 {
		t.Error("nested Set() not readable")
	}
}

func TestDiscover(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, second, "cplx.yaml", sampleYAML)

	opts := DiscoveryOptions{
		Paths:      []string{first, second},
		Filenames:  []string{"cplx"},
		Extensions: []string{".toml", ".yaml"},
		Required:   true,
	}

	cfg, err := Discover(opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg.FilePath() != filepath.Join(second, "cplx.yaml") {
		t.Errorf("FilePath() = %q", cfg.FilePath())
	}

	writeFile(t, first, "cplx.toml", sampleTOML)
	cfg, err = Discover(opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg.GetString("log.level") != "debug" {
		t.Error("earlier search path did not win")
	}

	if got := len(ListPossibleConfigFiles(opts)); got != 4 {
		t.Errorf("ListPossibleConfigFiles() returned %d paths, want 4", got)
	}
}

func TestDiscoverOptional(t *testing.T) {
	opts := DiscoveryOptions{
		Paths:      []string{t.TempDir()},
		Filenames:  []string{"cplx"},
		Extensions: []string{".toml"},
		EnvPrefix:  "CPLX",
		Defaults:   map[string]interface{}{"output.precision": 6},
	}

	cfg, err := Discover(opts)
	if err != nil {
		t.Fatalf("optional Discover() error = %v", err)
	}
	if cfg.FilePath() != "" || cfg.GetInt("output.precision") != 6 {
		t.Errorf("optional Discover() = %v", cfg)
	}

	opts.Required = true
	if _, err := Discover(opts); !cplxerror.HasCode(err, cplxerror.CodeMissingConfig) {
		t.Errorf("required Discover() error = %v, want MISSING_CONFIG", err)
	}
}

func TestDefaultDiscoveryOptions(t *testing.T) {
	opts := DefaultDiscoveryOptions()
	if opts.Paths[0] != "." || opts.Paths[len(opts.Paths)-1] != "/etc/cplx" {
		t.Errorf("Paths = %v", opts.Paths)
	}
	if opts.EnvPrefix != DefaultEnvPrefix || opts.Required {
		t.Errorf("options = %+v", opts)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := LoadFromString(sampleTOML, FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}

	valid := cfg.Validate(ValidationRules{
		"log.level":           {Required: true, Type: "string", OneOf: []string{"debug", "info", "warn", "error"}},
		"output.precision":    {Type: "int", Min: 0, Max: 17},
		"server.read_timeout": {Type: "duration"},
		"server.origins":      {Type: "[]string", Min: 1},
		"calc.strict":         {Type: "bool"},
		"calc.tolerance":      {Type: "float", Max: 1},
		"history.path":        {Type: "string", Default: "cplx-history.db"},
	})
	if !valid.Valid {
		t.Fatalf("Validate() errors = %v", valid.Messages())
	}
	if cfg.GetString("history.path") != "cplx-history.db" {
		t.Error("Validate() did not apply the default")
	}

	tests := []struct {
		name string
		rule ValidationRule
		key  string
		code cplxerror.Code
	}{
		{"missing required", ValidationRule{Required: true}, "server.tls", cplxerror.CodeRequiredField},
		{"wrong type", ValidationRule{Type: "int"}, "log.level", cplxerror.CodeInvalidConfig},
		{"above max", ValidationRule{Type: "int", Max: 6}, "output.precision", cplxerror.CodeInvalidConfig},
		{"not allowed", ValidationRule{OneOf: []string{"polar"}}, "output.format", cplxerror.CodeInvalidConfig},
		{"pattern", ValidationRule{Pattern: `^\d+\.\d+\.\d+\.\d+:\d+$`}, "server.address", cplxerror.CodeInvalidConfig},
		{"bad duration", ValidationRule{Type: "duration"}, "log.level", cplxerror.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cfg.Validate(ValidationRules{tt.key: tt.rule})
			if result.Valid {
				t.Fatal("Validate() passed, want a violation")
			}
			if !cplxerror.HasCode(result.Err(), tt.code) {
				t.Errorf("violation code = %v, want %v", cplxerror.GetCode(result.Err()), tt.code)
			}
		})
	}
}

func TestBindToStruct(t *testing.T) {
	cfg, err := LoadFromString(sampleTOML, FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}

	var target struct {
		Log struct {
			Level  string
			Format string
		}
		Server struct {
			Address     string
			ReadTimeout time.Duration `config:"read_timeout"`
			Origins     []string
		}
		Precision int  `config:"-"`
		Strict    bool `config:"calc.strict"`
	}

	if err := cfg.BindToStruct("", &target); err != nil {
		t.Fatalf("BindToStruct() error = %v", err)
	}
	if target.Log.Level != "debug" || target.Log.Format != "console" {
		t.Errorf("Log = %+v", target.Log)
	}
	if target.Server.Address != ":8765" || target.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Server = %+v", target.Server)
	}
	if len(target.Server.Origins) != 2 || !target.Strict || target.Precision != 0 {
		t.Errorf("target = %+v", target)
	}

	var section struct {
		Precision int `validate:"required"`
		Missing   int `validate:"required"`
	}
	if err := cfg.BindToStruct("output", &section); !cplxerror.HasCode(err, cplxerror.CodeRequiredField) {
		t.Errorf("BindToStruct(required missing) error = %v", err)
	}
	if err := cfg.BindToStruct("", target); !cplxerror.HasCode(err, cplxerror.CodeInvalidInput) {
		t.Errorf("BindToStruct(non-pointer) error = %v", err)
	}
}

func TestReloadAndWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cplx.toml", "[log]\nlevel = \"info\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if changed, err := cfg.Reload(); err != nil || changed {
		t.Fatalf("Reload() on unchanged file = %v, %v", changed, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		updates []string
		done    = make(chan struct{}, 1)
	)
	err = cfg.Watch(ctx, 20*time.Millisecond, func(old, updated *Config) {
		mu.Lock()
		updates = append(updates, old.GetString("log.level")+"->"+updated.GetString("log.level"))
		mu.Unlock()
		select {
		case done <- struct{}{}:
		default:
		}
	}, nil)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// unrelated files in the directory are ignored
	writeFile(t, dir, "other.toml", "[log]\nlevel = \"warn\"\n")

	// replace atomically so a reload never sees a half-written file
	future := time.Now().Add(2 * time.Second)
	staged := writeFile(t, dir, "staged.toml", "[log]\nlevel = \"debug\"\n")
	if err := os.Chtimes(staged, future, future); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
	if err := os.Rename(staged, path); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Watch() did not observe the change")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(updates) != 1 || updates[0] != "info->debug" {
		t.Errorf("updates = %v, want [info->debug]", updates)
	}
	if cfg.GetString("log.level") != "debug" {
		t.Error("configuration not reloaded")
	}

	if _, err := Empty("").Reload(); !cplxerror.HasCode(err, cplxerror.CodeConfigError) {
		t.Errorf("Reload() without file error = %v", err)
	}
	if err := Empty("").Watch(ctx, 0, nil, nil); !cplxerror.HasCode(err, cplxerror.CodeConfigError) {
		t.Errorf("Watch() without file error = %v", err)
	}
}
