// File: discovery.go
// Title: Configuration File Discovery
// Description: Locates cplx.toml / cplx.yaml in the working directory, the
//              user configuration directory and /etc, in that order.
// Author: msto63
// Version: v0.1.1
// Created: 2026-09-09
// Modified: 2026-10-04
//
// Change History:
// - 2026-09-09 v0.1.0: Initial discovery
// - 2026-10-04 v0.1.1: User config dir, optional discovery

package config

import (
	"os"
	"path/filepath"
	"strings"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
	"github.com/msto63/cplx/foundation/core/errors"
)

// DiscoveryOptions controls where Discover looks
type DiscoveryOptions struct {
	Paths      []string
	Filenames  []string
	Extensions []string
	EnvPrefix  string
	Defaults   map[string]interface{}
	// Required makes a missing file an error; otherwise an empty
	// configuration with the env prefix is returned
	Required bool
}

// DefaultDiscoveryOptions searches ".", "$XDG_CONFIG_HOME/cplx" (or
// ~/.config/cplx) and /etc/cplx for cplx.toml, cplx.yaml and cplx.yml
func DefaultDiscoveryOptions() DiscoveryOptions {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "cplx"))
	}
	paths = append(paths, "/etc/cplx")

	return DiscoveryOptions{
		Paths:      paths,
		Filenames:  []string{"cplx"},
		Extensions: []string{".toml", ".yaml", ".yml"},
		EnvPrefix:  DefaultEnvPrefix,
	}
}

// ListPossibleConfigFiles returns every candidate path in search order
func ListPossibleConfigFiles(options DiscoveryOptions) []string {
	var paths []string
	for _, dir := range options.Paths {
		for _, name := range options.Filenames {
			for _, ext := range options.Extensions {
				paths = append(paths, filepath.Join(dir, name+ext))
			}
		}
	}
	return paths
}

// FindConfigFile returns the first existing candidate
func FindConfigFile(options DiscoveryOptions) (string, error) {
	candidates := ListPossibleConfigFiles(options)
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", errors.NewErrorBuilder(errors.ModuleConfig).
		Operation("find").
		Messagef("no configuration file found (searched %s)", strings.Join(candidates, ", ")).
		Code(cplxerror.CodeMissingConfig).
		Detail("searched", candidates).
		Build()
}

// Discover loads the first configuration file found
func Discover(options DiscoveryOptions) (*Config, error) {
	path, err := FindConfigFile(options)
	if err != nil {
		if options.Required {
			return nil, err
		}
		c := Empty(options.EnvPrefix)
		c.applyDefaults(options.Defaults)
		return c, nil
	}
	return LoadWithOptions(path, LoadOptions{
		Format:    FormatAuto,
		EnvPrefix: options.EnvPrefix,
		Defaults:  options.Defaults,
	})
}
