// Package config loads cplx configuration files.
//
// Package: config
// Title: Configuration Management
// Description: Loads TOML and YAML documents, exposes dot-path typed getters
//              with environment overrides, validates values against rules and
//              binds sections onto structs.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-09
// Modified: 2026-10-04
//
// Change History:
// - 2026-09-09 v0.1.0: Initial loader
// - 2026-10-04 v0.2.0: Discovery of cplx.toml, CPLX_ overrides, Watch
//
// Lookup order for a key such as "output.precision":
//
//  1. the environment variable CPLX_OUTPUT_PRECISION
//  2. the value in the loaded document
//  3. the default passed to the getter
//
// Usage:
//
//	cfg, err := config.Discover(config.DefaultDiscoveryOptions())
//	if err != nil {
//		return err
//	}
//	precision := cfg.GetInt("output.precision", 6)
//
//	result := cfg.Validate(config.ValidationRules{
//		"log.level": {Type: "string", OneOf: []string{"debug", "info", "warn", "error"}},
//		"output.precision": {Type: "int", Min: 0, Max: 17},
//	})
//	if !result.Valid {
//		return result.Err()
//	}
package config
