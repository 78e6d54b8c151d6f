// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FieldMappingOverrides is the shape of an optional YAML file that can
// override a subset of KeywordToFieldName at process start. Only single-
// field string overrides are supported — multi-field and citedby-shaped
// overrides stay built-in, since they are structural, not data, decisions.
type FieldMappingOverrides struct {
	Fields map[string]string `koanf:"fields"`
}

// LoadOverrides reads the "fields" section of the YAML file at path and
// returns it; it does not touch KeywordToFieldName (ApplyOverrides does
// the merge). An empty path returns empty overrides and no error. Read
// errors are returned, not swallowed, since this
// is an explicit operator action (cmd/queryparser's --config flag), unlike
// the core pipeline which must never fail loudly.
func LoadOverrides(path string) (FieldMappingOverrides, error) {
	var overrides FieldMappingOverrides
	if path == "" {
		return overrides, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return overrides, fmt.Errorf("queryparser: loading config override %q: %w", path, err)
	}
	if err := k.Unmarshal("", &overrides); err != nil {
		return overrides, fmt.Errorf("queryparser: parsing config override %q: %w", path, err)
	}
	return overrides, nil
}

// ApplyOverrides merges field overrides into KeywordToFieldName. Intended
// to be called once, at process start, by cmd/queryparser — never by the
// library packages themselves (SPEC_FULL.md §4.6: the core pipeline stays
// side-effect-free).
func ApplyOverrides(overrides FieldMappingOverrides) {
	for keyword, field := range overrides.Fields {
		KeywordToFieldName[keyword] = field
	}
}
