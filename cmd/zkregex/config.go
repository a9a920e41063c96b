package main

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/zkregex-go/compiler/internal/zkerr"
)

// settings holds CLI defaults loadable from an optional YAML file, distinct
// from spec.md §6's decomposed-config JSON schema (that schema is mandated
// verbatim for parts; this file only carries the CLI's own defaults, so it
// gets a friendlier format with comments).
type settings struct {
	TemplateName string `yaml:"templateName"`
	Framework    string `yaml:"framework"`
	H            int    `yaml:"h"`
	M            int    `yaml:"m"`
}

func defaultSettings() settings {
	return settings{TemplateName: "GeneratedRegex", Framework: "circom", H: 256, M: 128}
}

// loadSettings reads a YAML settings file if path is non-empty, overlaying
// its fields onto the defaults; a missing or empty path is not an error.
func loadSettings(path string) (settings, error) {
	s := defaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, zkerr.Wrap(zkerr.InvalidInput, err, "reading config file %q", path)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, zkerr.Wrap(zkerr.ParseError, err, "parsing config file %q", path)
	}
	return s, nil
}
