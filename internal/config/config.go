// Package config loads the YAML bootstrap manifest described in
// SPEC_FULL.md §4.7: which methods to preload and which method to create
// the system's first agent from. Grounded on github.com/goccy/go-yaml,
// the pack's convention for declarative host configuration.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Manifest is the top-level shape of agerun.yaml.
type Manifest struct {
	Bootstrap Bootstrap       `yaml:"bootstrap"`
	Preload   []PreloadMethod `yaml:"preload"`
}

// Bootstrap names the method (and version) the CLI creates the first agent
// from, via System.CreateBootstrapAgent after preloading. Method may be
// empty, meaning no bootstrap agent.
type Bootstrap struct {
	Method  string `yaml:"method"`
	Version string `yaml:"version"`
}

// PreloadMethod names a method source file to register after System.Init
// has reset the registries and before the bootstrap agent is created.
type PreloadMethod struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	File    string `yaml:"file"`
}

// Load reads and unmarshals the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &m, nil
}
