package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for a generation run.
type Config struct {
	// Language is the target language identifier (e.g. "go", "typescript").
	Language string `yaml:"language"`
	// Out is the output file path; empty writes to stdout.
	Out string `yaml:"out"`
	// NoMaps disables the heuristic that demotes uniform classes to maps.
	NoMaps bool `yaml:"noMaps"`
	// RendererOptions are language-specific settings, passed through as
	// strings (e.g. package: mytypes, omit-empty: "true").
	RendererOptions map[string]string `yaml:"rendererOptions"`
	// TopLevels are the named entry points to generate types for.
	TopLevels []TopLevel `yaml:"topLevels"`
}

// TopLevel describes one named entry point and its input: either one or more
// JSON sample files, a JSON Schema file, or a GraphQL introspection file.
type TopLevel struct {
	Name    string   `yaml:"name"`
	Samples []string `yaml:"samples"`
	Schema  string   `yaml:"schema"`
	GraphQL string   `yaml:"graphql"`
}

// InferMaps reports whether map inference is enabled.
func (c *Config) InferMaps() bool {
	return !c.NoMaps
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := filepath.Dir(path)
	for i := range cfg.TopLevels {
		tl := &cfg.TopLevels[i]
		for j, s := range tl.Samples {
			tl.Samples[j] = absolutize(base, s)
		}
		tl.Schema = absolutize(base, tl.Schema)
		tl.GraphQL = absolutize(base, tl.GraphQL)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and conflicting
// inputs.
func (c *Config) Validate() error {
	if c.Language == "" {
		return errors.New("config.language is required")
	}
	if len(c.TopLevels) == 0 {
		return errors.New("config.topLevels must name at least one top level")
	}
	seen := map[string]bool{}
	for i := range c.TopLevels {
		tl := &c.TopLevels[i]
		if tl.Name == "" {
			return fmt.Errorf("topLevels[%d] missing required field name", i)
		}
		if seen[tl.Name] {
			return fmt.Errorf("topLevels[%d] duplicates name %q", i, tl.Name)
		}
		seen[tl.Name] = true
		sources := 0
		if len(tl.Samples) > 0 {
			sources++
		}
		if tl.Schema != "" {
			sources++
		}
		if tl.GraphQL != "" {
			sources++
		}
		if sources != 1 {
			return fmt.Errorf("topLevels[%d] (%s) needs exactly one of samples, schema, or graphql", i, tl.Name)
		}
	}
	return nil
}

func absolutize(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
