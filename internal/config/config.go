// Package config loads the analyzer configuration and Tact project files.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"tactscan/internal/detectors"
	"tactscan/internal/errors"
	"tactscan/internal/lattice"
	"tactscan/internal/warnings"
)

// Output formats of the analysis report.
const (
	OutputPlain = "plain"
	OutputJSON  = "json"
)

// ToolConfig requests a tool run with options overriding its defaults.
type ToolConfig struct {
	Name    string            `yaml:"name"`
	Options map[string]string `yaml:"options,omitempty"`
}

// Config is the analyzer configuration. Omitted fields keep their defaults.
type Config struct {
	// Detectors lists the detectors to run; empty runs all built-in ones.
	Detectors         []string          `yaml:"detectors,omitempty"`
	DisabledDetectors []string          `yaml:"disabled_detectors,omitempty"`
	MinSeverity       warnings.Severity `yaml:"min_severity"`
	Tools             []ToolConfig      `yaml:"tools,omitempty"`
	WideningThreshold int               `yaml:"widening_threshold"`
	Narrowing         bool              `yaml:"narrowing"`
	IncludeStdlib     bool              `yaml:"include_stdlib"`
	Workers           int               `yaml:"workers"`
	Output            string            `yaml:"output"`
}

// Default returns the configuration used without a config file.
func Default() *Config {
	return &Config{
		MinSeverity:       warnings.Info,
		WideningThreshold: lattice.DefaultWideningThreshold,
		Narrowing:         true,
		Output:            OutputPlain,
	}
}

// Load reads a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Executionf(errors.ErrorInvalidConfig, "failed to read configuration file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML configuration over the defaults. Unknown keys are
// rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Executionf(errors.ErrorInvalidConfig, "failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the YAML types cannot express.
func (c *Config) Validate() error {
	for _, name := range slices.Concat(c.Detectors, c.DisabledDetectors) {
		if !slices.Contains(detectors.Names(), name) {
			return errors.UnknownName("detector", name, detectors.Names())
		}
	}
	if c.WideningThreshold < 0 {
		return errors.Executionf(errors.ErrorInvalidConfig, "widening_threshold must not be negative, got %d", c.WideningThreshold)
	}
	if c.Workers < 0 {
		return errors.Executionf(errors.ErrorInvalidConfig, "workers must not be negative, got %d", c.Workers)
	}
	if c.Output != OutputPlain && c.Output != OutputJSON {
		return errors.Executionf(errors.ErrorInvalidConfig, "output must be %q or %q, got %q", OutputPlain, OutputJSON, c.Output)
	}
	return nil
}

// EnabledDetectors returns the names of the detectors to run, in registry
// order.
func (c *Config) EnabledDetectors() []string {
	var names []string
	for _, name := range detectors.Names() {
		if len(c.Detectors) > 0 && !slices.Contains(c.Detectors, name) {
			continue
		}
		if slices.Contains(c.DisabledDetectors, name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// DetectorOptions returns the options passed to every detector.
func (c *Config) DetectorOptions() detectors.Options {
	return detectors.Options{
		WideningThreshold: c.WideningThreshold,
		Narrowing:         c.Narrowing,
		IncludeStdlib:     c.IncludeStdlib,
		Workers:           c.Workers,
	}
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
