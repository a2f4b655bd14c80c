package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/mwaldner/genlab/internal/machine"
)

const (
	DefaultDt       = 0.05
	DefaultDuration = 10.0
	DefaultOmega    = 1.0
	DefaultB0       = 1.0
	DefaultFrames   = 5
)

// Config describes one simulation setup. The optional Params map carries
// flat overrides that are decoded onto the machine parameters last, so a
// file can tweak a preset without restating it.
type Config struct {
	Field      string  `yaml:"field"` // cosine | dipole
	Omega      float64 `yaml:"omega"`
	PeakField  float64 `yaml:"b0"`
	CoilWidth  float64 `yaml:"coil_width"`
	CoilHeight float64 `yaml:"coil_height"`
	Turns      float64 `yaml:"turns"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Frames     int     `yaml:"frames_per_tick"`

	Params map[string]any `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Field:      "cosine",
		Omega:      DefaultOmega,
		PeakField:  DefaultB0,
		CoilWidth:  1.0,
		CoilHeight: 1.0,
		Turns:      1.0,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Frames:     DefaultFrames,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Parameters assembles machine parameters from the named fields and then
// applies the flat Params overrides via mapstructure.
func (c *Config) Parameters() (machine.Parameters, error) {
	p := machine.Parameters{
		Omega:      c.Omega,
		PeakField:  c.PeakField,
		CoilWidth:  c.CoilWidth,
		CoilHeight: c.CoilHeight,
		Turns:      c.Turns,
		Dt:         c.Dt,
		MaxTime:    c.Duration,
	}

	if len(c.Params) > 0 {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &p,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		})
		if err != nil {
			return p, err
		}
		if err := dec.Decode(c.Params); err != nil {
			return p, fmt.Errorf("param overrides: %w", err)
		}
	}

	return p, p.Validate()
}

// FieldModel resolves the configured field model.
func (c *Config) FieldModel() (machine.FieldModel, error) {
	return machine.NewFieldModel(c.Field)
}
