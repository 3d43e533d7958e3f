package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth     = 256
	DefaultHeight    = 256
	DefaultSteps     = 600
	DefaultFrequency = 0.05
	DefaultAmplitude = 1.0
	DefaultProbeSize = 256
)

// Config describes one simulation run: geometry, boundary, preset structure,
// the driving source and the probe.
type Config struct {
	Width    int          `yaml:"width"`
	Height   int          `yaml:"height"`
	Steps    int          `yaml:"steps"`
	Boundary string       `yaml:"boundary"` // cpml, mur or none
	Scenario string       `yaml:"scenario"`
	Source   SourceConfig `yaml:"source"`
	Probe    ProbeConfig  `yaml:"probe"`
}

// SourceConfig selects and parameterizes the driving source.
type SourceConfig struct {
	Type      string  `yaml:"type"`     // point, plane, beam or array
	Waveform  string  `yaml:"waveform"` // sine, gaussian, modulated, ricker or step
	Mode      string  `yaml:"mode"`     // soft or hard
	X         int     `yaml:"x"`
	Y         int     `yaml:"y"`
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
	Center    float64 `yaml:"center"` // pulse center, in steps
	Tau       float64 `yaml:"tau"`    // pulse width, in steps
	Waist     float64 `yaml:"waist"`  // beam waist, in cells
	Elements  int     `yaml:"elements"`
	Spacing   int     `yaml:"spacing"`
	Phase     float64 `yaml:"phase"` // progressive phase step, radians
}

// ProbeConfig places the field probe.
type ProbeConfig struct {
	X    int `yaml:"x"`
	Y    int `yaml:"y"`
	Size int `yaml:"size"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Steps:    DefaultSteps,
		Boundary: "cpml",
		Scenario: "empty",
		Source: SourceConfig{
			Type:      "point",
			Waveform:  "sine",
			Mode:      "soft",
			X:         DefaultWidth / 4,
			Y:         DefaultHeight / 2,
			Frequency: DefaultFrequency,
			Amplitude: DefaultAmplitude,
		},
		Probe: ProbeConfig{
			X:    DefaultWidth * 3 / 4,
			Y:    DefaultHeight / 2,
			Size: DefaultProbeSize,
		},
	}
}

// Load reads a YAML config, filling unset fields from the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
