// Package config loads YAML processing presets for the command line.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/algo-divcomp/host"
)

// DefaultBlockSize is the render block length used when a preset omits it.
const DefaultBlockSize = 512

// Preset is a named parameter set plus rendering options.
//
//	name: gentle-left
//	threshold_db: -18
//	ratio: 3
//	attack_ms: 5
//	release_ms: 120
//	cutoff_ms: 10
//	block_size: 1024
type Preset struct {
	Name        string `yaml:"name,omitempty"`
	host.Params `yaml:",inline"`
	BlockSize   int `yaml:"block_size,omitempty"`
}

// Default returns a preset holding the default parameters.
func Default() Preset {
	return Preset{
		Params:    host.DefaultParams(),
		BlockSize: DefaultBlockSize,
	}
}

// Parse decodes a preset. Fields missing from data keep their defaults; an
// empty or comment-only document yields Default.
func Parse(data []byte) (Preset, error) {
	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return Preset{}, err
	}

	p := Default()
	if len(fields) == 0 {
		return p, nil
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, err
	}

	if err := p.Validate(); err != nil {
		return Preset{}, err
	}

	return p, nil
}

// Validate checks the parameter ranges and the block size.
func (p Preset) Validate() error {
	if p.BlockSize <= 0 {
		return fmt.Errorf("block_size must be positive: %d", p.BlockSize)
	}

	return p.Params.Validate()
}

// Load reads the preset file at path.
func Load(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read %s: %w", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return Preset{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return p, nil
}

// Save writes p to path as YAML.
func Save(path string, p Preset) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal preset: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
