// Package config handles mesh processing configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	ErrInvalidSmoothingAngle = errors.New("invalid max smoothing angle")
)

// Config holds all processing settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig holds vertex welding and normal generation settings.
type MeshConfig struct {
	Weld bool `yaml:"weld"`
	// WeldEpsilon is the weld radius. 0 derives it from the mesh bounds,
	// a negative value only joins identical positions.
	WeldEpsilon float32 `yaml:"weld_epsilon"`

	Normals bool `yaml:"normals"`
	// MaxSmoothingAngle is the largest angle in degrees between two face
	// normals that are still averaged together.
	MaxSmoothingAngle float32 `yaml:"max_smoothing_angle"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			Weld:              true,
			WeldEpsilon:       0,
			Normals:           true,
			MaxSmoothingAngle: 175,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that all values are within range.
func (c *Config) Validate() error {
	if a := c.Mesh.MaxSmoothingAngle; a < 0 || a > 180 {
		return fmt.Errorf("%w: %v degrees (must be within [0, 180])", ErrInvalidSmoothingAngle, a)
	}
	return nil
}
