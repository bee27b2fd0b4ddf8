// Package scene holds the render configuration: enabled features, the disk
// parameters and the orbit camera.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Disk describes the accretion disk
type Disk struct {
	Radius    float64   `json:"radius"`
	Thickness float64   `json:"thickness"`
	Color     core.Vec3 `json:"color"` // absorption tint
}

// DefaultDisk returns the standard disk
func DefaultDisk() Disk {
	return Disk{
		Radius:    8.0,
		Thickness: 0.1,
		Color:     core.NewVec3(0.3, 0.2, 0.1),
	}
}

// Config is everything that affects the rendered image
type Config struct {
	Features Features    `json:"features"`
	Camera   OrbitCamera `json:"camera"`
	Disk     Disk        `json:"disk"`
	Samples  int         `json:"samples"`
}

// DefaultConfig returns the standard configuration
func DefaultConfig() Config {
	return Config{
		Features: 0,
		Camera: NewOrbitCamera(
			math.Pi/2, // 90 degree fov
			3.3,
			Bounds{Min: 0.5, Max: 3.5},
			core.Vec3{},
		),
		Disk:    DefaultDisk(),
		Samples: 1,
	}
}

// Validate checks the configuration is renderable
func (c Config) Validate() error {
	if c.Samples < 1 {
		return fmt.Errorf("%w: samples must be at least 1, got %d", ErrInvalidConfig, c.Samples)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV > math.Pi {
		return fmt.Errorf("%w: fov must be in (0, π], got %v", ErrInvalidConfig, c.Camera.FOV)
	}
	if c.Camera.Bounds.Min > c.Camera.Bounds.Max {
		return fmt.Errorf("%w: camera bounds [%v, %v] are reversed", ErrInvalidConfig, c.Camera.Bounds.Min, c.Camera.Bounds.Max)
	}
	if c.Disk.Radius < 0 || c.Disk.Thickness < 0 {
		return fmt.Errorf("%w: disk radius and thickness must be non-negative", ErrInvalidConfig)
	}
	if c.Features&^AllFeatures != 0 {
		return fmt.Errorf("%w: unknown feature bits %s", ErrInvalidConfig, c.Features&^AllFeatures)
	}
	return nil
}

// Load reads and validates a JSON config file
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a JSON config. Missing fields keep their default values.
func Parse(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the config as indented JSON
func (c Config) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
