// Package config provides configuration loading and access for the effect.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all effect configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Logo      LogoConfig      `yaml:"logo"`
	Canvas    CanvasConfig    `yaml:"canvas"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// LogoConfig controls how the source image is loaded and sampled.
type LogoConfig struct {
	Path           string  `yaml:"path"`
	Size           int     `yaml:"size"`            // Side of the square sample grid in pixels
	Scale          float64 `yaml:"scale"`           // Fraction of the grid the image is drawn into
	Color          string  `yaml:"color"`           // Hex tint multiplied into every particle
	AlphaThreshold uint8   `yaml:"alpha_threshold"` // Pixels with alpha <= this are skipped
}

// CanvasConfig holds the background settings.
type CanvasConfig struct {
	Background string `yaml:"background"`
}

// PhysicsConfig holds the integrator constants.
type PhysicsConfig struct {
	DistortionRadius float64 `yaml:"distortion_radius"`
	ForceStrength    float64 `yaml:"force_strength"`
	MaxDisplacement  float64 `yaml:"max_displacement"`
	ReturnForce      float64 `yaml:"return_force"`
	Damping          float64 `yaml:"damping"`       // Velocity multiplier applied every active tick
	ClampDamping     float64 `yaml:"clamp_damping"` // Extra velocity multiplier on soft-clamp events
	ClampFalloff     float64 `yaml:"clamp_falloff"` // Exponential rate of the soft clamp
	FalloffFloor     float64 `yaml:"falloff_floor"` // Minimum repulsion multiplier for far-displaced particles
	ActivityTicks    int     `yaml:"activity_ticks"`
}

// RenderConfig holds point-sprite settings.
type RenderConfig struct {
	PointSize    float64 `yaml:"point_size"`
	AlphaDiscard float64 `yaml:"alpha_discard"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per stats window
	PerfWindow  int     `yaml:"perf_window"`  // Ticks in the perf rolling window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Tint          RGB     // Parsed Logo.Color (white on parse failure)
	Background    RGB     // Parsed Canvas.Background (black on parse failure)
	TintValid     bool    // Whether Logo.Color parsed
	RadiusSquared float64 // Physics.DistortionRadius squared
	DT            float64 // Seconds per tick at the target frame rate
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Set replaces the global configuration. Used after a hot reload.
func Set(cfg *Config) {
	global = cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// Defaults returns the embedded default configuration with derived values.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Tint, c.Derived.TintValid = ParseHex(c.Logo.Color, White)
	c.Derived.Background, _ = ParseHex(c.Canvas.Background, Black)
	c.Derived.RadiusSquared = c.Physics.DistortionRadius * c.Physics.DistortionRadius

	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.DT = 1.0 / float64(fps)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
