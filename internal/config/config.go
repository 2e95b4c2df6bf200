package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"github.com/san-kum/spinframe/internal/oscillator"
	"github.com/san-kum/spinframe/internal/raster"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 400
	DefaultHeight     = 400
	DefaultFPS        = 30
	DefaultBackground = "#000000"
	DefaultShading    = "directional"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Viewport   ViewportConfig   `yaml:"viewport" toml:"viewport"`
	Background string           `yaml:"background" toml:"background"`
	Shading    string           `yaml:"shading" toml:"shading"`
	Clamp      bool             `yaml:"clamp" toml:"clamp"`
	FPS        int              `yaml:"fps" toml:"fps"`
	Yaw        OscillatorConfig `yaml:"yaw" toml:"yaw"`
	Pitch      OscillatorConfig `yaml:"pitch" toml:"pitch"`
	Scene      []TriangleConfig `yaml:"scene,omitempty" toml:"scene,omitempty"`
}

type ViewportConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

type OscillatorConfig struct {
	Max        int `yaml:"max" toml:"max"`
	Min        int `yaml:"min" toml:"min"`
	Step       int `yaml:"step" toml:"step"`
	IntervalMs int `yaml:"interval_ms" toml:"interval_ms"`
	Seed       int `yaml:"seed" toml:"seed"`
}

// TriangleConfig is one scene face: three [x, y, z] points and a hex color.
type TriangleConfig struct {
	Points [][]float64 `yaml:"points" toml:"points"`
	Color  string      `yaml:"color" toml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		Viewport:   ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
		Background: DefaultBackground,
		Shading:    DefaultShading,
		FPS:        DefaultFPS,
		Yaw:        OscillatorConfig{Max: 360, Min: 0, Step: 6, IntervalMs: 50},
		Pitch:      OscillatorConfig{Max: 90, Min: -90, Step: 3, IntervalMs: 80},
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a YAML file, or TOML when the extension is .toml, on top of the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes the file at path over cfg. Keys missing from the file keep
// the values already in cfg.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalid, c.Viewport.Width, c.Viewport.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	}
	if _, err := c.RasterOptions(); err != nil {
		return err
	}
	yaw, pitch := c.Oscillators()
	if err := yaw.Validate(); err != nil {
		return fmt.Errorf("%w: yaw: %v", ErrInvalid, err)
	}
	if err := pitch.Validate(); err != nil {
		return fmt.Errorf("%w: pitch: %v", ErrInvalid, err)
	}
	for i, t := range c.Scene {
		if err := t.validate(); err != nil {
			return fmt.Errorf("%w: scene[%d]: %v", ErrInvalid, i, err)
		}
	}
	return nil
}

func (t TriangleConfig) validate() error {
	if len(t.Points) != 3 {
		return fmt.Errorf("want 3 points, got %d", len(t.Points))
	}
	for j, p := range t.Points {
		if len(p) != 3 {
			return fmt.Errorf("point %d: want [x, y, z], got %d values", j, len(p))
		}
	}
	_, err := ParseColor(t.Color)
	return err
}

// Oscillators converts the yaw and pitch sections.
func (c *Config) Oscillators() (yaw, pitch oscillator.Config) {
	return c.Yaw.oscillator(), c.Pitch.oscillator()
}

func (o OscillatorConfig) oscillator() oscillator.Config {
	return oscillator.Config{
		Max:      o.Max,
		Min:      o.Min,
		Step:     o.Step,
		Interval: time.Duration(o.IntervalMs) * time.Millisecond,
		Seed:     o.Seed,
	}
}

func (c *Config) RasterOptions() (raster.Options, error) {
	bg, err := ParseColor(c.Background)
	if err != nil {
		return raster.Options{}, fmt.Errorf("%w: background: %v", ErrInvalid, err)
	}
	mode, err := raster.ParseShading(c.Shading)
	if err != nil {
		return raster.Options{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return raster.Options{Background: bg, Shading: mode, Clamp: c.Clamp}, nil
}

// FrameInterval is the presentation period implied by FPS.
func (c *Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}

// ParseColor accepts "#rrggbb" or "#rgb".
func ParseColor(s string) (raster.Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return raster.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return raster.RGB(r, g, b), nil
}
