package config

import "sort"

// Presets tweak the defaults; each entry edits a fresh DefaultConfig.
var Presets = map[string]func(*Config){
	"slow": func(c *Config) {
		c.Yaw.IntervalMs, c.Pitch.IntervalMs = 120, 200
	},
	"fast": func(c *Config) {
		c.Yaw.Step, c.Yaw.IntervalMs = 10, 16
		c.Pitch.Step, c.Pitch.IntervalMs = 5, 24
		c.FPS = 60
	},
	"yaw-only": func(c *Config) {
		c.Pitch = OscillatorConfig{Max: 0, Min: 0, Step: 1, IntervalMs: 3_600_000}
	},
	"tumble": func(c *Config) {
		c.Pitch = OscillatorConfig{Max: 360, Min: -360, Step: 4, IntervalMs: 40}
	},
	"flat": func(c *Config) {
		c.Shading = "flat"
		c.Pitch.Seed = 30
	},
}

// GetPreset returns a new config for name, or nil if there is no such preset.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
