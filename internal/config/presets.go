package config

import (
	"sort"

	"github.com/san-kum/dotfield/internal/integrators"
	"github.com/san-kum/dotfield/internal/pointer"
)

// Presets are named variants applied on top of DefaultConfig.
var Presets = map[string]func(*Config){
	// pull toward the pointer while pressed, snap back on release
	"snapback": func(c *Config) {},
	// always-on uniform field, no reset, no collisions
	"classic": func(c *Config) {
		c.Physics.ForceMode = string(integrators.Uniform)
		c.Physics.GateOnPress = false
		c.Physics.PointerMapping = string(pointer.Cubic)
		c.Physics.Collisions = false
		c.Physics.ResetOnRelease = false
		c.Physics.Multiplier = 0.01
		c.Physics.MaxVelocity = 100
		c.Physics.Padding = 0.05
		c.Palette.Mode = "random"
	},
	"billiards": func(c *Config) {
		c.Physics.ResetOnRelease = false
		c.Physics.Friction = Range{Min: 0.02, Max: 0.05}
		c.Physics.Restitution = Range{Min: 0.8, Max: 0.95}
		c.Physics.Radius = 12
		c.Physics.Spacing = 40
		c.Palette.Mode = "noise"
	},
	"calm": func(c *Config) {
		c.Physics.Multiplier = 0.02
		c.Physics.MaxVelocity = 20
		c.View.FPS = 30
	},
}

// GetPreset returns a fresh config for a named preset, or nil.
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
