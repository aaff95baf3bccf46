package config

import "sort"

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

// Presets are ready-made rockets for quick launches and comparisons. All of
// them share the default ambient conditions.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"max-height": preset(func(c *Config) {
		c.WaterFraction = 0.33
		c.LaunchAngle = 0
	}),
	"long-range": preset(func(c *Config) {
		c.WaterFraction = 0.35
		c.LaunchAngle = 45
	}),
	"heavy-lift": preset(func(c *Config) {
		c.PayloadMass = 1.0
		c.WaterFraction = 0.5
	}),
	"low-pressure": preset(func(c *Config) {
		c.GaugePressure = 300
	}),
	"big-bore": preset(func(c *Config) {
		// Open bottle neck, no restrictor.
		c.NozzleDiameter = 22
		c.WaterFraction = 0.45
	}),
}

// GetPreset returns a copy of the named preset, nil if it does not exist.
// Copying keeps callers free to override fields without corrupting the
// shared table.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// ListPresets returns the preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
