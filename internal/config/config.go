package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/waterrocket/internal/physics"
)

const (
	DefaultTimeStep = 0.001
	DefaultMaxTime  = 30.0
)

// Config is the file- and flag-facing run configuration. Fields use bench
// units (liters, kilopascals, millimeters, degrees); Physics converts to SI
// once, at the engine boundary.
type Config struct {
	BottleVolume   float64 `yaml:"bottle_volume" json:"bottle_volume"`       // L
	BottleMass     float64 `yaml:"bottle_mass" json:"bottle_mass"`           // kg, dry bottle
	PayloadMass    float64 `yaml:"payload_mass" json:"payload_mass"`         // kg
	WaterFraction  float64 `yaml:"water_fraction" json:"water_fraction"`     // [0,1]
	NozzleDiameter float64 `yaml:"nozzle_diameter" json:"nozzle_diameter"`   // mm
	BodyDiameter   float64 `yaml:"body_diameter" json:"body_diameter"`       // m
	DragCoeff      float64 `yaml:"drag_coefficient" json:"drag_coefficient"` //
	GaugePressure  float64 `yaml:"gauge_pressure" json:"gauge_pressure"`     // kPa above atmospheric
	LaunchAngle    float64 `yaml:"launch_angle" json:"launch_angle"`         // degrees from vertical

	Ambient AmbientConfig `yaml:"ambient" json:"ambient"`

	TimeStep float64 `yaml:"time_step" json:"time_step"` // s
	MaxTime  float64 `yaml:"max_time" json:"max_time"`   // s
}

// AmbientConfig describes the launch site environment, in SI units.
type AmbientConfig struct {
	Gravity      float64 `yaml:"gravity" json:"gravity"`                           // m/s^2
	AirDensity   float64 `yaml:"air_density" json:"air_density"`                   // kg/m^3
	WaterDensity float64 `yaml:"water_density" json:"water_density"`               // kg/m^3
	GasConstant  float64 `yaml:"gas_constant" json:"gas_constant"`                 // J/(kg K)
	Atmospheric  float64 `yaml:"atmospheric_pressure" json:"atmospheric_pressure"` // Pa
	Temperature  float64 `yaml:"temperature" json:"temperature"`                   // K
}

// DefaultConfig is the reference rocket: a 2.5 L soda bottle pumped to
// 700 kPa with a 40% water fill.
func DefaultConfig() *Config {
	return &Config{
		BottleVolume:   2.5,
		BottleMass:     0.05,
		PayloadMass:    0.4,
		WaterFraction:  0.4,
		NozzleDiameter: 10,
		BodyDiameter:   0.12,
		DragCoeff:      0.3,
		GaugePressure:  700,
		LaunchAngle:    10,
		Ambient: AmbientConfig{
			Gravity:      9.81,
			AirDensity:   1.225,
			WaterDensity: 1000,
			GasConstant:  287.05,
			Atmospheric:  101325,
			Temperature:  293.15,
		},
		TimeStep: DefaultTimeStep,
		MaxTime:  DefaultMaxTime,
	}
}

// Load reads a YAML file over the defaults, so partial files only need to
// name the fields they change.
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

// Physics converts the bench units to the SI configuration the engine
// consumes.
func (c *Config) Physics() physics.Config {
	return physics.Config{
		BottleVolume:   c.BottleVolume / 1000,   // L -> m^3
		BottleMass:     c.BottleMass,
		PayloadMass:    c.PayloadMass,
		WaterFraction:  c.WaterFraction,
		NozzleDiameter: c.NozzleDiameter / 1000, // mm -> m
		BodyDiameter:   c.BodyDiameter,
		DragCoeff:      c.DragCoeff,
		GaugePressure:  c.GaugePressure * 1000, // kPa -> Pa
		LaunchAngle:    c.LaunchAngle,
		AirDensity:     c.Ambient.AirDensity,
		WaterDensity:   c.Ambient.WaterDensity,
		GasConstant:    c.Ambient.GasConstant,
		Atmospheric:    c.Ambient.Atmospheric,
		Temperature:    c.Ambient.Temperature,
		Gravity:        c.Ambient.Gravity,
		TimeStep:       c.TimeStep,
		MaxTime:        c.MaxTime,
	}
}
