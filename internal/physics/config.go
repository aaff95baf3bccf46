package physics

import (
	"fmt"
	"math"
)

// Config holds every quantity a flight depends on, in SI units. It is a
// plain value: copies are independent, and nothing mutates a Config after
// construction, so back-to-back runs (sweeps, batches) cannot interfere
// with each other.
type Config struct {
	BottleVolume   float64 // m^3
	BottleMass     float64 // kg, dry bottle without payload
	PayloadMass    float64 // kg
	WaterFraction  float64 // share of bottle volume filled with water, [0,1]
	NozzleDiameter float64 // m
	BodyDiameter   float64 // m, frontal diameter for drag
	DragCoeff      float64
	GaugePressure  float64 // Pa above atmospheric at launch
	LaunchAngle    float64 // degrees from vertical, positive tilts downrange

	AirDensity   float64 // kg/m^3, ambient
	WaterDensity float64 // kg/m^3
	GasConstant  float64 // J/(kg*K), specific gas constant of air
	Atmospheric  float64 // Pa
	Temperature  float64 // K
	Gravity      float64 // m/s^2

	TimeStep float64 // s
	MaxTime  float64 // s, cap on simulated flight time
}

// NozzleArea returns the nozzle throat area. Areas are always derived from
// the diameters on demand, so a modified copy of a Config can never carry a
// stale area.
func (c Config) NozzleArea() float64 {
	r := c.NozzleDiameter / 2
	return math.Pi * r * r
}

// CrossSection returns the frontal area used by the drag term.
func (c Config) CrossSection() float64 {
	r := c.BodyDiameter / 2
	return math.Pi * r * r
}

// Validate reports the first problem that would make a flight meaningless.
// All returned errors wrap [ErrInvalidConfig].
func (c Config) Validate() error {
	if c.BottleVolume <= 0 {
		return fmt.Errorf("%w: bottle volume must be positive, got %g", ErrInvalidConfig, c.BottleVolume)
	}
	if c.BottleMass < 0 {
		return fmt.Errorf("%w: bottle mass must not be negative, got %g", ErrInvalidConfig, c.BottleMass)
	}
	if c.PayloadMass < 0 {
		return fmt.Errorf("%w: payload mass must not be negative, got %g", ErrInvalidConfig, c.PayloadMass)
	}
	if c.WaterFraction < 0 || c.WaterFraction > 1 {
		return fmt.Errorf("%w: water fraction must be in [0,1], got %g", ErrInvalidConfig, c.WaterFraction)
	}
	if c.NozzleDiameter <= 0 {
		return fmt.Errorf("%w: nozzle diameter must be positive, got %g", ErrInvalidConfig, c.NozzleDiameter)
	}
	if c.BodyDiameter <= 0 {
		return fmt.Errorf("%w: body diameter must be positive, got %g", ErrInvalidConfig, c.BodyDiameter)
	}
	if c.DragCoeff < 0 {
		return fmt.Errorf("%w: drag coefficient must not be negative, got %g", ErrInvalidConfig, c.DragCoeff)
	}
	if c.GaugePressure < 0 {
		return fmt.Errorf("%w: gauge pressure must not be negative, got %g", ErrInvalidConfig, c.GaugePressure)
	}
	if c.AirDensity <= 0 {
		return fmt.Errorf("%w: air density must be positive, got %g", ErrInvalidConfig, c.AirDensity)
	}
	if c.WaterDensity <= 0 {
		return fmt.Errorf("%w: water density must be positive, got %g", ErrInvalidConfig, c.WaterDensity)
	}
	if c.GasConstant <= 0 {
		return fmt.Errorf("%w: gas constant must be positive, got %g", ErrInvalidConfig, c.GasConstant)
	}
	if c.Atmospheric <= 0 {
		return fmt.Errorf("%w: atmospheric pressure must be positive, got %g", ErrInvalidConfig, c.Atmospheric)
	}
	if c.Temperature <= 0 {
		return fmt.Errorf("%w: temperature must be positive, got %g", ErrInvalidConfig, c.Temperature)
	}
	if c.Gravity <= 0 {
		return fmt.Errorf("%w: gravity must be positive, got %g", ErrInvalidConfig, c.Gravity)
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("%w: time step must be positive, got %g", ErrInvalidConfig, c.TimeStep)
	}
	if c.MaxTime <= 0 {
		return fmt.Errorf("%w: max time must be positive, got %g", ErrInvalidConfig, c.MaxTime)
	}
	return nil
}
