package physics

import (
	"errors"
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"fill fraction zero", func(c *Config) { c.WaterFraction = 0 }, false},
		{"fill fraction one", func(c *Config) { c.WaterFraction = 1 }, false},
		{"zero gauge pressure", func(c *Config) { c.GaugePressure = 0 }, false},
		{"zero bottle volume", func(c *Config) { c.BottleVolume = 0 }, true},
		{"negative bottle volume", func(c *Config) { c.BottleVolume = -1e-3 }, true},
		{"negative bottle mass", func(c *Config) { c.BottleMass = -0.1 }, true},
		{"negative payload", func(c *Config) { c.PayloadMass = -0.1 }, true},
		{"fill fraction below zero", func(c *Config) { c.WaterFraction = -0.01 }, true},
		{"fill fraction above one", func(c *Config) { c.WaterFraction = 1.01 }, true},
		{"zero nozzle diameter", func(c *Config) { c.NozzleDiameter = 0 }, true},
		{"negative nozzle diameter", func(c *Config) { c.NozzleDiameter = -0.01 }, true},
		{"zero body diameter", func(c *Config) { c.BodyDiameter = 0 }, true},
		{"negative drag coefficient", func(c *Config) { c.DragCoeff = -0.3 }, true},
		{"negative gauge pressure", func(c *Config) { c.GaugePressure = -100 }, true},
		{"zero air density", func(c *Config) { c.AirDensity = 0 }, true},
		{"zero water density", func(c *Config) { c.WaterDensity = 0 }, true},
		{"zero gas constant", func(c *Config) { c.GasConstant = 0 }, true},
		{"zero atmospheric pressure", func(c *Config) { c.Atmospheric = 0 }, true},
		{"zero temperature", func(c *Config) { c.Temperature = 0 }, true},
		{"zero gravity", func(c *Config) { c.Gravity = 0 }, true},
		{"zero time step", func(c *Config) { c.TimeStep = 0 }, true},
		{"negative time step", func(c *Config) { c.TimeStep = -0.001 }, true},
		{"zero max time", func(c *Config) { c.MaxTime = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected error wrapping ErrInvalidConfig, got %v", err)
				}
			} else if err != nil {
				t.Errorf("expected valid config, got %v", err)
			}
		})
	}
}

func TestAreasFollowDiameters(t *testing.T) {
	cfg := testConfig()

	if got := cfg.NozzleArea(); math.Abs(got-math.Pi*0.005*0.005) > 1e-15 {
		t.Errorf("expected nozzle area %g, got %g", math.Pi*0.005*0.005, got)
	}
	if got := cfg.CrossSection(); math.Abs(got-math.Pi*0.06*0.06) > 1e-15 {
		t.Errorf("expected cross section %g, got %g", math.Pi*0.06*0.06, got)
	}

	// A modified copy derives its areas from the new diameter.
	wide := cfg
	wide.NozzleDiameter = 0.02
	if got := wide.NozzleArea(); math.Abs(got-math.Pi*0.01*0.01) > 1e-15 {
		t.Errorf("expected widened nozzle area %g, got %g", math.Pi*0.01*0.01, got)
	}
	if cfg.NozzleArea() == wide.NozzleArea() {
		t.Error("expected original config to keep its own nozzle area")
	}
}
