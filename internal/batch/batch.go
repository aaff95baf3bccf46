// Package batch runs scripted sequences of launches from YAML scenario
// files, with optional dispersion trials that jitter launch-day settings.
package batch

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/waterrocket/internal/config"
	"github.com/san-kum/waterrocket/internal/flight"
	"github.com/san-kum/waterrocket/internal/storage"
)

// Scenario is a scripted session: a list of launches plus an optional
// dispersion study.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Launches    []Launch    `yaml:"launches"`
	Dispersion  *Dispersion `yaml:"dispersion"`
}

// Launch is one flight in a scenario. The config starts from the named
// preset, or the defaults when no preset is given, then applies overrides.
type Launch struct {
	Name     string             `yaml:"name"`
	Preset   string             `yaml:"preset"`
	Override map[string]float64 `yaml:"override"`
}

// Result records one executed launch.
type Result struct {
	Launch  string
	RunID   string
	Summary flight.Summary
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Run executes every launch in order, saving each flight when a store is
// given and reporting progress to w.
func Run(ctx context.Context, sc *Scenario, st *storage.Store, w io.Writer) ([]Result, error) {
	results := make([]Result, 0, len(sc.Launches))

	for i, l := range sc.Launches {
		title := l.title(i)
		fmt.Fprintf(w, "Running launch %d/%d: %s\n", i+1, len(sc.Launches), title)

		cfg, err := l.resolve()
		if err != nil {
			return results, fmt.Errorf("launch %d: %w", i+1, err)
		}

		traj, err := flight.Run(ctx, cfg.Physics())
		if err != nil {
			return results, fmt.Errorf("launch %d: %w", i+1, err)
		}

		runID := ""
		if st != nil {
			runID, err = st.Save(cfg, traj)
			if err != nil {
				return results, fmt.Errorf("launch %d save: %w", i+1, err)
			}
		}

		sum := traj.Summary()
		fmt.Fprintf(w, "  apogee %.1f m, range %.1f m, flight %.1f s\n",
			sum.ApogeeHeight, sum.Range, sum.FlightTime)

		results = append(results, Result{Launch: title, RunID: runID, Summary: sum})
	}

	return results, nil
}

func (l Launch) title(i int) string {
	if l.Name != "" {
		return l.Name
	}
	if l.Preset != "" {
		return l.Preset
	}
	return fmt.Sprintf("launch %d", i+1)
}

// resolve builds the launch config: preset or defaults, then overrides.
func (l Launch) resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if l.Preset != "" {
		cfg = config.GetPreset(l.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", l.Preset)
		}
	}

	for key, val := range l.Override {
		if err := applyOverride(cfg, key, val); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// applyOverride sets one config field by its YAML key, in the same bench
// units the config file uses.
func applyOverride(cfg *config.Config, key string, val float64) error {
	switch key {
	case "bottle_volume":
		cfg.BottleVolume = val
	case "bottle_mass":
		cfg.BottleMass = val
	case "payload_mass":
		cfg.PayloadMass = val
	case "water_fraction":
		cfg.WaterFraction = val
	case "nozzle_diameter":
		cfg.NozzleDiameter = val
	case "body_diameter":
		cfg.BodyDiameter = val
	case "drag_coefficient":
		cfg.DragCoeff = val
	case "gauge_pressure":
		cfg.GaugePressure = val
	case "launch_angle":
		cfg.LaunchAngle = val
	case "time_step":
		cfg.TimeStep = val
	case "max_time":
		cfg.MaxTime = val
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// Dispersion describes a launch-day variation study: repeated flights of a
// base loadout with fill, pressure and angle jittered uniformly within the
// given spreads. Spreads use config units (fraction, kPa, degrees).
type Dispersion struct {
	Base           Launch  `yaml:"base"`
	Trials         int     `yaml:"trials"`
	FillSpread     float64 `yaml:"fill_spread"`
	PressureSpread float64 `yaml:"pressure_spread"`
	AngleSpread    float64 `yaml:"angle_spread"`
	Seed           int64   `yaml:"seed"`
}

// TrialStats summarizes where the dispersion trials ended up.
type TrialStats struct {
	Trials     int
	MeanApogee float64
	MinApogee  float64
	MaxApogee  float64
	MeanRange  float64
	MinRange   float64
	MaxRange   float64
}

// RunDispersion executes the trials and reports apogee and range spread.
// A zero seed draws one from the clock.
func RunDispersion(ctx context.Context, d *Dispersion, w io.Writer) (*TrialStats, error) {
	if d.Trials <= 0 {
		return nil, fmt.Errorf("dispersion needs at least one trial, got %d", d.Trials)
	}

	base, err := d.Base.resolve()
	if err != nil {
		return nil, err
	}

	seed := d.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	stats := &TrialStats{Trials: d.Trials}
	for trial := 0; trial < d.Trials; trial++ {
		cfg := *base
		cfg.WaterFraction = clamp(cfg.WaterFraction+jitter(rng, d.FillSpread), 0.01, 0.99)
		cfg.GaugePressure = clamp(cfg.GaugePressure+jitter(rng, d.PressureSpread), 1, 5000)
		cfg.LaunchAngle = clamp(cfg.LaunchAngle+jitter(rng, d.AngleSpread), 0, 89)

		traj, err := flight.Run(ctx, cfg.Physics())
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", trial+1, err)
		}

		sum := traj.Summary()
		if trial == 0 {
			stats.MinApogee, stats.MaxApogee = sum.ApogeeHeight, sum.ApogeeHeight
			stats.MinRange, stats.MaxRange = sum.Range, sum.Range
		}
		stats.MeanApogee += sum.ApogeeHeight
		stats.MeanRange += sum.Range
		if sum.ApogeeHeight < stats.MinApogee {
			stats.MinApogee = sum.ApogeeHeight
		}
		if sum.ApogeeHeight > stats.MaxApogee {
			stats.MaxApogee = sum.ApogeeHeight
		}
		if sum.Range < stats.MinRange {
			stats.MinRange = sum.Range
		}
		if sum.Range > stats.MaxRange {
			stats.MaxRange = sum.Range
		}

		if (trial+1)%10 == 0 {
			fmt.Fprintf(w, "Dispersion: %d/%d trials complete\n", trial+1, d.Trials)
		}
	}
	stats.MeanApogee /= float64(d.Trials)
	stats.MeanRange /= float64(d.Trials)

	return stats, nil
}

func jitter(rng *rand.Rand, spread float64) float64 {
	return (rng.Float64() - 0.5) * 2 * spread
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
