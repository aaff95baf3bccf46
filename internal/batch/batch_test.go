package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/waterrocket/internal/storage"
)

const scenarioYAML = `name: saturday session
description: two quick flights
launches:
  - name: stock
    override:
      time_step: 0.01
  - preset: long-range
    override:
      time_step: 0.01
      water_fraction: 0.3
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write scenario failed: %v", err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := Load(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if sc.Name != "saturday session" {
		t.Errorf("expected name 'saturday session', got %q", sc.Name)
	}
	if len(sc.Launches) != 2 {
		t.Fatalf("expected 2 launches, got %d", len(sc.Launches))
	}
	if sc.Launches[1].Preset != "long-range" {
		t.Errorf("expected preset long-range, got %q", sc.Launches[1].Preset)
	}
	if sc.Launches[1].Override["water_fraction"] != 0.3 {
		t.Errorf("expected fill override 0.3, got %g", sc.Launches[1].Override["water_fraction"])
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := Load(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	var out bytes.Buffer
	results, err := Run(context.Background(), sc, st, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Launch != "stock" {
		t.Errorf("expected launch name 'stock', got %q", results[0].Launch)
	}
	if results[1].Launch != "long-range" {
		t.Errorf("expected launch name 'long-range', got %q", results[1].Launch)
	}
	for i, r := range results {
		if r.RunID == "" {
			t.Errorf("result %d: expected a run id", i)
		}
		if r.Summary.ApogeeHeight <= 0 {
			t.Errorf("result %d: expected positive apogee, got %g", i, r.Summary.ApogeeHeight)
		}
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 saved runs, got %d", len(runs))
	}

	if !strings.Contains(out.String(), "Running launch 1/2: stock") {
		t.Errorf("expected progress output, got:\n%s", out.String())
	}
}

func TestRunScenarioNilStore(t *testing.T) {
	sc := &Scenario{Launches: []Launch{
		{Override: map[string]float64{"time_step": 0.01}},
	}}

	var out bytes.Buffer
	results, err := Run(context.Background(), sc, nil, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].RunID != "" {
		t.Errorf("expected no run id without a store, got %q", results[0].RunID)
	}
	if results[0].Launch != "launch 1" {
		t.Errorf("expected fallback title 'launch 1', got %q", results[0].Launch)
	}
}

func TestRunScenarioUnknownPreset(t *testing.T) {
	sc := &Scenario{Launches: []Launch{{Preset: "warp-drive"}}}

	var out bytes.Buffer
	if _, err := Run(context.Background(), sc, nil, &out); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestApplyOverride(t *testing.T) {
	l := Launch{Override: map[string]float64{
		"gauge_pressure": 450,
		"launch_angle":   30,
	}}

	cfg, err := l.resolve()
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.GaugePressure != 450 {
		t.Errorf("expected pressure 450, got %g", cfg.GaugePressure)
	}
	if cfg.LaunchAngle != 30 {
		t.Errorf("expected angle 30, got %g", cfg.LaunchAngle)
	}
}

func TestApplyOverrideUnknownKey(t *testing.T) {
	l := Launch{Override: map[string]float64{"warp_factor": 9}}

	if _, err := l.resolve(); err == nil {
		t.Error("expected error for unknown setting")
	}
}

func TestRunDispersion(t *testing.T) {
	d := &Dispersion{
		Base:           Launch{Override: map[string]float64{"time_step": 0.01}},
		Trials:         5,
		FillSpread:     0.05,
		PressureSpread: 25,
		AngleSpread:    2,
		Seed:           7,
	}

	var out bytes.Buffer
	stats, err := RunDispersion(context.Background(), d, &out)
	if err != nil {
		t.Fatalf("dispersion failed: %v", err)
	}

	if stats.Trials != 5 {
		t.Errorf("expected 5 trials, got %d", stats.Trials)
	}
	if stats.MinApogee > stats.MeanApogee || stats.MeanApogee > stats.MaxApogee {
		t.Errorf("apogee stats out of order: min %g mean %g max %g",
			stats.MinApogee, stats.MeanApogee, stats.MaxApogee)
	}
	if stats.MinRange > stats.MeanRange || stats.MeanRange > stats.MaxRange {
		t.Errorf("range stats out of order: min %g mean %g max %g",
			stats.MinRange, stats.MeanRange, stats.MaxRange)
	}

	again, err := RunDispersion(context.Background(), d, &out)
	if err != nil {
		t.Fatalf("second dispersion failed: %v", err)
	}
	if *again != *stats {
		t.Errorf("expected seeded runs to match: %+v vs %+v", stats, again)
	}
}

func TestRunDispersionNoTrials(t *testing.T) {
	d := &Dispersion{Trials: 0}
	if _, err := RunDispersion(context.Background(), d, &bytes.Buffer{}); err == nil {
		t.Error("expected error for zero trials")
	}
}
