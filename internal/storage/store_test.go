package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/waterrocket/internal/config"
	"github.com/san-kum/waterrocket/internal/flight"
	"github.com/san-kum/waterrocket/internal/physics"
)

func sampleTrajectory() *flight.Trajectory {
	return &flight.Trajectory{States: []physics.State{
		{
			Time: 0, Altitude: 0, VerticalAccel: 45.0,
			WaterMass: 1.0, AirVolume: 0.0015, AirPressure: 801325,
			InitialAirVolume: 0.0015, InitialAirPressure: 801325,
		},
		{
			Time: 0.5, Altitude: 11.2, Distance: 1.9,
			VerticalVelocity: 24.5, HorizontalVelocity: 4.3, VerticalAccel: -12.0,
			AirVolume: 0.0025, AirPressure: 480795,
			InitialAirVolume: 0.0015, InitialAirPressure: 801325,
		},
		{
			Time: 3.0, Altitude: 39.4, Distance: 9.6,
			VerticalVelocity: -0.1, HorizontalVelocity: 3.1, VerticalAccel: -9.9,
			AirVolume: 0.0025, AirPressure: 101325,
			InitialAirVolume: 0.0015, InitialAirPressure: 801325,
		},
	}}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	runID, err := st.Save(cfg, sampleTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(runID, "rocket_") {
		t.Errorf("expected rocket_ run id, got %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.ID != runID {
		t.Errorf("expected id %q, got %q", runID, meta.ID)
	}
	if meta.Config == nil || meta.Config.WaterFraction != cfg.WaterFraction {
		t.Errorf("expected water fraction %g preserved, got %+v", cfg.WaterFraction, meta.Config)
	}
	if meta.Summary.ApogeeHeight != 39.4 {
		t.Errorf("expected apogee 39.4, got %g", meta.Summary.ApogeeHeight)
	}
	if meta.Summary.ExpulsionTime != 0.5 {
		t.Errorf("expected expulsion at 0.5, got %g", meta.Summary.ExpulsionTime)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(config.DefaultConfig(), sampleTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "trajectory.csv", "summary.txt"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(config.DefaultConfig(), sampleTrajectory()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingBaseDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs for missing dir, got %d", len(runs))
	}
}

func TestLoadTrajectoryRoundTrip(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	orig := sampleTrajectory()
	runID, err := st.Save(config.DefaultConfig(), orig)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}

	if loaded.Len() != orig.Len() {
		t.Fatalf("expected %d states, got %d", orig.Len(), loaded.Len())
	}

	// CSV rounds to six decimals.
	const tol = 1e-6
	for i := range orig.States {
		want, got := orig.States[i], loaded.States[i]
		if math.Abs(got.Altitude-want.Altitude) > tol {
			t.Errorf("state %d: expected altitude %g, got %g", i, want.Altitude, got.Altitude)
		}
		if math.Abs(got.VerticalVelocity-want.VerticalVelocity) > tol {
			t.Errorf("state %d: expected velocity %g, got %g", i, want.VerticalVelocity, got.VerticalVelocity)
		}
		if math.Abs(got.AirPressure-want.AirPressure) > tol {
			t.Errorf("state %d: expected pressure %g, got %g", i, want.AirPressure, got.AirPressure)
		}
		if math.Abs(got.InitialAirVolume-want.InitialAirVolume) > tol {
			t.Errorf("state %d: expected initial air volume %g, got %g", i, want.InitialAirVolume, got.InitialAirVolume)
		}
	}
}

func TestLoadTrajectoryMissingRun(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.LoadTrajectory("rocket_0"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTrajectory()); err != nil {
		t.Fatalf("write csv failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	wantHeader := "time,altitude,distance,velocity,h_velocity,acceleration,water_mass,air_volume,air_pressure"
	if lines[0] != wantHeader {
		t.Errorf("expected header %q, got %q", wantHeader, lines[0])
	}
	if !strings.HasPrefix(lines[1], "0.000000,0.000000,") {
		t.Errorf("unexpected first row: %q", lines[1])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleTrajectory()); err != nil {
		t.Fatalf("write json failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if data.Steps != 3 {
		t.Errorf("expected 3 steps, got %d", data.Steps)
	}
	if len(data.Altitudes) != 3 || data.Altitudes[2] != 39.4 {
		t.Errorf("unexpected altitudes: %v", data.Altitudes)
	}
	if data.Summary.ApogeeHeight != 39.4 {
		t.Errorf("expected apogee 39.4, got %g", data.Summary.ApogeeHeight)
	}
}
