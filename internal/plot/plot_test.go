package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/waterrocket/internal/flight"
	"github.com/san-kum/waterrocket/internal/physics"
	"github.com/san-kum/waterrocket/internal/sweep"
)

func sampleFlight() *flight.Trajectory {
	states := make([]physics.State, 0, 21)
	for i := 0; i <= 20; i++ {
		t := float64(i) * 0.1
		water := 1.0 - t*2
		if water < 0 {
			water = 0
		}
		states = append(states, physics.State{
			Time:             t,
			Altitude:         t * (2 - t) * 10,
			Distance:         t * 2,
			VerticalVelocity: (1 - t) * 20,
			VerticalAccel:    -9.81,
			WaterMass:        water,
			AirPressure:      101325,
		})
	}
	return &flight.Trajectory{States: states}
}

func TestSaveFlightPlots(t *testing.T) {
	dir := t.TempDir()

	if err := SaveFlightPlots(dir, sampleFlight()); err != nil {
		t.Fatalf("save plots failed: %v", err)
	}

	files := []string{
		"altitude.png", "trajectory.png", "velocity.png",
		"acceleration.png", "pressure.png", "water_mass.png",
	}
	for _, name := range files {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s not written: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestSaveFlightPlotsEmpty(t *testing.T) {
	if err := SaveFlightPlots(t.TempDir(), &flight.Trajectory{}); err == nil {
		t.Error("expected error for empty trajectory")
	}
}

func TestSaveSweepPlot(t *testing.T) {
	dir := t.TempDir()
	points := []sweep.Point{
		{WaterFraction: 0.2, ApogeeHeight: 30, Distance: 5},
		{WaterFraction: 0.4, ApogeeHeight: 40, Distance: 7},
		{WaterFraction: 0.6, ApogeeHeight: 35, Distance: 6},
	}

	if err := SaveSweepPlot(dir, points); err != nil {
		t.Fatalf("save sweep plot failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "sweep.png")); err != nil {
		t.Errorf("sweep.png not written: %v", err)
	}
}

func TestSaveSweepPlotEmpty(t *testing.T) {
	if err := SaveSweepPlot(t.TempDir(), nil); err == nil {
		t.Error("expected error for empty scan")
	}
}

func TestSaveSweepTrajectories(t *testing.T) {
	dir := t.TempDir()
	points := []sweep.Point{
		{WaterFraction: 0.2, Traj: sampleFlight()},
		{WaterFraction: 0.4, Traj: sampleFlight()},
	}

	if err := SaveSweepTrajectories(dir, points); err != nil {
		t.Fatalf("save sweep trajectories failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "sweep_trajectories.png")); err != nil {
		t.Errorf("sweep_trajectories.png not written: %v", err)
	}
}

func TestSaveSweepTrajectoriesEmpty(t *testing.T) {
	if err := SaveSweepTrajectories(t.TempDir(), []sweep.Point{{WaterFraction: 0.4}}); err == nil {
		t.Error("expected error when no flights carry a record")
	}
}
