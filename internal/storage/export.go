package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/waterrocket/internal/flight"
	"github.com/san-kum/waterrocket/internal/physics"
)

var trajectoryHeader = []string{
	"time", "altitude", "distance", "velocity", "h_velocity",
	"acceleration", "water_mass", "air_volume", "air_pressure",
}

// WriteCSV streams a trajectory as CSV, one row per recorded timestep.
// Save uses it for trajectory.csv and the export-csv command reuses it
// for stdout, so both produce identical output.
func WriteCSV(w io.Writer, traj *flight.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(trajectoryHeader); err != nil {
		return err
	}

	for _, st := range traj.States {
		row := []string{
			strconv.FormatFloat(st.Time, 'f', 6, 64),
			strconv.FormatFloat(st.Altitude, 'f', 6, 64),
			strconv.FormatFloat(st.Distance, 'f', 6, 64),
			strconv.FormatFloat(st.VerticalVelocity, 'f', 6, 64),
			strconv.FormatFloat(st.HorizontalVelocity, 'f', 6, 64),
			strconv.FormatFloat(st.VerticalAccel, 'f', 6, 64),
			strconv.FormatFloat(st.WaterMass, 'f', 6, 64),
			strconv.FormatFloat(st.AirVolume, 'f', 6, 64),
			strconv.FormatFloat(st.AirPressure, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportData is the column-oriented JSON form of a trajectory.
type ExportData struct {
	Steps         int            `json:"steps"`
	Times         []float64      `json:"times"`
	Altitudes     []float64      `json:"altitudes"`
	Distances     []float64      `json:"distances"`
	Velocities    []float64      `json:"velocities"`
	HVelocities   []float64      `json:"horizontal_velocities"`
	Accelerations []float64      `json:"accelerations"`
	WaterMasses   []float64      `json:"water_masses"`
	AirVolumes    []float64      `json:"air_volumes"`
	AirPressures  []float64      `json:"air_pressures"`
	Summary       flight.Summary `json:"summary"`
}

func NewExportData(traj *flight.Trajectory) ExportData {
	return ExportData{
		Steps:         traj.Len(),
		Times:         traj.Series(func(s physics.State) float64 { return s.Time }),
		Altitudes:     traj.Series(func(s physics.State) float64 { return s.Altitude }),
		Distances:     traj.Series(func(s physics.State) float64 { return s.Distance }),
		Velocities:    traj.Series(func(s physics.State) float64 { return s.VerticalVelocity }),
		HVelocities:   traj.Series(func(s physics.State) float64 { return s.HorizontalVelocity }),
		Accelerations: traj.Series(func(s physics.State) float64 { return s.VerticalAccel }),
		WaterMasses:   traj.Series(func(s physics.State) float64 { return s.WaterMass }),
		AirVolumes:    traj.Series(func(s physics.State) float64 { return s.AirVolume }),
		AirPressures:  traj.Series(func(s physics.State) float64 { return s.AirPressure }),
		Summary:       traj.Summary(),
	}
}

// WriteJSON streams a trajectory as indented column-oriented JSON.
func WriteJSON(w io.Writer, traj *flight.Trajectory) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExportData(traj))
}
