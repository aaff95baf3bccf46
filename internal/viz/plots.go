package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/waterrocket/internal/flight"
	"github.com/san-kum/waterrocket/internal/physics"
)

// Long flights carry tens of thousands of timesteps; charts sample them
// down before handing the series to asciigraph.
const maxChartSamples = 240

// AltitudeChart plots altitude over the flight.
func AltitudeChart(traj *flight.Trajectory, width, height int) string {
	return chart(traj, width, height, "Altitude (m)",
		func(s physics.State) float64 { return s.Altitude })
}

// VelocityChart plots vertical velocity over the flight.
func VelocityChart(traj *flight.Trajectory, width, height int) string {
	return chart(traj, width, height, "Vertical velocity (m/s)",
		func(s physics.State) float64 { return s.VerticalVelocity })
}

// PressureChart plots bottle air pressure in kPa over the flight.
func PressureChart(traj *flight.Trajectory, width, height int) string {
	return chart(traj, width, height, "Air pressure (kPa)",
		func(s physics.State) float64 { return s.AirPressure / 1000 })
}

func chart(traj *flight.Trajectory, width, height int, caption string, f func(physics.State) float64) string {
	series := downsample(traj.Series(f), maxChartSamples)
	if len(series) < 2 {
		return ""
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption))
}

// GroundTrack draws the flight path, altitude over downrange distance, on
// a braille canvas with a ground line along the bottom.
func GroundTrack(traj *flight.Trajectory, width, height int) string {
	if traj.Len() < 2 {
		return ""
	}

	maxAlt, maxDist := 0.0, 0.0
	for _, s := range traj.States {
		if s.Altitude > maxAlt {
			maxAlt = s.Altitude
		}
		if s.Distance > maxDist {
			maxDist = s.Distance
		}
	}
	if maxAlt <= 0 {
		maxAlt = 1
	}
	if maxDist <= 0 {
		maxDist = 1
	}

	c := NewCanvas(width, height)
	sw, sh := c.SubWidth(), c.SubHeight()
	c.DrawLine(0, sh-1, sw-1, sh-1)

	px, py := dotCoords(traj.States[0], maxDist, maxAlt, sw, sh)
	for _, s := range traj.States[1:] {
		x, y := dotCoords(s, maxDist, maxAlt, sw, sh)
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}

	return c.String() + fmt.Sprintf("apogee %.1f m   range %.1f m\n", maxAlt, maxDist)
}

func dotCoords(s physics.State, maxDist, maxAlt float64, sw, sh int) (int, int) {
	x := int(s.Distance / maxDist * float64(sw-1))
	y := int((1 - s.Altitude/maxAlt) * float64(sh-2))
	return x, y
}

func downsample(vals []float64, max int) []float64 {
	if len(vals) <= max {
		return vals
	}

	step := len(vals) / max
	out := make([]float64, 0, max+1)
	for i := 0; i < len(vals); i += step {
		out = append(out, vals[i])
	}
	// Keep the touchdown sample so the chart ends where the flight did.
	if out[len(out)-1] != vals[len(vals)-1] {
		out = append(out, vals[len(vals)-1])
	}
	return out
}
