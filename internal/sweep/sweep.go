// Package sweep scans water fill fractions to find the best-performing
// loadout for a fixed rocket.
package sweep

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/san-kum/waterrocket/internal/flight"
	"github.com/san-kum/waterrocket/internal/physics"
)

// Options control the fill-fraction scan range.
type Options struct {
	Min    float64
	Max    float64
	Points int
}

// DefaultOptions scans 10% through 90% fill in 10% increments.
func DefaultOptions() Options {
	return Options{Min: 0.1, Max: 0.9, Points: 9}
}

// Point records the peaks of one flight at a given fill fraction. Traj is
// the full flight behind the peaks, kept so plotting consumers can overlay
// the swept flight paths.
type Point struct {
	WaterFraction float64
	ApogeeHeight  float64
	Distance      float64
	FlightTime    float64
	Traj          *flight.Trajectory
}

// Run flies the same rocket once per fill fraction and records the peaks.
// Every flight gets its own copy of the base config, so the caller's config
// is never mutated. A canceled context returns the points finished so far
// along with the context error.
func Run(ctx context.Context, base physics.Config, opts Options) ([]Point, error) {
	// A single-point scan runs once at Min, like an evenly spaced range
	// collapsed to its start.
	step := 0.0
	if opts.Points > 1 {
		step = (opts.Max - opts.Min) / float64(opts.Points-1)
	}

	points := make([]Point, 0, opts.Points)
	for i := 0; i < opts.Points; i++ {
		cfg := base
		cfg.WaterFraction = opts.Min + float64(i)*step

		traj, err := flight.Run(ctx, cfg)
		if err != nil {
			return points, err
		}

		sum := traj.Summary()
		points = append(points, Point{
			WaterFraction: cfg.WaterFraction,
			ApogeeHeight:  sum.ApogeeHeight,
			Distance:      sum.Range,
			FlightTime:    sum.FlightTime,
			Traj:          traj,
		})
	}

	return points, nil
}

// Best returns the point with the greatest apogee. Ties keep the lowest
// fill fraction. The second return is false for an empty scan.
func Best(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}

	best := points[0]
	for _, p := range points[1:] {
		if p.ApogeeHeight > best.ApogeeHeight {
			best = p
		}
	}
	return best, true
}

// WriteCSV renders scan results as CSV with percentage fills.
func WriteCSV(w io.Writer, points []Point) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Water Fill %", "Max Height (m)", "Horizontal Distance (m)"}); err != nil {
		return err
	}

	for _, p := range points {
		row := []string{
			fmt.Sprintf("%.1f%%", p.WaterFraction*100),
			fmt.Sprintf("%.2f", p.ApogeeHeight),
			fmt.Sprintf("%.2f", p.Distance),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
