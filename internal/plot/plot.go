// Package plot renders flight and sweep data as high-resolution PNG charts.
package plot

import (
	"bufio"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/waterrocket/internal/flight"
	"github.com/san-kum/waterrocket/internal/physics"
	"github.com/san-kum/waterrocket/internal/sweep"
)

// Viridis-style ramp for overlaid flight paths, darkest first.
var sweepRamp = []color.RGBA{
	{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	{R: 0x41, G: 0x44, B: 0x87, A: 0xff},
	{R: 0x2a, G: 0x78, B: 0x8e, A: 0xff},
	{R: 0x22, G: 0xa8, B: 0x84, A: 0xff},
	{R: 0x7a, G: 0xd1, B: 0x51, A: 0xff},
	{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
}

// SaveFlightPlots writes the standard chart set for one flight under dir:
// altitude, flight path, velocity, acceleration, pressure and water mass.
func SaveFlightPlots(dir string, traj *flight.Trajectory) error {
	times := traj.Series(func(s physics.State) float64 { return s.Time })

	if err := saveAltitudePlot(dir, traj, times); err != nil {
		return err
	}

	charts := []struct {
		filename string
		title    string
		ylabel   string
		f        func(physics.State) float64
	}{
		{"velocity.png", "Vertical Velocity", "velocity (m/s)",
			func(s physics.State) float64 { return s.VerticalVelocity }},
		{"acceleration.png", "Vertical Acceleration", "acceleration (m/s²)",
			func(s physics.State) float64 { return s.VerticalAccel }},
		{"pressure.png", "Bottle Air Pressure", "pressure (kPa)",
			func(s physics.State) float64 { return s.AirPressure / 1000 }},
		{"water_mass.png", "Water Mass", "water (kg)",
			func(s physics.State) float64 { return s.WaterMass }},
	}
	for _, c := range charts {
		if err := saveLinePlot(dir, c.filename, c.title, "time (s)", c.ylabel, times, traj.Series(c.f)); err != nil {
			return err
		}
	}

	dists := traj.Series(func(s physics.State) float64 { return s.Distance })
	alts := traj.Series(func(s physics.State) float64 { return s.Altitude })
	return saveLinePlot(dir, "trajectory.png", "Flight Path", "distance (m)", "altitude (m)", dists, alts)
}

// saveAltitudePlot is the altitude chart plus an apogee marker and a dashed
// line at water expulsion.
func saveAltitudePlot(dir string, traj *flight.Trajectory, times []float64) error {
	alts := traj.Series(func(s physics.State) float64 { return s.Altitude })
	if len(times) == 0 {
		return fmt.Errorf("plot data invalid")
	}
	sum := traj.Summary()

	p := plot.New()
	p.Title.Text = "Altitude"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "altitude (m)"
	stylePlot(p)

	line, err := plotter.NewLine(xys(times, alts))
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(3.0)
	p.Add(line)

	apogee, err := plotter.NewScatter(plotter.XYs{{X: sum.ApogeeTime, Y: sum.ApogeeHeight}})
	if err != nil {
		return err
	}
	apogee.GlyphStyle.Shape = draw.RingGlyph{}
	apogee.GlyphStyle.Radius = vg.Points(5)
	p.Add(apogee)
	p.Legend.Add(fmt.Sprintf("apogee %.1f m", sum.ApogeeHeight), apogee)

	if sum.ExpulsionTime > times[0] {
		burnout, err := plotter.NewLine(plotter.XYs{
			{X: sum.ExpulsionTime, Y: 0},
			{X: sum.ExpulsionTime, Y: sum.ApogeeHeight},
		})
		if err != nil {
			return err
		}
		burnout.LineStyle.Width = vg.Points(1.5)
		burnout.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		p.Add(burnout)
		p.Legend.Add("water expelled", burnout)
	}
	p.Legend.Top = true

	return savePlotPNG(p, 8.0, 6.0, filepath.Join(dir, "altitude.png"))
}

// SaveSweepPlot writes apogee and range against water fill fraction.
func SaveSweepPlot(dir string, points []sweep.Point) error {
	if len(points) == 0 {
		return fmt.Errorf("plot data invalid")
	}

	p := plot.New()
	p.Title.Text = "Fill Fraction Sweep"
	p.X.Label.Text = "water fill fraction"
	p.Y.Label.Text = "meters"
	stylePlot(p)

	heights := make(plotter.XYs, len(points))
	ranges := make(plotter.XYs, len(points))
	for i, pt := range points {
		heights[i] = plotter.XY{X: pt.WaterFraction, Y: pt.ApogeeHeight}
		ranges[i] = plotter.XY{X: pt.WaterFraction, Y: pt.Distance}
	}

	hLine, err := plotter.NewLine(heights)
	if err != nil {
		return err
	}
	hLine.LineStyle.Width = vg.Points(3.0)
	p.Add(hLine)
	p.Legend.Add("max height", hLine)

	rLine, err := plotter.NewLine(ranges)
	if err != nil {
		return err
	}
	rLine.LineStyle.Width = vg.Points(3.0)
	rLine.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(rLine)
	p.Legend.Add("range", rLine)
	p.Legend.Top = true

	return savePlotPNG(p, 8.0, 6.0, filepath.Join(dir, "sweep.png"))
}

// SaveSweepTrajectories overlays the flight path of every swept fill in one
// chart. The canvas is square and both axes share one range, so path shapes
// are not distorted.
func SaveSweepTrajectories(dir string, points []sweep.Point) error {
	p := plot.New()
	p.Title.Text = "Swept Flight Paths"
	p.X.Label.Text = "distance (m)"
	p.Y.Label.Text = "altitude (m)"
	stylePlot(p)

	lo, hi := 0.0, 0.0
	added := 0
	for _, pt := range points {
		if pt.Traj == nil || pt.Traj.Len() == 0 {
			continue
		}
		dists := pt.Traj.Series(func(s physics.State) float64 { return s.Distance })
		alts := pt.Traj.Series(func(s physics.State) float64 { return s.Altitude })
		for i := range dists {
			lo = math.Min(lo, dists[i])
			hi = math.Max(hi, math.Max(dists[i], alts[i]))
		}

		line, err := plotter.NewLine(xys(dists, alts))
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2.0)
		line.LineStyle.Color = sweepRamp[added%len(sweepRamp)]
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("fill %.0f%%", pt.WaterFraction*100), line)
		added++
	}
	if added == 0 {
		return fmt.Errorf("plot data invalid")
	}

	if hi <= lo {
		hi = lo + 1
	}
	p.X.Min, p.X.Max = lo, hi
	p.Y.Min, p.Y.Max = lo, hi
	p.Legend.Top = true
	p.Legend.Left = true

	return savePlotPNG(p, 8.0, 8.0, filepath.Join(dir, "sweep_trajectories.png"))
}

func saveLinePlot(dir, filename, title, xlabel, ylabel string, xs, ys []float64) error {
	if len(xs) != len(ys) || len(xs) == 0 {
		return fmt.Errorf("plot data invalid")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	stylePlot(p)

	line, err := plotter.NewLine(xys(xs, ys))
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(3.0)
	p.Add(line)

	return savePlotPNG(p, 8.0, 6.0, filepath.Join(dir, filename))
}

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(18)
	p.Title.Padding = vg.Points(10)

	p.X.Label.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.TextStyle.Font.Size = vg.Points(14)
	p.X.Tick.Label.Font.Size = vg.Points(11)
	p.Y.Tick.Label.Font.Size = vg.Points(11)

	p.X.Tick.Marker = limitedTicker(8, "%.1f")
	p.Y.Tick.Marker = limitedTicker(8, "%.1f")
}

// limitedTicker caps axis labels so dense flights stay readable.
func limitedTicker(maxLabels int, labelFmt string) plot.Ticker {
	if maxLabels < 2 {
		maxLabels = 2
	}
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(maxLabels-1)
		ticks := make([]plot.Tick, 0, maxLabels)
		for i := 0; i < maxLabels; i++ {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(labelFmt, v)})
		}
		return ticks
	})
}

func savePlotPNG(p *plot.Plot, widthIn, heightIn float64, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	defer bw.Flush()

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return nil
}
