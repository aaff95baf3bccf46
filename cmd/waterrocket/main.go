package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/waterrocket/internal/batch"
	"github.com/san-kum/waterrocket/internal/config"
	"github.com/san-kum/waterrocket/internal/export"
	"github.com/san-kum/waterrocket/internal/flight"
	"github.com/san-kum/waterrocket/internal/plot"
	"github.com/san-kum/waterrocket/internal/report"
	"github.com/san-kum/waterrocket/internal/storage"
	"github.com/san-kum/waterrocket/internal/sweep"
	"github.com/san-kum/waterrocket/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	// Launch settings, in the same bench units as the config file.
	volume     float64 // L
	bottleMass float64 // kg
	payload    float64 // kg
	fill       float64 // fraction
	nozzle     float64 // mm
	body       float64 // m
	drag       float64
	pressure   float64 // kPa
	angle      float64 // degrees
	dt         float64
	maxTime    float64

	noSave    bool
	showPlots bool
	showTrack bool

	sweepMin    float64
	sweepMax    float64
	sweepPoints int
	sweepOut    string
	sweepPNG    string

	plotPNG   string
	svgOut    string
	svgWidth  int
	svgHeight int
)

// main registers the waterrocket commands. Running with no subcommand
// opens the live flight view with the default rocket.
func main() {
	rootCmd := &cobra.Command{
		Use:   "waterrocket",
		Short: "water-propelled bottle rocket flight simulator",
		RunE:  runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".waterrocket", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate one flight",
		Args:  cobra.NoArgs,
		RunE:  runFlight,
	}
	addLaunchFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving the run")
	runCmd.Flags().BoolVar(&showPlots, "plot", false, "print ascii charts after the flight")
	runCmd.Flags().BoolVar(&showTrack, "track", false, "print the braille ground track")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "scan water fill fractions for the best loadout",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addLaunchFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "lowest fill fraction")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.9, "highest fill fraction")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 9, "number of fills to fly")
	sweepCmd.Flags().StringVar(&sweepOut, "out", "", "write results to a CSV file")
	sweepCmd.Flags().StringVar(&sweepPNG, "png", "", "write a PNG chart into this directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "chart a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotPNG, "png", "", "also write PNG charts into this directory")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportMeta,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print run trajectory as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "print run trajectory as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a saved run as an SVG file",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output path (default <run_id>.svg, - for stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 500, "image height")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "replay a flight in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addLaunchFlags(liveCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario of launches",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving the runs")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in rocket presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, sweepCmd, listCmd, plotCmd, exportCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, liveCmd, batchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLaunchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a built-in preset")
	cmd.Flags().Float64Var(&volume, "volume", 2.5, "bottle volume (L)")
	cmd.Flags().Float64Var(&bottleMass, "bottle-mass", 0.05, "empty bottle mass (kg)")
	cmd.Flags().Float64Var(&payload, "payload", 0.4, "payload mass (kg)")
	cmd.Flags().Float64Var(&fill, "fill", 0.4, "water fill fraction")
	cmd.Flags().Float64Var(&nozzle, "nozzle", 10, "nozzle diameter (mm)")
	cmd.Flags().Float64Var(&body, "body", 0.12, "body diameter (m)")
	cmd.Flags().Float64Var(&drag, "drag", 0.3, "drag coefficient")
	cmd.Flags().Float64Var(&pressure, "pressure", 700, "gauge pressure (kPa)")
	cmd.Flags().Float64Var(&angle, "angle", 10, "launch angle from vertical (degrees)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultTimeStep, "timestep (s)")
	cmd.Flags().Float64Var(&maxTime, "time", config.DefaultMaxTime, "simulation time cap (s)")
}

// resolveConfig builds the launch config: defaults, then preset, then
// config file, then any flags set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flagTargets := map[string]*float64{
		"volume":      &cfg.BottleVolume,
		"bottle-mass": &cfg.BottleMass,
		"payload":     &cfg.PayloadMass,
		"fill":        &cfg.WaterFraction,
		"nozzle":      &cfg.NozzleDiameter,
		"body":        &cfg.BodyDiameter,
		"drag":        &cfg.DragCoeff,
		"pressure":    &cfg.GaugePressure,
		"angle":       &cfg.LaunchAngle,
		"dt":          &cfg.TimeStep,
		"time":        &cfg.MaxTime,
	}
	flagValues := map[string]float64{
		"volume": volume, "bottle-mass": bottleMass, "payload": payload,
		"fill": fill, "nozzle": nozzle, "body": body, "drag": drag,
		"pressure": pressure, "angle": angle, "dt": dt, "time": maxTime,
	}
	for name, target := range flagTargets {
		if cmd.Flags().Changed(name) {
			*target = flagValues[name]
		}
	}

	return cfg, nil
}

func runFlight(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Println("launching water rocket...")
	start := time.Now()

	traj, err := flight.Run(context.Background(), cfg.Physics())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	fmt.Printf("completed in %v (%d steps)\n", elapsed, traj.Len())

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, traj)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Println()

	if err := report.Write(os.Stdout, cfg, traj.Summary()); err != nil {
		return err
	}

	if showPlots {
		fmt.Println()
		fmt.Println(viz.AltitudeChart(traj, 80, 10))
		fmt.Println()
		fmt.Println(viz.VelocityChart(traj, 80, 10))
	}
	if showTrack {
		fmt.Println()
		fmt.Print(viz.GroundTrack(traj, 70, 16))
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	opts := sweep.Options{Min: sweepMin, Max: sweepMax, Points: sweepPoints}
	fmt.Printf("sweeping water fill %.0f%%-%.0f%% over %d flights...\n\n",
		opts.Min*100, opts.Max*100, opts.Points)

	points, err := sweep.Run(context.Background(), cfg.Physics(), opts)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILL\tAPOGEE\tRANGE\tFLIGHT")
	for _, p := range points {
		fmt.Fprintf(w, "%.0f%%\t%.2f m\t%.2f m\t%.2f s\n",
			p.WaterFraction*100, p.ApogeeHeight, p.Distance, p.FlightTime)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := sweep.Best(points); ok {
		fmt.Printf("\nbest fill: %.0f%% (apogee %.2f m)\n", best.WaterFraction*100, best.ApogeeHeight)
	}

	if sweepOut != "" {
		f, err := os.Create(sweepOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := sweep.WriteCSV(f, points); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", sweepOut)
	}

	if sweepPNG != "" {
		if err := plot.SaveSweepPlot(sweepPNG, points); err != nil {
			return err
		}
		if err := plot.SaveSweepTrajectories(sweepPNG, points); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", filepath.Join(sweepPNG, "sweep.png"))
		fmt.Printf("wrote %s\n", filepath.Join(sweepPNG, "sweep_trajectories.png"))
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tFILL\tPRESSURE\tANGLE\tAPOGEE\tRANGE")

	for _, run := range runs {
		fill, pressure, angle := "-", "-", "-"
		if run.Config != nil {
			fill = fmt.Sprintf("%.0f%%", run.Config.WaterFraction*100)
			pressure = fmt.Sprintf("%.0f kPa", run.Config.GaugePressure)
			angle = fmt.Sprintf("%.1f°", run.Config.LaunchAngle)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2f m\t%.2f m\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			fill,
			pressure,
			angle,
			run.Summary.ApogeeHeight,
			run.Summary.Range,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("launched: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("samples: %d\n\n", traj.Len())

	fmt.Println(viz.AltitudeChart(traj, 80, 10))
	fmt.Println()
	fmt.Println(viz.VelocityChart(traj, 80, 10))
	fmt.Println()
	fmt.Println(viz.PressureChart(traj, 80, 10))
	fmt.Println()
	fmt.Print(viz.GroundTrack(traj, 70, 16))

	if plotPNG != "" {
		if err := plot.SaveFlightPlots(plotPNG, traj); err != nil {
			return err
		}
		fmt.Printf("\nwrote PNG charts to %s\n", plotPNG)
	}

	return nil
}

func exportMeta(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	return storage.WriteCSV(os.Stdout, traj)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	return storage.WriteJSON(os.Stdout, traj)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	svg := export.FlightSVG(traj, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("no data to draw")
	}

	if svgOut == "-" {
		fmt.Println(svg)
		return nil
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	traj, err := flight.Run(context.Background(), cfg.Physics())
	if err != nil {
		return err
	}

	m := viz.NewModel(cfg.Physics(), traj)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := batch.Load(args[0])
	if err != nil {
		return err
	}

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	fmt.Println()

	results, err := batch.Run(context.Background(), sc, st, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LAUNCH\tRUN ID\tAPOGEE\tRANGE\tFLIGHT")
	for _, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f m\t%.2f m\t%.2f s\n",
			r.Launch, runID, r.Summary.ApogeeHeight, r.Summary.Range, r.Summary.FlightTime)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if sc.Dispersion != nil {
		fmt.Println("\nrunning dispersion trials...")
		stats, err := batch.RunDispersion(context.Background(), sc.Dispersion, os.Stdout)
		if err != nil {
			return err
		}
		fmt.Printf("apogee: %.2f m mean (%.2f-%.2f m)\n", stats.MeanApogee, stats.MinApogee, stats.MaxApogee)
		fmt.Printf("range:  %.2f m mean (%.2f-%.2f m)\n", stats.MeanRange, stats.MinRange, stats.MaxRange)
	}

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFILL\tPRESSURE\tANGLE\tNOZZLE\tPAYLOAD")

	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.0f%%\t%.0f kPa\t%.1f°\t%.1f mm\t%.2f kg\n",
			name, p.WaterFraction*100, p.GaugePressure, p.LaunchAngle, p.NozzleDiameter, p.PayloadMass)
	}

	return w.Flush()
}
