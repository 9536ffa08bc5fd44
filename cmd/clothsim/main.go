package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/san-kum/clothsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	width      int
	height     int
	separation float64
	stiffness  float64
	springDamp float64
	solver     string
	subSteps   int
	dt         float64
	duration   float64
	windX      float64
	windY      float64
	windZ      float64
	// Config file
	configFile string
	// Preset name
	preset string
	// Frame rate for live view
	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "mass-spring cloth simulation lab",
		Run: func(cmd *cobra.Command, args []string) {
			if err := viz.Run(config.DefaultConfig(), 30); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark all solvers",
		RunE:  benchSolvers,
	}
	addSimFlags(benchCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [solver1] [solver2] ...",
		Short: "compare solver energy trajectories",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareSolvers,
	}
	addSimFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, benchCmd, compareCmd, listCmd, plotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "cloth width (particles)")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "cloth height (particles)")
	cmd.Flags().Float64Var(&separation, "sep", config.DefaultSeparation, "rest separation")
	cmd.Flags().Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "spring stiffness")
	cmd.Flags().Float64Var(&springDamp, "spring-damp", config.DefaultSpringDamp, "spring damping")
	cmd.Flags().StringVar(&solver, "solver", cloth.SolverVerlet.String(), "integration solver")
	cmd.Flags().IntVar(&subSteps, "substeps", cloth.DefaultSubSteps, "sub-steps per tick")
	cmd.Flags().Float64Var(&dt, "dt", float64(cloth.DefaultSimDT), "simulation timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&windX, "wind-x", 0, "wind force x")
	cmd.Flags().Float64Var(&windY, "wind-y", 0, "wind force y")
	cmd.Flags().Float64Var(&windZ, "wind-z", 0, "wind force z")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig builds the effective configuration: preset, then config
// file, then explicit CLI flags, each layer overriding the last.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("width") {
		cfg.Cloth.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Cloth.Height = height
	}
	if cmd.Flags().Changed("sep") {
		cfg.Cloth.Separation = float32(separation)
	}
	if cmd.Flags().Changed("stiffness") {
		cfg.Cloth.Stiffness = float32(stiffness)
	}
	if cmd.Flags().Changed("spring-damp") {
		cfg.Cloth.Damping = float32(springDamp)
	}
	if cmd.Flags().Changed("solver") {
		cfg.Solver = solver
	}
	if cmd.Flags().Changed("substeps") {
		cfg.SubSteps = subSteps
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = float32(dt)
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = float32(duration)
	}
	if cmd.Flags().Changed("wind-x") {
		cfg.Physics.Wind[0] = float32(windX)
	}
	if cmd.Flags().Changed("wind-y") {
		cfg.Physics.Wind[1] = float32(windY)
	}
	if cmd.Flags().Changed("wind-z") {
		cfg.Physics.Wind[2] = float32(windZ)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// record advances a world tick by tick, feeding the metric set and
// collecting one sample per tick.
func record(w *cloth.World, cfg *config.Config, ms []metrics.Metric) []storage.Sample {
	ticks := int(cfg.Duration / cfg.Dt)
	if ticks < 1 {
		ticks = 1
	}

	center := 0
	if n := len(w.Particles()); n > 0 {
		center = (cfg.Cloth.Height/2)*cfg.Cloth.Width + cfg.Cloth.Width/2
		if center >= n {
			center = n - 1
		}
	}

	series := make([]storage.Sample, 0, ticks)
	for i := 0; i < ticks; i++ {
		w.Advance(cfg.Dt)
		t := float64(i+1) * float64(cfg.Dt)
		for _, m := range ms {
			m.Observe(w, t)
		}
		series = append(series, storage.Sample{
			Time:      t,
			Kinetic:   metrics.Kinetic(w),
			SpringPE:  metrics.SpringPotential(w),
			GravityPE: metrics.GravityPotential(w),
			Total:     metrics.TotalEnergy(w),
			CenterY:   float64(w.Particles()[center].Pos.Y()),
		})
	}
	return series
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	w, err := cfg.Build()
	if err != nil {
		return err
	}
	w.SetSingleTick(true)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ms := []metrics.Metric{
		metrics.NewEnergyDrift(),
		metrics.NewMaxDisplacement(),
		metrics.NewStability(1e6),
	}

	fmt.Printf("running %dx%d cloth, solver %s...\n", cfg.Cloth.Width, cfg.Cloth.Height, cfg.Solver)
	start := time.Now()
	series := record(w, cfg, ms)
	elapsed := time.Since(start)

	results := make(map[string]float64, len(ms))
	for _, m := range ms {
		results[m.Name()] = m.Value()
	}

	runID, err := st.Save(storage.RunMetadata{
		Solver:    cfg.Solver,
		Dt:        float64(cfg.Dt),
		Duration:  float64(cfg.Duration),
		SubSteps:  cfg.SubSteps,
		Width:     cfg.Cloth.Width,
		Height:    cfg.Cloth.Height,
		Particles: len(w.Particles()),
		Springs:   len(w.Springs()),
		Metrics:   results,
	}, series)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", len(series))
	fmt.Println("\nmetrics:")
	for _, m := range ms {
		fmt.Printf("  %s: %.6f\n", m.Name(), m.Value())
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(cfg, frameRate)
}

func benchSolvers(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %dx%d cloth, %.1fs at dt=%.4f\n\n",
		cfg.Cloth.Width, cfg.Cloth.Height, cfg.Duration, cfg.Dt)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tTICKS\tTIME\tTICKS/SEC\tSTABILITY\tENERGY DRIFT")

	for _, s := range cloth.Solvers() {
		cfg.Solver = s.String()
		world, err := cfg.Build()
		if err != nil {
			return err
		}
		world.SetSingleTick(true)

		drift := metrics.NewEnergyDrift()
		stab := metrics.NewStability(1e6)

		start := time.Now()
		series := record(world, cfg, []metrics.Metric{drift, stab})
		elapsed := time.Since(start)

		ticksPerSec := float64(len(series)) / elapsed.Seconds()
		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%.2f\t%.4f\n",
			s, len(series), elapsed.Round(time.Microsecond), ticksPerSec,
			stab.Value(), drift.Value())
	}

	return w.Flush()
}

func compareSolvers(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	for _, name := range args {
		if _, err := cloth.ParseSolver(name); err != nil {
			return err
		}
	}

	fmt.Printf("comparing solvers on %dx%d cloth, %.1fs at dt=%.4f\n\n",
		cfg.Cloth.Width, cfg.Cloth.Height, cfg.Duration, cfg.Dt)

	for _, name := range args {
		cfg.Solver = name
		world, err := cfg.Build()
		if err != nil {
			return err
		}
		world.SetSingleTick(true)

		series := record(world, cfg, nil)
		data := make([]float64, len(series))
		for i := range series {
			data[i] = series[i].Total
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s: total energy", name)),
		)
		fmt.Println(graph)
		fmt.Println()
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
	fmt.Fprintln(w, "ID\tTIME\tSOLVER\tGRID\tDURATION\tDT\tSUBSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Solver,
			run.Width,
			run.Height,
			run.Duration,
			run.Dt,
			run.SubSteps,
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

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("solver: %s, grid: %dx%d\n", meta.Solver, meta.Width, meta.Height)
	fmt.Printf("samples: %d\n\n", len(series))

	columns := []struct {
		caption string
		pick    func(s storage.Sample) float64
	}{
		{"kinetic energy", func(s storage.Sample) float64 { return s.Kinetic }},
		{"spring potential", func(s storage.Sample) float64 { return s.SpringPE }},
		{"total energy", func(s storage.Sample) float64 { return s.Total }},
		{"center particle y", func(s storage.Sample) float64 { return s.CenterY }},
	}

	for _, col := range columns {
		data := make([]float64, len(series))
		for i := range series {
			data[i] = col.pick(series[i])
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}
