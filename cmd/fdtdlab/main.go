package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/emwave/fdtdlab/internal/config"
	"github.com/emwave/fdtdlab/internal/fdtd"
	"github.com/emwave/fdtdlab/internal/metrics"
	"github.com/emwave/fdtdlab/internal/probe"
	"github.com/emwave/fdtdlab/internal/scenario"
	"github.com/emwave/fdtdlab/internal/sources"
	"github.com/emwave/fdtdlab/internal/storage"
	"github.com/emwave/fdtdlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	width      int
	height     int
	steps      int
	boundary   string
	fps        int
	batch      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fdtdlab",
		Short: "2D electromagnetic wave simulation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fdtdlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a simulation and store the probe series",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&fps, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&batch, "batch", 6, "steps per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	probeCmd := &cobra.Command{
		Use:   "probe [run_id]",
		Short: "plot a stored probe series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotProbe,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum of a stored probe series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure update throughput",
		RunE:  benchGrid,
	}
	benchCmd.Flags().IntVar(&width, "width", 256, "grid width")
	benchCmd.Flags().IntVar(&height, "height", 256, "grid height")
	benchCmd.Flags().IntVar(&steps, "steps", 1000, "steps to run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenarios and run presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("scenarios:")
			for _, id := range scenario.List() {
				fmt.Printf("  %-22s %s\n", id.Name(), id.Description())
			}
			fmt.Println("run presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).Export(args[0], os.Stdout)
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, probeCmd, analyzeCmd, benchCmd, presetsCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named run preset")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "grid width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "grid height")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "steps to run")
	cmd.Flags().StringVar(&boundary, "boundary", "cpml", "boundary mode (cpml, mur, none)")
}

// resolveConfig applies preset, config file and flags, in that order. A
// config file replaces the preset as a whole (its unset fields take the
// defaults); flags and the scenario argument override single fields.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
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
			return nil, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("width") {
		cfg.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = height
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("boundary") {
		cfg.Boundary = boundary
	}
	if len(args) > 0 {
		cfg.Scenario = args[0]
	}
	return cfg, nil
}

// buildGrid constructs the grid, scenario and source a config describes.
func buildGrid(cfg *config.Config) (*fdtd.Grid, *probe.Probe, error) {
	g, err := fdtd.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Boundary {
	case "", "cpml":
		g.SetBoundary(fdtd.BoundaryCPML)
	case "mur":
		g.SetBoundary(fdtd.BoundaryMur)
	case "none":
		g.SetBoundary(fdtd.BoundaryNone)
	default:
		return nil, nil, fmt.Errorf("unknown boundary mode: %s", cfg.Boundary)
	}

	id, ok := scenario.ByName(cfg.Scenario)
	if !ok {
		return nil, nil, fmt.Errorf("unknown scenario: %s", cfg.Scenario)
	}
	scenario.Apply(g, id)

	src, err := buildSource(&cfg.Source)
	if err != nil {
		return nil, nil, err
	}
	if src != nil {
		g.AddSource(src)
	}

	p, err := probe.NewProbe(cfg.Probe.X, cfg.Probe.Y, cfg.Probe.Size)
	if err != nil {
		return nil, nil, err
	}
	return g, p, nil
}

func buildWaveform(sc *config.SourceConfig) (sources.Waveform, error) {
	switch sc.Waveform {
	case "", "sine":
		return sources.NewSinusoidal(sc.Frequency, sc.Amplitude)
	case "gaussian":
		return sources.NewGaussian(sc.Center, sc.Tau, sc.Amplitude)
	case "modulated":
		return sources.NewModulatedGaussian(sc.Frequency, sc.Center, sc.Tau, sc.Amplitude)
	case "ricker":
		return sources.NewRicker(sc.Frequency, sc.Center, sc.Amplitude)
	case "step":
		return sources.NewStep(sc.Center, sc.Amplitude), nil
	}
	return sources.Waveform{}, fmt.Errorf("unknown waveform: %s", sc.Waveform)
}

func buildSource(sc *config.SourceConfig) (sources.Source, error) {
	if sc.Type == "" || sc.Type == "none" {
		return nil, nil
	}
	wave, err := buildWaveform(sc)
	if err != nil {
		return nil, err
	}
	mode := sources.Soft
	if sc.Mode == "hard" {
		mode = sources.Hard
	}

	switch sc.Type {
	case "point":
		return sources.NewPoint(sc.X, sc.Y, wave, mode), nil
	case "plane":
		return sources.NewPlaneWaveVertical(sc.X, wave, mode), nil
	case "beam":
		return sources.NewGaussianBeam(sc.X, sc.Y, sc.Waist, wave, mode)
	case "array":
		arr, err := sources.NewLinearArray(sc.X, sc.Y, sc.Elements, sc.Spacing, sc.Frequency, mode)
		if err != nil {
			return nil, err
		}
		arr.SetProgressivePhase(sc.Phase)
		return arr, nil
	}
	return nil, fmt.Errorf("unknown source type: %s", sc.Type)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	g, p, err := buildGrid(cfg)
	if err != nil {
		return err
	}

	ms := []metrics.Metric{metrics.NewFieldEnergy(), metrics.NewEnergyDecay(), metrics.NewStability()}
	series := make([]float32, 0, cfg.Steps)

	start := time.Now()
	for i := 0; i < cfg.Steps; i++ {
		g.Step()
		p.Record(g.Ez(), g.Width())
		series = append(series, p.LastValue())
		for _, m := range ms {
			m.Observe(g)
		}
		if !g.IsStable() {
			fmt.Fprintf(os.Stderr, "unstable at step %d; stopping\n", g.TimeStep())
			break
		}
	}
	elapsed := time.Since(start)

	values := make(map[string]float64, len(ms))
	for _, m := range ms {
		values[m.Name()] = m.Value()
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Scenario: cfg.Scenario,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Steps:    int(g.TimeStep()),
		Boundary: cfg.Boundary,
		Metrics:  values,
	}, series)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d steps in %v (%.0f steps/s)\n",
		runID, g.TimeStep(), elapsed.Round(time.Millisecond),
		float64(g.TimeStep())/elapsed.Seconds())
	for _, m := range ms {
		fmt.Printf("  %-14s %.6g\n", m.Name(), m.Value())
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	g, p, err := buildGrid(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(viz.NewModel(g, p, batch, fps), tea.WithAltScreen()).Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tSIZE\tSTEPS\tBOUNDARY\tENERGY")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%s\t%.4g\n",
			r.ID, r.Scenario, r.Width, r.Height, r.Steps, r.Boundary, r.Metrics["energy"])
	}
	return w.Flush()
}

func plotProbe(cmd *cobra.Command, args []string) error {
	series, err := storage.New(dataDir).LoadSeries(args[0])
	if err != nil {
		return err
	}
	data := make([]float64, len(series))
	for i, v := range series {
		data[i] = float64(v)
	}
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(100),
		asciigraph.Caption("probe Ez over time")))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	series, err := storage.New(dataDir).LoadSeries(args[0])
	if err != nil {
		return err
	}
	size := probe.MinAnalyzerSize
	for size*2 <= len(series) {
		size *= 2
	}
	a, err := probe.NewAnalyzer(size)
	if err != nil {
		return err
	}
	window := series
	if len(window) > size {
		window = window[len(window)-size:]
	}
	spectrum := a.Compute(window)

	fmt.Println(asciigraph.Plot(spectrum,
		asciigraph.Height(15),
		asciigraph.Width(100),
		asciigraph.Caption("magnitude (dB) by bin")))

	peak := a.FindPeakBin()
	fmt.Printf("peak: bin %d, normalized frequency %.4f, %.1f dB\n",
		peak, a.BinToFrequency(peak), spectrum[peak])
	return nil
}

func benchGrid(cmd *cobra.Command, args []string) error {
	g, err := fdtd.New(width, height)
	if err != nil {
		return err
	}
	g.PlacePulse(width/2, height/2, 1)

	start := time.Now()
	g.StepN(steps)
	elapsed := time.Since(start)

	cells := float64(width) * float64(height) * float64(steps)
	fmt.Printf("%dx%d, %d steps: %v (%.0f steps/s, %.1f Mcells/s)\n",
		width, height, steps, elapsed.Round(time.Millisecond),
		float64(steps)/elapsed.Seconds(), cells/elapsed.Seconds()/1e6)
	return nil
}
