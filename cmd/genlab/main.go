package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/mwaldner/genlab/internal/analysis"
	"github.com/mwaldner/genlab/internal/config"
	"github.com/mwaldner/genlab/internal/export"
	"github.com/mwaldner/genlab/internal/machine"
	"github.com/mwaldner/genlab/internal/metrics"
	"github.com/mwaldner/genlab/internal/session"
	"github.com/mwaldner/genlab/internal/storage"
	"github.com/mwaldner/genlab/internal/viz"
)

var (
	dataDir    string
	field      string
	omega      float64
	b0         float64
	coilWidth  float64
	coilHeight float64
	turns      float64
	dt         float64
	duration   float64
	frames     int
	configFile string
	preset     string
	angleDeg   float64
	outPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "genlab",
		Short: "DC generator simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// default to the live view when no command given
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".genlab", "data directory")

	addSimFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&field, "field", "cosine", "field model (cosine|dipole)")
		cmd.Flags().Float64Var(&omega, "omega", 1.0, "angular velocity (rad/s, sign sets direction)")
		cmd.Flags().Float64Var(&b0, "b0", 1.0, "peak field (T)")
		cmd.Flags().Float64Var(&coilWidth, "width", 1.0, "coil width (m)")
		cmd.Flags().Float64Var(&coilHeight, "height", 1.0, "coil height (m)")
		cmd.Flags().Float64Var(&turns, "turns", 1.0, "winding count")
		cmd.Flags().Float64Var(&dt, "dt", 0.05, "timestep (s)")
		cmd.Flags().Float64Var(&duration, "time", 10.0, "run duration (s)")
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a batch simulation and store the result",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive simulation with live schematic and charts",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frames, "frames", session.DefaultFrameBatch, "steps per animation frame")
	rootCmd.Flags().IntVar(&frames, "frames", session.DefaultFrameBatch, "steps per animation frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored series in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "ripple frequency analysis of the rectified output",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	chartCmd := &cobra.Command{
		Use:   "chart [run_id]",
		Short: "render PNG charts of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  chartRun,
	}
	chartCmd.Flags().StringVar(&outPath, "out", "charts", "output directory")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "write an SVG snapshot of the schematic",
		RunE:  writeSVG,
	}
	svgCmd.Flags().Float64Var(&angleDeg, "angle", 30.0, "coil angle (degrees)")
	svgCmd.Flags().StringVar(&outPath, "out", "schematic.svg", "output file")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare field models on the same parameter set",
		RunE:  compareFields,
	}
	addSimFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFIELD\tOMEGA\tB0\tTURNS\tDT\tTIME")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.0f\t%.3f\t%.1fs\n",
					name, cfg.Field, cfg.Omega, cfg.PeakField, cfg.Turns, cfg.Dt, cfg.Duration)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportCSVCmd, chartCmd, svgCmd, compareCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges preset, config file and flags; flags win when set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("field") {
		cfg.Field = field
	}
	if flags.Changed("omega") {
		cfg.Omega = omega
	}
	if flags.Changed("b0") {
		cfg.PeakField = b0
	}
	if flags.Changed("width") {
		cfg.CoilWidth = coilWidth
	}
	if flags.Changed("height") {
		cfg.CoilHeight = coilHeight
	}
	if flags.Changed("turns") {
		cfg.Turns = turns
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}

	return cfg, nil
}

func buildGenerator(cmd *cobra.Command) (*machine.Generator, *config.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	params, err := cfg.Parameters()
	if err != nil {
		return nil, nil, err
	}
	fieldModel, err := cfg.FieldModel()
	if err != nil {
		return nil, nil, err
	}

	return machine.New(params, fieldModel), cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	gen, cfg, err := buildGenerator(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s generator simulation...\n", cfg.Field)
	start := time.Now()

	result, err := session.Run(context.Background(), gen, metrics.Default())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Field, gen.Params, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for name, val := range result.Metrics {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, val)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	gen, cfg, err := buildGenerator(cmd)
	if err != nil {
		return err
	}

	n := cfg.Frames
	if cmd.Flags().Changed("frames") {
		n = frames
	}

	m := viz.NewModel(gen, n)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
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
	fmt.Fprintln(w, "ID\tFIELD\tTIME\tOMEGA\tDT\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.4fs\t%d\n",
			run.ID,
			run.Field,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.Omega,
			run.Params.Dt,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	result, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if result.Steps == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("field: %s\n", meta.Field)
	fmt.Printf("samples: %d\n\n", result.Steps)

	series := []struct {
		caption string
		data    []float64
	}{
		{"flux (Wb)", result.Flux},
		{"emf (V)", result.EMF},
		{"rectified dc output (V)", result.Rectified},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	result, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if result.Steps == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("ripple analysis: %s\n", meta.ID)
	fmt.Printf("field: %s\n\n", meta.Field)

	ps := analysis.PowerSpectrum(result.Rectified)
	plotData := ps
	if len(ps) >= 8 {
		plotData = ps[:len(ps)/4]
	}

	if len(plotData) > 1 {
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (rectified output)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := analysis.RippleFrequency(result.Rectified, meta.Params.Dt)
	fmt.Printf("dominant ripple frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	fmt.Printf("expected for omega=%.2f rad/s: %.3f hz\n",
		meta.Params.Omega, math.Abs(meta.Params.Omega)/math.Pi)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	result, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	result.Metrics = meta.Metrics

	return storage.ExportJSONStdout(meta.ID, meta.Field, meta.Params, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if result.Steps == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "angle", "flux", "emf", "rectified"}); err != nil {
		return err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Angles[i], 'f', 6, 64),
			strconv.FormatFloat(result.Flux[i], 'f', 6, 64),
			strconv.FormatFloat(result.EMF[i], 'f', 6, 64),
			strconv.FormatFloat(result.Rectified[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func chartRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if result.Steps == 0 {
		return fmt.Errorf("no data to chart")
	}

	if err := export.SaveRunCharts(outPath, result); err != nil {
		return err
	}
	fmt.Printf("charts written to %s\n", outPath)
	return nil
}

func writeSVG(cmd *cobra.Command, args []string) error {
	svg := export.SchematicSVG(angleDeg*math.Pi/180, 4.0)
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("schematic written to %s\n", outPath)
	return nil
}

func compareFields(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Parameters()
	if err != nil {
		return err
	}

	fmt.Printf("comparing field models (omega=%.2f, dt=%.4f, time=%.1fs)\n\n",
		params.Omega, params.Dt, params.MaxTime)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tDC_LEVEL\tRIPPLE\tPEAK_EMF\tTIME_MS")

	for _, name := range machine.FieldModelNames() {
		fieldModel, err := machine.NewFieldModel(name)
		if err != nil {
			return err
		}

		gen := machine.New(params, fieldModel)
		start := time.Now()
		result, err := session.Run(context.Background(), gen, metrics.Default())
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\t%.2f\n",
			name,
			result.Metrics["dc_level"],
			result.Metrics["ripple_factor"],
			result.Metrics["peak_emf"],
			float64(elapsed.Microseconds())/1000,
		)
	}
	return w.Flush()
}
