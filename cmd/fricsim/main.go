package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fricsim/internal/analysis"
	"github.com/san-kum/fricsim/internal/automation"
	"github.com/san-kum/fricsim/internal/config"
	"github.com/san-kum/fricsim/internal/controllers"
	"github.com/san-kum/fricsim/internal/dynamo"
	"github.com/san-kum/fricsim/internal/experiment"
	"github.com/san-kum/fricsim/internal/export"
	"github.com/san-kum/fricsim/internal/friction"
	"github.com/san-kum/fricsim/internal/integrators"
	"github.com/san-kum/fricsim/internal/metrics"
	"github.com/san-kum/fricsim/internal/optim"
	"github.com/san-kum/fricsim/internal/physics"
	"github.com/san-kum/fricsim/internal/sim"
	"github.com/san-kum/fricsim/internal/storage"
	"github.com/san-kum/fricsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	torque     float64
	theta      float64
	omega      float64
	pos        float64
	vel        float64
	seed       int64
	integrator string
	controller string
	kp         float64
	ki         float64
	kd         float64
	target     float64
	configFile string
	preset     string
	noFriction bool
	// sweep and fit
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepRuns  int
	fitMetric  string
	// monte carlo
	mcTrials  int
	mcPerturb float64
	// export-svg
	svgOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fricsim",
		Short: "stiction-aware joint friction simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fricsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the velocity signal",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "inspect the precomputed dry friction table",
		RunE:  showTable,
	}
	tableCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	compareCmd := &cobra.Command{
		Use:   "compare [model]",
		Short: "compare a run with friction compensation on and off",
		Args:  cobra.ExactArgs(1),
		RunE:  compareFriction,
	}
	addRunFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep a friction parameter across parallel runs",
		RunE:  sweepFriction,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "ts", "parameter to sweep (ts, tc, tv, wbrk, kf, bf)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 1.0, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 4.0, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 7, "number of runs")
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	sweepCmd.Flags().Float64Var(&torque, "torque", config.DefaultTorque, "constant applied torque")

	fitCmd := &cobra.Command{
		Use:   "fit",
		Short: "grid search a friction parameter against a metric",
		RunE:  fitParameter,
	}
	fitCmd.Flags().StringVar(&sweepParam, "param", "tc", "parameter to fit (ts, tc, tv, wbrk, kf, bf)")
	fitCmd.Flags().Float64Var(&sweepFrom, "from", 0.1, "first parameter value")
	fitCmd.Flags().Float64Var(&sweepTo, "to", 0.5, "last parameter value")
	fitCmd.Flags().IntVar(&sweepRuns, "steps", 5, "number of grid points")
	fitCmd.Flags().StringVar(&fitMetric, "metric", "control_effort", "metric to minimize")
	fitCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	fitCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	fitCmd.Flags().Float64Var(&torque, "torque", config.DefaultTorque, "constant applied torque")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	montecarloCmd := &cobra.Command{
		Use:   "montecarlo [model]",
		Short: "estimate stick probability under perturbed torque",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	montecarloCmd.Flags().IntVar(&mcTrials, "trials", 20, "number of trials")
	montecarloCmd.Flags().Float64Var(&mcPerturb, "perturb", 0.5, "torque perturbation amplitude")
	montecarloCmd.Flags().Float64Var(&torque, "torque", config.DefaultTorque, "base applied torque")
	montecarloCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	montecarloCmd.Flags().Float64Var(&duration, "time", 2.0, "duration per trial")
	montecarloCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a phase portrait to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, liveCmd, tableCmd, compareCmd, sweepCmd, fitCmd, scenarioCmd, montecarloCmd, exportSVGCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&torque, "torque", config.DefaultTorque, "constant applied torque")
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "initial angle (pendulum)")
	cmd.Flags().Float64Var(&omega, "omega", 0.0, "initial angular velocity (pendulum)")
	cmd.Flags().Float64Var(&pos, "pos", 0.0, "initial position (joint)")
	cmd.Flags().Float64Var(&vel, "vel", 0.0, "initial velocity (joint)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().StringVar(&controller, "controller", "constant", "controller")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "pid kp")
	cmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "pid ki")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "pid kd")
	cmd.Flags().Float64Var(&target, "target", 0.0, "controller target")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().BoolVar(&noFriction, "no-friction", false, "disable friction compensation")
}

// buildConfig resolves the effective configuration for a model. Flags
// override a config file, which overrides a preset.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.Model = model
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("controller") {
		cfg.Controller = controller
	}
	if cmd.Flags().Changed("torque") {
		cfg.ControllerParams.Torque = torque
	}
	if cmd.Flags().Changed("theta") {
		cfg.InitState.Theta = theta
	}
	if cmd.Flags().Changed("omega") {
		cfg.InitState.Omega = omega
	}
	if cmd.Flags().Changed("pos") {
		cfg.InitState.Pos = pos
	}
	if cmd.Flags().Changed("vel") {
		cfg.InitState.Vel = vel
	}
	if cmd.Flags().Changed("kp") {
		cfg.ControllerParams.Kp = kp
	}
	if cmd.Flags().Changed("ki") {
		cfg.ControllerParams.Ki = ki
	}
	if cmd.Flags().Changed("kd") {
		cfg.ControllerParams.Kd = kd
	}
	if cmd.Flags().Changed("target") {
		cfg.ControllerParams.Target = target
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if noFriction {
		cfg.Friction.Enabled = false
	}
	if cfg.Controller == "" {
		cfg.Controller = "none"
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	fmt.Printf("running %s simulation (friction: %v)...\n", cfg.Model, cfg.Friction.Enabled)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Model, cfg.Dt, cfg.Duration, cfg.Seed, cfg.Integrator, cfg.Controller, cfg.Friction.Enabled, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tINTEG\tCTRL\tFRICTION")

	for _, run := range runs {
		fric := "off"
		if run.Friction {
			fric = "on"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Controller,
			fric,
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

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	columns := []struct {
		name    string
		caption string
	}{
		{"x0", "position"},
		{"x1", "velocity"},
		{"u0", "applied torque"},
		{"friction", "friction torque"},
	}

	for _, col := range columns {
		data, err := st.Column(runID, col.name)
		if err != nil || len(data) < 2 {
			continue
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

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	data, err := st.Column(runID, "x1")
	if err != nil {
		return err
	}
	if len(data) < 2 {
		return fmt.Errorf("not enough data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (velocity)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	dyn, err := registry.GetModel(cfg.Model)
	if err != nil {
		return err
	}
	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}
	ctrl, err := registry.GetController(cfg.Controller, cfg.GetControllerParams(dyn.ControlDim()))
	if err != nil {
		return err
	}

	var fric *friction.State
	if cfg.Friction.Enabled {
		fric = friction.NewState(cfg.FrictionParams())
		if err := fric.BuildTable(nil); err != nil {
			return fmt.Errorf("friction table: %w", err)
		}
	}

	m := viz.NewModel(dyn, integ, ctrl, fric, cfg.GetInitState(), cfg.Dt, cfg.Model)
	return viz.Run(m)
}

func showTable(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	fric := friction.NewState(cfg.FrictionParams())
	if err := fric.BuildTable(nil); err != nil {
		return err
	}

	table := fric.Table()
	min, max := table.Domain()
	fmt.Printf("dry friction table: %d samples\n", table.Len())
	fmt.Printf("domain: [%.6f, %.6f] rad/s, step %.6f\n\n", min, max, table.Step())

	data := make([]float64, table.Len())
	for i := range data {
		_, y := table.Sample(i)
		data[i] = y
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("dry friction torque vs stick velocity"),
	)
	fmt.Println(graph)
	fmt.Println()

	_, first := table.Sample(0)
	_, last := table.Sample(table.Len() - 1)
	fmt.Printf("boundary values: %.6f at min, %.6f at max\n", first, last)

	return nil
}

func compareFriction(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("comparing %s with friction compensation on and off\n", cfg.Model)
	fmt.Printf("(dt=%.4f, duration=%.1fs, controller=%s)\n\n", cfg.Dt, cfg.Duration, cfg.Controller)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRICTION\tFINAL_POS\tFINAL_VEL\tCHATTER\tDISSIPATION\tEFFORT")

	for _, enabled := range []bool{true, false} {
		runCfg := *cfg
		runCfg.Friction.Enabled = enabled

		exp := experiment.New(&runCfg)
		if err := exp.Setup(experiment.NewRegistry()); err != nil {
			return err
		}

		result, err := exp.Run(context.Background())
		if err != nil {
			return err
		}

		final := result.States[len(result.States)-1]
		label := "off"
		if enabled {
			label = "on"
		}
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.4f\t%.4f\t%.4f\n",
			label, final[0], final[1],
			result.Metrics["chatter"],
			result.Metrics["dissipation"],
			result.Metrics["control_effort"],
		)
	}

	return w.Flush()
}

func sweepFriction(cmd *cobra.Command, args []string) error {
	if sweepRuns < 2 {
		return fmt.Errorf("need at least 2 runs")
	}

	values := make([]float64, sweepRuns)
	for i := range values {
		values[i] = sweepFrom + (sweepTo-sweepFrom)*float64(i)/float64(sweepRuns-1)
	}

	ensemble := sim.NewEnsemble(sweepRuns, func(idx int) (*sim.Simulator, error) {
		p := friction.DefaultParams()
		p.Dt = dt
		if err := setFrictionParam(&p, sweepParam, values[idx]); err != nil {
			return nil, err
		}

		fric := friction.NewState(p)
		if err := fric.BuildTable(nil); err != nil {
			return nil, err
		}

		s := sim.New(physics.NewJoint(), integrators.NewRK4(), controllers.NewConstant(torque))
		s.SetCompensator(fric)
		s.AddMetric(metrics.NewChatter(1e-4))
		s.AddMetric(metrics.NewDissipation())
		return s, nil
	})

	simCfg := dynamo.DefaultConfig()
	simCfg.Dt = dt
	simCfg.Duration = duration

	fmt.Printf("sweeping %s from %.3f to %.3f over %d runs...\n\n", sweepParam, sweepFrom, sweepTo, sweepRuns)
	start := time.Now()

	results, err := ensemble.Run(context.Background(), dynamo.State{0, 0}, simCfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL_VEL\tCHATTER\tDISSIPATION\n", sweepParam)
	for i, result := range results {
		final := result.States[len(result.States)-1]
		fmt.Fprintf(w, "%.4f\t%.6f\t%.4f\t%.4f\n",
			values[i], final[1],
			result.Metrics["chatter"],
			result.Metrics["dissipation"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	return nil
}

func fitParameter(cmd *cobra.Command, args []string) error {
	gs := optim.NewGridSearch([]string{sweepParam}, [][]float64{optim.Range(sweepFrom, sweepTo, sweepRuns)})

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := config.DefaultConfig()
		cfg.Model = "joint"
		cfg.Controller = "constant"
		cfg.ControllerParams.Torque = torque
		cfg.Dt = dt
		cfg.Duration = duration
		for name, v := range params {
			if err := setFrictionParam(&cfg.Friction.Params, name, v); err != nil {
				return nil, err
			}
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(experiment.NewRegistry()); err != nil {
			return nil, err
		}
		return exp, nil
	}

	fmt.Printf("fitting %s over [%.3f, %.3f] in %d steps, minimizing %s...\n",
		sweepParam, sweepFrom, sweepTo, sweepRuns, fitMetric)
	start := time.Now()

	best, score, err := gs.Search(context.Background(), build, fitMetric)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no candidate produced a result")
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Printf("best %s: %.4f\n", sweepParam, best[sweepParam])
	fmt.Printf("%s: %.6f\n", fitMetric, score)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(context.Background(), scenario, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMODEL\tSTEPS\tFINAL_POS\tFINAL_VEL\tCHATTER")
	for i, result := range results {
		final := result.States[len(result.States)-1]
		vel := 0.0
		if len(final) > 1 {
			vel = final[1]
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.6f\t%.6f\t%.4f\n",
			i+1, scenario.Steps[i].Model, result.StepsTaken, final[0], vel,
			result.Metrics["chatter"])
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base := config.DefaultConfig()
	base.Model = args[0]
	base.Controller = "constant"
	base.ControllerParams.Torque = torque
	base.Dt = dt
	base.Duration = duration

	mc := &automation.MonteCarloConfig{
		Base:         base,
		Perturbation: mcPerturb,
		NumTrials:    mcTrials,
		Seed:         seed,
	}

	fmt.Printf("running %d trials, torque %.2f +- %.2f Nm...\n\n", mcTrials, torque, mcPerturb)

	results, err := automation.RunMonteCarlo(context.Background(), mc, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tTORQUE\tFINAL_VEL\tSTUCK")
	for _, r := range results {
		vel := 0.0
		if len(r.FinalState) > 1 {
			vel = r.FinalState[1]
		}
		fmt.Fprintf(w, "%d\t%.4f\t%.6f\t%v\n", r.TrialID, r.Torque, vel, r.Stuck)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nstick fraction: %.2f\n", automation.StickFraction(results))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	x0, err := st.Column(runID, "x0")
	if err != nil {
		return err
	}
	x1, err := st.Column(runID, "x1")
	if err != nil {
		return err
	}

	svg := export.PhaseToSVG(x0, x1, 800, 600, "#00ff88")
	if svg == "" {
		return fmt.Errorf("not enough data to plot")
	}

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func setFrictionParam(p *friction.Params, name string, v float64) error {
	switch name {
	case "ts":
		p.Ts = v
	case "tc":
		p.Tc = v
	case "tv":
		p.Tv = v
	case "wbrk":
		p.Wbrk = v
	case "kf":
		p.Kf = v
	case "bf":
		p.Bf = v
	default:
		return fmt.Errorf("unknown friction parameter: %s", name)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	_, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to export")
	}

	header := []string{"time"}
	columns := [][]float64{}
	for _, name := range []string{"x0", "x1", "u0", "friction"} {
		data, err := st.Column(runID, name)
		if err != nil {
			continue
		}
		header = append(header, name)
		columns = append(columns, data)
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}

	for i := range times {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, col := range columns {
			v := 0.0
			if i < len(col) {
				v = col[i]
			}
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	x0, _ := st.Column(runID, "x0")
	x1, _ := st.Column(runID, "x1")
	u0, _ := st.Column(runID, "u0")
	fric, _ := st.Column(runID, "friction")

	result := &dynamo.Result{
		Times:   times,
		Metrics: meta.Metrics,
	}
	for i := range x0 {
		state := dynamo.State{x0[i]}
		if i < len(x1) {
			state = append(state, x1[i])
		}
		result.States = append(result.States, state)
	}
	for i := range u0 {
		result.Controls = append(result.Controls, dynamo.Control{u0[i]})
	}
	result.Frictions = fric

	return storage.ExportJSON(os.Stdout, meta.Model, meta.Integrator, meta.Controller, meta.Dt, meta.Duration, result)
}
