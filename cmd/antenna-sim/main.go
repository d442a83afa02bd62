package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/rogercaminal/nec2-antenna-simulator/core"
	"github.com/rogercaminal/nec2-antenna-simulator/internal/logging"
	"github.com/rogercaminal/nec2-antenna-simulator/internal/observability"
	"github.com/rogercaminal/nec2-antenna-simulator/kb"
	"github.com/rogercaminal/nec2-antenna-simulator/metrics"
	"github.com/rogercaminal/nec2-antenna-simulator/model"
)

// Config collects the command-line knobs for one invocation.
type Config struct {
	ScenarioPath string
	ScenarioName string
	Z0           float64
	Impedances   string
	MetricsAddr  string
}

func main() {
	scenarioPath := flag.String("scenario", "", "Path to a scenario file (JSON or YAML); empty runs the built-in half-wave dipole")
	scenarioName := flag.String("name", "", "Scenario to run when the file holds several; empty picks the first by name")
	z0 := flag.Float64("z0", 50, "Reference impedance in ohms for the matching figures")
	impedances := flag.String("impedances", "73.1+42.5i,50,0+50i", "Comma-separated complex impedances fed through the matching figures")
	metricsAddr := flag.String("metrics-addr", "", "HTTP address for Prometheus /metrics; empty exits after the dry run")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	cfg := Config{
		ScenarioPath: *scenarioPath,
		ScenarioName: *scenarioName,
		Z0:           *z0,
		Impedances:   *impedances,
		MetricsAddr:  *metricsAddr,
	}
	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "antenna-sim failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log logging.Logger) error {
	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	collector, err := observability.NewSolverCollector(nil)
	if err != nil {
		return fmt.Errorf("init metrics collector: %w", err)
	}
	metricsSrv := serveMetrics(cfg.MetricsAddr, collector, log)

	catalog := kb.NewCatalog()
	catalog.Subscribe(func(kb.Event) {
		collector.SetCatalogSize(catalog.Len())
	})

	scenarios, err := loadScenarios(cfg.ScenarioPath)
	if err != nil {
		return err
	}
	for i := range scenarios {
		if err := catalog.Add(&scenarios[i]); err != nil {
			return fmt.Errorf("catalog scenario %q: %w", scenarios[i].Name, err)
		}
	}

	name := cfg.ScenarioName
	if name == "" {
		name = catalog.Names()[0]
	}
	scenario := catalog.Get(name)
	if scenario == nil {
		return fmt.Errorf("scenario %q not found; have %v", name, catalog.Names())
	}
	log.Info(ctx, "running scenario",
		logging.String("name", scenario.Name),
		logging.Int("wires", len(scenario.Wires)),
		logging.Int("segments", scenario.TotalSegments()),
	)

	// Dry run: translate the scenario into its card stream without a
	// numerical engine attached.
	rec := core.NewRecordingSolver(nil)
	builder := core.NewModelBuilder(rec, core.WithLogger(log), core.WithRecorder(collector))
	builder.Apply(*scenario)
	if _, err := builder.Run(ctx); err != nil {
		return fmt.Errorf("dry run of %q: %w", scenario.Name, err)
	}
	printCards(os.Stdout, rec.Cards)

	sm := core.NewSegmentMap(builder.Wires())
	fmt.Printf("Model: %d wires, %d segments\n", len(builder.Wires()), sm.Len())
	if len(scenario.Excitations) > 0 {
		ex := scenario.Excitations[0]
		if center, ok := sm.Center(ex.WireTag, ex.Segment); ok {
			fmt.Printf("Feed point: wire %d segment %d at (%.3f, %.3f, %.3f) m\n",
				ex.WireTag, ex.Segment, center.X, center.Y, center.Z)
		}
	}

	if err := printMatchingFigures(os.Stdout, cfg.Impedances, cfg.Z0); err != nil {
		return err
	}

	if metricsSrv != nil {
		log.Info(ctx, "dry run complete; serving metrics until interrupted",
			logging.String("addr", cfg.MetricsAddr))
		stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		<-stopCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	return nil
}

func loadScenarios(path string) ([]model.Scenario, error) {
	if path == "" {
		return []model.Scenario{builtinDipole()}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario file: %w", err)
	}
	defer f.Close()

	scs, err := core.LoadScenarios(f)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	return scs, nil
}

// builtinDipole is the demo model: a centre-fed 0.99 m dipole,
// resonant near 144 MHz, swept across the 2 m band.
func builtinDipole() model.Scenario {
	return model.Scenario{
		Name:    "half-wave-dipole-144mhz",
		Comment: "Centre-fed 0.99 m dipole in free space.",
		Wires: []model.Wire{{
			Segments: 21,
			Start:    model.Point{Z: -0.495},
			End:      model.Point{Z: 0.495},
			RadiusM:  0.001,
		}},
		Excitations: []model.Excitation{{
			Kind:    model.ExcitationVoltage,
			WireTag: 1,
			Segment: 11,
			Real:    1,
		}},
		Sweep: &model.FrequencySweep{Mode: model.SweepLinear, Points: 11, StartMHz: 140, StepMHz: 1},
		Patterns: []model.RadiationPattern{{
			ThetaSamples: 37,
			PhiSamples:   73,
			ThetaStepDeg: 5,
			PhiStepDeg:   5,
		}},
	}
}

func printCards(w io.Writer, cards []core.Card) {
	fmt.Fprintln(w, "Card stream:")
	for _, c := range cards {
		fmt.Fprintf(w, "  %-2s  ints=%v  floats=%v\n", c.Name, c.Ints, c.Floats)
	}
}

func printMatchingFigures(w io.Writer, raw string, z0 float64) error {
	zs, err := parseImpedances(raw)
	if err != nil {
		return err
	}
	if len(zs) == 0 {
		return nil
	}

	gs, err := metrics.ReflectionCoefficients(zs, []float64{z0})
	if err != nil {
		return err
	}
	vs, err := metrics.VSWRs(zs, []float64{z0})
	if err != nil {
		return err
	}
	ms, err := metrics.Mismatches(zs, []float64{z0})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Matching against %.1f ohm:\n", z0)
	for i, z := range zs {
		fmt.Fprintf(w, "  Z = %7.1f%+7.1fj ohm  |gamma| = %6.4f  VSWR = %7.3f  mismatch = %6.4f\n",
			real(z), imag(z), gs[i], vs[i], ms[i])
	}
	return nil
}

func parseImpedances(raw string) ([]complex128, error) {
	var zs []complex128
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		z, err := strconv.ParseComplex(field, 128)
		if err != nil {
			return nil, fmt.Errorf("impedance %q: %w", field, err)
		}
		zs = append(zs, z)
	}
	return zs, nil
}

func serveMetrics(addr string, collector *observability.SolverCollector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
