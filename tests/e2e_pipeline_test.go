package tests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/rogercaminal/nec2-antenna-simulator/core"
	"github.com/rogercaminal/nec2-antenna-simulator/internal/logging"
	"github.com/rogercaminal/nec2-antenna-simulator/internal/observability"
	"github.com/rogercaminal/nec2-antenna-simulator/kb"
	"github.com/rogercaminal/nec2-antenna-simulator/metrics"
	"github.com/rogercaminal/nec2-antenna-simulator/model"
)

type pipelineTestEnv struct {
	ctx       context.Context
	cancel    context.CancelFunc
	registry  *prometheus.Registry
	collector *observability.SolverCollector
	catalog   *kb.Catalog
	engine    *captureEngine
	rec       *core.RecordingSolver
	builder   *core.ModelBuilder
}

func newPipelineTestEnv(t *testing.T) *pipelineTestEnv {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

	registry := prometheus.NewRegistry()
	collector, err := observability.NewSolverCollector(registry)
	if err != nil {
		cancel()
		t.Fatalf("NewSolverCollector: %v", err)
	}

	catalog := kb.NewCatalog()
	catalog.Subscribe(func(kb.Event) {
		collector.SetCatalogSize(catalog.Len())
	})

	engine := &captureEngine{
		zs: []complex128{73.1 + 42.5i, 50, 150},
		currents: [][]complex128{
			{0.02 - 0.01i, 0.03 - 0.005i, 0.02 - 0.01i},
		},
		pattern: &core.Pattern{
			ThetaDeg: []float64{0, 90},
			PhiDeg:   []float64{0},
			GainDB:   [][]float64{{-999}, {2.15}},
		},
	}
	rec := core.NewRecordingSolver(engine)
	builder := core.NewModelBuilder(rec,
		core.WithLogger(logging.Noop()),
		core.WithRecorder(collector),
	)

	env := &pipelineTestEnv{
		ctx:       ctx,
		cancel:    cancel,
		registry:  registry,
		collector: collector,
		catalog:   catalog,
		engine:    engine,
		rec:       rec,
		builder:   builder,
	}

	t.Cleanup(cancel)

	return env
}

func TestEndToEndScenarioPipeline(t *testing.T) {
	env := newPipelineTestEnv(t)
	ctx := env.ctx

	doc := `{
		"name": "quarter-wave-monopole",
		"comment": "0.51 m monopole over a perfect ground plane",
		"wires": [
			{
				"segments": 9,
				"start": {"x": 0, "y": 0, "z": 0},
				"end": {"x": 0, "y": 0, "z": 0.51},
				"radius_m": 0.002
			}
		],
		"excitations": [
			{"kind": "voltage", "wire_tag": 1, "segment": 1, "real": 1}
		],
		"loads": [
			{"kind": "wire_conductivity", "wire_tag": 1, "params": [5.8e7]}
		],
		"ground": {"kind": "perfect"},
		"sweep": {"mode": "linear", "points": 3, "start_mhz": 140, "step_mhz": 5},
		"patterns": [
			{"theta_samples": 19, "phi_samples": 37, "theta_step_deg": 5, "phi_step_deg": 5}
		]
	}`

	sc, err := core.LoadScenario(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.Ground == nil || sc.Ground.Kind != model.GroundPerfect {
		t.Fatalf("ground = %+v, want perfect", sc.Ground)
	}

	if err := env.catalog.Add(&sc); err != nil {
		t.Fatalf("catalog.Add: %v", err)
	}
	scenario := env.catalog.Get("quarter-wave-monopole")
	if scenario == nil {
		t.Fatalf("scenario missing from catalog; have %v", env.catalog.Names())
	}

	env.builder.Apply(*scenario)
	result, err := env.builder.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantCards := []core.Card{
		{Name: "GW", Ints: []int{1, 9}, Floats: []float64{0, 0, 0, 0, 0, 0.51, 0.002, 1, 1}},
		{Name: "GE", Ints: []int{1}},
		{Name: "EX", Ints: []int{0, 1, 1, 0}, Floats: []float64{1, 0, 0, 0, 0, 0}},
		{Name: "LD", Ints: []int{5, 1, 0, 0}, Floats: []float64{5.8e7, 0, 0}},
		{Name: "GN", Ints: []int{1, 0}, Floats: []float64{0, 0, 0, 0, 0, 0}},
		{Name: "FR", Ints: []int{0, 3}, Floats: []float64{140, 5}},
		{Name: "RP", Ints: []int{0, 19, 37, 0, 0}, Floats: []float64{0, 0, 0, 0, 5, 5, 0}},
		{Name: "XQ", Ints: []int{0}},
	}
	if diff := cmp.Diff(wantCards, env.rec.Cards); diff != "" {
		t.Errorf("card stream mismatch (-want +got):\n%s", diff)
	}

	freqs := result.Frequencies()
	if diff := cmp.Diff([]float64{140, 145, 150}, freqs); diff != "" {
		t.Errorf("frequency axis mismatch (-want +got):\n%s", diff)
	}
	zs, err := result.Impedances()
	if err != nil {
		t.Fatalf("Impedances: %v", err)
	}
	if diff := cmp.Diff(env.engine.zs, zs); diff != "" {
		t.Errorf("impedance sweep mismatch (-want +got):\n%s", diff)
	}

	sm := core.NewSegmentMap(env.builder.Wires())
	if sm.Len() != 9 {
		t.Fatalf("segment map size = %d, want 9", sm.Len())
	}
	center, ok := sm.Center(1, 5)
	if !ok {
		t.Fatalf("feed region segment not found")
	}
	if center.Z != 0.255 {
		t.Errorf("segment 5 centre Z = %v, want 0.255", center.Z)
	}

	gs, err := metrics.ReflectionCoefficients(zs, []float64{50})
	if err != nil {
		t.Fatalf("ReflectionCoefficients: %v", err)
	}
	vs, err := metrics.VSWRs(zs, []float64{50})
	if err != nil {
		t.Fatalf("VSWRs: %v", err)
	}
	ms, err := metrics.Mismatches(zs, []float64{50})
	if err != nil {
		t.Fatalf("Mismatches: %v", err)
	}
	if gs[1] != 0 || vs[1] != 1 {
		t.Errorf("matched point: gamma = %v vswr = %v, want 0 and 1", gs[1], vs[1])
	}
	if vs[2] != 3 || ms[2] != 0.75 {
		t.Errorf("150 ohm point: vswr = %v mismatch = %v, want 3 and 0.75", vs[2], ms[2])
	}
	if gs[0] <= 0 || gs[0] >= 1 || vs[0] <= 1 {
		t.Errorf("reactive point: gamma = %v vswr = %v, want 0 < gamma < 1 and vswr > 1", gs[0], vs[0])
	}

	assertCounter(t, env.collector.Cards, "GW", 1)
	assertCounter(t, env.collector.Cards, "LD", 1)
	assertCounter(t, env.collector.Cards, "XQ", 1)
	assertCounter(t, env.collector.Runs, "ok", 1)
	if got := testutil.ToFloat64(env.collector.CatalogScenarios); got != 1 {
		t.Errorf("catalog_scenarios = %v, want 1", got)
	}
	if got := testutil.ToFloat64(env.collector.ModelWires); got != 1 {
		t.Errorf("model_wires = %v, want 1", got)
	}
	if got := testutil.ToFloat64(env.collector.ModelSegments); got != 9 {
		t.Errorf("model_segments = %v, want 9", got)
	}
}

func TestEndToEndRejectsUnbuildableScenario(t *testing.T) {
	env := newPipelineTestEnv(t)
	ctx := env.ctx

	// The loader accepts this document; the builder must refuse the
	// zero-segment wire before anything reaches the engine.
	doc := `
name: broken-dipole
wires:
  - segments: 0
    start: {z: -0.25}
    end: {z: 0.25}
    radius_m: 0.001
excitations:
  - wire_tag: 1
    segment: 1
    real: 1
`
	sc, err := core.LoadScenario(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if err := env.catalog.Add(&sc); err != nil {
		t.Fatalf("catalog.Add: %v", err)
	}

	env.builder.Apply(sc)
	if err := env.builder.Err(); !errors.Is(err, core.ErrInvalidGeometry) {
		t.Fatalf("builder error = %v, want ErrInvalidGeometry", err)
	}

	if _, err := env.builder.Run(ctx); !errors.Is(err, core.ErrRunPending) {
		t.Fatalf("Run error = %v, want ErrRunPending", err)
	}
	if env.engine.executed {
		t.Error("engine executed despite a pending construction error")
	}
	if got := len(env.rec.Cards); got != 0 {
		t.Errorf("cards reached the engine = %d, want 0", got)
	}

	assertCounter(t, env.collector.ValidationFailures, "GW", 1)
	assertCounter(t, env.collector.Runs, "error", 0)
}

func assertCounter(t *testing.T, vec *prometheus.CounterVec, label string, want float64) {
	t.Helper()

	if got := testutil.ToFloat64(vec.WithLabelValues(label)); got != want {
		t.Errorf("counter %q = %v, want %v", label, got, want)
	}
}

// captureEngine is a stand-in numerical engine: it accepts every card
// and serves canned sweep results once executed.
type captureEngine struct {
	zs       []complex128
	currents [][]complex128
	pattern  *core.Pattern
	executed bool
}

func (e *captureEngine) Wire(int, int, float64, float64, float64, float64, float64, float64, float64, float64, float64) error {
	return nil
}

func (e *captureEngine) GeometryComplete(int) error { return nil }

func (e *captureEngine) Excitation(int, int, int, int, float64, float64, float64, float64, float64, float64) error {
	return nil
}

func (e *captureEngine) Load(int, int, int, int, float64, float64, float64) error { return nil }

func (e *captureEngine) Ground(int, int, float64, float64, float64, float64, float64, float64) error {
	return nil
}

func (e *captureEngine) FrequencySweep(int, int, float64, float64) error { return nil }

func (e *captureEngine) RadiationPattern(int, int, int, int, int, float64, float64, float64, float64, float64, float64, float64) error {
	return nil
}

func (e *captureEngine) Execute(int) error {
	e.executed = true
	return nil
}

func (e *captureEngine) InputImpedance(i int) (complex128, error) {
	if !e.executed || i < 0 || i >= len(e.zs) {
		return 0, core.ErrNoResults
	}
	return e.zs[i], nil
}

func (e *captureEngine) SegmentCurrents(i int) ([]complex128, error) {
	if !e.executed || i < 0 || i >= len(e.currents) {
		return nil, core.ErrNoResults
	}
	return e.currents[i], nil
}

func (e *captureEngine) GainPattern(i int) (*core.Pattern, error) {
	if !e.executed || i != 0 || e.pattern == nil {
		return nil, core.ErrNoResults
	}
	return e.pattern, nil
}
