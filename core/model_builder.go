package core

import (
	"context"
	"fmt"
	"time"

	"github.com/rogercaminal/nec2-antenna-simulator/internal/logging"
	"github.com/rogercaminal/nec2-antenna-simulator/model"
)

// TranslationRecorder receives translation-layer events so a metrics
// backend can count card submissions, rejected records and solver runs
// without this package importing one.
type TranslationRecorder interface {
	CardSubmitted(card string)
	ValidationFailed(card string)
	RunObserved(status string, d time.Duration)
	SetModelCounts(wires, segments int)
}

// ModelBuilder assembles one solver model from parameter records. Each
// category method validates its records, submits them as cards in the
// exact order the engine expects, and returns the builder for
// chaining. The first validation or submission error sticks: later
// calls become no-ops and Run refuses until a fresh builder is made.
//
// A builder drives exactly one Solver handle and is not safe for
// concurrent use.
type ModelBuilder struct {
	solver Solver
	log    logging.Logger
	rec    TranslationRecorder

	err error

	wires    []model.Wire
	segments int
	sweep    *model.FrequencySweep
}

// ModelBuilderOption configures optional collaborators on a builder.
type ModelBuilderOption func(*ModelBuilder)

// WithLogger attaches a structured logger. The default is a noop
// logger.
func WithLogger(log logging.Logger) ModelBuilderOption {
	return func(b *ModelBuilder) {
		if log != nil {
			b.log = log
		}
	}
}

// WithRecorder attaches a translation metrics recorder.
func WithRecorder(rec TranslationRecorder) ModelBuilderOption {
	return func(b *ModelBuilder) {
		if rec != nil {
			b.rec = rec
		}
	}
}

// NewModelBuilder returns a builder bound to the given solver handle.
func NewModelBuilder(solver Solver, opts ...ModelBuilderOption) *ModelBuilder {
	b := &ModelBuilder{
		solver: solver,
		log:    logging.Noop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Err returns the first error recorded by the builder, or nil.
func (b *ModelBuilder) Err() error {
	return b.err
}

// Wires returns the wires applied so far, in tag order (tag is list
// index plus one).
func (b *ModelBuilder) Wires() []model.Wire {
	out := make([]model.Wire, len(b.wires))
	copy(out, b.wires)
	return out
}

// SegmentCount returns the total number of segments applied so far.
func (b *ModelBuilder) SegmentCount() int {
	return b.segments
}

// Geometry submits the wire list followed by its excitations. Wires
// are assigned tags in list order, continuing after any wires applied
// earlier; after the last wire the geometry is closed with a GE card,
// then each excitation is submitted. Records are applied in list
// order and the builder halts at the first invalid one.
func (b *ModelBuilder) Geometry(wires []model.Wire, excitations []model.Excitation) *ModelBuilder {
	if b.err != nil {
		return b
	}
	base := len(b.wires)
	for i, w := range wires {
		if err := validateWire(w); err != nil {
			b.rejectCard("GW")
			return b.fail(fmt.Errorf("wire[%d]: %w", i, err))
		}
		lt, rt := w.LengthTaper, w.RadiusTaper
		if lt == 0 {
			lt = 1
		}
		if rt == 0 {
			rt = 1
		}
		tag := base + i + 1
		if err := b.solver.Wire(tag, w.Segments,
			w.Start.X, w.Start.Y, w.Start.Z,
			w.End.X, w.End.Y, w.End.Z,
			w.RadiusM, lt, rt); err != nil {
			return b.fail(fmt.Errorf("submit wire %d: %w", tag, err))
		}
		b.countCard("GW")
		b.wires = append(b.wires, w)
		b.segments += w.Segments
	}
	if err := b.solver.GeometryComplete(1); err != nil {
		return b.fail(fmt.Errorf("complete geometry: %w", err))
	}
	b.countCard("GE")
	for i, ex := range excitations {
		if err := validateExcitation(ex); err != nil {
			b.rejectCard("EX")
			return b.fail(fmt.Errorf("excitation[%d]: %w", i, err))
		}
		if err := b.solver.Excitation(int(ex.Kind), ex.WireTag, ex.Segment, ex.Reserved,
			ex.Real, ex.Imag, ex.Extra[0], ex.Extra[1], ex.Extra[2], ex.Extra[3]); err != nil {
			return b.fail(fmt.Errorf("submit excitation[%d]: %w", i, err))
		}
		b.countCard("EX")
	}
	b.updateCounts()
	b.log.Debug(context.Background(), "geometry applied",
		logging.Int("wires", len(wires)),
		logging.Int("excitations", len(excitations)),
		logging.Int("segments", b.segments))
	return b
}

// Loads submits one LD card per load, in argument order. Missing
// parameters are padded with zeros.
func (b *ModelBuilder) Loads(loads ...model.Load) *ModelBuilder {
	if b.err != nil {
		return b
	}
	for i, ld := range loads {
		if err := validateLoad(ld); err != nil {
			b.rejectCard("LD")
			return b.fail(fmt.Errorf("load[%d]: %w", i, err))
		}
		var p [3]float64
		copy(p[:], ld.Params)
		if err := b.solver.Load(int(ld.Kind), ld.WireTag, ld.FirstSegment, ld.LastSegment,
			p[0], p[1], p[2]); err != nil {
			return b.fail(fmt.Errorf("submit load[%d]: %w", i, err))
		}
		b.countCard("LD")
	}
	return b
}

// GroundModel submits the GN card describing the environment below
// the antenna.
func (b *ModelBuilder) GroundModel(g model.Ground) *ModelBuilder {
	if b.err != nil {
		return b
	}
	if err := validateGround(g); err != nil {
		b.rejectCard("GN")
		return b.fail(err)
	}
	if err := b.solver.Ground(int(g.Kind), g.RadialWires,
		g.RelativePermittivity, g.ConductivitySPerM,
		g.Extra[0], g.Extra[1], g.Extra[2], g.Extra[3]); err != nil {
		return b.fail(fmt.Errorf("submit ground: %w", err))
	}
	b.countCard("GN")
	return b
}

// Sweep submits the FR card defining the frequency axis. The sweep is
// remembered so RunResult can report the axis alongside per-point
// results.
func (b *ModelBuilder) Sweep(fs model.FrequencySweep) *ModelBuilder {
	if b.err != nil {
		return b
	}
	if err := validateSweep(fs); err != nil {
		b.rejectCard("FR")
		return b.fail(err)
	}
	if err := b.solver.FrequencySweep(int(fs.Mode), fs.Points, fs.StartMHz, fs.StepMHz); err != nil {
		return b.fail(fmt.Errorf("submit frequency sweep: %w", err))
	}
	b.countCard("FR")
	cp := fs
	b.sweep = &cp
	return b
}

// Pattern submits one RP card requesting far-field samples.
func (b *ModelBuilder) Pattern(rp model.RadiationPattern) *ModelBuilder {
	if b.err != nil {
		return b
	}
	if err := validatePattern(rp); err != nil {
		b.rejectCard("RP")
		return b.fail(err)
	}
	if err := b.solver.RadiationPattern(int(rp.Mode), rp.ThetaSamples, rp.PhiSamples,
		rp.OutputFormat, int(rp.Normalization),
		rp.GainType, rp.Averaging,
		rp.ThetaStartDeg, rp.PhiStartDeg, rp.ThetaStepDeg, rp.PhiStepDeg,
		rp.RadialDistanceM); err != nil {
		return b.fail(fmt.Errorf("submit radiation pattern: %w", err))
	}
	b.countCard("RP")
	return b
}

// Apply submits a whole scenario in canonical card order: geometry and
// excitations, loads, ground, frequency sweep, then radiation pattern
// requests.
func (b *ModelBuilder) Apply(sc model.Scenario) *ModelBuilder {
	b.Geometry(sc.Wires, sc.Excitations)
	if len(sc.Loads) > 0 {
		b.Loads(sc.Loads...)
	}
	if sc.Ground != nil {
		b.GroundModel(*sc.Ground)
	}
	if sc.Sweep != nil {
		b.Sweep(*sc.Sweep)
	}
	for _, rp := range sc.Patterns {
		b.Pattern(rp)
	}
	return b
}

func (b *ModelBuilder) fail(err error) *ModelBuilder {
	b.err = err
	b.log.Warn(context.Background(), "model construction halted", logging.String("error", err.Error()))
	return b
}

func (b *ModelBuilder) countCard(card string) {
	if b.rec != nil {
		b.rec.CardSubmitted(card)
	}
}

func (b *ModelBuilder) rejectCard(card string) {
	if b.rec != nil {
		b.rec.ValidationFailed(card)
	}
}

func (b *ModelBuilder) updateCounts() {
	if b.rec != nil {
		b.rec.SetModelCounts(len(b.wires), b.segments)
	}
}
