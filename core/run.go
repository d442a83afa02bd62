package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rogercaminal/nec2-antenna-simulator/internal/logging"
	"github.com/rogercaminal/nec2-antenna-simulator/model"
)

var (
	// ErrSolverExecution wraps any failure reported by the engine
	// while solving the model.
	ErrSolverExecution = errors.New("solver execution failed")

	// ErrRunPending is returned by Run when construction already
	// failed; the underlying validation error is wrapped alongside.
	ErrRunPending = errors.New("model has a pending construction error")
)

// Run submits the execute directive and blocks until the engine
// returns. It is a single synchronous round trip: no retry, no
// timeout, and no cancellation of the engine call itself. Callers
// needing bounded latency wrap Run externally; ctx feeds the run span
// and log records only.
//
// A builder whose construction failed refuses to run.
func (b *ModelBuilder) Run(ctx context.Context) (*RunResult, error) {
	if b.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRunPending, b.err)
	}

	ctx, span := startSpan(ctx, "ModelBuilder.Run",
		attribute.Int("model.wires", len(b.wires)),
		attribute.Int("model.segments", b.segments))
	defer span.End()

	b.countCard("XQ")
	start := time.Now()
	err := b.solver.Execute(0)
	elapsed := time.Since(start)
	if err != nil {
		b.observeRun("error", elapsed)
		span.RecordError(err)
		b.log.Error(ctx, "solver execution failed",
			logging.String("error", err.Error()),
			logging.Float64("seconds", elapsed.Seconds()))
		return nil, fmt.Errorf("%w: %w", ErrSolverExecution, err)
	}
	b.observeRun("ok", elapsed)
	b.log.Info(ctx, "solver run complete",
		logging.Int("wires", len(b.wires)),
		logging.Int("segments", b.segments),
		logging.Float64("seconds", elapsed.Seconds()))
	return &RunResult{solver: b.solver, sweep: b.sweep}, nil
}

func (b *ModelBuilder) observeRun(status string, d time.Duration) {
	if b.rec != nil {
		b.rec.RunObserved(status, d)
	}
}

// RunResult reads results out of a completed solver run. It holds the
// solver handle the run used; results stay valid until that handle is
// reused for another model.
type RunResult struct {
	solver Solver
	sweep  *model.FrequencySweep
}

// Frequencies returns the swept frequency axis in MHz, or nil when no
// sweep was applied (the engine then solves at its default frequency,
// index 0).
func (r *RunResult) Frequencies() []float64 {
	if r.sweep == nil {
		return nil
	}
	return r.sweep.Frequencies()
}

// Impedance returns the input impedance at one frequency index.
func (r *RunResult) Impedance(freqIndex int) (complex128, error) {
	return r.solver.InputImpedance(freqIndex)
}

// Impedances returns the input impedance at every sweep point, in
// sweep order. Without an applied sweep it returns the single
// index-zero impedance.
func (r *RunResult) Impedances() ([]complex128, error) {
	n := 1
	if r.sweep != nil {
		n = r.sweep.Points
	}
	out := make([]complex128, n)
	for i := range out {
		z, err := r.solver.InputImpedance(i)
		if err != nil {
			return nil, fmt.Errorf("impedance at sweep point %d: %w", i, err)
		}
		out[i] = z
	}
	return out, nil
}

// Currents returns the per-segment complex currents at one frequency
// index, in the engine's global segment order.
func (r *RunResult) Currents(freqIndex int) ([]complex128, error) {
	return r.solver.SegmentCurrents(freqIndex)
}

// Pattern returns the far-field samples at one frequency index.
func (r *RunResult) Pattern(freqIndex int) (*Pattern, error) {
	return r.solver.GainPattern(freqIndex)
}
