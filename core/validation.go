package core

import (
	"errors"
	"fmt"

	"github.com/rogercaminal/nec2-antenna-simulator/model"
)

// Validation here is shape-only and per record. Cross-record
// references (an excitation naming a wire tag, a load's segment range
// against its wire's segment count) are owned by the engine, which
// holds the authoritative tag and segment address space and reports
// them when the model runs.
var (
	ErrInvalidGeometry         = errors.New("invalid geometry")
	ErrInvalidExcitation       = errors.New("invalid excitation")
	ErrInvalidLoad             = errors.New("invalid load")
	ErrInvalidGround           = errors.New("invalid ground")
	ErrInvalidFrequencySweep   = errors.New("invalid frequency sweep")
	ErrInvalidRadiationRequest = errors.New("invalid radiation pattern request")
)

func validateWire(w model.Wire) error {
	if w.Segments < 1 {
		return fmt.Errorf("%w: segment count %d, need at least 1", ErrInvalidGeometry, w.Segments)
	}
	if w.RadiusM <= 0 {
		return fmt.Errorf("%w: radius %g m, must be positive", ErrInvalidGeometry, w.RadiusM)
	}
	if w.Start == w.End {
		return fmt.Errorf("%w: zero-length wire, both endpoints at (%g, %g, %g)",
			ErrInvalidGeometry, w.Start.X, w.Start.Y, w.Start.Z)
	}
	if w.LengthTaper < 0 {
		return fmt.Errorf("%w: length taper %g, must not be negative", ErrInvalidGeometry, w.LengthTaper)
	}
	if w.RadiusTaper < 0 {
		return fmt.Errorf("%w: radius taper %g, must not be negative", ErrInvalidGeometry, w.RadiusTaper)
	}
	return nil
}

func validateExcitation(ex model.Excitation) error {
	switch ex.Kind {
	case model.ExcitationVoltage, model.ExcitationCurrent:
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidExcitation, ex.Kind)
	}
	if ex.WireTag < 1 {
		return fmt.Errorf("%w: wire tag %d, must be positive", ErrInvalidExcitation, ex.WireTag)
	}
	if ex.Segment < 1 {
		return fmt.Errorf("%w: segment %d, must be positive", ErrInvalidExcitation, ex.Segment)
	}
	if ex.Reserved != 0 {
		return fmt.Errorf("%w: reserved slot %d, must be 0", ErrInvalidExcitation, ex.Reserved)
	}
	return nil
}

func validateLoad(ld model.Load) error {
	switch ld.Kind {
	case model.LoadSeriesRLC, model.LoadParallelRLC,
		model.LoadSeriesRLCPerMetre, model.LoadParallelRLCPerMetre,
		model.LoadImpedance, model.LoadWireConductivity:
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidLoad, ld.Kind)
	}
	if ld.FirstSegment < 0 || ld.LastSegment < 0 {
		return fmt.Errorf("%w: segment range %d..%d, numbers must not be negative",
			ErrInvalidLoad, ld.FirstSegment, ld.LastSegment)
	}
	if ld.FirstSegment > 0 && ld.LastSegment > 0 && ld.FirstSegment > ld.LastSegment {
		return fmt.Errorf("%w: segment range %d..%d is inverted",
			ErrInvalidLoad, ld.FirstSegment, ld.LastSegment)
	}
	if len(ld.Params) > 3 {
		return fmt.Errorf("%w: %d parameters, the card holds at most 3", ErrInvalidLoad, len(ld.Params))
	}
	return nil
}

func validateGround(g model.Ground) error {
	switch g.Kind {
	case model.GroundFreeSpace, model.GroundFinite, model.GroundPerfect, model.GroundSommerfeld:
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidGround, g.Kind)
	}
	if g.RadialWires < 0 {
		return fmt.Errorf("%w: radial wire count %d, must not be negative", ErrInvalidGround, g.RadialWires)
	}
	if g.Kind == model.GroundFinite || g.Kind == model.GroundSommerfeld {
		if g.RelativePermittivity <= 0 {
			return fmt.Errorf("%w: relative permittivity %g, must be positive for a finite ground",
				ErrInvalidGround, g.RelativePermittivity)
		}
		if g.ConductivitySPerM <= 0 {
			return fmt.Errorf("%w: conductivity %g S/m, must be positive for a finite ground",
				ErrInvalidGround, g.ConductivitySPerM)
		}
	}
	return nil
}

func validateSweep(fs model.FrequencySweep) error {
	switch fs.Mode {
	case model.SweepLinear, model.SweepLogarithmic:
	default:
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidFrequencySweep, fs.Mode)
	}
	if fs.Points < 1 {
		return fmt.Errorf("%w: point count %d, need at least 1", ErrInvalidFrequencySweep, fs.Points)
	}
	if fs.StartMHz <= 0 {
		return fmt.Errorf("%w: start frequency %g MHz, must be positive", ErrInvalidFrequencySweep, fs.StartMHz)
	}
	if fs.Mode == model.SweepLogarithmic && fs.StepMHz <= 1 {
		return fmt.Errorf("%w: logarithmic multiplier %g, must be greater than 1",
			ErrInvalidFrequencySweep, fs.StepMHz)
	}
	return nil
}

func validatePattern(rp model.RadiationPattern) error {
	if rp.Mode < model.PatternNormal || rp.Mode > model.PatternRadialScreenCircularCliff {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidRadiationRequest, rp.Mode)
	}
	switch rp.Normalization {
	case model.NormalizationNone, model.NormalizationTotalGain:
	default:
		return fmt.Errorf("%w: unknown normalization %d", ErrInvalidRadiationRequest, rp.Normalization)
	}
	if rp.ThetaSamples < 1 {
		return fmt.Errorf("%w: theta sample count %d, need at least 1", ErrInvalidRadiationRequest, rp.ThetaSamples)
	}
	if rp.PhiSamples < 1 {
		return fmt.Errorf("%w: phi sample count %d, need at least 1", ErrInvalidRadiationRequest, rp.PhiSamples)
	}
	if rp.RadialDistanceM < 0 {
		return fmt.Errorf("%w: radial distance %g m, must not be negative", ErrInvalidRadiationRequest, rp.RadialDistanceM)
	}
	return nil
}
