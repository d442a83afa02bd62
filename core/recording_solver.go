package core

// Card is one recorded solver call: the card mnemonic plus its integer
// and float arguments in submission order.
type Card struct {
	Name   string
	Ints   []int
	Floats []float64
}

// RecordingSolver captures every card submitted through it, in order,
// and optionally forwards each call to an inner Solver. With a nil
// inner solver it is a dry-run sink whose result accessors return
// ErrNoResults.
//
// Tests use it to assert exact card order and arguments; the demo
// binary uses it to print the card stream a scenario produces.
type RecordingSolver struct {
	Inner Solver
	Cards []Card
}

// NewRecordingSolver wraps inner, which may be nil for a pure dry run.
func NewRecordingSolver(inner Solver) *RecordingSolver {
	return &RecordingSolver{Inner: inner}
}

// CardNames returns the mnemonics of the recorded cards, in order.
func (r *RecordingSolver) CardNames() []string {
	names := make([]string, len(r.Cards))
	for i, c := range r.Cards {
		names[i] = c.Name
	}
	return names
}

// Reset drops all recorded cards, keeping the inner solver.
func (r *RecordingSolver) Reset() {
	r.Cards = nil
}

func (r *RecordingSolver) record(name string, ints []int, floats []float64) {
	r.Cards = append(r.Cards, Card{Name: name, Ints: ints, Floats: floats})
}

func (r *RecordingSolver) Wire(tag, segments int, x1, y1, z1, x2, y2, z2, radiusM, lengthTaper, radiusTaper float64) error {
	r.record("GW", []int{tag, segments}, []float64{x1, y1, z1, x2, y2, z2, radiusM, lengthTaper, radiusTaper})
	if r.Inner == nil {
		return nil
	}
	return r.Inner.Wire(tag, segments, x1, y1, z1, x2, y2, z2, radiusM, lengthTaper, radiusTaper)
}

func (r *RecordingSolver) GeometryComplete(groundPlane int) error {
	r.record("GE", []int{groundPlane}, nil)
	if r.Inner == nil {
		return nil
	}
	return r.Inner.GeometryComplete(groundPlane)
}

func (r *RecordingSolver) Excitation(kind, tag, segment, reserved int, f1, f2, f3, f4, f5, f6 float64) error {
	r.record("EX", []int{kind, tag, segment, reserved}, []float64{f1, f2, f3, f4, f5, f6})
	if r.Inner == nil {
		return nil
	}
	return r.Inner.Excitation(kind, tag, segment, reserved, f1, f2, f3, f4, f5, f6)
}

func (r *RecordingSolver) Load(kind, tag, firstSegment, lastSegment int, f1, f2, f3 float64) error {
	r.record("LD", []int{kind, tag, firstSegment, lastSegment}, []float64{f1, f2, f3})
	if r.Inner == nil {
		return nil
	}
	return r.Inner.Load(kind, tag, firstSegment, lastSegment, f1, f2, f3)
}

func (r *RecordingSolver) Ground(kind, radialWires int, f1, f2, f3, f4, f5, f6 float64) error {
	r.record("GN", []int{kind, radialWires}, []float64{f1, f2, f3, f4, f5, f6})
	if r.Inner == nil {
		return nil
	}
	return r.Inner.Ground(kind, radialWires, f1, f2, f3, f4, f5, f6)
}

func (r *RecordingSolver) FrequencySweep(mode, points int, startMHz, step float64) error {
	r.record("FR", []int{mode, points}, []float64{startMHz, step})
	if r.Inner == nil {
		return nil
	}
	return r.Inner.FrequencySweep(mode, points, startMHz, step)
}

func (r *RecordingSolver) RadiationPattern(mode, thetaSamples, phiSamples, outputFormat, normalization int,
	f1, f2, f3, f4, f5, f6, f7 float64) error {
	r.record("RP", []int{mode, thetaSamples, phiSamples, outputFormat, normalization},
		[]float64{f1, f2, f3, f4, f5, f6, f7})
	if r.Inner == nil {
		return nil
	}
	return r.Inner.RadiationPattern(mode, thetaSamples, phiSamples, outputFormat, normalization, f1, f2, f3, f4, f5, f6, f7)
}

func (r *RecordingSolver) Execute(option int) error {
	r.record("XQ", []int{option}, nil)
	if r.Inner == nil {
		return nil
	}
	return r.Inner.Execute(option)
}

func (r *RecordingSolver) InputImpedance(freqIndex int) (complex128, error) {
	if r.Inner == nil {
		return 0, ErrNoResults
	}
	return r.Inner.InputImpedance(freqIndex)
}

func (r *RecordingSolver) SegmentCurrents(freqIndex int) ([]complex128, error) {
	if r.Inner == nil {
		return nil, ErrNoResults
	}
	return r.Inner.SegmentCurrents(freqIndex)
}

func (r *RecordingSolver) GainPattern(freqIndex int) (*Pattern, error) {
	if r.Inner == nil {
		return nil, ErrNoResults
	}
	return r.Inner.GainPattern(freqIndex)
}
