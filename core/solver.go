package core

import "errors"

// ErrNoResults is returned by result accessors before a successful
// Execute has produced anything to read.
var ErrNoResults = errors.New("no solver results available")

// Solver is the boundary to the numerical engine. The engine's model
// input is card based: each method below submits exactly one card,
// with arguments in the positional order that card expects on the
// wire. This layer never reorders or reinterprets them, so a reader
// can line each signature up against the engine's card reference.
//
// Construction methods may reject a card (engine in the wrong state,
// unknown tag). Result accessors return ErrNoResults until Execute
// has completed successfully.
type Solver interface {
	// Wire submits a GW card: wire tag, segment count, start and end
	// coordinates in metres, conductor radius in metres, and the
	// segment-length and radius taper ratios.
	Wire(tag, segments int, x1, y1, z1, x2, y2, z2, radiusM, lengthTaper, radiusTaper float64) error

	// GeometryComplete submits the GE card that ends geometry input.
	// groundPlane is the card's ground-plane flag.
	GeometryComplete(groundPlane int) error

	// Excitation submits an EX card (I1..I4, F1..F6).
	Excitation(kind, tag, segment, reserved int, f1, f2, f3, f4, f5, f6 float64) error

	// Load submits an LD card (I1..I4, F1..F3).
	Load(kind, tag, firstSegment, lastSegment int, f1, f2, f3 float64) error

	// Ground submits a GN card (I1, I2, F1..F6).
	Ground(kind, radialWires int, f1, f2, f3, f4, f5, f6 float64) error

	// FrequencySweep submits an FR card (I1, I2, F1, F2).
	FrequencySweep(mode, points int, startMHz, step float64) error

	// RadiationPattern submits an RP card (I1..I5, F1..F7).
	RadiationPattern(mode, thetaSamples, phiSamples, outputFormat, normalization int,
		f1, f2, f3, f4, f5, f6, f7 float64) error

	// Execute submits the XQ card and blocks until the engine has
	// solved the model for every sweep point.
	Execute(option int) error

	// InputImpedance returns the complex input impedance seen at the
	// excitation for the given frequency index.
	InputImpedance(freqIndex int) (complex128, error)

	// SegmentCurrents returns the complex current on every segment for
	// the given frequency index, in the engine's global segment order.
	SegmentCurrents(freqIndex int) ([]complex128, error)

	// GainPattern returns the far-field samples recorded for the given
	// frequency index.
	GainPattern(freqIndex int) (*Pattern, error)
}

// Pattern is a far-field gain grid, theta major: GainDB[i][j] is the
// gain in dBi at ThetaDeg[i], PhiDeg[j].
type Pattern struct {
	ThetaDeg []float64   `json:"ThetaDeg"`
	PhiDeg   []float64   `json:"PhiDeg"`
	GainDB   [][]float64 `json:"GainDB"`
}
