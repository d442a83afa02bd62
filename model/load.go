package model

// LoadKind selects the load network attached to a segment run. The
// numeric values are the LD card LDTYP codes and reach the solver
// unchanged.
type LoadKind int

const (
	LoadSeriesRLC           LoadKind = 0 // lumped series RLC
	LoadParallelRLC         LoadKind = 1 // lumped parallel RLC
	LoadSeriesRLCPerMetre   LoadKind = 2 // series RLC per metre of wire
	LoadParallelRLCPerMetre LoadKind = 3 // parallel RLC per metre of wire
	LoadImpedance           LoadKind = 4 // fixed impedance, resistance and reactance in ohms
	LoadWireConductivity    LoadKind = 5 // wire conductivity in siemens per metre
)

// Load attaches a lumped or distributed load to an inclusive range of
// segments on one wire. Segment numbers are 1-based; 0 in both range
// fields is the "all segments of the wire" sentinel.
type Load struct {
	Kind         LoadKind `json:"Kind"`
	WireTag      int      `json:"WireTag"`
	FirstSegment int      `json:"FirstSegment,omitempty"`
	LastSegment  int      `json:"LastSegment,omitempty"`

	// Params holds up to three reals whose meaning depends on Kind
	// (R, L, C for the RLC kinds; R, X for LoadImpedance; conductivity
	// for LoadWireConductivity). Missing trailing values are submitted
	// as zero.
	Params []float64 `json:"Params"`
}
