package model

// ExcitationKind selects the source type placed on a segment. The
// numeric values are the EX card I1 codes and reach the solver unchanged.
type ExcitationKind int

const (
	ExcitationVoltage ExcitationKind = 0 // applied-E-field voltage source
	ExcitationCurrent ExcitationKind = 4 // elementary current source
)

// Excitation drives one segment of one wire with a complex source
// amplitude. WireTag and Segment are 1-based.
type Excitation struct {
	Kind    ExcitationKind `json:"Kind"`
	WireTag int            `json:"WireTag"`
	Segment int            `json:"Segment"`

	// Reserved mirrors the EX card I4 slot, which this layer does not
	// use; it must be 0.
	Reserved int `json:"Reserved,omitempty"`

	Real float64 `json:"Real"`
	Imag float64 `json:"Imag"`

	// Extra fills the trailing EX card float slots (F3..F6). Submitted
	// as given; normally all zero.
	Extra [4]float64 `json:"Extra"`
}
