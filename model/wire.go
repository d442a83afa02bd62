package model

// Wire is a straight wire radiator, divided into Segments equal (or
// tapered) pieces for the method-of-moments computation. Wire tags are
// assigned by the translation layer in declaration order, starting at 1.
type Wire struct {
	Segments int   `json:"Segments"`
	Start    Point `json:"Start"`
	End      Point `json:"End"`

	// RadiusM is the conductor radius in metres.
	RadiusM float64 `json:"RadiusM"`

	// LengthTaper and RadiusTaper are the ratios between adjacent
	// segment lengths and radii along the wire. 1.0 means uniform.
	//
	// A value of 0 is treated as "unspecified" and is submitted to the
	// solver as 1.0, so scenario files may simply omit the fields.
	LengthTaper float64 `json:"LengthTaper,omitempty"`
	RadiusTaper float64 `json:"RadiusTaper,omitempty"`
}

// LengthM returns the end-to-end wire length in metres.
func (w Wire) LengthM() float64 {
	return w.Start.DistanceTo(w.End)
}
