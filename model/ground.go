package model

// GroundKind selects the ground approximation under the antenna. The
// numeric values are the GN card I1 codes and reach the solver
// unchanged.
type GroundKind int

const (
	GroundFreeSpace  GroundKind = -1 // no ground plane
	GroundFinite     GroundKind = 0  // finite ground, reflection-coefficient approximation
	GroundPerfect    GroundKind = 1  // perfectly conducting ground
	GroundSommerfeld GroundKind = 2  // finite ground, Sommerfeld/Norton method
)

// Ground describes the ground model. The electrical constants apply to
// the finite-ground kinds only; RadialWires adds a radial-wire screen
// when positive.
type Ground struct {
	Kind        GroundKind `json:"Kind"`
	RadialWires int        `json:"RadialWires,omitempty"`

	// RelativePermittivity is the relative dielectric constant of the
	// ground medium; ConductivitySPerM its conductivity in siemens per
	// metre. Both must be positive for GroundFinite and GroundSommerfeld.
	RelativePermittivity float64 `json:"RelativePermittivity,omitempty"`
	ConductivitySPerM    float64 `json:"ConductivitySPerM,omitempty"`

	// Extra fills the trailing GN card float slots (F3..F6), used for
	// radial-screen and second-medium parameters. Submitted as given.
	Extra [4]float64 `json:"Extra"`
}
