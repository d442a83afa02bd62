package model

// SweepMode selects additive or multiplicative frequency stepping. The
// numeric values are the FR card IFRQ codes.
type SweepMode int

const (
	SweepLinear      SweepMode = 0 // additive step
	SweepLogarithmic SweepMode = 1 // multiplicative step
)

// FrequencySweep defines the simulation frequency axis.
type FrequencySweep struct {
	Mode     SweepMode `json:"Mode"`
	Points   int       `json:"Points"`
	StartMHz float64   `json:"StartMHz"`

	// StepMHz is the increment between points for SweepLinear, and the
	// (dimensionless, >1) multiplication factor for SweepLogarithmic.
	StepMHz float64 `json:"StepMHz"`
}

// Frequencies expands the sweep into the explicit list of sample
// frequencies in MHz, in solver order. Result accessors index into
// this list by frequency index.
func (fs FrequencySweep) Frequencies() []float64 {
	if fs.Points <= 0 {
		return nil
	}
	out := make([]float64, 0, fs.Points)
	f := fs.StartMHz
	for i := 0; i < fs.Points; i++ {
		out = append(out, f)
		if fs.Mode == SweepLogarithmic {
			f *= fs.StepMHz
		} else {
			f += fs.StepMHz
		}
	}
	return out
}
