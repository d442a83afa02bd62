// Package metrics derives matching-quality figures from complex
// terminal impedances: reflection coefficient magnitude, VSWR, and
// mismatch loss factor.
//
// All functions are pure. Singular inputs follow IEEE-754 arithmetic
// through to the result (infinities and NaN) rather than turning into
// errors; a short circuit against a matched reference is data, not a
// failure.
package metrics

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
)

// ErrShapeMismatch is returned by the batch functions when the
// reference slice length neither matches the impedance slice length
// nor is exactly 1.
var ErrShapeMismatch = errors.New("impedance and reference shapes do not match")

// ReflectionCoefficient returns the magnitude of the voltage
// reflection coefficient, |(z - z0) / (z + z0)|, for a terminal
// impedance z against a real reference impedance z0.
//
// When z + z0 is exactly zero the division produces infinite
// components and the magnitude is +Inf. z0 is not validated: zero or
// negative references are accepted and flow through the same
// arithmetic (z = 0 against z0 = 0 gives NaN).
func ReflectionCoefficient(z complex128, z0 float64) float64 {
	ref := complex(z0, 0)
	return cmplx.Abs((z - ref) / (z + ref))
}

// VSWR returns the voltage standing wave ratio (1 + g) / (1 - g) for
// g = ReflectionCoefficient(z, z0).
//
// The raw ratio is preserved over the whole domain: g = 1 gives +Inf,
// g > 1 gives a negative ratio, and g = +Inf gives NaN, the IEEE
// result of (1+Inf)/(1-Inf). Nothing is clamped; a caller that wants
// to treat g > 1 as a data-quality signal can still see it here.
func VSWR(z complex128, z0 float64) float64 {
	g := ReflectionCoefficient(z, z0)
	return (1 + g) / (1 - g)
}

// Mismatch returns the mismatch loss factor 1 - g*g, the fraction of
// incident power that crosses into the load. g > 1 yields a negative
// factor and g = +Inf yields -Inf, again unclamped.
func Mismatch(z complex128, z0 float64) float64 {
	g := ReflectionCoefficient(z, z0)
	return 1 - g*g
}

// ReflectionCoefficients is the elementwise batch form of
// ReflectionCoefficient. The reference slice must either match the
// impedance slice in length or hold exactly one value, which is then
// applied to every element.
func ReflectionCoefficients(zs []complex128, z0s []float64) ([]float64, error) {
	refs, err := broadcast(zs, z0s)
	if err != nil {
		return nil, err
	}
	diff := make([]complex128, len(zs))
	sum := make([]complex128, len(zs))
	cmplxs.SubTo(diff, zs, refs)
	cmplxs.AddTo(sum, zs, refs)
	cmplxs.DivTo(diff, diff, sum)

	out := make([]float64, len(zs))
	cmplxs.Abs(out, diff)
	return out, nil
}

// VSWRs is the elementwise batch form of VSWR.
func VSWRs(zs []complex128, z0s []float64) ([]float64, error) {
	gs, err := ReflectionCoefficients(zs, z0s)
	if err != nil {
		return nil, err
	}
	for i, g := range gs {
		gs[i] = (1 + g) / (1 - g)
	}
	return gs, nil
}

// Mismatches is the elementwise batch form of Mismatch.
func Mismatches(zs []complex128, z0s []float64) ([]float64, error) {
	gs, err := ReflectionCoefficients(zs, z0s)
	if err != nil {
		return nil, err
	}
	for i, g := range gs {
		gs[i] = 1 - g*g
	}
	return gs, nil
}

// broadcast pairs every impedance with its reference, widening a
// single reference across the batch.
func broadcast(zs []complex128, z0s []float64) ([]complex128, error) {
	if len(z0s) != len(zs) && len(z0s) != 1 {
		return nil, fmt.Errorf("%w: %d impedances, %d references", ErrShapeMismatch, len(zs), len(z0s))
	}
	refs := make([]complex128, len(zs))
	for i := range refs {
		if len(z0s) == 1 {
			refs[i] = complex(z0s[0], 0)
		} else {
			refs[i] = complex(z0s[i], 0)
		}
	}
	return refs, nil
}
