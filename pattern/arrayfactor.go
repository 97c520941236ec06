// Package pattern implements the array factor engine and the far-field
// pattern synthesizer for a planar tile layout.
package pattern

import (
	"errors"
	"math"

	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/floats"
)

var ErrInvalidInput = errors.New("pattern: invalid input")

// Radian converts degrees to radians.
func Radian(degree float64) float64 {
	return degree * math.Pi / 180.0
}

// CheckPositions rejects element positions carrying NaN or Inf
// components. Positions are x+iy in meters relative to the array center.
func CheckPositions(positions vlib.VectorC) error {
	for _, p := range positions {
		x, y := real(p), imag(p)
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			return ErrInvalidInput
		}
	}
	return nil
}

func directionCosines(thetaDeg, phiDeg float64) (u, v float64) {
	st := math.Sin(Radian(thetaDeg))
	return st * math.Cos(Radian(phiDeg)), st * math.Sin(Radian(phiDeg))
}

// arrayFactorAt is the single-point formula shared by every caller.
// Bulk paths loop over it unchanged so results stay bit-identical.
func arrayFactorAt(u, v, uScan, vScan float64, positions vlib.VectorC, k float64) complex128 {
	if len(positions) == 0 {
		// Zero elements: unity factor, a single virtual element at origin.
		return complex(1, 0)
	}
	var sum complex128
	for _, p := range positions {
		phase := k * ((u-uScan)*real(p) + (v-vScan)*imag(p))
		sum += complex(math.Cos(phase), math.Sin(phase))
	}
	return sum
}

// ArrayFactor computes the complex array factor at the observation angles
// (thetaDeg, phiDeg) for the given element positions and wave number k,
// with the beam at boresight.
func ArrayFactor(thetaDeg, phiDeg float64, positions vlib.VectorC, k float64) (complex128, error) {
	return ArrayFactorSteered(thetaDeg, phiDeg, positions, k, 0, 0)
}

// ArrayFactorSteered is ArrayFactor with the beam electronically steered
// toward (scanThetaDeg, scanPhiDeg).
func ArrayFactorSteered(thetaDeg, phiDeg float64, positions vlib.VectorC, k, scanThetaDeg, scanPhiDeg float64) (complex128, error) {
	if err := CheckPositions(positions); err != nil {
		return 0, err
	}
	u, v := directionCosines(thetaDeg, phiDeg)
	uScan, vScan := directionCosines(scanThetaDeg, scanPhiDeg)
	return arrayFactorAt(u, v, uScan, vScan, positions, k), nil
}

// ThetaSweep evaluates the array factor at every theta in thetaDegs at a
// fixed phi cut. One call is equivalent to invoking ArrayFactor per theta.
func ThetaSweep(thetaDegs []float64, phiDeg float64, positions vlib.VectorC, k float64) ([]complex128, error) {
	if err := CheckPositions(positions); err != nil {
		return nil, err
	}
	uScan, vScan := directionCosines(0, 0)
	out := make([]complex128, len(thetaDegs))
	for i, th := range thetaDegs {
		u, v := directionCosines(th, phiDeg)
		out[i] = arrayFactorAt(u, v, uScan, vScan, positions, k)
	}
	return out, nil
}

// ThetaSpan returns n theta values evenly spaced over [startDeg, stopDeg].
func ThetaSpan(startDeg, stopDeg float64, n int) []float64 {
	return floats.Span(make([]float64, n), startDeg, stopDeg)
}
