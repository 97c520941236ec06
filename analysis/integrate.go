package analysis

import "math"

// IntegrateFirstQuadrant computes the 2-D trapezoidal integral of the PSF
// over theta in [0, thetaLimitDeg] and phi in [0, 90] with the spherical
// sin(theta) Jacobian. Angle widths are taken in radians. When the last
// theta interval straddles the limit, its upper edge is clamped to the
// limit before sin and the interval width are computed; corner values
// stay the grid-line values (no value interpolation). Callers multiply
// by 4 for the full-sphere quantity under the 4-fold symmetry assumption.
func IntegrateFirstQuadrant(g *Grid, thetaLimitDeg float64) float64 {
	if g == nil || len(g.Thetas) < 2 || len(g.Phis) < 2 {
		return 0
	}
	sum := 0.0
	for i := 0; i < len(g.Thetas)-1; i++ {
		th1 := g.Thetas[i]
		if th1 >= thetaLimitDeg {
			break
		}
		th2 := g.Thetas[i+1]
		thTop := th2
		if thTop > thetaLimitDeg {
			thTop = thetaLimitDeg
		}
		sinLow := math.Sin(radians(th1))
		sinHigh := math.Sin(radians(thTop))
		dTheta := radians(thTop - th1)
		for j := 0; j < len(g.Phis)-1; j++ {
			ph1 := g.Phis[j]
			ph2 := g.Phis[j+1]
			dPhi := radians(ph2 - ph1)
			cell := (g.Value(th1, ph1)+g.Value(th1, ph2))*sinLow +
				(g.Value(th2, ph1)+g.Value(th2, ph2))*sinHigh
			sum += cell / 4.0 * dTheta * dPhi
		}
	}
	return sum
}

func radians(degree float64) float64 {
	return degree * math.Pi / 180.0
}
