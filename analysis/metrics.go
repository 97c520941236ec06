package analysis

import "fmt"

const (
	// Totals at or below this are treated as a degenerate pattern
	// (empty layout, all-zero samples) rather than divided by.
	degenerateVolumeEps = 1e-9
	// Slice volumes at or below this are numerically negligible.
	negligibleEps = 1e-12

	// The main lobe is assumed confined within this window.
	mainLobeWindowDeg = 30.0
	// At most this many phi cuts are sampled for the lobe width.
	maxPhiCuts = 20
	// -20 dB thresholds in either unit convention.
	powerThresholdRatio     = 0.01
	magnitudeThresholdRatio = 0.1
)

// TotalVolume is the full-sphere-equivalent integrated power proxy.
func TotalVolume(g *Grid) float64 {
	return 4 * IntegrateFirstQuadrant(g, 90)
}

// ConeResult reports the power contained in a cone about boresight.
// Degenerate marks a near-zero total volume where the percentage is a
// division by zero and is left unset.
type ConeResult struct {
	ConeDeg     float64
	ConeVolume  float64
	TotalVolume float64
	Percentage  float64
	Degenerate  bool
}

// ConeFraction computes the side-lobe containment: the percentage of the
// total radiated power within a cone of half-angle coneDeg in (0,90].
func ConeFraction(g *Grid, coneDeg float64) (ConeResult, error) {
	if !(coneDeg > 0 && coneDeg <= 90) {
		return ConeResult{}, fmt.Errorf("cone half-angle %v outside (0,90]: %w", coneDeg, ErrInvalidInput)
	}
	res := ConeResult{
		ConeDeg:     coneDeg,
		ConeVolume:  4 * IntegrateFirstQuadrant(g, coneDeg),
		TotalVolume: TotalVolume(g),
	}
	if res.TotalVolume <= degenerateVolumeEps {
		res.Degenerate = true
		return res, nil
	}
	res.Percentage = res.ConeVolume / res.TotalVolume * 100
	return res, nil
}

// EncircledEnergyResult carries the cone half-angle containing the
// requested share of total power, plus the fractional volume recomputed
// at that angle as a consistency check.
type EncircledEnergyResult struct {
	ThetaDeg   float64
	Fraction   float64
	Degenerate bool
}

// EncircledEnergy finds thetaEE such that the cone volume up to thetaEE
// equals pct percent of the total volume, pct in (0,100). The search
// walks the theta grid accumulating slice volumes and interpolates
// linearly within the crossing slice.
func EncircledEnergy(g *Grid, pct float64) (EncircledEnergyResult, error) {
	if !(pct > 0 && pct < 100) {
		return EncircledEnergyResult{}, fmt.Errorf("percentage %v outside (0,100): %w", pct, ErrInvalidInput)
	}
	total := TotalVolume(g)
	if total <= degenerateVolumeEps {
		return EncircledEnergyResult{Degenerate: true}, nil
	}
	target := total * pct / 100 / 4

	if target <= negligibleEps {
		return EncircledEnergyResult{ThetaDeg: 0, Fraction: 0}, nil
	}

	// Re-integrates from scratch at each probed theta. Redundant but
	// keeps every probe consistent with IntegrateFirstQuadrant.
	thetaEE := 90.0
	accumulated := 0.0
	found := false
	for i := 0; i+1 < len(g.Thetas) && !found; i++ {
		upTo := IntegrateFirstQuadrant(g, g.Thetas[i+1])
		slice := upTo - accumulated
		if accumulated+slice >= target {
			remaining := target - accumulated
			lo, hi := g.Thetas[i], g.Thetas[i+1]
			if slice <= negligibleEps {
				if remaining <= negligibleEps {
					thetaEE = lo
				} else {
					thetaEE = hi
				}
			} else {
				frac := remaining / slice
				if frac < 0 {
					frac = 0
				}
				if frac > 1 {
					frac = 1
				}
				thetaEE = lo + (hi-lo)*frac
			}
			found = true
		}
		accumulated = upTo
	}
	if thetaEE > 90 {
		thetaEE = 90
	}
	return EncircledEnergyResult{
		ThetaDeg: thetaEE,
		Fraction: 4 * IntegrateFirstQuadrant(g, thetaEE) / total,
	}, nil
}

// PrincipalLobeHalfWidth estimates the main-lobe angular half-width by
// locating the first significant minimum per sampled phi cut and
// averaging. ok is false when no cut yields a usable minimum, a
// reportable undetermined result rather than an error.
func PrincipalLobeHalfWidth(g *Grid) (thetaDeg float64, ok bool) {
	if g == nil || len(g.Phis) == 0 || len(g.Thetas) == 0 {
		return 0, false
	}
	thresholdRatio := magnitudeThresholdRatio
	if g.UsePower {
		thresholdRatio = powerThresholdRatio
	}
	stride := (len(g.Phis) + maxPhiCuts - 1) / maxPhiCuts
	if stride < 1 {
		stride = 1
	}

	var sum float64
	var count int
	for pi := 0; pi < len(g.Phis); pi += stride {
		phi := g.Phis[pi]
		var ths, vals []float64
		for _, th := range g.Thetas {
			if th > mainLobeWindowDeg {
				break
			}
			if v, present := g.Values[Key{th, phi}]; present {
				ths = append(ths, th)
				vals = append(vals, v)
			}
		}
		if len(vals) < 3 {
			continue
		}
		peak := vals[0] // boresight by construction
		if peak <= negligibleEps {
			continue
		}
		threshold := peak * thresholdRatio

		minTheta, cutOK := 0.0, false
		for i := 1; i+1 < len(vals); i++ {
			if vals[i] <= vals[i-1] && vals[i] < vals[i+1] && vals[i] < threshold {
				minTheta, cutOK = ths[i], true
				break
			}
		}
		if !cutOK {
			// Monotonic-decay fallback: first drop below threshold.
			for i := 1; i < len(vals); i++ {
				if vals[i] < threshold {
					minTheta, cutOK = ths[i], true
					break
				}
			}
		}
		if cutOK {
			sum += minTheta
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
