package pattern

import (
	"math"
	"runtime"
	"sync"

	"github.com/Geovannisz/LayoutGeneratorBINGO-sub000/efield"
	"github.com/wiless/vlib"
)

// DbFloor is the hard lower bound of the normalized magnitude scale.
const DbFloor = -100.0

// ratioFloor keeps log10 away from -Inf before flooring.
const ratioFloor = 1e-10

// FieldPoint is the synthesized total far field at one (theta, phi).
type FieldPoint struct {
	ThetaDeg float64
	PhiDeg   float64
	ETheta   complex128
	EPhi     complex128
	MagSq    float64
	// PSF is MagSq in intensity mode, sqrt(MagSq) in magnitude mode.
	PSF float64
}

// Synthesize combines one element sample with an array factor.
func Synthesize(s efield.Sample, af complex128, usePower bool) FieldPoint {
	eTheta := s.RETheta * af
	ePhi := s.REPhi * af
	magSq := real(eTheta)*real(eTheta) + imag(eTheta)*imag(eTheta) +
		real(ePhi)*real(ePhi) + imag(ePhi)*imag(ePhi)
	psf := magSq
	if !usePower {
		psf = math.Sqrt(magSq)
	}
	return FieldPoint{
		ThetaDeg: s.ThetaDeg,
		PhiDeg:   s.PhiDeg,
		ETheta:   eTheta,
		EPhi:     ePhi,
		MagSq:    magSq,
		PSF:      psf,
	}
}

// SynthesizeBatch computes the array factor at every sample's own angles
// and synthesizes the total field. Samples are independent, so the work
// is chunked across workers (0 = NumCPU) with each worker writing only
// its own output range.
func SynthesizeBatch(samples []efield.Sample, positions vlib.VectorC, k float64, usePower bool, workers int) ([]FieldPoint, error) {
	if err := CheckPositions(positions); err != nil {
		return nil, err
	}
	out := make([]FieldPoint, len(samples))
	if len(samples) == 0 {
		return out, nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(samples) {
		workers = len(samples)
	}
	chunk := (len(samples) + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(samples) {
			hi = len(samples)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				s := samples[i]
				u, v := directionCosines(s.ThetaDeg, s.PhiDeg)
				af := arrayFactorAt(u, v, 0, 0, positions, k)
				out[i] = Synthesize(s, af, usePower)
			}
		}(lo, hi)
	}
	wg.Wait()
	return out, nil
}

// MagnitudeDb converts a magnitude to dB relative to peak. Non-positive
// inputs and ratios below 1e-10 are clamped so the scale bottoms out at
// exactly -100 dB.
func MagnitudeDb(mag, peak float64) float64 {
	if mag <= 0 || peak <= 0 {
		return DbFloor
	}
	ratio := mag / peak
	if ratio < ratioFloor {
		ratio = ratioFloor
	}
	db := vlib.Db(ratio * ratio) // 20*log10(ratio) on the amplitude ratio
	if db < DbFloor {
		db = DbFloor
	}
	return db
}

// MagnitudeLinear converts a magnitude to a linear fraction of peak.
func MagnitudeLinear(mag, peak float64) float64 {
	if mag <= 0 || peak <= 0 {
		return 0
	}
	return mag / peak
}

// CutMagnitudes synthesizes a phi cut and returns the total field
// magnitude per sample, for line plotting.
func CutMagnitudes(cut []efield.Sample, positions vlib.VectorC, k float64) ([]float64, error) {
	points, err := SynthesizeBatch(cut, positions, k, false, 0)
	if err != nil {
		return nil, err
	}
	mags := make([]float64, len(points))
	for i, p := range points {
		mags[i] = p.PSF
	}
	return mags, nil
}

// NormalizeDb maps magnitudes to dB relative to the sweep peak.
func NormalizeDb(mags []float64) []float64 {
	peak := 0.0
	for _, m := range mags {
		if m > peak {
			peak = m
		}
	}
	out := make([]float64, len(mags))
	for i, m := range mags {
		out[i] = MagnitudeDb(m, peak)
	}
	return out
}
