// Package efield holds the measured single-element far-field dataset
// consumed by the pattern synthesis and PSF integration stages.
package efield

import (
	"errors"
	"math"
	"sort"
)

var ErrInsufficientData = errors.New("efield: insufficient data")

// Sample is one measured point of the single-element far field.
// RETheta and REPhi are the complex field component amplitudes in
// consistent units (volts in the reference dataset).
type Sample struct {
	ThetaDeg float64
	PhiDeg   float64
	RETheta  complex128
	REPhi    complex128
}

type gridKey struct {
	theta, phi float64
}

// Dataset is an immutable set of samples forming a grid over a finite
// set of unique theta values x unique phi values. Spacing need not be
// uniform; combinations without a sample contribute zero downstream.
type Dataset struct {
	samples []Sample
	thetas  []float64
	phis    []float64
	index   map[gridKey]int
}

// NewDataset builds a dataset from raw samples. The sample slice is
// copied; callers may reuse theirs.
func NewDataset(samples []Sample) (*Dataset, error) {
	if len(samples) == 0 {
		return nil, ErrInsufficientData
	}
	d := &Dataset{
		samples: append([]Sample(nil), samples...),
		index:   make(map[gridKey]int, len(samples)),
	}
	thetaSet := make(map[float64]struct{})
	phiSet := make(map[float64]struct{})
	for i, s := range d.samples {
		thetaSet[s.ThetaDeg] = struct{}{}
		phiSet[s.PhiDeg] = struct{}{}
		d.index[gridKey{s.ThetaDeg, s.PhiDeg}] = i
	}
	d.thetas = sortedKeys(thetaSet)
	d.phis = sortedKeys(phiSet)
	return d, nil
}

func sortedKeys(set map[float64]struct{}) []float64 {
	out := make([]float64, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

// Samples returns the backing samples. The slice must not be mutated.
func (d *Dataset) Samples() []Sample { return d.samples }

// Thetas returns the sorted unique theta values in degrees.
func (d *Dataset) Thetas() []float64 { return d.thetas }

// Phis returns the sorted unique phi values in degrees.
func (d *Dataset) Phis() []float64 { return d.phis }

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.samples) }

// Lookup returns the sample at exactly (thetaDeg, phiDeg).
func (d *Dataset) Lookup(thetaDeg, phiDeg float64) (Sample, bool) {
	i, ok := d.index[gridKey{thetaDeg, phiDeg}]
	if !ok {
		return Sample{}, false
	}
	return d.samples[i], true
}

// FirstQuadrant restricts the dataset to theta and phi in [0,90] degrees,
// the observable quadrant used by the symmetry-based integration. The
// dataset is assumed 4-fold symmetric; this is not validated.
func (d *Dataset) FirstQuadrant() (*Dataset, error) {
	kept := make([]Sample, 0, len(d.samples))
	for _, s := range d.samples {
		if s.ThetaDeg >= 0 && s.ThetaDeg <= 90 && s.PhiDeg >= 0 && s.PhiDeg <= 90 {
			kept = append(kept, s)
		}
	}
	return NewDataset(kept)
}

// PhiCut returns the samples whose phi rounds to the same integer degree
// as phiDeg, sorted by theta ascending. This mirrors the per-phi files
// produced by the dataset preprocessor.
func (d *Dataset) PhiCut(phiDeg float64) ([]Sample, error) {
	target := math.Round(phiDeg)
	cut := make([]Sample, 0, len(d.thetas))
	for _, s := range d.samples {
		if math.Round(s.PhiDeg) == target {
			cut = append(cut, s)
		}
	}
	if len(cut) == 0 {
		return nil, ErrInsufficientData
	}
	sort.Slice(cut, func(i, j int) bool { return cut[i].ThetaDeg < cut[j].ThetaDeg })
	return cut, nil
}
