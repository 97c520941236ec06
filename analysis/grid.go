// Package analysis builds the PSF grid over the observable quadrant and
// derives power-based beam metrics from it.
package analysis

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/Geovannisz/LayoutGeneratorBINGO-sub000/efield"
	"github.com/Geovannisz/LayoutGeneratorBINGO-sub000/pattern"
	"github.com/wiless/vlib"
)

var (
	ErrInvalidInput     = errors.New("analysis: invalid input")
	ErrInsufficientData = errors.New("analysis: insufficient data")
)

// Key addresses one PSF grid node. Values come straight from the parsed
// dataset, so exact float comparison is safe.
type Key struct {
	ThetaDeg float64
	PhiDeg   float64
}

// Grid is the synthesized power (or magnitude) pattern over the first
// quadrant, theta and phi in [0,90] degrees.
type Grid struct {
	Thetas   []float64
	Phis     []float64
	Values   map[Key]float64
	UsePower bool
}

// Value returns the PSF at (thetaDeg, phiDeg); absent nodes are zero.
func (g *Grid) Value(thetaDeg, phiDeg float64) float64 {
	return g.Values[Key{thetaDeg, phiDeg}]
}

// progressGranularity caps how many progress callbacks a build emits.
const progressGranularity = 10

// BuildGrid synthesizes the PSF over the first-quadrant portion of the
// dataset for the given element positions and wave number. Work is
// chunked across workers (0 = NumCPU); progress, when non-nil, is called
// after each completed chunk (roughly every 10% of samples) and must be
// safe for concurrent use.
func BuildGrid(ds *efield.Dataset, positions vlib.VectorC, k float64, usePower bool, workers int, progress func(done, total int)) (*Grid, error) {
	if ds == nil {
		return nil, ErrInsufficientData
	}
	fq, err := ds.FirstQuadrant()
	if err != nil {
		return nil, ErrInsufficientData
	}
	if err := pattern.CheckPositions(positions); err != nil {
		return nil, err
	}

	samples := fq.Samples()
	points := make([]pattern.FieldPoint, len(samples))
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	chunk := (len(samples) + progressGranularity - 1) / progressGranularity
	if chunk < 1 {
		chunk = 1
	}
	type span struct{ lo, hi int }
	spans := make(chan span, progressGranularity+1)
	for lo := 0; lo < len(samples); lo += chunk {
		hi := lo + chunk
		if hi > len(samples) {
			hi = len(samples)
		}
		spans <- span{lo, hi}
	}
	close(spans)

	var done int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sp := range spans {
				for i := sp.lo; i < sp.hi; i++ {
					// Positions were validated before the workers started;
					// ArrayFactor cannot fail on them here.
					af, _ := pattern.ArrayFactor(samples[i].ThetaDeg, samples[i].PhiDeg, positions, k)
					points[i] = pattern.Synthesize(samples[i], af, usePower)
				}
				n := atomic.AddInt64(&done, int64(sp.hi-sp.lo))
				if progress != nil {
					progress(int(n), len(samples))
				}
			}
		}()
	}
	wg.Wait()

	g := &Grid{
		Thetas:   append([]float64(nil), fq.Thetas()...),
		Phis:     append([]float64(nil), fq.Phis()...),
		Values:   make(map[Key]float64, len(points)),
		UsePower: usePower,
	}
	for _, p := range points {
		g.Values[Key{p.ThetaDeg, p.PhiDeg}] = p.PSF
	}
	return g, nil
}
