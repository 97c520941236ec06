package bingo

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"

	"github.com/Geovannisz/LayoutGeneratorBINGO-sub000/analysis"
	"github.com/Geovannisz/LayoutGeneratorBINGO-sub000/efield"
)

// ErrComputationFailed wraps a panic inside a background analysis.
var ErrComputationFailed = errors.New("bingo: computation failed")

// State is the analyzer lifecycle stage, for status displays.
type State int

const (
	Idle State = iota
	GridBuilding
	GridReady
	MetricsComputing
	MetricsReady
)

var stateNames = [...]string{"Idle", "GridBuilding", "GridReady", "MetricsComputing", "MetricsReady"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Progress reports grid-build progress for a request.
type Progress struct {
	RequestID uint64
	Done      int
	Total     int
}

// AnalysisRequest asks for the full metric suite on a layout.
type AnalysisRequest struct {
	Positions vlib.VectorC
	Dataset   *efield.Dataset
}

// Metrics is the full beam-metric suite for one layout.
type Metrics struct {
	TotalVolume  float64
	SLL          analysis.ConeResult
	EE           analysis.EncircledEnergyResult
	ThetaPicoDeg float64
	ThetaPicoOK  bool
}

// AnalysisResult is delivered on the channel returned by SubmitAnalysis.
// Stale marks a result superseded by a newer request; its metrics are
// still valid for the layout it was computed on.
type AnalysisResult struct {
	RequestID uint64
	Stale     bool
	Metrics   Metrics
	Err       error
}

// Analyzer runs background analyses, caching the PSF grid across
// requests that share a layout. Safe for concurrent use.
type Analyzer struct {
	settings Settings

	mu      sync.Mutex
	state   State
	grid    *analysis.Grid
	gridSig uint64

	lastID   uint64
	progress chan Progress
}

// NewAnalyzer creates an analyzer with the given settings. Defaults are
// applied via Settings.SetDefault on a copy when s is nil or its
// frequency is unset.
func NewAnalyzer(s *Settings) *Analyzer {
	var cfg Settings
	if s != nil {
		cfg = *s
	}
	if cfg.FreqGHz == 0 {
		cfg.SetDefault()
	}
	return &Analyzer{
		settings: cfg,
		state:    Idle,
		progress: make(chan Progress, 16),
	}
}

// Progress returns a channel carrying grid-build progress updates.
// Updates are dropped, never blocked on, when the receiver lags.
func (a *Analyzer) Progress() <-chan Progress {
	return a.progress
}

// Invalidate discards the cached grid, forcing the next request to
// rebuild. Layout changes are detected by signature anyway; this is for
// callers that swap the element dataset.
func (a *Analyzer) Invalidate() {
	a.mu.Lock()
	a.grid = nil
	a.gridSig = 0
	a.state = Idle
	a.mu.Unlock()
}

// State reports the current lifecycle stage.
func (a *Analyzer) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// LayoutSignature hashes antenna positions so that grids are rebuilt
// only when the layout actually changes. Every coordinate contributes.
func LayoutSignature(positions vlib.VectorC) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v float64) {
		bits := math.Float64bits(v)
		for i := 0; i < 8; i++ {
			buf[i] = byte(bits >> (8 * i))
		}
		h.Write(buf[:])
	}
	put(float64(len(positions)))
	for _, c := range positions {
		put(real(c))
		put(imag(c))
	}
	return h.Sum64()
}

// SubmitAnalysis starts a background analysis and returns a channel that
// delivers exactly one result. A request submitted later marks earlier
// in-flight results stale. The context cancels the wait, not the cached
// grid build already in progress.
func (a *Analyzer) SubmitAnalysis(ctx context.Context, req AnalysisRequest) <-chan AnalysisResult {
	id := atomic.AddUint64(&a.lastID, 1)
	positions := append(vlib.NewVectorC(0), req.Positions...)
	out := make(chan AnalysisResult, 1)

	go func() {
		res := a.run(ctx, id, positions, req.Dataset)
		res.Stale = atomic.LoadUint64(&a.lastID) != id
		select {
		case out <- res:
		case <-ctx.Done():
		}
	}()
	return out
}

func (a *Analyzer) run(ctx context.Context, id uint64, positions vlib.VectorC, ds *efield.Dataset) (res AnalysisResult) {
	res.RequestID = id
	defer func() {
		if r := recover(); r != nil {
			log.WithField("request", id).Errorf("analysis panic: %v", r)
			res.Err = ErrComputationFailed
		}
	}()
	if err := ctx.Err(); err != nil {
		res.Err = err
		return
	}

	g, err := a.ensureGrid(id, positions, ds)
	if err != nil {
		res.Err = err
		return
	}

	a.setState(MetricsComputing)
	m := Metrics{TotalVolume: analysis.TotalVolume(g)}
	if m.SLL, err = analysis.ConeFraction(g, a.settings.SLLConeDeg); err != nil {
		res.Err = err
		return
	}
	if m.EE, err = analysis.EncircledEnergy(g, a.settings.EEPercentage); err != nil {
		res.Err = err
		return
	}
	m.ThetaPicoDeg, m.ThetaPicoOK = analysis.PrincipalLobeHalfWidth(g)
	a.setState(MetricsReady)
	res.Metrics = m
	return
}

// ensureGrid returns the cached PSF grid when the layout signature
// matches, rebuilding otherwise. The mutex is held through the build so
// concurrent requests on the same layout coalesce onto one grid.
func (a *Analyzer) ensureGrid(id uint64, positions vlib.VectorC, ds *efield.Dataset) (*analysis.Grid, error) {
	sig := LayoutSignature(positions)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.grid != nil && a.gridSig == sig {
		return a.grid, nil
	}
	a.grid = nil
	a.state = GridBuilding

	g, err := analysis.BuildGrid(ds, positions, a.settings.WaveNumber(),
		a.settings.UsePowerIntensity, a.settings.Workers,
		func(done, total int) { a.notify(Progress{RequestID: id, Done: done, Total: total}) })
	if err != nil {
		a.state = Idle
		return nil, err
	}
	a.grid = g
	a.gridSig = sig
	a.state = GridReady
	return g, nil
}

func (a *Analyzer) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

func (a *Analyzer) notify(p Progress) {
	select {
	case a.progress <- p:
	default:
	}
}
