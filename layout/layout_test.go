package layout_test

import (
	"bytes"
	"math"
	"math/cmplx"
	"strings"
	"testing"

	"github.com/wiless/vlib"

	"github.com/Geovannisz/LayoutGeneratorBINGO-sub000/layout"
)

func meanAbs(coords vlib.VectorC) float64 {
	return cmplx.Abs(vlib.MeanC(coords))
}

func TestTile64(t *testing.T) {
	tile := layout.Tile64()
	if len(tile) != layout.TileAntennaCount {
		t.Fatalf("tile has %d antennas, want %d", len(tile), layout.TileAntennaCount)
	}
	if meanAbs(tile) > 1e-12 {
		t.Fatalf("tile not centered, |mean| = %v", meanAbs(tile))
	}
	// All four diamond offsets around the first subgroup center must be
	// present at the expected mutual distance.
	d := cmplx.Abs(tile[0] - tile[2])
	if math.Abs(d-2*layout.DiamondOffset) > 1e-12 {
		t.Fatalf("diamond span = %v, want %v", d, 2*layout.DiamondOffset)
	}
}

func TestExpandTiles(t *testing.T) {
	tile := layout.Tile64()
	centers := vlib.VectorC{0, complex(1, 0), complex(0, 2)}
	all := layout.ExpandTiles(centers, tile)
	if len(all) != 3*len(tile) {
		t.Fatalf("expanded to %d antennas, want %d", len(all), 3*len(tile))
	}
	if all[len(tile)]-all[0] != complex(1, 0) {
		t.Fatal("second tile not translated by its center")
	}
}

func TestGridLayout(t *testing.T) {
	coords, err := layout.GridLayout(layout.GridOpts{NumCols: 4, NumRows: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(coords) != 12 {
		t.Fatalf("got %d tiles, want 12", len(coords))
	}
	if meanAbs(coords) > 1e-6 {
		t.Fatalf("grid not centered, |mean| = %v", meanAbs(coords))
	}
	// Columns are one tile width apart by default.
	xs := map[float64]struct{}{}
	for _, c := range coords {
		xs[real(c)] = struct{}{}
	}
	if len(xs) != 4 {
		t.Fatalf("got %d distinct columns, want 4", len(xs))
	}
}

func TestGridLayoutRejectsBadCounts(t *testing.T) {
	if _, err := layout.GridLayout(layout.GridOpts{NumCols: 0, NumRows: 3}); err == nil {
		t.Fatal("expected error for zero columns")
	}
	if _, err := layout.GridLayout(layout.GridOpts{NumCols: 2, NumRows: 2, Tile: layout.Dims{WidthM: -1, HeightM: 1}}); err == nil {
		t.Fatal("expected error for negative tile width")
	}
}

func TestRingLayout(t *testing.T) {
	coords, err := layout.RingLayout(layout.RingOpts{TilesPerRing: []int{6, 12}})
	if err != nil {
		t.Fatal(err)
	}
	if len(coords) != 1+6+12 {
		t.Fatalf("got %d tiles, want 19", len(coords))
	}
	coords, err = layout.RingLayout(layout.RingOpts{TilesPerRing: []int{8}, OmitCenterTile: true, Placement: layout.Placement{NoCenter: true}})
	if err != nil {
		t.Fatal(err)
	}
	if len(coords) != 8 {
		t.Fatalf("got %d tiles, want 8 without center", len(coords))
	}
	// Without re-centering, one ring keeps a common radius.
	r0 := cmplx.Abs(coords[0])
	for _, c := range coords {
		if math.Abs(cmplx.Abs(c)-r0) > 1e-5 {
			t.Fatalf("ring radius varies: %v vs %v", cmplx.Abs(c), r0)
		}
	}
}

func TestSpiralLayout(t *testing.T) {
	coords, err := layout.SpiralLayout(layout.SpiralOpts{NumArms: 3, TilesPerArm: 7, IncludeCenterTile: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(coords) != 1+3*7 {
		t.Fatalf("got %d tiles, want 22", len(coords))
	}
}

func TestHexGridLayout(t *testing.T) {
	coords, err := layout.HexGridLayout(layout.HexOpts{NumRings: 2})
	if err != nil {
		t.Fatal(err)
	}
	// 1 + 6 + 12 for two hexagonal rings.
	if len(coords) != 19 {
		t.Fatalf("got %d tiles, want 19", len(coords))
	}
}

func TestRhombusLayout(t *testing.T) {
	coords, err := layout.RhombusLayout(layout.RhombusOpts{NumRowsHalf: 3})
	if err != nil {
		t.Fatal(err)
	}
	// Rows of 3,2,1 above the axis, mirrored below, axis row counted once.
	if len(coords) != 3+2*2+2*1 {
		t.Fatalf("got %d tiles, want 9", len(coords))
	}
}

func TestPhyllotaxisLayout(t *testing.T) {
	coords, err := layout.PhyllotaxisLayout(layout.PhyllotaxisOpts{NumTiles: 40})
	if err != nil {
		t.Fatal(err)
	}
	if len(coords) != 40 {
		t.Fatalf("got %d tiles, want 40", len(coords))
	}
	if meanAbs(coords) > 1e-6 {
		t.Fatalf("layout not centered, |mean| = %v", meanAbs(coords))
	}
}

func TestInterlockingRingsLayout(t *testing.T) {
	coords, err := layout.InterlockingRingsLayout(layout.InterlockingOpts{NumMainRings: 4, TilesPerRing: 5, AddCenterTile: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(coords) != 1+4*5 {
		t.Fatalf("got %d tiles, want 21", len(coords))
	}
}

func TestCircularLayout(t *testing.T) {
	coords, err := layout.CircularLayout(layout.CircularOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(coords) != 36 {
		t.Fatalf("got %d tiles, want 36", len(coords))
	}
	if meanAbs(coords) > 1e-6 {
		t.Fatalf("layout not centered, |mean| = %v", meanAbs(coords))
	}
}

func TestRandomLayoutSeparation(t *testing.T) {
	coords, err := layout.RandomLayout(layout.RandomOpts{NumTiles: 30, MaxRadiusM: 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(coords) == 0 {
		t.Fatal("no tiles placed")
	}
	minDist := 1.05 * layout.TileDiagonal()
	for i := range coords {
		for j := i + 1; j < len(coords); j++ {
			// Re-centering shifts all points equally, so pairwise
			// distances still honor the minimum separation (up to
			// coordinate rounding).
			if d := cmplx.Abs(coords[i] - coords[j]); d < minDist-1e-5 {
				t.Fatalf("tiles %d,%d only %v apart, want >= %v", i, j, d, minDist)
			}
		}
	}
}

func TestRandomLayoutValidation(t *testing.T) {
	if _, err := layout.RandomLayout(layout.RandomOpts{NumTiles: 0, MaxRadiusM: 10}); err == nil {
		t.Fatal("expected error for zero tiles")
	}
	if _, err := layout.RandomLayout(layout.RandomOpts{NumTiles: 5, MaxRadiusM: 0}); err == nil {
		t.Fatal("expected error for zero radius")
	}
}

func TestRandomOffsetKeepsSeparation(t *testing.T) {
	opts := layout.GridOpts{
		NumCols: 3, NumRows: 3,
		Placement: layout.Placement{RandomOffsetStdDevM: 0.3, MinSeparationFactor: 1.05},
	}
	coords, err := layout.GridLayout(opts)
	if err != nil {
		t.Fatal(err)
	}
	minDist := 1.05 * layout.TileDiagonal()
	for i := range coords {
		for j := i + 1; j < len(coords); j++ {
			if d := cmplx.Abs(coords[i] - coords[j]); d < minDist-1e-5 {
				t.Fatalf("tiles %d,%d only %v apart, want >= %v", i, j, d, minDist)
			}
		}
	}
}

func TestCenterExponentialScaling(t *testing.T) {
	plain, err := layout.RingLayout(layout.RingOpts{TilesPerRing: []int{6, 6}, OmitCenterTile: true, Placement: layout.Placement{NoCenter: true}})
	if err != nil {
		t.Fatal(err)
	}
	scaled, err := layout.RingLayout(layout.RingOpts{
		TilesPerRing:         []int{6, 6},
		OmitCenterTile:       true,
		CenterScaleMode:      layout.SpacingCenterExponential,
		CenterExpScaleFactor: 2.0,
		Placement:            layout.Placement{NoCenter: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	// The outer ring stretches more than the inner one.
	innerRatio := cmplx.Abs(scaled[0]) / cmplx.Abs(plain[0])
	outerRatio := cmplx.Abs(scaled[len(scaled)-1]) / cmplx.Abs(plain[len(plain)-1])
	if !(outerRatio > innerRatio && innerRatio > 1) {
		t.Fatalf("scaling ratios inner %v, outer %v", innerRatio, outerRatio)
	}
}

func TestCoordinateRounding(t *testing.T) {
	coords, err := layout.PhyllotaxisLayout(layout.PhyllotaxisOpts{NumTiles: 10})
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range coords {
		if real(c) != math.Round(real(c)*1e6)/1e6 || imag(c) != math.Round(imag(c)*1e6)/1e6 {
			t.Fatalf("coordinate %v not rounded to 6 decimals", c)
		}
	}
}

const planYAML = `
layouts:
  - name: core
    shape: grid
    params:
      num_cols: 2
      num_rows: 4
  - name: halo
    shape: ring
    params:
      tiles_per_ring: [6]
      radius_start_factor: 2.0
`

func TestReadPlanAndGenerate(t *testing.T) {
	plan, err := layout.ReadPlan(strings.NewReader(planYAML))
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Layouts) != 2 {
		t.Fatalf("got %d entries, want 2", len(plan.Layouts))
	}
	coords, err := plan.Layouts[0].Generate()
	if err != nil {
		t.Fatal(err)
	}
	if len(coords) != 8 {
		t.Fatalf("grid entry generated %d tiles, want 8", len(coords))
	}
	coords, err = plan.Layouts[1].Generate()
	if err != nil {
		t.Fatal(err)
	}
	if len(coords) != 7 {
		t.Fatalf("ring entry generated %d tiles, want 7", len(coords))
	}
}

func TestPlanUnknownShape(t *testing.T) {
	if _, err := (layout.PlanEntry{Shape: "moebius"}).Generate(); err == nil {
		t.Fatal("expected error for unknown shape")
	}
	if _, err := layout.ReadPlan(strings.NewReader("layouts:\n  - name: x\n")); err == nil {
		t.Fatal("expected error for entry without shape")
	}
}

func TestWriteLayoutCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := layout.WriteLayoutCSV(&buf, vlib.VectorC{complex(1.5, -2), complex(0, 0.000001)}); err != nil {
		t.Fatal(err)
	}
	want := "1.500000,-2.000000\n0.000000,0.000001\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
