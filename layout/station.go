package layout

import (
	"errors"
	"log"
	"math"
	"math/rand"

	"github.com/wiless/vlib"
)

var ErrInvalidInput = errors.New("layout: invalid input")

// Spacing progression modes.
const (
	SpacingLinear            = "linear"
	SpacingExponential       = "exponential"
	SpacingCenterExponential = "center_exponential"
)

// GoldenAngle in radians, for the phyllotaxis layout.
var GoldenAngle = math.Pi * (3.0 - math.Sqrt(5.0))

// DefaultMaxPlacementAttempts bounds the collision-avoidance retries
// when a random placement offset is active.
const DefaultMaxPlacementAttempts = 10000

const coordPrecision = 1e6 // 6 decimals, OSKAR layout file precision

// Dims is the reference tile footprint. Zero values fall back to the
// physical tile constants.
type Dims struct {
	WidthM  float64 `yaml:"width_m" mapstructure:"width_m"`
	HeightM float64 `yaml:"height_m" mapstructure:"height_m"`
}

func (d Dims) widthHeight() (float64, float64, error) {
	w, h := d.WidthM, d.HeightM
	if w == 0 {
		w = TileWidth
	}
	if h == 0 {
		h = TileHeight
	}
	if w <= 0 || h <= 0 {
		return 0, 0, ErrInvalidInput
	}
	return w, h, nil
}

func (d Dims) diagonal() float64 {
	w, h, err := d.widthHeight()
	if err != nil {
		return 0
	}
	return math.Sqrt(w*w + h*h)
}

// Placement controls the optional Gaussian position jitter with
// min-separation collision retry, and final re-centering.
type Placement struct {
	RandomOffsetStdDevM  float64 `yaml:"random_offset_stddev_m" mapstructure:"random_offset_stddev_m"`
	MinSeparationFactor  float64 `yaml:"min_separation_factor" mapstructure:"min_separation_factor"`
	MaxPlacementAttempts int     `yaml:"max_placement_attempts" mapstructure:"max_placement_attempts"`
	NoCenter             bool    `yaml:"no_center" mapstructure:"no_center"`
}

func (p Placement) minDistSq(diagonal float64) float64 {
	if p.RandomOffsetStdDevM <= 0 {
		return 0
	}
	sep := p.MinSeparationFactor
	if sep <= 0 {
		sep = 1.05
	}
	d := sep * diagonal
	return d * d
}

func (p Placement) attempts() int {
	if p.MaxPlacementAttempts <= 0 {
		return DefaultMaxPlacementAttempts
	}
	return p.MaxPlacementAttempts
}

func round6(x float64) float64 {
	return math.Round(x*coordPrecision) / coordPrecision
}

func roundCoords(coords vlib.VectorC) vlib.VectorC {
	out := vlib.NewVectorC(len(coords))
	for i, c := range coords {
		out[i] = complex(round6(real(c)), round6(imag(c)))
	}
	return out
}

func finalize(coords vlib.VectorC, p Placement) vlib.VectorC {
	coords = roundCoords(coords)
	if p.NoCenter || len(coords) == 0 {
		return coords
	}
	return roundCoords(coords.AddC(-vlib.MeanC(coords)))
}

// centerExponentialScaling stretches each point's distance from the
// origin by factor^(d/dref), dref the mean non-zero distance. Points at
// the origin stay put.
func centerExponentialScaling(coords vlib.VectorC, factor float64) vlib.VectorC {
	if len(coords) == 0 || factor <= 0 || factor == 1 {
		return coords
	}
	var refSum float64
	var refN int
	for _, c := range coords {
		d := math.Hypot(real(c), imag(c))
		if d > 1e-9 {
			refSum += d
			refN++
		}
	}
	if refN == 0 {
		return coords
	}
	ref := refSum / float64(refN)
	if ref < 1e-9 {
		ref = 1.0
	}
	out := vlib.NewVectorC(len(coords))
	for i, c := range coords {
		d := math.Hypot(real(c), imag(c))
		if d < 1e-9 {
			out[i] = c
			continue
		}
		scale := math.Pow(factor, d/ref)
		out[i] = complex(real(c)*scale, imag(c)*scale)
	}
	return out
}

// placeWithOffset jitters base by a Gaussian offset until the candidate
// clears every already-placed point by minDistSq, or gives up.
func placeWithOffset(base complex128, stddev float64, placed vlib.VectorC, minDistSq float64, maxAttempts int) (complex128, bool) {
	if stddev <= 0 {
		return base, true
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		cand := base + complex(rand.NormFloat64()*stddev, rand.NormFloat64()*stddev)
		collision := false
		for _, q := range placed {
			dx := real(cand) - real(q)
			dy := imag(cand) - imag(q)
			if dx*dx+dy*dy < minDistSq {
				collision = true
				break
			}
		}
		if !collision {
			return cand, true
		}
	}
	return 0, false
}

// scatter applies the random offset pass to base coordinates. When
// protectFirst is set, the first point (the center tile) is placed
// against an empty list and kept at its base position if jitter fails.
func scatter(base vlib.VectorC, p Placement, diagonal float64, protectFirst bool) vlib.VectorC {
	if p.RandomOffsetStdDevM <= 0 {
		return base
	}
	minDistSq := p.minDistSq(diagonal)
	attempts := p.attempts()
	out := vlib.NewVectorC(0)
	rest := base
	if protectFirst && len(base) > 0 {
		if c, ok := placeWithOffset(base[0], p.RandomOffsetStdDevM, nil, minDistSq, attempts); ok {
			out = append(out, c)
		} else {
			out = append(out, base[0])
			log.Println("layout: random offset failed for center tile, kept at origin")
		}
		rest = base[1:]
	}
	skipped := 0
	for _, b := range rest {
		c, ok := placeWithOffset(b, p.RandomOffsetStdDevM, out, minDistSq, attempts)
		if !ok {
			skipped++
			continue
		}
		out = append(out, c)
	}
	if skipped > 0 {
		log.Printf("layout: skipped %d of %d tiles after %d placement attempts each", skipped, len(base), attempts)
	}
	return out
}

// GridOpts configures a rectangular grid of tile centers.
type GridOpts struct {
	NumCols              int     `yaml:"num_cols" mapstructure:"num_cols"`
	NumRows              int     `yaml:"num_rows" mapstructure:"num_rows"`
	SpacingMode          string  `yaml:"spacing_mode" mapstructure:"spacing_mode"`
	SpacingXFactor       float64 `yaml:"spacing_x_factor" mapstructure:"spacing_x_factor"`
	SpacingYFactor       float64 `yaml:"spacing_y_factor" mapstructure:"spacing_y_factor"`
	CenterExpScaleFactor float64 `yaml:"center_exp_scale_factor" mapstructure:"center_exp_scale_factor"`
	Tile                 Dims    `yaml:"tile" mapstructure:"tile"`
	Placement            `yaml:",inline" mapstructure:",squash"`
}

// GridLayout generates a rectangular num_cols x num_rows grid.
func GridLayout(o GridOpts) (vlib.VectorC, error) {
	w, h, err := o.Tile.widthHeight()
	if err != nil || o.NumCols <= 0 || o.NumRows <= 0 {
		return nil, ErrInvalidInput
	}
	sx := o.SpacingXFactor
	if sx == 0 {
		sx = 1.0
	}
	sy := o.SpacingYFactor
	if sy == 0 {
		sy = 1.0
	}
	spacingX := w * sx
	spacingY := h * sy

	base := vlib.NewVectorC(0)
	for i := 0; i < o.NumCols; i++ {
		x := (float64(i) - float64(o.NumCols-1)/2.0) * spacingX
		for j := 0; j < o.NumRows; j++ {
			y := (float64(j) - float64(o.NumRows-1)/2.0) * spacingY
			base = append(base, complex(x, y))
		}
	}
	if o.SpacingMode == SpacingCenterExponential {
		base = centerExponentialScaling(base, o.CenterExpScaleFactor)
	}
	return finalize(scatter(base, o.Placement, o.Tile.diagonal(), false), o.Placement), nil
}

// SpiralOpts configures a multi-arm spiral of tile centers.
type SpiralOpts struct {
	NumArms              int     `yaml:"num_arms" mapstructure:"num_arms"`
	TilesPerArm          int     `yaml:"tiles_per_arm" mapstructure:"tiles_per_arm"`
	ArmSpacingMode       string  `yaml:"arm_spacing_mode" mapstructure:"arm_spacing_mode"`
	CenterScaleMode      string  `yaml:"center_scale_mode" mapstructure:"center_scale_mode"`
	RadiusStartFactor    float64 `yaml:"radius_start_factor" mapstructure:"radius_start_factor"`
	RadiusStepFactor     float64 `yaml:"radius_step_factor" mapstructure:"radius_step_factor"`
	CenterExpScaleFactor float64 `yaml:"center_exp_scale_factor" mapstructure:"center_exp_scale_factor"`
	AngleStepRad         float64 `yaml:"angle_step_rad" mapstructure:"angle_step_rad"`
	ArmOffsetRad         float64 `yaml:"arm_offset_rad" mapstructure:"arm_offset_rad"`
	RotationPerArmRad    float64 `yaml:"rotation_per_arm_rad" mapstructure:"rotation_per_arm_rad"`
	IncludeCenterTile    bool    `yaml:"include_center_tile" mapstructure:"include_center_tile"`
	Tile                 Dims    `yaml:"tile" mapstructure:"tile"`
	Placement            `yaml:",inline" mapstructure:",squash"`
}

// SpiralLayout generates spiral arms with linear or exponential radius
// growth along each arm.
func SpiralLayout(o SpiralOpts) (vlib.VectorC, error) {
	if _, _, err := o.Tile.widthHeight(); err != nil || o.NumArms <= 0 || o.TilesPerArm <= 0 {
		return nil, ErrInvalidInput
	}
	diagonal := o.Tile.diagonal()
	startFactor := o.RadiusStartFactor
	if startFactor == 0 {
		startFactor = 0.5
	}
	stepFactor := o.RadiusStepFactor
	if stepFactor == 0 {
		stepFactor = 0.2
	}
	if o.ArmSpacingMode == SpacingExponential && stepFactor <= 0 {
		stepFactor = 1.1
	}
	angleStep := o.AngleStepRad
	if angleStep == 0 {
		angleStep = math.Pi / 6
	}
	baseRadius := startFactor * diagonal
	linearStep := stepFactor * diagonal

	base := vlib.NewVectorC(0)
	seen := make(map[complex128]struct{})
	if o.IncludeCenterTile {
		base = append(base, 0)
		seen[0] = struct{}{}
	}
	for arm := 0; arm < o.NumArms; arm++ {
		armAngle := float64(arm)*(2*math.Pi/float64(o.NumArms)) + float64(arm)*o.RotationPerArmRad + o.ArmOffsetRad
		radius := baseRadius
		for i := 0; i < o.TilesPerArm; i++ {
			angle := armAngle + float64(i)*angleStep
			c := complex(radius*math.Cos(angle), radius*math.Sin(angle))
			k := complex(round6(real(c)), round6(imag(c)))
			if _, dup := seen[k]; !dup {
				base = append(base, c)
				seen[k] = struct{}{}
			}
			if o.ArmSpacingMode == SpacingExponential {
				radius *= stepFactor
			} else {
				radius += linearStep
			}
		}
	}
	if o.CenterScaleMode == SpacingCenterExponential {
		base = scaleAroundCenterTile(base, o.IncludeCenterTile, o.CenterExpScaleFactor)
	}
	return finalize(scatter(base, o.Placement, diagonal, o.IncludeCenterTile), o.Placement), nil
}

// RingOpts configures concentric rings of tile centers.
type RingOpts struct {
	TilesPerRing         []int   `yaml:"tiles_per_ring" mapstructure:"tiles_per_ring"`
	RingSpacingMode      string  `yaml:"ring_spacing_mode" mapstructure:"ring_spacing_mode"`
	CenterScaleMode      string  `yaml:"center_scale_mode" mapstructure:"center_scale_mode"`
	RadiusStartFactor    float64 `yaml:"radius_start_factor" mapstructure:"radius_start_factor"`
	RadiusStepFactor     float64 `yaml:"radius_step_factor" mapstructure:"radius_step_factor"`
	CenterExpScaleFactor float64 `yaml:"center_exp_scale_factor" mapstructure:"center_exp_scale_factor"`
	OmitCenterTile       bool    `yaml:"omit_center_tile" mapstructure:"omit_center_tile"`
	Tile                 Dims    `yaml:"tile" mapstructure:"tile"`
	Placement            `yaml:",inline" mapstructure:",squash"`
}

// RingLayout generates concentric rings, innermost first.
func RingLayout(o RingOpts) (vlib.VectorC, error) {
	if _, _, err := o.Tile.widthHeight(); err != nil {
		return nil, ErrInvalidInput
	}
	for _, n := range o.TilesPerRing {
		if n <= 0 {
			return nil, ErrInvalidInput
		}
	}
	diagonal := o.Tile.diagonal()
	startFactor := o.RadiusStartFactor
	if startFactor == 0 {
		startFactor = 1.5
	}
	stepFactor := o.RadiusStepFactor
	if stepFactor == 0 {
		stepFactor = 1.0
	}
	if o.RingSpacingMode == SpacingExponential && stepFactor <= 0 {
		stepFactor = 1.5
	}
	radius := startFactor * diagonal
	linearStep := stepFactor * diagonal

	withCenter := !o.OmitCenterTile
	base := vlib.NewVectorC(0)
	if withCenter {
		base = append(base, 0)
	}
	for _, n := range o.TilesPerRing {
		for i := 0; i < n; i++ {
			angle := float64(i) * 2 * math.Pi / float64(n)
			base = append(base, complex(radius*math.Cos(angle), radius*math.Sin(angle)))
		}
		if o.RingSpacingMode == SpacingExponential {
			radius *= stepFactor
		} else {
			radius += linearStep
		}
	}
	if o.CenterScaleMode == SpacingCenterExponential {
		base = scaleAroundCenterTile(base, withCenter, o.CenterExpScaleFactor)
	}
	return finalize(scatter(base, o.Placement, diagonal, withCenter), o.Placement), nil
}

// RhombusOpts configures a rhombus (diamond) arrangement.
type RhombusOpts struct {
	NumRowsHalf          int     `yaml:"num_rows_half" mapstructure:"num_rows_half"`
	SpacingMode          string  `yaml:"spacing_mode" mapstructure:"spacing_mode"`
	SideLengthFactor     float64 `yaml:"side_length_factor" mapstructure:"side_length_factor"`
	HCompressFactor      float64 `yaml:"h_compress_factor" mapstructure:"h_compress_factor"`
	VCompressFactor      float64 `yaml:"v_compress_factor" mapstructure:"v_compress_factor"`
	CenterExpScaleFactor float64 `yaml:"center_exp_scale_factor" mapstructure:"center_exp_scale_factor"`
	Tile                 Dims    `yaml:"tile" mapstructure:"tile"`
	Placement            `yaml:",inline" mapstructure:",squash"`
}

// RhombusLayout generates a diamond of rows shrinking away from the
// horizontal axis, mirrored about it.
func RhombusLayout(o RhombusOpts) (vlib.VectorC, error) {
	if _, _, err := o.Tile.widthHeight(); err != nil || o.NumRowsHalf <= 0 {
		return nil, ErrInvalidInput
	}
	diagonal := o.Tile.diagonal()
	sideFactor := o.SideLengthFactor
	if sideFactor == 0 {
		sideFactor = 0.65
	}
	hc := o.HCompressFactor
	if hc == 0 {
		hc = 1.0
	}
	vc := o.VCompressFactor
	if vc == 0 {
		vc = 1.0
	}
	side := sideFactor * diagonal

	base := vlib.NewVectorC(0)
	seen := make(map[complex128]struct{})
	add := func(x, y float64) {
		k := complex(round6(x), round6(y))
		if _, dup := seen[k]; !dup {
			base = append(base, complex(x, y))
			seen[k] = struct{}{}
		}
	}
	for i := 0; i < o.NumRowsHalf; i++ {
		y := float64(i) * side * math.Sqrt(3) / 2.0 * vc
		rowTiles := o.NumRowsHalf - i
		startX := -float64(rowTiles-1) * side * hc / 2.0
		for j := 0; j < rowTiles; j++ {
			x := startX + float64(j)*side*hc
			add(x, y)
			if i != 0 {
				add(x, -y)
			}
		}
	}
	if o.SpacingMode == SpacingCenterExponential {
		base = centerExponentialScaling(base, o.CenterExpScaleFactor)
	}
	return finalize(scatter(base, o.Placement, diagonal, false), o.Placement), nil
}

// HexOpts configures a hexagonal grid of tile centers.
type HexOpts struct {
	NumRings             int     `yaml:"num_rings" mapstructure:"num_rings"`
	SpacingMode          string  `yaml:"spacing_mode" mapstructure:"spacing_mode"`
	SpacingFactor        float64 `yaml:"spacing_factor" mapstructure:"spacing_factor"`
	CenterExpScaleFactor float64 `yaml:"center_exp_scale_factor" mapstructure:"center_exp_scale_factor"`
	OmitCenterTile       bool    `yaml:"omit_center_tile" mapstructure:"omit_center_tile"`
	Tile                 Dims    `yaml:"tile" mapstructure:"tile"`
	Placement            `yaml:",inline" mapstructure:",squash"`
}

// HexGridLayout generates hexagonal rings around the center.
func HexGridLayout(o HexOpts) (vlib.VectorC, error) {
	if _, _, err := o.Tile.widthHeight(); err != nil || o.NumRings < 0 {
		return nil, ErrInvalidInput
	}
	diagonal := o.Tile.diagonal()
	spacingFactor := o.SpacingFactor
	if spacingFactor == 0 {
		spacingFactor = 1.5
	}
	spacing := spacingFactor * diagonal

	withCenter := !o.OmitCenterTile
	base := vlib.NewVectorC(0)
	seen := make(map[complex128]struct{})
	add := func(x, y float64) {
		k := complex(round6(x), round6(y))
		if _, dup := seen[k]; !dup {
			base = append(base, complex(x, y))
			seen[k] = struct{}{}
		}
	}
	if withCenter {
		add(0, 0)
	}
	for ring := 1; ring <= o.NumRings; ring++ {
		x := float64(ring) * spacing
		y := 0.0
		add(x, y)
		for side := 0; side < 6; side++ {
			angle := math.Pi / 3.0
			for step := 0; step < ring; step++ {
				x += spacing * math.Cos(float64(side+2)*angle)
				y += spacing * math.Sin(float64(side+2)*angle)
				add(x, y)
			}
		}
	}
	if o.SpacingMode == SpacingCenterExponential {
		base = scaleAroundCenterTile(base, withCenter, o.CenterExpScaleFactor)
	}
	return finalize(scatter(base, o.Placement, diagonal, withCenter), o.Placement), nil
}

// PhyllotaxisOpts configures a sunflower-seed arrangement.
type PhyllotaxisOpts struct {
	NumTiles             int     `yaml:"num_tiles" mapstructure:"num_tiles"`
	SpacingMode          string  `yaml:"spacing_mode" mapstructure:"spacing_mode"`
	ScaleFactor          float64 `yaml:"scale_factor" mapstructure:"scale_factor"`
	CenterOffsetFactor   float64 `yaml:"center_offset_factor" mapstructure:"center_offset_factor"`
	CenterExpScaleFactor float64 `yaml:"center_exp_scale_factor" mapstructure:"center_exp_scale_factor"`
	Tile                 Dims    `yaml:"tile" mapstructure:"tile"`
	Placement            `yaml:",inline" mapstructure:",squash"`
}

// PhyllotaxisLayout generates a golden-angle spiral.
func PhyllotaxisLayout(o PhyllotaxisOpts) (vlib.VectorC, error) {
	if _, _, err := o.Tile.widthHeight(); err != nil || o.NumTiles <= 0 {
		return nil, ErrInvalidInput
	}
	diagonal := o.Tile.diagonal()
	scaleFactor := o.ScaleFactor
	if scaleFactor == 0 {
		scaleFactor = 0.5
	}
	centerOffset := o.CenterOffsetFactor
	if centerOffset == 0 {
		centerOffset = 0.1
	}
	scale := scaleFactor * diagonal
	offset := centerOffset * diagonal

	base := vlib.NewVectorC(0)
	for i := 0; i < o.NumTiles; i++ {
		r := scale * math.Sqrt(float64(i)+offset)
		theta := float64(i) * GoldenAngle
		base = append(base, complex(r*math.Cos(theta), r*math.Sin(theta)))
	}
	if o.SpacingMode == SpacingCenterExponential {
		base = centerExponentialScaling(base, o.CenterExpScaleFactor)
	}
	return finalize(scatter(base, o.Placement, diagonal, false), o.Placement), nil
}

// InterlockingOpts configures several rings whose own centers sit on a
// larger ring around the origin.
type InterlockingOpts struct {
	NumMainRings         int     `yaml:"num_main_rings" mapstructure:"num_main_rings"`
	TilesPerRing         int     `yaml:"tiles_per_ring" mapstructure:"tiles_per_ring"`
	CenterScaleMode      string  `yaml:"center_scale_mode" mapstructure:"center_scale_mode"`
	RingRadiusFactor     float64 `yaml:"ring_radius_factor" mapstructure:"ring_radius_factor"`
	MainRingOffsetFactor float64 `yaml:"main_ring_offset_factor" mapstructure:"main_ring_offset_factor"`
	CenterExpScaleFactor float64 `yaml:"center_exp_scale_factor" mapstructure:"center_exp_scale_factor"`
	AddCenterTile        bool    `yaml:"add_center_tile" mapstructure:"add_center_tile"`
	Tile                 Dims    `yaml:"tile" mapstructure:"tile"`
	Placement            `yaml:",inline" mapstructure:",squash"`
}

// InterlockingRingsLayout generates interlocking rings.
func InterlockingRingsLayout(o InterlockingOpts) (vlib.VectorC, error) {
	if _, _, err := o.Tile.widthHeight(); err != nil || o.NumMainRings <= 0 || o.TilesPerRing <= 0 {
		return nil, ErrInvalidInput
	}
	diagonal := o.Tile.diagonal()
	ringRadiusFactor := o.RingRadiusFactor
	if ringRadiusFactor == 0 {
		ringRadiusFactor = 1.0
	}
	mainOffsetFactor := o.MainRingOffsetFactor
	if mainOffsetFactor == 0 {
		mainOffsetFactor = 1.5
	}
	ringRadius := ringRadiusFactor * diagonal
	mainOffset := mainOffsetFactor * diagonal

	base := vlib.NewVectorC(0)
	seen := make(map[complex128]struct{})
	add := func(x, y float64) {
		k := complex(round6(x), round6(y))
		if _, dup := seen[k]; !dup {
			base = append(base, complex(x, y))
			seen[k] = struct{}{}
		}
	}
	if o.AddCenterTile {
		add(0, 0)
	}
	for r := 0; r < o.NumMainRings; r++ {
		mainAngle := float64(r) * 2 * math.Pi / float64(o.NumMainRings)
		cx := mainOffset * math.Cos(mainAngle)
		cy := mainOffset * math.Sin(mainAngle)
		for t := 0; t < o.TilesPerRing; t++ {
			tileAngle := float64(t) * 2 * math.Pi / float64(o.TilesPerRing)
			add(cx+ringRadius*math.Cos(tileAngle), cy+ringRadius*math.Sin(tileAngle))
		}
	}
	if o.CenterScaleMode == SpacingCenterExponential {
		base = scaleAroundCenterTile(base, o.AddCenterTile, o.CenterExpScaleFactor)
	}
	return finalize(scatter(base, o.Placement, diagonal, o.AddCenterTile), o.Placement), nil
}

// CircularOpts configures the fixed 36-tile circular arrangement.
type CircularOpts struct {
	SpacingMode          string  `yaml:"spacing_mode" mapstructure:"spacing_mode"`
	SpacingXFactor       float64 `yaml:"spacing_x_factor" mapstructure:"spacing_x_factor"`
	SpacingYFactor       float64 `yaml:"spacing_y_factor" mapstructure:"spacing_y_factor"`
	CenterExpScaleFactor float64 `yaml:"center_exp_scale_factor" mapstructure:"center_exp_scale_factor"`
	Tile                 Dims    `yaml:"tile" mapstructure:"tile"`
	Placement            `yaml:",inline" mapstructure:",squash"`
}

// circularBlocks lists the 36 tile centers of the manual circular
// arrangement in (x,y) units of one tile pitch.
var circularBlocks = [][2]float64{
	{-5.5, 0}, {-4.5, -0.5}, {-4.5, 0.5}, {-3.5, -1}, {-3.5, 0}, {-3.5, 1},
	{0.5, 0.5}, {0.5, 1.5}, {1.5, 0.5}, {1.5, 1.5}, {2.5, 0.5}, {2.5, 1.5},
	{-0.5, 0.5}, {-0.5, 1.5}, {-1.5, 0.5}, {-1.5, 1.5}, {-2.5, 0.5}, {-2.5, 1.5},
	{0.5, -0.5}, {0.5, -1.5}, {1.5, -0.5}, {1.5, -1.5}, {2.5, -0.5}, {2.5, -1.5},
	{-0.5, -0.5}, {-0.5, -1.5}, {-1.5, -0.5}, {-1.5, -1.5}, {-2.5, -0.5}, {-2.5, -1.5},
	{5.5, 0}, {4.5, -0.5}, {4.5, 0.5}, {3.5, -1}, {3.5, 0}, {3.5, 1},
}

// CircularLayout recreates the manual circular station arrangement. In
// center-exponential mode the unit-factor geometry is scaled radially
// and the X/Y factors are ignored.
func CircularLayout(o CircularOpts) (vlib.VectorC, error) {
	w, h, err := o.Tile.widthHeight()
	if err != nil {
		return nil, ErrInvalidInput
	}
	sx := o.SpacingXFactor
	if sx == 0 {
		sx = 1.0
	}
	sy := o.SpacingYFactor
	if sy == 0 {
		sy = 1.0
	}
	if o.SpacingMode == SpacingCenterExponential {
		sx, sy = 1.0, 1.0
	}
	lenX := w * sx
	lenY := h * sy

	base := vlib.NewVectorC(len(circularBlocks))
	for i, b := range circularBlocks {
		base[i] = complex(b[0]*lenX, b[1]*lenY)
	}
	if o.SpacingMode == SpacingCenterExponential {
		base = centerExponentialScaling(base, o.CenterExpScaleFactor)
	}
	return finalize(scatter(base, o.Placement, o.Tile.diagonal(), false), o.Placement), nil
}

// RandomOpts configures purely random placement inside a disc.
type RandomOpts struct {
	NumTiles   int     `yaml:"num_tiles" mapstructure:"num_tiles"`
	MaxRadiusM float64 `yaml:"max_radius_m" mapstructure:"max_radius_m"`
	Tile       Dims    `yaml:"tile" mapstructure:"tile"`
	Placement  `yaml:",inline" mapstructure:",squash"`
}

// RandomLayout draws positions uniformly in radius and angle inside
// MaxRadiusM, enforcing the minimum separation. Tiles that cannot be
// placed are dropped.
func RandomLayout(o RandomOpts) (vlib.VectorC, error) {
	if _, _, err := o.Tile.widthHeight(); err != nil || o.NumTiles <= 0 || o.MaxRadiusM <= 0 {
		return nil, ErrInvalidInput
	}
	sep := o.MinSeparationFactor
	if sep <= 0 {
		sep = 1.05
	}
	minDist := sep * o.Tile.diagonal()
	minDistSq := minDist * minDist
	attempts := o.attempts()

	coords := vlib.NewVectorC(0)
	skipped := 0
	for n := 0; n < o.NumTiles; n++ {
		placed := false
		for a := 0; a < attempts; a++ {
			r := rand.Float64() * o.MaxRadiusM
			theta := rand.Float64() * 2 * math.Pi
			cand := complex(r*math.Cos(theta), r*math.Sin(theta))
			ok := true
			for _, q := range coords {
				dx := real(cand) - real(q)
				dy := imag(cand) - imag(q)
				if dx*dx+dy*dy < minDistSq {
					ok = false
					break
				}
			}
			if ok {
				coords = append(coords, cand)
				placed = true
				break
			}
		}
		if !placed {
			skipped++
		}
	}
	if skipped > 0 {
		log.Printf("layout: random layout skipped %d of %d tiles", skipped, o.NumTiles)
	}
	return finalize(coords, o.Placement), nil
}

// scaleAroundCenterTile applies center-exponential scaling while leaving
// a leading center tile untouched.
func scaleAroundCenterTile(coords vlib.VectorC, hasCenter bool, factor float64) vlib.VectorC {
	if !hasCenter || len(coords) == 0 {
		return centerExponentialScaling(coords, factor)
	}
	scaled := centerExponentialScaling(coords[1:], factor)
	out := vlib.NewVectorC(0)
	out = append(out, coords[0])
	return append(out, scaled...)
}
