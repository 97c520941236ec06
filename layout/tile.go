// Package layout generates tile-center layouts for a station and the
// antenna positions inside one tile. Coordinates are x+iy in meters,
// centered on the origin, in the vlib complex-vector convention.
package layout

import (
	"math"

	"github.com/wiless/vlib"
)

// Tile geometry. A tile carries 16 subgroup centers on a 2x8 grid, each
// surrounded by a 4-element diamond, 64 antennas in total.
const (
	SubgroupDX    = 176.0695885e-3 // meters
	SubgroupDY    = 167.5843071e-3 // meters
	SubgroupCols  = 2
	SubgroupRows  = 8
	DiamondOffset = 0.05 // meters

	// Physical tile footprint used as the scale reference by the
	// station generators.
	TileWidth  = 0.35 // meters
	TileHeight = 1.34 // meters

	TileAntennaCount = SubgroupCols * SubgroupRows * 4
)

// TileDiagonal is the reference length for factor-based spacing.
func TileDiagonal() float64 {
	return math.Sqrt(TileWidth*TileWidth + TileHeight*TileHeight)
}

// Tile64 returns the 64 antenna positions inside one tile, centered on
// the origin.
func Tile64() vlib.VectorC {
	offsets := [4]complex128{
		complex(0, DiamondOffset),
		complex(DiamondOffset, 0),
		complex(0, -DiamondOffset),
		complex(-DiamondOffset, 0),
	}
	out := vlib.NewVectorC(0)
	for i := 0; i < SubgroupCols; i++ {
		cx := (float64(i) - float64(SubgroupCols-1)/2.0) * SubgroupDX
		for j := 0; j < SubgroupRows; j++ {
			cy := (float64(j) - float64(SubgroupRows-1)/2.0) * SubgroupDY
			center := complex(cx, cy)
			for _, off := range offsets {
				out = append(out, center+off)
			}
		}
	}
	return out.AddC(-vlib.MeanC(out))
}

// ExpandTiles translates the tile element positions to every tile
// center, producing the full station antenna list.
func ExpandTiles(centers, tile vlib.VectorC) vlib.VectorC {
	out := vlib.NewVectorC(0)
	for _, c := range centers {
		for _, e := range tile {
			out = append(out, e+c)
		}
	}
	return out
}
