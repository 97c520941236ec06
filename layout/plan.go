package layout

import (
	"fmt"
	"io"
	"os"

	ms "github.com/mitchellh/mapstructure"
	"github.com/wiless/vlib"
	"gopkg.in/yaml.v3"
)

// Shape names accepted in a plan entry.
const (
	ShapeGrid         = "grid"
	ShapeSpiral       = "spiral"
	ShapeRing         = "ring"
	ShapeRhombus      = "rhombus"
	ShapeHexGrid      = "hex_grid"
	ShapePhyllotaxis  = "phyllotaxis"
	ShapeInterlocking = "interlocking_rings"
	ShapeCircular     = "circular"
	ShapeRandom       = "random"
)

// PlanEntry is one named station layout in a plan file. Params are
// decoded into the option struct matching Shape.
type PlanEntry struct {
	Name   string                 `yaml:"name"`
	Shape  string                 `yaml:"shape"`
	Params map[string]interface{} `yaml:"params"`
}

// Plan is an ordered list of station layouts to generate.
type Plan struct {
	Layouts []PlanEntry `yaml:"layouts"`
}

// LoadPlan reads a YAML plan file.
func LoadPlan(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPlan(f)
}

// ReadPlan parses a YAML plan from r.
func ReadPlan(r io.Reader) (*Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("layout: parsing plan: %w", err)
	}
	for i, e := range p.Layouts {
		if e.Shape == "" {
			return nil, fmt.Errorf("layout: plan entry %d (%q) has no shape: %w", i, e.Name, ErrInvalidInput)
		}
	}
	return &p, nil
}

func decodeParams(params map[string]interface{}, out interface{}) error {
	dec, err := ms.NewDecoder(&ms.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(params)
}

// Generate builds the tile centers for one plan entry.
func (e PlanEntry) Generate() (vlib.VectorC, error) {
	switch e.Shape {
	case ShapeGrid:
		var o GridOpts
		if err := decodeParams(e.Params, &o); err != nil {
			return nil, err
		}
		return GridLayout(o)
	case ShapeSpiral:
		var o SpiralOpts
		if err := decodeParams(e.Params, &o); err != nil {
			return nil, err
		}
		return SpiralLayout(o)
	case ShapeRing:
		var o RingOpts
		if err := decodeParams(e.Params, &o); err != nil {
			return nil, err
		}
		return RingLayout(o)
	case ShapeRhombus:
		var o RhombusOpts
		if err := decodeParams(e.Params, &o); err != nil {
			return nil, err
		}
		return RhombusLayout(o)
	case ShapeHexGrid:
		var o HexOpts
		if err := decodeParams(e.Params, &o); err != nil {
			return nil, err
		}
		return HexGridLayout(o)
	case ShapePhyllotaxis:
		var o PhyllotaxisOpts
		if err := decodeParams(e.Params, &o); err != nil {
			return nil, err
		}
		return PhyllotaxisLayout(o)
	case ShapeInterlocking:
		var o InterlockingOpts
		if err := decodeParams(e.Params, &o); err != nil {
			return nil, err
		}
		return InterlockingRingsLayout(o)
	case ShapeCircular:
		var o CircularOpts
		if err := decodeParams(e.Params, &o); err != nil {
			return nil, err
		}
		return CircularLayout(o)
	case ShapeRandom:
		var o RandomOpts
		if err := decodeParams(e.Params, &o); err != nil {
			return nil, err
		}
		return RandomLayout(o)
	}
	return nil, fmt.Errorf("layout: unknown shape %q: %w", e.Shape, ErrInvalidInput)
}
