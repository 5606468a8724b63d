// Package preset holds named curve configurations. Flags given on the
// command line override preset values.
package preset

import (
	"fmt"
	"sort"

	"github.com/kewenyu/DBmbk/internal/adapt"
	"github.com/kewenyu/DBmbk/internal/curve"
)

// Remap configures a cubic remap curve. X1 and X2 are 8-bit levels and
// are normalized with Range before use.
type Remap struct {
	Name   string
	X1, X2 float64
	Begin  float64
	Y1, Y2 float64
	End    float64
	Step   float64
	Range  string
	Planes []int
}

// Adapt configures per-frame strength adaptation.
type Adapt struct {
	Name string
	// Mode is "lin", "log", "pow" or "bezier".
	Mode   string
	Params []float64 // elementary modes; nil selects the mode defaults

	Left, Right float64 // bezier
	AncX, AncY  float64
	Step        float64

	// Base is optional; when nil the baseline must come from flags.
	Base  *adapt.Strength
	Extra map[string]string
}

var remaps = map[string]Remap{
	"default": {
		Name: "default", X1: 85, X2: 170,
		Begin: 128, Y1: 128, Y2: 128, End: 128,
		Step: 0.01, Range: "pc", Planes: []int{0},
	},
	"identity": {
		Name: "identity", X1: 85, X2: 170,
		Begin: 0, Y1: 85, Y2: 170, End: 255,
		Step: 0.01, Range: "pc", Planes: []int{0},
	},
	"contrast": {
		Name: "contrast", X1: 85, X2: 170,
		Begin: 0, Y1: 0, Y2: 255, End: 255,
		Step: 0.01, Range: "tv", Planes: []int{0},
	},
	"shadows": {
		Name: "shadows", X1: 60, X2: 160,
		Begin: 16, Y1: 110, Y2: 200, End: 235,
		Step: 0.01, Range: "tv", Planes: []int{0},
	},
}

var adapts = map[string]Adapt{
	"lin": {Name: "lin", Mode: "lin"},
	"log": {Name: "log", Mode: "log"},
	"pow": {Name: "pow", Mode: "pow"},
	"bezier": {
		Name: "bezier", Mode: "bezier",
		Left: 64, Right: 32, AncX: 0.4, AncY: 70, Step: 0.001,
	},
	"log-grainless": {
		Name: "log-grainless", Mode: "log",
		Base:  &adapt.Strength{Y: 72, Cb: 48, Cr: 48},
		Extra: map[string]string{"range": "15", "grainy": "0"},
	},
	"bezier-grainless": {
		Name: "bezier-grainless", Mode: "bezier",
		Left: 48, Right: 22, AncX: 0.4, AncY: 70, Step: 0.001,
		Extra: map[string]string{"range": "15", "grainy": "0"},
	},
}

// GetRemap returns the named remap preset.
func GetRemap(name string) (Remap, error) {
	p, ok := remaps[name]
	if !ok {
		return Remap{}, fmt.Errorf("%w: unknown remap preset %q (have %v)", curve.ErrInvalidParameters, name, RemapNames())
	}
	p.Planes = append([]int(nil), p.Planes...)
	return p, nil
}

// GetAdapt returns the named adapt preset.
func GetAdapt(name string) (Adapt, error) {
	p, ok := adapts[name]
	if !ok {
		return Adapt{}, fmt.Errorf("%w: unknown adapt preset %q (have %v)", curve.ErrInvalidParameters, name, AdaptNames())
	}
	if p.Base != nil {
		b := *p.Base
		p.Base = &b
	}
	if p.Extra != nil {
		extra := make(map[string]string, len(p.Extra))
		for k, v := range p.Extra {
			extra[k] = v
		}
		p.Extra = extra
	}
	return p, nil
}

// RemapNames lists the remap presets in sorted order.
func RemapNames() []string {
	return sortedKeys(remaps)
}

// AdaptNames lists the adapt presets in sorted order.
func AdaptNames() []string {
	return sortedKeys(adapts)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Cubic builds the remap curve, normalizing X1 and X2 through the
// preset's range.
func (p Remap) Cubic() (curve.Cubic, curve.Range, error) {
	r, err := curve.ParseRange(p.Range)
	if err != nil {
		return curve.Cubic{}, 0, err
	}
	x1, err := r.Normalize(p.X1)
	if err != nil {
		return curve.Cubic{}, 0, err
	}
	x2, err := r.Normalize(p.X2)
	if err != nil {
		return curve.Cubic{}, 0, err
	}
	c, err := curve.NewCubic(x1, x2, p.Begin, p.Y1, p.Y2, p.End)
	if err != nil {
		return curve.Cubic{}, 0, err
	}
	return c, r, nil
}

// Context builds the adaptation context for p with the given options.
// When opts.Extra is nil the preset's pass-through values are used.
func (p Adapt) Context(opts adapt.Options) (*adapt.Context, error) {
	if opts.Extra == nil {
		opts.Extra = p.Extra
	}
	if p.Mode == "bezier" {
		q, err := curve.NewQuadratic(p.Left, p.Right, p.AncX, p.AncY)
		if err != nil {
			return nil, err
		}
		cfg, err := curve.NewSolverConfig(p.Step)
		if err != nil {
			return nil, err
		}
		return adapt.NewBezier(q, cfg, opts)
	}
	mode, err := curve.ParseMode(p.Mode)
	if err != nil {
		return nil, err
	}
	e, err := curve.NewElementary(mode, p.Params)
	if err != nil {
		return nil, err
	}
	return adapt.NewElementary(e, opts)
}
