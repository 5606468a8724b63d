package cmd

import (
	"fmt"

	"github.com/kewenyu/DBmbk/internal/adapt"
	"github.com/kewenyu/DBmbk/internal/curve"
	"github.com/kewenyu/DBmbk/internal/preset"
	"github.com/spf13/pflag"
)

// remapFlags are the cubic remap curve options. Explicitly set flags
// override the chosen preset.
type remapFlags struct {
	preset string
	x1, x2 float64
	begin  float64
	y1, y2 float64
	end    float64
	step   float64
	rng    string
	planes []int
}

func (f *remapFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.preset, "preset", "default", "remap preset")
	fs.Float64Var(&f.x1, "x1", 85, "first control point abscissa, in 8-bit levels")
	fs.Float64Var(&f.x2, "x2", 170, "second control point abscissa, in 8-bit levels")
	fs.Float64Var(&f.begin, "begin", 128, "output level at input 0")
	fs.Float64Var(&f.y1, "y1", 128, "first control point ordinate")
	fs.Float64Var(&f.y2, "y2", 128, "second control point ordinate")
	fs.Float64Var(&f.end, "end", 128, "output level at input 1")
	fs.Float64Var(&f.step, "step", 0.01, "solver step in (0,1]; smaller is more accurate and slower")
	fs.StringVar(&f.rng, "range", "pc", "input range: tv or pc")
	fs.IntSliceVar(&f.planes, "planes", []int{0}, "planes to process (0=Y/R, 1=Cb/G, 2=Cr/B)")
}

// resolve merges the preset with explicitly set flags.
func (f *remapFlags) resolve(fs *pflag.FlagSet) (preset.Remap, error) {
	p, err := preset.GetRemap(f.preset)
	if err != nil {
		return preset.Remap{}, err
	}
	overrideFloat(fs, "x1", &p.X1, f.x1)
	overrideFloat(fs, "x2", &p.X2, f.x2)
	overrideFloat(fs, "begin", &p.Begin, f.begin)
	overrideFloat(fs, "y1", &p.Y1, f.y1)
	overrideFloat(fs, "y2", &p.Y2, f.y2)
	overrideFloat(fs, "end", &p.End, f.end)
	overrideFloat(fs, "step", &p.Step, f.step)
	if fs.Changed("range") {
		p.Range = f.rng
	}
	if fs.Changed("planes") {
		p.Planes = f.planes
	}
	return p, nil
}

// adaptFlags are the per-frame adaptation options.
type adaptFlags struct {
	preset      string
	mode        string
	params      []float64
	left, right float64
	ancX, ancY  float64
	step        float64
}

func (f *adaptFlags) register(fs *pflag.FlagSet, defaultMode string) {
	fs.StringVar(&f.preset, "preset", "", "adapt preset (default: the preset named by --mode)")
	fs.StringVar(&f.mode, "mode", defaultMode, "curve: lin, log, pow or bezier")
	fs.Float64SliceVar(&f.params, "params", nil, "elementary parameters (lin: 2, log/pow: 3)")
	fs.Float64Var(&f.left, "left", 64, "bezier strength at luma 0")
	fs.Float64Var(&f.right, "right", 32, "bezier strength at luma 1")
	fs.Float64Var(&f.ancX, "anc-x", 0.4, "bezier anchor luma in [0,1]")
	fs.Float64Var(&f.ancY, "anc-y", 70, "bezier anchor strength")
	fs.Float64Var(&f.step, "step", 0.001, "bezier solver step in (0,1]")
}

func (f *adaptFlags) resolve(fs *pflag.FlagSet) (preset.Adapt, error) {
	name := f.preset
	if name == "" {
		name = f.mode
	}
	p, err := preset.GetAdapt(name)
	if err != nil {
		return preset.Adapt{}, err
	}
	presetMode := p.Mode
	if fs.Changed("mode") {
		p.Mode = f.mode
	}
	if fs.Changed("params") {
		p.Params = f.params
	}
	overrideFloat(fs, "left", &p.Left, f.left)
	overrideFloat(fs, "right", &p.Right, f.right)
	overrideFloat(fs, "anc-x", &p.AncX, f.ancX)
	overrideFloat(fs, "anc-y", &p.AncY, f.ancY)
	overrideFloat(fs, "step", &p.Step, f.step)
	if p.Mode == "bezier" && presetMode != "bezier" {
		// The preset carries no bezier shape; take every bezier flag,
		// set or default.
		p.Left, p.Right, p.AncX, p.AncY, p.Step = f.left, f.right, f.ancX, f.ancY, f.step
	}
	return p, nil
}

// strengthFlags are the baseline filter strengths.
type strengthFlags struct {
	y, cb, cr int
	chroma    bool
	debug     bool
	extra     map[string]string
}

func (f *strengthFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.y, "y", 0, "baseline luma strength")
	fs.IntVar(&f.cb, "cb", 0, "baseline Cb strength")
	fs.IntVar(&f.cr, "cr", 0, "baseline Cr strength")
	fs.BoolVar(&f.chroma, "chroma", false, "adjust Cb and Cr as well")
	fs.BoolVar(&f.debug, "debug", false, "draw the derived strengths onto each frame")
	fs.StringToStringVar(&f.extra, "filter-arg", nil, "pass-through filter parameter key=value (repeatable)")
}

// options builds adapt.Options. y, cb and cr must all be given unless
// the preset carries a baseline.
func (f *strengthFlags) options(fs *pflag.FlagSet, p preset.Adapt) (adapt.Options, error) {
	set := fs.Changed("y") && fs.Changed("cb") && fs.Changed("cr")
	var base adapt.Strength
	switch {
	case set:
		base = adapt.Strength{Y: f.y, Cb: f.cb, Cr: f.cr}
	case p.Base != nil:
		base = *p.Base
		if fs.Changed("y") {
			base.Y = f.y
		}
		if fs.Changed("cb") {
			base.Cb = f.cb
		}
		if fs.Changed("cr") {
			base.Cr = f.cr
		}
	default:
		return adapt.Options{}, fmt.Errorf("%w: y, cb, cr of the filter must be set", curve.ErrInvalidParameters)
	}

	opts := adapt.Options{Base: base, Chroma: f.chroma, Debug: f.debug}
	if len(f.extra) > 0 {
		opts.Extra = make(map[string]string, len(p.Extra)+len(f.extra))
		for k, v := range p.Extra {
			opts.Extra[k] = v
		}
		for k, v := range f.extra {
			opts.Extra[k] = v
		}
	}
	return opts, nil
}

func overrideFloat(fs *pflag.FlagSet, name string, dst *float64, v float64) {
	if fs.Changed(name) {
		*dst = v
	}
}
