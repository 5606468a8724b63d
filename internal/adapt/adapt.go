// Package adapt derives per-frame debanding strengths from a frame's
// average luma.
//
// A Context is built once and never modified afterwards, so Derive may
// be called from any number of goroutines, for frames in any order.
package adapt

import (
	"fmt"
	"math"

	"github.com/kewenyu/DBmbk/internal/curve"
)

// MaxStrength is the upper bound of every strength channel.
const MaxStrength = 128

// Strength holds the per-channel parameters handed to the filter.
type Strength struct {
	Y  int `json:"y"`
	Cb int `json:"cb"`
	Cr int `json:"cr"`
}

// Kind identifies which curve family a Context uses.
type Kind int

const (
	KindElementary Kind = iota
	KindBezier
)

func (k Kind) String() string {
	if k == KindBezier {
		return "bezier"
	}
	return "elementary"
}

// Options are shared by both curve families.
type Options struct {
	// Base is the baseline strength the curve shifts or scales.
	Base Strength
	// Chroma applies the adjustment to Cb and Cr as well. When false
	// they stay at their baseline values.
	Chroma bool
	// Debug makes the pipeline render Result.Annotation onto frames.
	Debug bool
	// Extra is passed to the filter untouched.
	Extra map[string]string
}

// Context is the immutable per-pipeline adaptation state.
type Context struct {
	kind       Kind
	elementary curve.Elementary
	bezier     curve.Quadratic
	solver     curve.SolverConfig
	opts       Options
}

// NewElementary returns a Context that shifts the baseline by e.Bias.
func NewElementary(e curve.Elementary, opts Options) (*Context, error) {
	if err := checkBase(opts.Base); err != nil {
		return nil, err
	}
	e.Params = append([]float64(nil), e.Params...)
	return &Context{kind: KindElementary, elementary: e, opts: cloneOptions(opts)}, nil
}

// NewBezier returns a Context that reads the Y strength off q.
func NewBezier(q curve.Quadratic, cfg curve.SolverConfig, opts Options) (*Context, error) {
	if err := checkBase(opts.Base); err != nil {
		return nil, err
	}
	if cfg.Step <= 0 || cfg.Step > 1 || cfg.Tolerance <= 0 {
		return nil, fmt.Errorf("%w: step=%v tolerance=%v", curve.ErrInvalidCoordinates, cfg.Step, cfg.Tolerance)
	}
	return &Context{kind: KindBezier, bezier: q, solver: cfg, opts: cloneOptions(opts)}, nil
}

func checkBase(b Strength) error {
	if b.Y < 0 || b.Cb < 0 || b.Cr < 0 {
		return fmt.Errorf("%w: negative baseline strength %+v", curve.ErrInvalidParameters, b)
	}
	return nil
}

func cloneOptions(o Options) Options {
	if o.Extra != nil {
		extra := make(map[string]string, len(o.Extra))
		for k, v := range o.Extra {
			extra[k] = v
		}
		o.Extra = extra
	}
	return o
}

func (c *Context) Kind() Kind     { return c.kind }
func (c *Context) Base() Strength { return c.opts.Base }
func (c *Context) Chroma() bool   { return c.opts.Chroma }
func (c *Context) Debug() bool    { return c.opts.Debug }

// Result is the outcome of one Derive call.
type Result struct {
	Kind  Kind
	Frame int
	Luma  float64
	// Bias is the elementary shift; zero for Bézier contexts.
	Bias float64
	// T is the solved curve parameter; zero for elementary contexts.
	T        float64
	Strength Strength
	Base     Strength
}

// Derive computes the strengths for one frame. luma is the frame's
// average luma in [0,1]; values outside it are rejected.
func (c *Context) Derive(frame int, luma float64) (Result, error) {
	if math.IsNaN(luma) || luma < 0 || luma > 1 {
		return Result{}, fmt.Errorf("frame %d: %w: average luma %v outside [0,1]", frame, curve.ErrDomain, luma)
	}
	res := Result{Kind: c.kind, Frame: frame, Luma: luma, Base: c.opts.Base, Strength: c.opts.Base}
	base := c.opts.Base

	switch c.kind {
	case KindElementary:
		bias, err := c.elementary.Bias(luma)
		if err != nil {
			return Result{}, fmt.Errorf("frame %d: %w", frame, err)
		}
		res.Bias = bias
		res.Strength.Y = shift(base.Y, bias)
		if c.opts.Chroma {
			res.Strength.Cb = shift(base.Cb, bias)
			res.Strength.Cr = shift(base.Cr, bias)
		}

	case KindBezier:
		y, t, err := curve.Invert(c.bezier, luma, c.solver)
		if err != nil {
			return Result{}, fmt.Errorf("frame %d: %w", frame, err)
		}
		res.T = t
		res.Strength.Y = clampStrength(y)
		if c.opts.Chroma {
			if base.Y == 0 {
				return Result{}, fmt.Errorf("frame %d: %w: chroma scaling with baseline y=0", frame, curve.ErrDivisionByZero)
			}
			ys := float64(res.Strength.Y)
			res.Strength.Cb = clampStrength(float64(base.Cb) / float64(base.Y) * ys)
			res.Strength.Cr = clampStrength(float64(base.Cr) / float64(base.Y) * ys)
		}

	default:
		return Result{}, fmt.Errorf("frame %d: %w: unknown curve kind %v", frame, curve.ErrInvalidParameters, c.kind)
	}
	return res, nil
}

func shift(base int, bias float64) int {
	return clampStrength(float64(base) + bias)
}

// clampStrength truncates toward zero and clamps to [0, MaxStrength].
func clampStrength(v float64) int {
	return int(curve.Clamp(v, 0, MaxStrength))
}
