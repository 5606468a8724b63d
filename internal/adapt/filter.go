package adapt

import (
	"context"
	"fmt"
	"image"
)

// FilterParams is everything the downstream filter receives for a frame.
// Only Strength is interpreted here; Extra is opaque pass-through
// configuration such as grain or range settings.
type FilterParams struct {
	Strength Strength
	Extra    map[string]string
}

// Filter is a strength-parameterized frame filter.
type Filter interface {
	Name() string
	Apply(ctx context.Context, frame image.Image, p FilterParams) (image.Image, error)
}

// Params builds the filter parameters for r. The Extra map is shared
// read-only with the Context.
func (c *Context) Params(r Result) FilterParams {
	return FilterParams{Strength: r.Strength, Extra: c.opts.Extra}
}

// PassThrough returns frames unchanged. It stands in for the external
// debanding filter when only the derived strengths are of interest.
type PassThrough struct{}

func (PassThrough) Name() string { return "passthrough" }

func (PassThrough) Apply(ctx context.Context, frame image.Image, _ FilterParams) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return frame, nil
}

// Annotation is the debug text rendered onto a frame.
func (r Result) Annotation() string {
	s := r.Strength
	if r.Kind == KindBezier {
		return fmt.Sprintf("Frames: %d\nAverage Luma: %v\nt: %v\nY: %d\nCb: %d\nCr: %d",
			r.Frame, r.Luma, r.T, s.Y, s.Cb, s.Cr)
	}
	b := r.Base
	return fmt.Sprintf("Frames: %d\nAverage Luma: %v\nShift: %v\nY: %d (%d)\nCb: %d (%d)\nCr: %d (%d)",
		r.Frame, r.Luma, r.Bias, s.Y, b.Y, s.Cb, b.Cb, s.Cr, b.Cr)
}
