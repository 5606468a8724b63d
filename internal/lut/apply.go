package lut

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ErrPlaneMissing is returned when a selected plane does not exist in
// the image layout.
var ErrPlaneMissing = errors.New("plane not present in image")

// Apply returns a copy of img with every sample of the selected planes
// replaced by its table entry. img is never modified.
//
// Planar YCbCr images are remapped per plane. Gray images have a single
// plane. Any other layout is converted to NRGBA and planes 0-2 select
// the R, G and B channels; alpha is left alone.
func Apply(img image.Image, t *Table, planes Planes) (image.Image, error) {
	switch src := img.(type) {
	case *image.YCbCr:
		return applyYCbCr(src, t, planes), nil
	case *image.NYCbCrA:
		out := &image.NYCbCrA{
			YCbCr:   *applyYCbCr(&src.YCbCr, t, planes),
			A:       append([]uint8(nil), src.A...),
			AStride: src.AStride,
		}
		return out, nil
	case *image.Gray:
		if err := grayOnly(planes); err != nil {
			return nil, err
		}
		out := &image.Gray{Pix: make([]uint8, len(src.Pix)), Stride: src.Stride, Rect: src.Rect}
		mapSlice(out.Pix, src.Pix, t)
		return out, nil
	case *image.Gray16:
		if err := grayOnly(planes); err != nil {
			return nil, err
		}
		out := &image.Gray16{Pix: make([]uint8, len(src.Pix)), Stride: src.Stride, Rect: src.Rect}
		// big-endian sample pairs
		for i := 0; i+1 < len(src.Pix); i += 2 {
			v := t.Map16(uint16(src.Pix[i])<<8 | uint16(src.Pix[i+1]))
			out.Pix[i] = uint8(v >> 8)
			out.Pix[i+1] = uint8(v)
		}
		return out, nil
	default:
		r, g, b := planes.Has(0), planes.Has(1), planes.Has(2)
		return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
			if r {
				c.R = t[c.R]
			}
			if g {
				c.G = t[c.G]
			}
			if b {
				c.B = t[c.B]
			}
			return c
		}), nil
	}
}

func applyYCbCr(src *image.YCbCr, t *Table, planes Planes) *image.YCbCr {
	out := &image.YCbCr{
		Y:              make([]uint8, len(src.Y)),
		Cb:             make([]uint8, len(src.Cb)),
		Cr:             make([]uint8, len(src.Cr)),
		YStride:        src.YStride,
		CStride:        src.CStride,
		SubsampleRatio: src.SubsampleRatio,
		Rect:           src.Rect,
	}
	for i, pair := range [][2][]uint8{{out.Y, src.Y}, {out.Cb, src.Cb}, {out.Cr, src.Cr}} {
		if planes.Has(i) {
			mapSlice(pair[0], pair[1], t)
		} else {
			copy(pair[0], pair[1])
		}
	}
	return out
}

func mapSlice(dst, src []uint8, t *Table) {
	for i, v := range src {
		dst[i] = t[v]
	}
}

func grayOnly(planes Planes) error {
	for _, p := range planes {
		if p != 0 {
			return fmt.Errorf("%w: plane %d of a gray image", ErrPlaneMissing, p)
		}
	}
	return nil
}
