// Package stats computes per-frame plane statistics.
package stats

import (
	"errors"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ErrEmptyFrame is returned for images with no pixels.
var ErrEmptyFrame = errors.New("empty frame")

// AverageLuma returns the mean of plane 0 normalized by the sample
// maximum, so the result is in [0,1] regardless of bit depth.
//
// For YCbCr and gray images plane 0 is read directly. Other layouts
// are converted to NRGBA and luma is derived with the JFIF (full-range
// BT.601) weights.
func AverageLuma(img image.Image) (float64, error) {
	b := img.Bounds()
	n := uint64(b.Dx()) * uint64(b.Dy())
	if b.Empty() || n == 0 {
		return 0, ErrEmptyFrame
	}

	var sum uint64
	switch src := img.(type) {
	case *image.YCbCr:
		sum = sumYCbCr(src)
	case *image.NYCbCrA:
		sum = sumYCbCr(&src.YCbCr)
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				sum += uint64(row[x])
			}
		}
	case *image.Gray16:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				sum += uint64(row[2*x])<<8 | uint64(row[2*x+1])
			}
		}
		return float64(sum) / float64(n) / 65535, nil
	default:
		nrgba := imaging.Clone(img)
		for i := 0; i+3 < len(nrgba.Pix); i += 4 {
			yy, _, _ := color.RGBToYCbCr(nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2])
			sum += uint64(yy)
		}
	}
	return float64(sum) / float64(n) / 255, nil
}

func sumYCbCr(src *image.YCbCr) uint64 {
	b := src.Rect
	var sum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := src.YOffset(b.Min.X, y)
		for _, v := range src.Y[off : off+b.Dx()] {
			sum += uint64(v)
		}
	}
	return sum
}
