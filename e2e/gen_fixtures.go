//go:build ignore

// gen_fixtures writes a short clip of frames with stepped brightness for
// the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
)

const frames = 8

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(filepath.Join(dir, "clip"), 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Gray PNG frames from dark to bright.
	for i := 0; i < frames; i++ {
		level := uint8(16 + i*(219/(frames-1)))
		writePNG(filepath.Join(dir, "clip", fmt.Sprintf("%03d.png", i)), banded(320, 180, level))
	}

	// One YCbCr JPEG and one colour PNG exercise the chroma paths.
	writeJPEG(filepath.Join(dir, "clip", "100.jpg"), ycbcrGradient(320, 180))
	writePNG(filepath.Join(dir, "clip", "101.png"), gradient(320, 180))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created %d fixtures in %s\n", frames+2, dir)
}

// banded is a flat frame with shallow horizontal steps around level,
// the kind of content that shows banding.
func banded(w, h int, level uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		v := int(level) + (y*4/h - 2)
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return img
}

func ycbcrGradient(w, h int) *image.YCbCr {
	img := image.NewYCbCr(image.Rect(0, 0, w, h), image.YCbCrSubsampleRatio420)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Y[img.YOffset(x, y)] = uint8(16 + x*219/w)
		}
	}
	for i := range img.Cb {
		img.Cb[i] = 112
		img.Cr[i] = 140
	}
	return img
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func writePNG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func writeJPEG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
