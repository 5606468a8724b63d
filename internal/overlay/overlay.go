// Package overlay draws debug text onto frames.
package overlay

import (
	"image"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	margin     = 8.0
	lineHeight = 1.4
)

// Text returns a copy of frame with text drawn in the top-left corner,
// one line per '\n', white on a translucent dark box. The result is
// always an *image.RGBA; frame is not modified.
func Text(frame image.Image, text string) image.Image {
	dc := gg.NewContextForImage(frame)
	dc.SetFontFace(basicfont.Face7x13)

	lines := strings.Split(text, "\n")
	var w float64
	for _, l := range lines {
		if lw, _ := dc.MeasureString(l); lw > w {
			w = lw
		}
	}
	step := dc.FontHeight() * lineHeight
	h := step * float64(len(lines))

	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, 0, w+2*margin, h+margin)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	for i, l := range lines {
		dc.DrawString(l, margin, margin+step*float64(i)+dc.FontHeight())
	}
	return dc.Image()
}
