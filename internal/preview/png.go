package preview

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"
)

// PNGPlotter draws plots in-process with gg. It is always available.
type PNGPlotter struct {
	Width, Height int
}

func (p *PNGPlotter) Name() string    { return "png" }
func (p *PNGPlotter) Available() bool { return true }

const plotPad = 48.0

func (p *PNGPlotter) Render(pl Plot, w io.Writer) error {
	if len(pl.Points) == 0 {
		return fmt.Errorf("render %q: no points", pl.Title)
	}
	if pl.XMax <= pl.XMin || pl.YMax <= pl.YMin {
		return fmt.Errorf("render %q: empty axis range", pl.Title)
	}
	width, height := p.Width, p.Height
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	x0, y0 := plotPad, float64(height)-plotPad
	pw, ph := float64(width)-2*plotPad, float64(height)-2*plotPad
	px := func(x float64) float64 { return x0 + (x-pl.XMin)/(pl.XMax-pl.XMin)*pw }
	py := func(y float64) float64 { return y0 - (y-pl.YMin)/(pl.YMax-pl.YMin)*ph }

	// axes and grid
	dc.SetRGB(0.85, 0.85, 0.85)
	dc.SetLineWidth(1)
	for i := 0; i <= 4; i++ {
		f := float64(i) / 4
		dc.DrawLine(x0+f*pw, y0, x0+f*pw, y0-ph)
		dc.DrawLine(x0, y0-f*ph, x0+pw, y0-f*ph)
	}
	dc.Stroke()
	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(x0, y0-ph, pw, ph)
	dc.Stroke()
	for i := 0; i <= 4; i++ {
		f := float64(i) / 4
		dc.DrawStringAnchored(fmt.Sprintf("%g", pl.XMin+f*(pl.XMax-pl.XMin)), x0+f*pw, y0+14, 0.5, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf("%g", pl.YMin+f*(pl.YMax-pl.YMin)), x0-6, y0-f*ph, 1, 0.5)
	}
	dc.DrawStringAnchored(pl.Title, float64(width)/2, plotPad/2, 0.5, 0.5)
	dc.DrawStringAnchored(pl.XLabel, float64(width)/2, float64(height)-plotPad/4, 0.5, 0.5)

	// curve
	dc.SetRGB(0.1, 0.3, 0.8)
	dc.SetLineWidth(2)
	for i, pt := range pl.Points {
		if i == 0 {
			dc.MoveTo(px(pt.X), py(pt.Y))
		} else {
			dc.LineTo(px(pt.X), py(pt.Y))
		}
	}
	dc.Stroke()

	return dc.EncodePNG(w)
}
