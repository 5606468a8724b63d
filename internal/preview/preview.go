// Package preview samples curves and renders them for inspection.
// Nothing in here is used when processing frames.
package preview

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kewenyu/DBmbk/internal/curve"
)

// ErrMissingCapability is returned when the requested plotter is not
// available on this system.
var ErrMissingCapability = errors.New("plotting capability not available")

// SampleCount is the number of points taken along a curve.
const SampleCount = 1000

// Point is one sampled (x, y) pair.
type Point struct {
	X, Y float64
}

// Plot is a sampled curve with fixed axis bounds.
type Plot struct {
	Title      string
	XLabel     string
	YLabel     string
	Points     []Point
	XMin, XMax float64
	YMin, YMax float64
}

// RemapPlot samples x = i/SampleCount and plots y(solve(x)) on
// [0,1]x[0,255]. A failed solve fails the whole plot.
func RemapPlot(c curve.Parametric, cfg curve.SolverConfig) (Plot, error) {
	p := Plot{
		Title: "remap curve", XLabel: "input (normalized)", YLabel: "output level",
		XMin: 0, XMax: 1, YMin: 0, YMax: 255,
	}
	for i := 0; i < SampleCount; i++ {
		x := float64(i) / SampleCount
		y, _, err := curve.Invert(c, x, cfg)
		if err != nil {
			return Plot{}, fmt.Errorf("sample %d: %w", i, err)
		}
		p.Points = append(p.Points, Point{X: x, Y: y})
	}
	return p, nil
}

// AdaptPlot samples t = i/SampleCount and plots y(t) directly. The y
// axis spans the sampled values and the strength range.
func AdaptPlot(c curve.Parametric) Plot {
	p := Plot{
		Title: "adaptation curve", XLabel: "t", YLabel: "strength",
		XMin: 0, XMax: 1, YMin: 0, YMax: 128,
	}
	for i := 0; i < SampleCount; i++ {
		t := float64(i) / SampleCount
		y := c.Y(t)
		p.YMin = min(p.YMin, y)
		p.YMax = max(p.YMax, y)
		p.Points = append(p.Points, Point{X: t, Y: y})
	}
	return p
}

// Plotter renders a Plot as an image.
type Plotter interface {
	Name() string
	// Available reports whether the plotter can run here. External
	// tools may not be installed.
	Available() bool
	Render(p Plot, w io.Writer) error
}

// Registry holds the known plotters.
type Registry struct {
	plotters map[string]Plotter
}

// NewRegistry registers the built-in PNG plotter and the gnuplot
// plotter. Availability is checked on Get.
func NewRegistry() *Registry {
	r := &Registry{plotters: make(map[string]Plotter)}
	for _, p := range []Plotter{&PNGPlotter{Width: 800, Height: 600}, &GnuplotPlotter{}} {
		r.plotters[p.Name()] = p
	}
	return r
}

// Register adds or replaces a plotter.
func (r *Registry) Register(p Plotter) {
	r.plotters[p.Name()] = p
}

// Get returns the named plotter or ErrMissingCapability.
func (r *Registry) Get(name string) (Plotter, error) {
	p, ok := r.plotters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown plotter %q", ErrMissingCapability, name)
	}
	if !p.Available() {
		return nil, fmt.Errorf("%w: %s is not installed", ErrMissingCapability, name)
	}
	return p, nil
}

// String lists the plotters usable on this system.
func (r *Registry) String() string {
	var names []string
	for n, p := range r.plotters {
		if p.Available() {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return "no plotters available"
	}
	sort.Strings(names)
	return "plotters: " + strings.Join(names, ", ")
}
