package preview

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// GnuplotPlotter renders by piping a script to gnuplot.
// Install: brew install gnuplot / apt install gnuplot
type GnuplotPlotter struct {
	once sync.Once
	path string
}

func (g *GnuplotPlotter) Name() string { return "gnuplot" }

func (g *GnuplotPlotter) Available() bool {
	g.once.Do(func() {
		if p, err := exec.LookPath("gnuplot"); err == nil {
			g.path = p
		}
	})
	return g.path != ""
}

func (g *GnuplotPlotter) Render(pl Plot, w io.Writer) error {
	if !g.Available() {
		return fmt.Errorf("%w: gnuplot not found in PATH", ErrMissingCapability)
	}

	var script bytes.Buffer
	fmt.Fprintln(&script, "set terminal png size 800,600")
	fmt.Fprintf(&script, "set title %q\n", pl.Title)
	fmt.Fprintf(&script, "set xlabel %q\nset ylabel %q\n", pl.XLabel, pl.YLabel)
	fmt.Fprintf(&script, "set xrange [%g:%g]\nset yrange [%g:%g]\n", pl.XMin, pl.XMax, pl.YMin, pl.YMax)
	fmt.Fprintln(&script, "plot '-' with lines notitle")
	for _, pt := range pl.Points {
		fmt.Fprintf(&script, "%g %g\n", pt.X, pt.Y)
	}
	fmt.Fprintln(&script, "e")

	var stderr bytes.Buffer
	cmd := exec.Command(g.path)
	cmd.Stdin = &script
	cmd.Stdout = w
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("gnuplot: %w: %s", err, stderr.String())
	}
	return nil
}
