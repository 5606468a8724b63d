package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/kewenyu/DBmbk/internal/curve"
	"github.com/kewenyu/DBmbk/internal/preview"
	"github.com/spf13/cobra"
)

var (
	previewRemapOpts remapFlags
	previewAdaptOpts adaptFlags
	previewPlotter   string
	previewOutput    string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Plot a remap or adaptation curve",
	Long: `Samples a curve at 1000 points and renders it as a PNG.

The built-in png plotter always works. The gnuplot plotter needs
gnuplot in PATH; asking for a plotter that is not installed fails
without touching any frames.`,
}

var previewRemapCmd = &cobra.Command{
	Use:   "remap",
	Short: "Plot output level against normalized input for a cubic remap curve",
	Args:  cobra.NoArgs,
	RunE:  runPreviewRemap,
}

var previewAdaptCmd = &cobra.Command{
	Use:   "adapt",
	Short: "Plot strength against t for a quadratic adaptation curve",
	Args:  cobra.NoArgs,
	RunE:  runPreviewAdapt,
}

func init() {
	previewCmd.PersistentFlags().StringVarP(&previewPlotter, "plotter", "p", "png", "plotter: png or gnuplot")
	previewCmd.PersistentFlags().StringVarP(&previewOutput, "output", "o", "", "output file (default: stdout)")
	previewRemapOpts.register(previewRemapCmd.Flags())
	previewAdaptOpts.register(previewAdaptCmd.Flags(), "bezier")
	previewCmd.AddCommand(previewRemapCmd, previewAdaptCmd)
	rootCmd.AddCommand(previewCmd)
}

func runPreviewRemap(cmd *cobra.Command, _ []string) error {
	p, err := previewRemapOpts.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	c, _, err := p.Cubic()
	if err != nil {
		return err
	}
	cfg, err := curve.NewSolverConfig(p.Step)
	if err != nil {
		return err
	}
	plot, err := preview.RemapPlot(c, cfg)
	if err != nil {
		return err
	}
	plot.Title = fmt.Sprintf("remap %s (x1=%.3f x2=%.3f)", p.Name, c.X1, c.X2)
	return renderPlot(plot)
}

func runPreviewAdapt(cmd *cobra.Command, _ []string) error {
	p, err := previewAdaptOpts.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	if p.Mode != "bezier" {
		return fmt.Errorf("%w: only the bezier curve can be previewed, got %q", curve.ErrInvalidParameters, p.Mode)
	}
	q, err := curve.NewQuadratic(p.Left, p.Right, p.AncX, p.AncY)
	if err != nil {
		return err
	}
	plot := preview.AdaptPlot(q)
	plot.Title = fmt.Sprintf("adapt %s (anchor %.2f, %.0f)", p.Name, q.AncX, q.AncY)
	return renderPlot(plot)
}

func renderPlot(plot preview.Plot) error {
	reg := preview.NewRegistry()
	pl, err := reg.Get(previewPlotter)
	if err != nil {
		return fmt.Errorf("%w (%s)", err, reg)
	}
	logVerbose("plotter: %s, %d points", pl.Name(), len(plot.Points))

	var w io.Writer = os.Stdout
	if previewOutput != "" {
		f, err := os.Create(previewOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", previewOutput, err)
		}
		defer f.Close()
		w = f
	}
	if err := pl.Render(plot, w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if previewOutput != "" {
		fmt.Fprintf(os.Stderr, "  Wrote %s\n", previewOutput)
	}
	return nil
}
