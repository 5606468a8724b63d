package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kewenyu/DBmbk/internal/curve"
	"github.com/kewenyu/DBmbk/internal/lut"
	"github.com/kewenyu/DBmbk/internal/pipeline"
	"github.com/kewenyu/DBmbk/internal/report"
	"github.com/spf13/cobra"
)

var (
	remapOpts    remapFlags
	remapOutDir  string
	remapWorkers int
	remapFormat  string
	remapQuality int
)

var remapCmd = &cobra.Command{
	Use:   "remap <input_dir>",
	Short: "Remap frame levels through a cubic Bézier lookup table",
	Long: `Builds a 256-entry lookup table by inverting a cubic Bézier curve once
per input level, then applies it to the selected planes of every frame
in the input directory.

The curve runs from (0, begin) to (1, end) with control points
(x1, y1) and (x2, y2). x1 and x2 are given in 8-bit levels and are
normalized with --range. Tables are always built at 8 bits; 16-bit
frames are reduced for the lookup and expanded again.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemap,
}

func init() {
	remapOpts.register(remapCmd.Flags())
	remapCmd.Flags().StringVarP(&remapOutDir, "out", "o", "./dbmbk_out", "output directory")
	remapCmd.Flags().IntVarP(&remapWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	remapCmd.Flags().StringVarP(&remapFormat, "format", "f", "png", "output format: png, jpeg, tiff, bmp")
	remapCmd.Flags().IntVarP(&remapQuality, "quality", "q", 0, "jpeg quality 1-100 (0 = default)")
	rootCmd.AddCommand(remapCmd)
}

func runRemap(cmd *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(remapOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	p, err := remapOpts.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	c, rng, err := p.Cubic()
	if err != nil {
		return err
	}
	cfg, err := curve.NewSolverConfig(p.Step)
	if err != nil {
		return err
	}
	planes, err := lut.ParsePlanes(p.Planes)
	if err != nil {
		return err
	}

	table, err := lut.Build(c, rng, cfg)
	if err != nil {
		return fmt.Errorf("build table: %w", err)
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("curve:   %s x1=%.4f x2=%.4f begin=%g y1=%g y2=%g end=%g step=%g",
		p.Name, c.X1, c.X2, c.Begin, c.Y1, c.Y2, c.End, cfg.Step)
	logVerbose("table:   %s", table.Fingerprint())

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	pl, err := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Workers:   remapWorkers,
		Format:    remapFormat,
		Quality:   remapQuality,
		Table:     table,
		Planes:    planes,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	frames, err := pl.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	r := report.New("remap", report.CurveInfo{
		Kind: "cubic",
		Params: map[string]float64{
			"x1": c.X1, "x2": c.X2,
			"begin": c.Begin, "y1": c.Y1, "y2": c.Y2, "end": c.End,
		},
		Range:  rng.String(),
		Step:   cfg.Step,
		Planes: planes,
	})
	r.LUTFingerprint = table.Fingerprint()
	r.BuildInfo = &report.BuildInfo{Workers: pl.Workers(), Format: pl.Format()}
	r.Frames = frames

	reportPath := filepath.Join(absOutput, report.FileName)
	if err := report.WriteJSON(r, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printRunReport(r, reportPath, time.Since(start))
	return nil
}
