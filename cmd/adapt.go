package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kewenyu/DBmbk/internal/adapt"
	"github.com/kewenyu/DBmbk/internal/curve"
	"github.com/kewenyu/DBmbk/internal/pipeline"
	"github.com/kewenyu/DBmbk/internal/preset"
	"github.com/kewenyu/DBmbk/internal/report"
	"github.com/spf13/cobra"
)

var (
	adaptOpts     adaptFlags
	adaptStrength strengthFlags
	adaptOutDir   string
	adaptReport   string
	adaptWorkers  int
	adaptFormat   string
	adaptQuality  int
)

var adaptCmd = &cobra.Command{
	Use:   "adapt <input_dir>",
	Short: "Derive per-frame debanding strengths from average luma",
	Long: `Measures the average luma of every frame and maps it to y/cb/cr
debanding strengths, clamped to [0,128].

Elementary modes shift the baseline by a function of luma:
  lin  p0 * (p1 - luma)                  default (20, 0.5)
  log  p0 * log_p2(p1 - luma + 1)        default (20, 0.42, 3)
  pow  p0 * (p1 - luma)^p2               default (20, 0.84, 3)

The bezier mode reads the luma strength off a quadratic curve from
(0, left) to (1, right) through the anchor (anc-x, anc-y); with
--chroma, cb and cr are scaled by the same ratio as y.

The baseline strengths --y, --cb and --cr are required unless the
preset provides them. Without --out only the report is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdapt,
}

func init() {
	adaptOpts.register(adaptCmd.Flags(), "lin")
	adaptStrength.register(adaptCmd.Flags())
	adaptCmd.Flags().StringVarP(&adaptOutDir, "out", "o", "", "output directory for filtered frames")
	adaptCmd.Flags().StringVar(&adaptReport, "report", "", "report path (default: <out>/"+report.FileName+" or ./"+report.FileName+")")
	adaptCmd.Flags().IntVarP(&adaptWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	adaptCmd.Flags().StringVarP(&adaptFormat, "format", "f", "png", "output format: png, jpeg, tiff, bmp")
	adaptCmd.Flags().IntVarP(&adaptQuality, "quality", "q", 0, "jpeg quality 1-100 (0 = default)")
	rootCmd.AddCommand(adaptCmd)
}

func runAdapt(cmd *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}

	p, err := adaptOpts.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	opts, err := adaptStrength.options(cmd.Flags(), p)
	if err != nil {
		return err
	}
	ctx, err := p.Context(opts)
	if err != nil {
		return err
	}

	var absOutput string
	if adaptOutDir != "" {
		if absOutput, err = filepath.Abs(adaptOutDir); err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		if err := os.MkdirAll(absOutput, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	reportPath := adaptReport
	if reportPath == "" {
		reportPath = filepath.Join(absOutput, report.FileName)
	}

	logVerbose("input:   %s", absInput)
	logVerbose("curve:   %s (%s)", p.Name, p.Mode)
	logVerbose("base:    y=%d cb=%d cr=%d chroma=%v", ctx.Base().Y, ctx.Base().Cb, ctx.Base().Cr, ctx.Chroma())

	pl, err := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Workers:   adaptWorkers,
		Format:    adaptFormat,
		Quality:   adaptQuality,
		Adapt:     ctx,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	frames, err := pl.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	base := ctx.Base()
	r := report.New("adapt", adaptCurveInfo(p, ctx, &base))
	r.BuildInfo = &report.BuildInfo{
		Workers: pl.Workers(),
		Format:  pl.Format(),
		Filter:  pl.Filter().Name(),
		Debug:   ctx.Debug(),
	}
	r.Frames = frames

	if err := report.WriteJSON(r, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printRunReport(r, reportPath, time.Since(start))
	return nil
}

func adaptCurveInfo(p preset.Adapt, ctx *adapt.Context, base *adapt.Strength) report.CurveInfo {
	info := report.CurveInfo{Kind: p.Mode, Params: map[string]float64{}, Chroma: ctx.Chroma(), Base: base}
	if ctx.Kind() == adapt.KindBezier {
		info.Kind = "bezier"
		info.Params["left"] = p.Left
		info.Params["right"] = p.Right
		info.Params["anc_x"] = p.AncX
		info.Params["anc_y"] = p.AncY
		info.Step = p.Step
		return info
	}
	params := p.Params
	if params == nil {
		if m, err := curve.ParseMode(p.Mode); err == nil {
			params = curve.DefaultParams(m)
		}
	}
	for i, v := range params {
		info.Params[fmt.Sprintf("p%d", i)] = v
	}
	return info
}
