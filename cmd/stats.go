package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kewenyu/DBmbk/internal/report"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_report>",
	Short: "Display statistics for a remap or adapt report",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path, err := reportPathFor(args[0])
	if err != nil {
		return err
	}
	r, err := report.ReadJSON(path)
	if err != nil {
		return err
	}
	printStats(r)
	return nil
}

// reportPathFor accepts either a report file or a directory holding one.
func reportPathFor(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, report.FileName)
	}
	return path, nil
}

func printStats(r *report.Report) {
	fmt.Println()
	fmt.Printf("  Report version:   %d\n", r.Version)
	fmt.Printf("  Generated:        %s\n", r.GeneratedAt)
	fmt.Printf("  Mode:             %s\n", r.Mode)
	fmt.Printf("  Curve:            %s %s\n", r.Curve.Kind, formatParams(r.Curve.Params))
	if r.Curve.Range != "" {
		fmt.Printf("  Range:            %s\n", r.Curve.Range)
	}
	if len(r.Curve.Planes) > 0 {
		fmt.Printf("  Planes:           %v\n", r.Curve.Planes)
	}
	if b := r.Curve.Base; b != nil {
		fmt.Printf("  Baseline:         y=%d cb=%d cr=%d (chroma %v)\n", b.Y, b.Cb, b.Cr, r.Curve.Chroma)
	}
	if r.LUTFingerprint != "" {
		fmt.Printf("  Table:            %s\n", r.LUTFingerprint)
	}
	if bi := r.BuildInfo; bi != nil {
		fmt.Printf("  Workers:          %d\n", bi.Workers)
		fmt.Printf("  Format:           %s\n", bi.Format)
		if bi.Filter != "" {
			fmt.Printf("  Filter:           %s\n", bi.Filter)
		}
	}
	fmt.Println()

	s := r.Stats
	fmt.Printf("  Total frames:     %d\n", s.TotalFrames)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	if s.TotalOutputBytes > 0 {
		fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	}
	if r.Mode == "adapt" {
		fmt.Printf("  Luma range:       %.4f – %.4f\n", s.MinLuma, s.MaxLuma)
		fmt.Printf("  Mean Y strength:  %.1f\n", s.MeanY)
	}
	fmt.Println()

	if hist := strengthHistogram(r.Frames); len(hist) > 0 {
		var buckets []int
		for b := range hist {
			buckets = append(buckets, b)
		}
		sort.Ints(buckets)
		fmt.Println("  Y strength breakdown:")
		for _, b := range buckets {
			fmt.Printf("    %3d–%3d  %4d frames\n", b, b+15, hist[b])
		}
		fmt.Println()
	}

	var warnings []string
	for _, f := range r.Frames {
		if r.Mode == "adapt" && f.Adapt == nil {
			warnings = append(warnings, fmt.Sprintf("frame %q has no strengths", f.Key))
		}
		if a := f.Adapt; a != nil && (a.Strength.Y == 0 || a.Strength.Y == 128) {
			warnings = append(warnings, fmt.Sprintf("frame %q: y strength clamped to %d", f.Key, a.Strength.Y))
		}
	}
	if len(warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
		fmt.Println()
	}
}

// strengthHistogram buckets adapted frames by y strength in steps of 16.
func strengthHistogram(frames []report.FrameRecord) map[int]int {
	hist := map[int]int{}
	for _, f := range frames {
		if f.Adapt != nil {
			hist[f.Adapt.Strength.Y/16*16]++
		}
	}
	return hist
}

func formatParams(p map[string]float64) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%g", k, p[k])
	}
	return out
}
