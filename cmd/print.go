package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/kewenyu/DBmbk/internal/report"
)

func printRunReport(r *report.Report, reportPath string, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Printf("║              dbmbk %-5s complete                ║\n", r.Mode)
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	s := r.Stats
	fmt.Printf("  Frames:      %d\n", s.TotalFrames)
	fmt.Printf("  Curve:       %s\n", r.Curve.Kind)
	fmt.Printf("  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	if s.TotalOutputBytes > 0 {
		fmt.Printf("  Output size: %s\n", formatBytes(s.TotalOutputBytes))
	}
	if r.LUTFingerprint != "" {
		fmt.Printf("  Table:       %s\n", r.LUTFingerprint)
	}
	if r.Mode == "adapt" {
		fmt.Printf("  Luma range:  %.4f – %.4f\n", s.MinLuma, s.MaxLuma)
		fmt.Printf("  Mean Y:      %.1f\n", s.MeanY)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if r.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", r.BuildInfo.Workers)
	}
	fmt.Println()

	if r.Mode == "adapt" && len(r.Frames) > 0 {
		printExtremes(r.Frames)
	}

	fmt.Printf("  Report:      %s\n", filepath.Base(reportPath))
	fmt.Println()
}

// printExtremes lists the frames with the strongest and weakest luma
// strength.
func printExtremes(frames []report.FrameRecord) {
	items := make([]report.FrameRecord, 0, len(frames))
	for _, f := range frames {
		if f.Adapt != nil {
			items = append(items, f)
		}
	}
	if len(items) == 0 {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Adapt.Strength.Y > items[j].Adapt.Strength.Y
	})
	n := len(items)
	if n > 5 {
		n = 5
	}
	fmt.Printf("  Strongest %d (luma → y/cb/cr):\n", n)
	for _, f := range items[:n] {
		printFrameLine(f)
	}
	if len(items) > n {
		fmt.Printf("  Weakest %d:\n", n)
		for _, f := range items[len(items)-n:] {
			printFrameLine(f)
		}
	}
	fmt.Println()
}

func printFrameLine(f report.FrameRecord) {
	a := f.Adapt
	fmt.Printf("    %-40s %.4f → %3d/%3d/%3d\n",
		truncKey(f.Key, 40), a.AverageLuma, a.Strength.Y, a.Strength.Cb, a.Strength.Cr)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
