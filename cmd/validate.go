package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kewenyu/DBmbk/internal/adapt"
	"github.com/kewenyu/DBmbk/internal/hasher"
	"github.com/kewenyu/DBmbk/internal/report"
	"github.com/spf13/cobra"
)

var validateDir string

var validateCmd = &cobra.Command{
	Use:   "validate <report_path>",
	Short: "Validate a report and check the frames it references",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateDir, "dir", "", "directory holding the output frames (default: the report's directory)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	path, err := reportPathFor(args[0])
	if err != nil {
		return err
	}
	r, err := report.ReadJSON(path)
	if err != nil {
		return err
	}

	baseDir := validateDir
	if baseDir == "" {
		baseDir = filepath.Dir(path)
	}
	errs := validateReport(r, baseDir)

	if len(errs) == 0 {
		fmt.Println("  ✓ Report is valid")
		fmt.Printf("  ✓ %d frames, all outputs present\n", r.Stats.TotalFrames)
		return nil
	}

	fmt.Printf("  ✗ Report has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateReport(r *report.Report, baseDir string) []string {
	var errs []string

	if r.Version != report.SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}
	if r.Mode != "remap" && r.Mode != "adapt" {
		errs = append(errs, fmt.Sprintf("unknown mode %q", r.Mode))
	}
	if r.Mode == "remap" && r.LUTFingerprint == "" {
		errs = append(errs, "remap report without table fingerprint")
	}

	seenKeys := map[string]bool{}
	for i, f := range r.Frames {
		if f.Index != i {
			errs = append(errs, fmt.Sprintf("frame[%d]: index %d out of sequence", i, f.Index))
		}
		if f.Key == "" {
			errs = append(errs, fmt.Sprintf("frame[%d]: missing key", i))
		} else if seenKeys[f.Key] {
			errs = append(errs, fmt.Sprintf("frame[%d]: duplicate key %q", i, f.Key))
		}
		seenKeys[f.Key] = true

		if r.Mode == "adapt" {
			if f.Adapt == nil {
				errs = append(errs, fmt.Sprintf("frame %q: missing strengths", f.Key))
			} else {
				errs = append(errs, checkStrength(f.Key, f.Adapt)...)
			}
		}

		if o := f.Output; o != nil {
			errs = append(errs, checkOutput(f.Key, o, baseDir)...)
		}
	}

	var in, out int64
	for _, f := range r.Frames {
		in += f.InputSize
		if f.Output != nil {
			out += f.Output.Size
		}
	}
	if r.Stats.TotalFrames != len(r.Frames) {
		errs = append(errs, fmt.Sprintf("stats.total_frames mismatch: %d != %d", r.Stats.TotalFrames, len(r.Frames)))
	}
	if r.Stats.TotalInputBytes != in {
		errs = append(errs, fmt.Sprintf("stats.total_input_bytes mismatch: %d != %d", r.Stats.TotalInputBytes, in))
	}
	if r.Stats.TotalOutputBytes != out {
		errs = append(errs, fmt.Sprintf("stats.total_output_bytes mismatch: %d != %d", r.Stats.TotalOutputBytes, out))
	}

	return errs
}

func checkStrength(key string, a *report.AdaptInfo) []string {
	var errs []string
	if a.AverageLuma < 0 || a.AverageLuma > 1 {
		errs = append(errs, fmt.Sprintf("frame %q: average luma %v outside [0,1]", key, a.AverageLuma))
	}
	for _, v := range []struct {
		name string
		val  int
	}{{"y", a.Strength.Y}, {"cb", a.Strength.Cb}, {"cr", a.Strength.Cr}} {
		if v.val < 0 || v.val > adapt.MaxStrength {
			errs = append(errs, fmt.Sprintf("frame %q: %s strength %d outside [0,%d]", key, v.name, v.val, adapt.MaxStrength))
		}
	}
	return errs
}

func checkOutput(key string, o *report.OutputInfo, baseDir string) []string {
	if o.Path == "" {
		return []string{fmt.Sprintf("frame %q: output without path", key)}
	}
	fullPath := filepath.Join(baseDir, o.Path)
	info, err := os.Stat(fullPath)
	if err != nil {
		return []string{fmt.Sprintf("frame %q: file not found: %s", key, o.Path)}
	}
	var errs []string
	if info.Size() != o.Size {
		errs = append(errs, fmt.Sprintf("frame %q: size mismatch: report=%d, disk=%d", key, o.Size, info.Size()))
	}
	f, err := os.Open(fullPath)
	if err != nil {
		return append(errs, fmt.Sprintf("frame %q: %v", key, err))
	}
	defer f.Close()
	h, err := hasher.ContentHashReader(f, len(o.Hash))
	if err != nil {
		return append(errs, fmt.Sprintf("frame %q: hash: %v", key, err))
	}
	if h != o.Hash {
		errs = append(errs, fmt.Sprintf("frame %q: hash mismatch: report=%s, disk=%s", key, o.Hash, h))
	}
	return errs
}
