// Package report describes the JSON record written after a run.
package report

import "github.com/kewenyu/DBmbk/internal/adapt"

// SupportedVersion is the current schema version.
const SupportedVersion = 1

// FileName is the report's name inside the output directory.
const FileName = "dbmbk.report.json"

// Report is the top-level output of a remap or adapt run.
type Report struct {
	Version        int           `json:"version"`
	GeneratedAt    string        `json:"generated_at"`
	Mode           string        `json:"mode"` // "remap" or "adapt"
	Curve          CurveInfo     `json:"curve"`
	LUTFingerprint string        `json:"lut_fingerprint,omitempty"` // remap only
	BuildInfo      *BuildInfo    `json:"build_info,omitempty"`
	Frames         []FrameRecord `json:"frames"`
	Stats          Stats         `json:"stats"`
}

// CurveInfo records the curve configuration a run used.
type CurveInfo struct {
	Kind   string             `json:"kind"` // "cubic", "bezier", "lin", "log", "pow"
	Params map[string]float64 `json:"params"`
	Range  string             `json:"range,omitempty"`
	Step   float64            `json:"step,omitempty"`
	Planes []int              `json:"planes,omitempty"`
	Chroma bool               `json:"chroma,omitempty"`
	Base   *adapt.Strength    `json:"base,omitempty"`
}

// BuildInfo captures run-time parameters for diagnostics.
type BuildInfo struct {
	Workers int    `json:"workers"`
	Format  string `json:"format"`
	Filter  string `json:"filter,omitempty"`
	Debug   bool   `json:"debug,omitempty"`
}

// FrameRecord is one processed frame.
type FrameRecord struct {
	Index     int         `json:"index"`
	Key       string      `json:"key"`
	InputSize int64       `json:"input_size"`
	Adapt     *AdaptInfo  `json:"adapt,omitempty"`
	Output    *OutputInfo `json:"output,omitempty"`
}

// AdaptInfo is the per-frame outcome of strength derivation.
type AdaptInfo struct {
	AverageLuma float64        `json:"average_luma"`
	Bias        float64        `json:"bias,omitempty"`
	T           float64        `json:"t,omitempty"`
	Strength    adapt.Strength `json:"strength"`
}

// OutputInfo describes a written frame.
type OutputInfo struct {
	Path string `json:"path"` // relative to the report
	Size int64  `json:"size"`
	Hash string `json:"hash"` // first 16 hex chars of xxhash64
}

// Stats aggregates run metrics.
type Stats struct {
	TotalFrames      int     `json:"total_frames"`
	TotalInputBytes  int64   `json:"total_input_bytes"`
	TotalOutputBytes int64   `json:"total_output_bytes"`
	MinLuma          float64 `json:"min_luma,omitempty"`
	MaxLuma          float64 `json:"max_luma,omitempty"`
	MeanY            float64 `json:"mean_y,omitempty"`
}
