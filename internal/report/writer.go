package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// New creates an empty report for mode.
func New(mode string, c CurveInfo) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Mode:        mode,
		Curve:       c,
	}
}

// ComputeStats sorts frames by index and recalculates the aggregates.
func (r *Report) ComputeStats() {
	sort.Slice(r.Frames, func(i, j int) bool { return r.Frames[i].Index < r.Frames[j].Index })

	var s Stats
	var adapted int
	var sumY int
	s.TotalFrames = len(r.Frames)
	for _, f := range r.Frames {
		s.TotalInputBytes += f.InputSize
		if f.Output != nil {
			s.TotalOutputBytes += f.Output.Size
		}
		if a := f.Adapt; a != nil {
			if adapted == 0 || a.AverageLuma < s.MinLuma {
				s.MinLuma = a.AverageLuma
			}
			if adapted == 0 || a.AverageLuma > s.MaxLuma {
				s.MaxLuma = a.AverageLuma
			}
			sumY += a.Strength.Y
			adapted++
		}
	}
	if adapted > 0 {
		s.MeanY = float64(sumY) / float64(adapted)
	}
	r.Stats = s
}

// WriteJSON serializes the report with frames in index order.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a report. Unknown fields are ignored.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}
