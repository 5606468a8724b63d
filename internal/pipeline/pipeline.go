// Package pipeline runs remap or adapt processing over a directory of
// frames.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/kewenyu/DBmbk/internal/adapt"
	"github.com/kewenyu/DBmbk/internal/encoder"
	"github.com/kewenyu/DBmbk/internal/lut"
	"github.com/kewenyu/DBmbk/internal/report"
	"github.com/sirupsen/logrus"
)

// Mode selects what is done to each frame.
type Mode int

const (
	// ModeRemap applies a prebuilt lookup table to selected planes.
	ModeRemap Mode = iota
	// ModeAdapt derives filter strengths from each frame's average luma
	// and runs the filter with them.
	ModeAdapt
)

func (m Mode) String() string {
	if m == ModeAdapt {
		return "adapt"
	}
	return "remap"
}

// Config holds all parameters for a pipeline run. Exactly one of Table
// and Adapt must be set.
type Config struct {
	InputDir  string
	OutputDir string // empty: frames are processed but not written
	Workers   int
	Format    string
	Quality   int

	// Remap mode.
	Table  *lut.Table
	Planes lut.Planes

	// Adapt mode.
	Adapt  *adapt.Context
	Filter adapt.Filter

	Logger logrus.FieldLogger
}

// Pipeline processes frames. The table and adaptation context are
// shared read-only between workers.
type Pipeline struct {
	cfg     Config
	mode    Mode
	encoder encoder.Encoder
	log     logrus.FieldLogger
}

// New validates cfg and creates a pipeline.
func New(cfg Config) (*Pipeline, error) {
	p := &Pipeline{cfg: cfg}
	switch {
	case cfg.Table != nil && cfg.Adapt != nil:
		return nil, errors.New("pipeline: both a remap table and an adaptation context given")
	case cfg.Table != nil:
		p.mode = ModeRemap
		if len(cfg.Planes) == 0 {
			return nil, errors.New("pipeline: remap needs at least one plane")
		}
	case cfg.Adapt != nil:
		p.mode = ModeAdapt
		if p.cfg.Filter == nil {
			p.cfg.Filter = adapt.PassThrough{}
		}
	default:
		return nil, errors.New("pipeline: neither a remap table nor an adaptation context given")
	}

	if p.cfg.Workers <= 0 {
		p.cfg.Workers = runtime.NumCPU()
	}
	if p.cfg.Format == "" {
		p.cfg.Format = "png"
	}
	enc, err := encoder.NewRegistry().Get(p.cfg.Format)
	if err != nil {
		return nil, err
	}
	p.encoder = enc

	p.log = cfg.Logger
	if p.log == nil {
		p.log = logrus.StandardLogger()
	}
	p.log = p.log.WithField("mode", p.mode.String())
	return p, nil
}

// Mode reports which mode the pipeline runs in.
func (p *Pipeline) Mode() Mode { return p.mode }

// Workers is the effective worker count.
func (p *Pipeline) Workers() int { return p.cfg.Workers }

// Format is the output format name.
func (p *Pipeline) Format() string { return p.encoder.Format() }

// Filter is the downstream filter used in adapt mode.
func (p *Pipeline) Filter() adapt.Filter { return p.cfg.Filter }

// Run processes every frame in InputDir. Frames are handled
// concurrently and may finish in any order; records are returned in
// frame order. If any frame fails, Run returns all frame errors joined.
func (p *Pipeline) Run(ctx context.Context) ([]report.FrameRecord, error) {
	frames, err := ScanFrames(p.cfg.InputDir, p.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames found in %s", p.cfg.InputDir)
	}
	p.log.WithField("frames", len(frames)).Info("processing")

	records := make([]report.FrameRecord, len(frames))
	errs := make([]error, len(frames))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			continue
		}
		select {
		case <-ctx.Done():
			errs[i] = ctx.Err()
			continue
		case sem <- struct{}{}: // acquire
		}
		wg.Add(1)
		go func(idx int, f Frame) {
			defer wg.Done()
			defer func() { <-sem }() // release

			records[idx], errs[idx] = p.processFrame(ctx, f)
			if errs[idx] != nil {
				p.log.WithField("frame", f.Index).WithError(errs[idx]).Error("frame failed")
			}
		}(i, f)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return records, nil
}
