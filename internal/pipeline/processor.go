package pipeline

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/kewenyu/DBmbk/internal/hasher"
	"github.com/kewenyu/DBmbk/internal/lut"
	"github.com/kewenyu/DBmbk/internal/overlay"
	"github.com/kewenyu/DBmbk/internal/report"
	"github.com/kewenyu/DBmbk/internal/stats"
	"github.com/sirupsen/logrus"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// processFrame decodes one frame, runs the configured mode on it and
// writes the result. Any error fails the frame; nothing is substituted.
func (p *Pipeline) processFrame(ctx context.Context, f Frame) (report.FrameRecord, error) {
	rec := report.FrameRecord{Index: f.Index, Key: f.Key, InputSize: f.Size}
	log := p.log.WithFields(logrus.Fields{"frame": f.Index, "key": f.Key})

	img, err := decodeFrame(f.AbsPath)
	if err != nil {
		return rec, fmt.Errorf("frame %d (%s): %w", f.Index, f.RelPath, err)
	}

	var out image.Image
	switch p.mode {
	case ModeRemap:
		out, err = lut.Apply(img, p.cfg.Table, p.cfg.Planes)
		if err != nil {
			return rec, fmt.Errorf("frame %d (%s): %w", f.Index, f.RelPath, err)
		}
		log.Debug("remapped")

	case ModeAdapt:
		luma, err := stats.AverageLuma(img)
		if err != nil {
			return rec, fmt.Errorf("frame %d (%s): %w", f.Index, f.RelPath, err)
		}
		res, err := p.cfg.Adapt.Derive(f.Index, luma)
		if err != nil {
			return rec, err
		}
		rec.Adapt = &report.AdaptInfo{
			AverageLuma: luma,
			Bias:        res.Bias,
			T:           res.T,
			Strength:    res.Strength,
		}
		log.WithFields(logrus.Fields{
			"luma": luma, "y": res.Strength.Y, "cb": res.Strength.Cb, "cr": res.Strength.Cr,
		}).Debug("strength derived")

		out, err = p.cfg.Filter.Apply(ctx, img, p.cfg.Adapt.Params(res))
		if err != nil {
			return rec, fmt.Errorf("frame %d (%s): filter %s: %w", f.Index, f.RelPath, p.cfg.Filter.Name(), err)
		}
		if p.cfg.Adapt.Debug() {
			out = overlay.Text(out, res.Annotation())
		}
	}

	if p.cfg.OutputDir == "" {
		return rec, nil
	}

	data, err := p.encoder.Encode(out, p.cfg.Quality)
	if err != nil {
		return rec, fmt.Errorf("frame %d (%s): encode %s: %w", f.Index, f.RelPath, p.encoder.Format(), err)
	}

	relPath := f.Key + "." + p.encoder.Extension()
	outPath := filepath.Join(p.cfg.OutputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return rec, fmt.Errorf("frame %d: create dir: %w", f.Index, err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return rec, fmt.Errorf("frame %d: write %s: %w", f.Index, relPath, err)
	}

	rec.Output = &report.OutputInfo{
		Path: relPath,
		Size: int64(len(data)),
		Hash: hasher.ContentHash(data, 16),
	}
	return rec, nil
}

func decodeFrame(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}
