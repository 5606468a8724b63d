package pipeline

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kewenyu/DBmbk/internal/adapt"
	"github.com/kewenyu/DBmbk/internal/curve"
	"github.com/kewenyu/DBmbk/internal/hasher"
	"github.com/kewenyu/DBmbk/internal/lut"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGray(t *testing.T, path string, level uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 6))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func readGray(t *testing.T, path string) *image.Gray {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	g, ok := img.(*image.Gray)
	require.True(t, ok, "got %T", img)
	return g
}

func quietLogger() *logrus.Logger {
	l, _ := test.NewNullLogger()
	return l
}

func invertTable() *lut.Table {
	var t lut.Table
	for i := range t {
		t[i] = uint8(255 - i)
	}
	return &t
}

func linearContext(t *testing.T, opts adapt.Options) *adapt.Context {
	t.Helper()
	e, err := curve.NewElementary(curve.Linear, []float64{20, 0.5})
	require.NoError(t, err)
	c, err := adapt.NewElementary(e, opts)
	require.NoError(t, err)
	return c
}

type recordingFilter struct {
	mu     sync.Mutex
	params map[int]adapt.FilterParams
}

func (r *recordingFilter) Name() string { return "recording" }

func (r *recordingFilter) Apply(_ context.Context, frame image.Image, p adapt.FilterParams) (image.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// the frame's level identifies it
	level := int(frame.(*image.Gray).Pix[0])
	r.params[level] = p
	return frame, nil
}

func TestScanFrames(t *testing.T) {
	dir := t.TempDir()
	writeGray(t, filepath.Join(dir, "b.png"), 1)
	writeGray(t, filepath.Join(dir, "a.png"), 1)
	writeGray(t, filepath.Join(dir, "sub", "c.png"), 1)
	writeGray(t, filepath.Join(dir, ".hidden", "d.png"), 1)
	writeGray(t, filepath.Join(dir, "out", "e.png"), 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	frames, err := ScanFrames(dir, filepath.Join(dir, "out"))
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, "a", frames[0].Key)
	assert.Equal(t, "b", frames[1].Key)
	assert.Equal(t, "sub/c", frames[2].Key)
	for i, f := range frames {
		assert.Equal(t, i, f.Index)
		assert.Equal(t, "png", f.Format)
		assert.Positive(t, f.Size)
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{Table: invertTable(), Adapt: linearContext(t, adapt.Options{})})
	assert.Error(t, err)

	_, err = New(Config{Table: invertTable()})
	assert.Error(t, err, "no planes")

	_, err = New(Config{Table: invertTable(), Planes: lut.Planes{0}, Format: "avif"})
	assert.Error(t, err)

	p, err := New(Config{Adapt: linearContext(t, adapt.Options{}), Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, ModeAdapt, p.Mode())
	assert.Equal(t, "png", p.Format())
	assert.Equal(t, "passthrough", p.Filter().Name())
	assert.Positive(t, p.Workers())
}

func TestRunRemap(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeGray(t, filepath.Join(in, "f0.png"), 10)
	writeGray(t, filepath.Join(in, "f1.png"), 200)

	p, err := New(Config{
		InputDir: in, OutputDir: out, Workers: 2,
		Table: invertTable(), Planes: lut.Planes{0},
		Logger: quietLogger(),
	})
	require.NoError(t, err)

	recs, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "f0", recs[0].Key)
	assert.Nil(t, recs[0].Adapt)
	require.NotNil(t, recs[0].Output)
	assert.Equal(t, "f0.png", recs[0].Output.Path)

	g := readGray(t, filepath.Join(out, "f0.png"))
	assert.Equal(t, uint8(245), g.Pix[0])
	g = readGray(t, filepath.Join(out, "f1.png"))
	assert.Equal(t, uint8(55), g.Pix[0])

	data, err := os.ReadFile(filepath.Join(out, recs[1].Output.Path))
	require.NoError(t, err)
	assert.Equal(t, hasher.ContentHash(data, 16), recs[1].Output.Hash)
	assert.Equal(t, int64(len(data)), recs[1].Output.Size)
}

func TestRunAdapt(t *testing.T) {
	in := t.TempDir()
	writeGray(t, filepath.Join(in, "000.png"), 51)
	writeGray(t, filepath.Join(in, "001.png"), 204)

	filter := &recordingFilter{params: map[int]adapt.FilterParams{}}
	p, err := New(Config{
		InputDir: in,
		Adapt: linearContext(t, adapt.Options{
			Base:  adapt.Strength{Y: 64, Cb: 48, Cr: 48},
			Extra: map[string]string{"grainy": "0"},
		}),
		Filter: filter,
		Logger: quietLogger(),
	})
	require.NoError(t, err)

	recs, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.InDelta(t, 0.2, recs[0].Adapt.AverageLuma, 1e-12)
	assert.Equal(t, 70, recs[0].Adapt.Strength.Y)
	assert.Equal(t, 58, recs[1].Adapt.Strength.Y)
	assert.Equal(t, 48, recs[1].Adapt.Strength.Cb)
	assert.Nil(t, recs[0].Output, "no output dir, nothing written")

	assert.Equal(t, 70, filter.params[51].Strength.Y)
	assert.Equal(t, 58, filter.params[204].Strength.Y)
	assert.Equal(t, "0", filter.params[51].Extra["grainy"])
}

func TestRunAdaptDebugOverlay(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	f := filepath.Join(in, "frame.png")
	img := image.NewGray(image.Rect(0, 0, 200, 120))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	fh, err := os.Create(f)
	require.NoError(t, err)
	require.NoError(t, png.Encode(fh, img))
	fh.Close()

	p, err := New(Config{
		InputDir: in, OutputDir: out,
		Adapt:  linearContext(t, adapt.Options{Base: adapt.Strength{Y: 64}, Debug: true}),
		Logger: quietLogger(),
	})
	require.NoError(t, err)
	_, err = p.Run(context.Background())
	require.NoError(t, err)

	rf, err := os.Open(filepath.Join(out, "frame.png"))
	require.NoError(t, err)
	defer rf.Close()
	got, err := png.Decode(rf)
	require.NoError(t, err)
	c := color.GrayModel.Convert(got.At(1, 1)).(color.Gray)
	assert.NotEqual(t, uint8(128), c.Y, "annotation box drawn")
}

func TestRunFailsOnFrameError(t *testing.T) {
	in := t.TempDir()
	writeGray(t, filepath.Join(in, "a.png"), 100)
	writeGray(t, filepath.Join(in, "b.png"), 150)

	q, _ := curve.NewQuadratic(64, 32, 0.4, 70)
	cfg, _ := curve.NewSolverConfig(0.001)
	ctx, err := adapt.NewBezier(q, cfg, adapt.Options{Base: adapt.Strength{Y: 0, Cb: 48, Cr: 48}, Chroma: true})
	require.NoError(t, err)

	p, err := New(Config{InputDir: in, Adapt: ctx, Logger: quietLogger()})
	require.NoError(t, err)
	recs, err := p.Run(context.Background())
	assert.ErrorIs(t, err, curve.ErrDivisionByZero)
	assert.Nil(t, recs)
}

func TestRunGrayPlaneMissing(t *testing.T) {
	in := t.TempDir()
	writeGray(t, filepath.Join(in, "a.png"), 100)
	p, err := New(Config{InputDir: in, Table: invertTable(), Planes: lut.Planes{1}, Logger: quietLogger()})
	require.NoError(t, err)
	_, err = p.Run(context.Background())
	assert.ErrorIs(t, err, lut.ErrPlaneMissing)
}

func TestRunCancelled(t *testing.T) {
	in := t.TempDir()
	writeGray(t, filepath.Join(in, "a.png"), 100)
	p, err := New(Config{InputDir: in, Table: invertTable(), Planes: lut.Planes{0}, Logger: quietLogger()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunEmptyDir(t *testing.T) {
	p, err := New(Config{InputDir: t.TempDir(), Table: invertTable(), Planes: lut.Planes{0}, Logger: quietLogger()})
	require.NoError(t, err)
	_, err = p.Run(context.Background())
	assert.ErrorContains(t, err, "no frames found")
}
