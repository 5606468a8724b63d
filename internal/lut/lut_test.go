package lut

import (
	"image"
	"image/color"
	"testing"

	"github.com/kewenyu/DBmbk/internal/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampCurve(t *testing.T, r curve.Range) curve.Cubic {
	t.Helper()
	x1, _ := r.Normalize(85)
	x2, _ := r.Normalize(170)
	c, err := curve.NewCubic(x1, x2, 0, 85, 170, 255)
	require.NoError(t, err)
	return c
}

func invertTable() *Table {
	var t Table
	for i := range t {
		t[i] = uint8(255 - i)
	}
	return &t
}

func TestBuildMonotonic(t *testing.T) {
	for _, r := range []curve.Range{curve.FullRange, curve.StudioRange} {
		t.Run(r.String(), func(t *testing.T) {
			cfg, _ := curve.NewSolverConfig(0.01)
			tbl, err := Build(rampCurve(t, r), r, cfg)
			require.NoError(t, err)
			for i := 1; i < Levels; i++ {
				assert.LessOrEqual(t, tbl[i-1], tbl[i], "level %d", i)
			}
			assert.Equal(t, uint8(0), tbl[0])
			assert.GreaterOrEqual(t, tbl[255], uint8(247))
		})
	}
}

func TestBuildFullRangeValues(t *testing.T) {
	cfg, _ := curve.NewSolverConfig(0.01)
	tbl, err := Build(rampCurve(t, curve.FullRange), curve.FullRange, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), tbl[3])
	assert.Equal(t, uint8(127), tbl[128])
}

func TestBuildStudioFootroom(t *testing.T) {
	cfg, _ := curve.NewSolverConfig(0.01)
	tbl, err := Build(rampCurve(t, curve.StudioRange), curve.StudioRange, cfg)
	require.NoError(t, err)
	for i := 0; i <= 16; i++ {
		assert.Equal(t, uint8(0), tbl[i], "level %d", i)
	}
	for i := 236; i < Levels; i++ {
		assert.Equal(t, tbl[235], tbl[i], "level %d", i)
	}
}

func TestBuildConstantCurve(t *testing.T) {
	c, _ := curve.NewCubic(85.0/255, 170.0/255, 128, 128, 128, 128)
	cfg, _ := curve.NewSolverConfig(0.01)
	tbl, err := Build(c, curve.FullRange, cfg)
	require.NoError(t, err)
	// y(t) evaluates to just under 128 at some t, and Build floors.
	for i, v := range tbl {
		assert.Contains(t, []uint8{127, 128}, v, "level %d", i)
	}
}

func TestBuildClampsOutput(t *testing.T) {
	c, _ := curve.NewCubic(0.3, 0.6, -100, -100, 400, 400)
	cfg, _ := curve.NewSolverConfig(0.01)
	tbl, err := Build(c, curve.FullRange, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), tbl[0])
	assert.Equal(t, uint8(255), tbl[255])
}

func TestBuildIdempotent(t *testing.T) {
	cfg, _ := curve.NewSolverConfig(0.005)
	c := rampCurve(t, curve.StudioRange)
	a, err := Build(c, curve.StudioRange, cfg)
	require.NoError(t, err)
	b, err := Build(c, curve.StudioRange, cfg)
	require.NoError(t, err)
	assert.Equal(t, *a, *b)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 16)
}

func TestBuildNoSolution(t *testing.T) {
	c := rampCurve(t, curve.FullRange)
	_, err := Build(c, curve.FullRange, curve.SolverConfig{Step: 0.1, Tolerance: 1e-9})
	assert.ErrorIs(t, err, curve.ErrNoSolution)
}

func TestMap16(t *testing.T) {
	tbl := invertTable()
	assert.Equal(t, uint16(0xffff), tbl.Map16(0x00ff))
	assert.Equal(t, uint16(0x7f7f), tbl.Map16(0x80aa))
	assert.Equal(t, uint8(200), tbl.Map(55))
}

func TestParsePlanes(t *testing.T) {
	p, err := ParsePlanes([]int{2, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, Planes{0, 2}, p)
	assert.True(t, p.Has(2))
	assert.False(t, p.Has(1))

	_, err = ParsePlanes(nil)
	assert.ErrorIs(t, err, curve.ErrInvalidParameters)
	_, err = ParsePlanes([]int{3})
	assert.ErrorIs(t, err, curve.ErrInvalidParameters)
}

func TestApplyGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.Pix = []uint8{0, 10, 200, 255}

	out, err := Apply(src, invertTable(), Planes{0})
	require.NoError(t, err)
	g := out.(*image.Gray)
	assert.Equal(t, []uint8{255, 245, 55, 0}, g.Pix)
	assert.Equal(t, []uint8{0, 10, 200, 255}, src.Pix, "input must not change")

	_, err = Apply(src, invertTable(), Planes{0, 1})
	assert.ErrorIs(t, err, ErrPlaneMissing)
}

func TestApplyGray16(t *testing.T) {
	src := image.NewGray16(image.Rect(0, 0, 1, 1))
	src.SetGray16(0, 0, color.Gray16{Y: 0x1020})

	out, err := Apply(src, invertTable(), Planes{0})
	require.NoError(t, err)
	assert.Equal(t, uint16(0xefef), out.(*image.Gray16).Gray16At(0, 0).Y)
}

func TestApplyYCbCrSelectedPlanes(t *testing.T) {
	src := image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio420)
	for i := range src.Y {
		src.Y[i] = 100
	}
	for i := range src.Cb {
		src.Cb[i] = 50
		src.Cr[i] = 60
	}

	out, err := Apply(src, invertTable(), Planes{0, 2})
	require.NoError(t, err)
	y := out.(*image.YCbCr)
	assert.Equal(t, uint8(155), y.Y[0])
	assert.Equal(t, uint8(50), y.Cb[0])
	assert.Equal(t, uint8(195), y.Cr[0])
	assert.Equal(t, uint8(100), src.Y[0])
	assert.Equal(t, src.SubsampleRatio, y.SubsampleRatio)
}

func TestApplyNRGBAChannels(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 200})

	out, err := Apply(src, invertTable(), Planes{1})
	require.NoError(t, err)
	c := out.(*image.NRGBA).NRGBAAt(0, 0)
	assert.Equal(t, color.NRGBA{R: 10, G: 235, B: 30, A: 200}, c)
}

func BenchmarkBuild(b *testing.B) {
	x1, _ := curve.FullRange.Normalize(85)
	x2, _ := curve.FullRange.Normalize(170)
	c, _ := curve.NewCubic(x1, x2, 0, 85, 170, 255)
	cfg, _ := curve.NewSolverConfig(0.001)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Build(c, curve.FullRange, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkApplyYCbCr(b *testing.B) {
	src := image.NewYCbCr(image.Rect(0, 0, 1920, 1080), image.YCbCrSubsampleRatio420)
	tbl := invertTable()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Apply(src, tbl, Planes{0}); err != nil {
			b.Fatal(err)
		}
	}
}
