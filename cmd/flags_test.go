package cmd

import (
	"testing"

	"github.com/kewenyu/DBmbk/internal/adapt"
	"github.com/kewenyu/DBmbk/internal/curve"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, register func(*pflag.FlagSet), args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	register(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestRemapFlagsDefaults(t *testing.T) {
	var f remapFlags
	fs := parse(t, f.register)
	p, err := f.resolve(fs)
	require.NoError(t, err)

	c, r, err := p.Cubic()
	require.NoError(t, err)
	assert.Equal(t, curve.FullRange, r)
	assert.InDelta(t, 1.0/3, c.X1, 1e-12)
	assert.InDelta(t, 2.0/3, c.X2, 1e-12)
	assert.Equal(t, 128.0, c.Begin)
	assert.Equal(t, 0.01, p.Step)
	assert.Equal(t, []int{0}, p.Planes)
}

func TestRemapFlagsOverridePreset(t *testing.T) {
	var f remapFlags
	fs := parse(t, f.register, "--preset", "contrast", "--end", "200", "--planes", "0,2")
	p, err := f.resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, "tv", p.Range, "kept from preset")
	assert.Equal(t, 200.0, p.End)
	assert.Equal(t, 0.0, p.Begin)
	assert.Equal(t, []int{0, 2}, p.Planes)
}

func TestRemapFlagsUnknownPreset(t *testing.T) {
	var f remapFlags
	fs := parse(t, f.register, "--preset", "nope")
	_, err := f.resolve(fs)
	assert.Error(t, err)
}

func TestAdaptFlagsMode(t *testing.T) {
	var f adaptFlags
	fs := parse(t, func(fs *pflag.FlagSet) { f.register(fs, "lin") }, "--mode", "pow", "--params", "10,0.5,2")
	p, err := f.resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, "pow", p.Mode)
	assert.Equal(t, []float64{10, 0.5, 2}, p.Params)
}

func TestAdaptFlagsBezierFromElementaryPreset(t *testing.T) {
	var f adaptFlags
	fs := parse(t, func(fs *pflag.FlagSet) { f.register(fs, "lin") }, "--preset", "log-grainless", "--mode", "bezier", "--anc-y", "90")
	p, err := f.resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, "bezier", p.Mode)
	assert.Equal(t, 64.0, p.Left)
	assert.Equal(t, 32.0, p.Right)
	assert.Equal(t, 90.0, p.AncY)
	assert.Equal(t, 0.001, p.Step)
}

func TestStrengthFlagsRequired(t *testing.T) {
	var af adaptFlags
	var sf strengthFlags
	fs := parse(t, func(fs *pflag.FlagSet) { af.register(fs, "lin"); sf.register(fs) }, "--y", "64", "--cb", "48")
	p, err := af.resolve(fs)
	require.NoError(t, err)
	_, err = sf.options(fs, p)
	assert.ErrorIs(t, err, curve.ErrInvalidParameters)
}

func TestStrengthFlagsAllSet(t *testing.T) {
	var af adaptFlags
	var sf strengthFlags
	fs := parse(t, func(fs *pflag.FlagSet) { af.register(fs, "lin"); sf.register(fs) },
		"--y", "64", "--cb", "48", "--cr", "40", "--chroma", "--filter-arg", "grainy=0")
	p, err := af.resolve(fs)
	require.NoError(t, err)
	opts, err := sf.options(fs, p)
	require.NoError(t, err)
	assert.Equal(t, adapt.Strength{Y: 64, Cb: 48, Cr: 40}, opts.Base)
	assert.True(t, opts.Chroma)
	assert.Equal(t, map[string]string{"grainy": "0"}, opts.Extra)
}

func TestStrengthFlagsPresetBase(t *testing.T) {
	var af adaptFlags
	var sf strengthFlags
	fs := parse(t, func(fs *pflag.FlagSet) { af.register(fs, "lin"); sf.register(fs) },
		"--preset", "log-grainless", "--y", "80", "--filter-arg", "range=20")
	p, err := af.resolve(fs)
	require.NoError(t, err)
	opts, err := sf.options(fs, p)
	require.NoError(t, err)
	assert.Equal(t, adapt.Strength{Y: 80, Cb: 48, Cr: 48}, opts.Base)
	assert.Equal(t, "20", opts.Extra["range"])
	assert.Equal(t, "0", opts.Extra["grainy"], "preset extras kept")

	ctx, err := p.Context(opts)
	require.NoError(t, err)
	assert.Equal(t, adapt.KindElementary, ctx.Kind())
}

func TestAdaptFlagsBezierFromElementaryPresetWithStep(t *testing.T) {
	var f adaptFlags
	fs := parse(t, func(fs *pflag.FlagSet) { f.register(fs, "lin") },
		"--preset", "log-grainless", "--mode", "bezier", "--step", "0.002", "--left", "50")
	p, err := f.resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, "bezier", p.Mode)
	assert.Equal(t, 50.0, p.Left)
	assert.Equal(t, 32.0, p.Right)
	assert.Equal(t, 0.4, p.AncX)
	assert.Equal(t, 70.0, p.AncY)
	assert.Equal(t, 0.002, p.Step)

	ctx, err := p.Context(adapt.Options{Base: adapt.Strength{Y: 64, Cb: 48, Cr: 48}})
	require.NoError(t, err)
	res, err := ctx.Derive(0, 0.4)
	require.NoError(t, err)
	assert.Positive(t, res.Strength.Y)
}

func TestAdaptFlagsPreviewDefaultsToBezier(t *testing.T) {
	var f adaptFlags
	fs := parse(t, func(fs *pflag.FlagSet) { f.register(fs, "bezier") })
	p, err := f.resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, "bezier", p.Mode)
	assert.Equal(t, 64.0, p.Left)
	assert.Equal(t, 0.001, p.Step)
}
