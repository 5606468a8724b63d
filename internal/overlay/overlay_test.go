package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextDrawsWithoutTouchingInput(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 160, 120))
	for i := range src.Pix {
		src.Pix[i] = 128
	}

	out := Text(src, "Frames: 1\nY: 64")
	assert.Equal(t, src.Bounds(), out.Bounds())

	for _, v := range src.Pix {
		if v != 128 {
			t.Fatal("input frame modified")
		}
	}

	// the text box darkens the corner
	r, _, _, _ := out.At(2, 2).RGBA()
	assert.Less(t, r>>8, uint32(128))

	// far corner untouched
	c := color.GrayModel.Convert(out.At(159, 119)).(color.Gray)
	assert.Equal(t, uint8(128), c.Y)
}

func TestTextHasLightPixels(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 200, 60))
	out := Text(src, "Average Luma: 0.5")

	var bright int
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := out.At(x, y).RGBA(); r>>8 > 200 {
				bright++
			}
		}
	}
	assert.Greater(t, bright, 10)
}
