package text

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDrawsGlyphs(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	white := color.RGBA{255, 255, 255, 255}
	transparent := color.RGBA{}
	img, err := r.Render("24", white, transparent, 4, 32)
	require.NoError(t, err)

	w, h, err := r.Measure("24", 32)
	require.NoError(t, err)
	assert.Equal(t, w+8, img.Bounds().Dx())
	assert.Equal(t, h+8, img.Bounds().Dy())

	lit := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			lit++
		}
	}
	assert.Greater(t, lit, 0)

	// Padding stays background.
	assert.Equal(t, transparent, img.RGBAAt(0, 0))
}

func TestMeasureGrowsWithLength(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	short, _, err := r.Measure("1", 16)
	require.NoError(t, err)
	long, _, err := r.Measure("FPS 75.0", 16)
	require.NoError(t, err)

	// Monospace: eight glyphs are eight times one glyph.
	assert.InDelta(t, short*8, long, 8)
}

func TestRenderEmptyString(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	img, err := r.Render("", color.White, color.Black, 0, 12)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, img.Bounds().Dx(), 1)
}
