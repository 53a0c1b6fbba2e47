package binarize

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestBinarizeAllWhiteIsAllLight(t *testing.T) {
	img := solidImage(32, 32, color.RGBA{255, 255, 255, 255})
	m, err := Binarize(img)
	require.NoError(t, err)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			assert.False(t, m.Get(x, y))
		}
	}
}

func TestBinarizeAllBlackIsAllDark(t *testing.T) {
	img := solidImage(32, 32, color.RGBA{0, 0, 0, 255})
	m, err := Binarize(img)
	require.NoError(t, err)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			assert.True(t, m.Get(x, y))
		}
	}
}

func TestBinarizeSplitHalves(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if x < 8 {
				img.Set(x, y, color.RGBA{0, 0, 0, 255})
			} else {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
	m, err := Binarize(img)
	require.NoError(t, err)
	assert.True(t, m.Get(0, 0))
	assert.False(t, m.Get(15, 15))
}

func TestBinarizeRejectsTooSmallImage(t *testing.T) {
	img := solidImage(4, 4, color.RGBA{255, 255, 255, 255})
	_, err := Binarize(img)
	require.Error(t, err)
}

func TestInvertedFlipsEveryPixel(t *testing.T) {
	m := NewBitMatrix(2, 2)
	m.Set(0, 0, true)
	inv := m.Inverted()
	assert.False(t, inv.Get(0, 0))
	assert.True(t, inv.Get(1, 0))
}
