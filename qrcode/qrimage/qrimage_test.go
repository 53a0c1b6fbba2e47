package qrimage

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToRGBAPassesThroughExistingRGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 4, 4))
	got := ToRGBA(rgba)
	assert.Same(t, rgba, got)
}

func TestToRGBAConvertsOtherFormats(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(0, 0, color.Gray{Y: 0})
	gray.SetGray(1, 1, color.Gray{Y: 255})

	got := ToRGBA(gray)
	r, g, b, a := got.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
	assert.Equal(t, uint32(0xffff), a)
}

type fakeModule struct {
	size int
	dark func(r, c int) bool
}

func (f fakeModule) Size() int        { return f.size }
func (f fakeModule) At(r, c int) bool { return f.dark(r, c) }

func TestRasterizeDimensionsIncludeBorder(t *testing.T) {
	m := fakeModule{size: 5, dark: func(int, int) bool { return false }}
	img := Rasterize(m, 2, 4)
	want := (5 + 2*4) * 2
	assert.Equal(t, want, img.Bounds().Dx())
	assert.Equal(t, want, img.Bounds().Dy())
}

func TestRasterizePaintsDarkModulesBlack(t *testing.T) {
	m := fakeModule{size: 1, dark: func(r, c int) bool { return true }}
	img := Rasterize(m, 3, 4)
	startX := 4 * 3
	startY := 4 * 3
	r, g, b, _ := img.At(startX, startY).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)

	lr, lg, lb, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), lr)
	assert.Equal(t, uint32(0xffff), lg)
	assert.Equal(t, uint32(0xffff), lb)
}
