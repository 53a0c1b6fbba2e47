package render

import (
	"bytes"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModule struct {
	size int
	dark func(r, c int) bool
}

func (f fakeModule) Size() int        { return f.size }
func (f fakeModule) At(r, c int) bool { return f.dark(r, c) }

func TestRasterRejectsNonPositiveScale(t *testing.T) {
	_, err := Raster(fakeModule{size: 3, dark: func(int, int) bool { return false }}, 0)
	require.ErrorIs(t, err, ErrScale)
}

func TestRasterDimensionsIncludeQuietZone(t *testing.T) {
	m := fakeModule{size: 5, dark: func(int, int) bool { return false }}
	img, err := Raster(m, 2)
	require.NoError(t, err)
	want := (5 + 2*QuietZone) * 2
	assert.Equal(t, want, img.Bounds().Dx())
	assert.Equal(t, want, img.Bounds().Dy())
}

func TestRasterPlacesDarkModules(t *testing.T) {
	m := fakeModule{size: 1, dark: func(r, c int) bool { return true }}
	img, err := Raster(m, 3)
	require.NoError(t, err)
	startX := QuietZone * 3
	startY := QuietZone * 3
	assert.Equal(t, uint8(1), img.ColorIndexAt(startX, startY))
	assert.Equal(t, uint8(0), img.ColorIndexAt(0, 0))
}

func TestWriteGIFProducesDecodableImage(t *testing.T) {
	m := fakeModule{size: 3, dark: func(r, c int) bool { return (r+c)%2 == 0 }}
	var buf bytes.Buffer
	require.NoError(t, WriteGIF(&buf, m, 2))

	decoded, err := gif.Decode(&buf)
	require.NoError(t, err)
	want := (3 + 2*QuietZone) * 2
	assert.Equal(t, want, decoded.Bounds().Dx())
}
