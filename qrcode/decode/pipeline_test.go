package decode

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalphad/qrforge/qrcode/binarize"
	"github.com/jalphad/qrforge/qrcode/encoder"
	"github.com/jalphad/qrforge/qrcode/qrimage"
	"github.com/jalphad/qrforge/qrcode/segment"
	"github.com/jalphad/qrforge/qrcode/version"
)

func TestAttemptsForDontInvert(t *testing.T) {
	bm := binarize.NewBitMatrix(4, 4)
	attempts := attemptsFor(bm, DontInvert)
	require.Len(t, attempts, 1)
	assert.Same(t, bm, attempts[0])
}

func TestAttemptsForBothOrdersNormalFirst(t *testing.T) {
	bm := binarize.NewBitMatrix(4, 4)
	attempts := attemptsFor(bm, AttemptBoth)
	require.Len(t, attempts, 2)
	assert.Same(t, bm, attempts[0])
}

func TestMirrorDiagonalTransposes(t *testing.T) {
	bm := binarize.NewBitMatrix(2, 2)
	bm.Set(1, 0, true) // x=1,y=0
	mirrored := mirrorDiagonal(bm)
	assert.True(t, mirrored.Get(0, 1))
	assert.False(t, mirrored.Get(1, 0))
}

func TestDecodeEndToEndFromRenderedImage(t *testing.T) {
	seg, err := segment.NewAlphanumeric("QR FORGE")
	require.NoError(t, err)
	enc, err := encoder.Encode([]segment.Segment{seg}, version.ECLevelM, 0)
	require.NoError(t, err)

	img := qrimage.Rasterize(enc.Matrix, 4, 4)

	result, err := Decode(img, DontInvert)
	require.NoError(t, err)
	assert.Equal(t, "QR FORGE", result.Message)
}

func TestDecodeReturnsErrNotFoundOnBlankImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	_, err := Decode(img, DontInvert)
	require.ErrorIs(t, err, ErrNotFound)
}
