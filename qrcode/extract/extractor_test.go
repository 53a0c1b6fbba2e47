package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalphad/qrforge/qrcode/binarize"
	"github.com/jalphad/qrforge/qrcode/locate"
)

func TestSquareToQuadScalesAxisAlignedSquare(t *testing.T) {
	tr := squareToQuad(0, 0, 10, 0, 10, 10, 0, 10)
	x, y := tr.apply(0.5, 0.5)
	assert.InDelta(t, 5, x, 1e-6)
	assert.InDelta(t, 5, y, 1e-6)
}

func TestQuadToSquareInvertsSquareToQuad(t *testing.T) {
	sToQ := squareToQuad(2, 3, 12, 4, 11, 14, 1, 13)
	qToS := quadToSquare(2, 3, 12, 4, 11, 14, 1, 13)
	combined := sToQ.times(qToS)
	x, y := combined.apply(5, 5)
	assert.InDelta(t, 5, x, 1e-6)
	assert.InDelta(t, 5, y, 1e-6)
}

func TestExtractProducesRequestedDimension(t *testing.T) {
	img := binarize.NewBitMatrix(100, 100)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, (x+y)%2 == 0)
		}
	}
	res := locate.Result{
		TopLeft:    locate.Pattern{Point: locate.Point{X: 10, Y: 10}},
		TopRight:   locate.Pattern{Point: locate.Point{X: 90, Y: 10}},
		BottomLeft: locate.Pattern{Point: locate.Point{X: 10, Y: 90}},
		Alignment:  locate.Point{X: 80, Y: 80},
		Dimension:  21,
	}
	out, err := Extract(img, res)
	require.NoError(t, err)
	assert.Equal(t, 21, out.Width)
	assert.Equal(t, 21, out.Height)
}

func TestExtractRejectsNonPositiveDimension(t *testing.T) {
	img := binarize.NewBitMatrix(10, 10)
	_, err := Extract(img, locate.Result{Dimension: 0})
	require.Error(t, err)
}
