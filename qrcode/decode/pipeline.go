// Package decode implements the DecoderPipeline (component P):
// orchestrating Binarizer -> PatternLocator -> Extractor -> MatrixDecoder
// across a configurable inversion policy, with a diagonal-mirror retry
// when the first sampled matrix fails to decode.
package decode

import (
	"image"

	"github.com/jalphad/qrforge/qrcode/binarize"
	"github.com/jalphad/qrforge/qrcode/decoder"
	"github.com/jalphad/qrforge/qrcode/extract"
	"github.com/jalphad/qrforge/qrcode/locate"
)

// InversionPolicy controls which polarities of the binarized image the
// pipeline attempts to decode.
type InversionPolicy int

const (
	// DontInvert only tries the image as binarized.
	DontInvert InversionPolicy = iota
	// OnlyInvert only tries the inverted image.
	OnlyInvert
	// AttemptBoth tries the normal image, then the inverted image.
	AttemptBoth
	// InvertFirst tries the inverted image, then the normal image.
	InvertFirst
)

// Decode runs the full pipeline over img according to policy.
func Decode(img *image.RGBA, policy InversionPolicy) (*decoder.DecodeResult, error) {
	bm, err := binarize.Binarize(img)
	if err != nil {
		return nil, err
	}

	for _, attempt := range attemptsFor(bm, policy) {
		if result, ok := tryDecode(attempt); ok {
			return result, nil
		}
	}
	return nil, ErrNotFound
}

func attemptsFor(bm *binarize.BitMatrix, policy InversionPolicy) []*binarize.BitMatrix {
	switch policy {
	case OnlyInvert:
		return []*binarize.BitMatrix{bm.Inverted()}
	case AttemptBoth:
		return []*binarize.BitMatrix{bm, bm.Inverted()}
	case InvertFirst:
		return []*binarize.BitMatrix{bm.Inverted(), bm}
	default:
		return []*binarize.BitMatrix{bm}
	}
}

func tryDecode(bm *binarize.BitMatrix) (*decoder.DecodeResult, bool) {
	loc, ok := locate.Locate(bm)
	if !ok {
		return nil, false
	}

	sampled, err := extract.Extract(bm, loc)
	if err != nil {
		return nil, false
	}

	if result, err := decoder.Decode(sampled); err == nil {
		return result, true
	}

	mirrored := mirrorDiagonal(sampled)
	if result, err := decoder.Decode(mirrored); err == nil {
		return result, true
	}
	return nil, false
}

// mirrorDiagonal transposes a square BitMatrix across its main diagonal,
// the retry this pipeline falls back to when the first sampled orientation
// fails to decode (spec.md §4.N).
func mirrorDiagonal(bm *binarize.BitMatrix) *binarize.BitMatrix {
	out := binarize.NewBitMatrix(bm.Width, bm.Height)
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			out.Set(y, x, bm.Get(x, y))
		}
	}
	return out
}
