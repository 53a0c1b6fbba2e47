package decoder

import "github.com/jalphad/qrforge/qrcode/binarize"

// Decode runs a single MatrixDecoder + SegmentDecoder pass over an
// already-extracted module grid: version and format recovery, unmasking,
// de-interleaving, Reed-Solomon correction, and segment decoding. Retrying
// with a mirrored matrix on failure is the DecoderPipeline's job
// (component P), not this package's.
func Decode(img *binarize.BitMatrix) (*DecodeResult, error) {
	v, err := DetermineVersion(img)
	if err != nil {
		return nil, err
	}

	level, mask, err := DetermineFormat(img)
	if err != nil {
		return nil, err
	}

	data, blockResults, err := ReadCorrectedData(img, v, level, mask)
	if err != nil {
		return nil, err
	}

	segs, message, err := DecodeSegments(data, v)

	totalErrors := 0
	for _, b := range blockResults {
		totalErrors += b.ErrorsFound
	}

	result := &DecodeResult{
		Message:            message,
		Segments:           segs,
		Version:            v.Number,
		Mask:               mask,
		BlockResults:       blockResults,
		NumErrorsCorrected: totalErrors,
	}
	return result, err
}
