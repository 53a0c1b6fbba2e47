// Package decoder implements the MatrixDecoder (component N) and
// SegmentDecoder (component O): recovering version and format information
// from a sampled module grid, unmasking and reading codewords, running
// Reed-Solomon correction per block, and handing the corrected bytes to
// the segment decoder.
package decoder

import (
	"fmt"

	"github.com/jalphad/qrforge/polynomial"
	"github.com/jalphad/qrforge/qrcode/binarize"
	"github.com/jalphad/qrforge/qrcode/matrix"
	"github.com/jalphad/qrforge/qrcode/segment"
	"github.com/jalphad/qrforge/qrcode/version"
)

// DetermineVersion recovers the QR version from a sampled image. For
// D <= 41 the version follows directly from the dimension formula; larger
// symbols carry two redundant 18-bit BCH-coded version-info fields.
func DetermineVersion(img *binarize.BitMatrix) (*version.Version, error) {
	d := img.Width
	if d != img.Height {
		return nil, fmt.Errorf("%w: non-square matrix %dx%d", ErrNoVersion, img.Width, img.Height)
	}
	if d <= 41 {
		n := (d - 17) / 4
		v, err := version.ForNumber(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoVersion, err)
		}
		return v, nil
	}

	copyA, copyB := readVersionBits(img, d)
	if n, err := version.DecodeVersion(copyA); err == nil {
		v, verr := version.ForNumber(n)
		if verr == nil {
			return v, nil
		}
	}
	if n, err := version.DecodeVersion(copyB); err == nil {
		v, verr := version.ForNumber(n)
		if verr == nil {
			return v, nil
		}
	}
	return nil, ErrNoVersion
}

func readVersionBits(img *binarize.BitMatrix, size int) (copyA, copyB int) {
	for i := 0; i < 18; i++ {
		a := size - 11 + i%3
		b := i / 3
		if img.Get(a, b) {
			copyA |= 1 << uint(i)
		}
		if img.Get(b, a) {
			copyB |= 1 << uint(i)
		}
	}
	return copyA, copyB
}

// DetermineFormat recovers the error-correction level and mask pattern
// from the two redundant 15-bit format-info fields.
func DetermineFormat(img *binarize.BitMatrix) (version.ECLevel, int, error) {
	size := img.Width
	copy1, copy2 := readFormatBits(img, size)

	if level, mask, err := version.DecodeFormat(copy1); err == nil {
		return level, mask, nil
	}
	if level, mask, err := version.DecodeFormat(copy2); err == nil {
		return level, mask, nil
	}
	return 0, 0, ErrNoFormat
}

func readFormatBits(img *binarize.BitMatrix, size int) (copy1, copy2 int) {
	for i := 0; i < 6; i++ {
		if img.Get(8, i) {
			copy1 |= 1 << uint(i)
		}
	}
	if img.Get(8, 7) {
		copy1 |= 1 << 6
	}
	if img.Get(8, 8) {
		copy1 |= 1 << 7
	}
	if img.Get(7, 8) {
		copy1 |= 1 << 8
	}
	for i := 9; i < 15; i++ {
		if img.Get(14-i, 8) {
			copy1 |= 1 << uint(i)
		}
	}

	for i := 0; i < 8; i++ {
		if img.Get(size-1-i, 8) {
			copy2 |= 1 << uint(i)
		}
	}
	for i := 8; i < 15; i++ {
		if img.Get(8, size-15+i) {
			copy2 |= 1 << uint(i)
		}
	}
	return copy1, copy2
}

// ReadCorrectedData runs the full MatrixDecoder pipeline on an
// already-version/format-determined sampled image: unmask, read
// codewords, de-interleave into RS blocks, and error-correct each block.
// It returns the concatenated, corrected data codewords plus per-block
// diagnostics.
func ReadCorrectedData(img *binarize.BitMatrix, v *version.Version, level version.ECLevel, mask int) ([]byte, []BlockResult, error) {
	sampled := matrix.FromSampled(v, func(r, c int) bool { return img.Get(c, r) })
	matrix.Unmask(sampled, mask)

	numBytes := v.NumRawDataModules() / 8
	codewords := matrix.ReadCodewords(sampled, numBytes)

	return deinterleaveAndCorrect(codewords, v, level)
}

type blockLayout struct {
	dataLen int
	eccLen  int
}

func deinterleaveAndCorrect(codewords []byte, v *version.Version, level version.ECLevel) ([]byte, []BlockResult, error) {
	layout := v.ECBlocksFor(level)

	var layouts []blockLayout
	maxDataLen := 0
	for _, group := range layout.Blocks {
		for i := 0; i < group.Count; i++ {
			layouts = append(layouts, blockLayout{dataLen: group.DataCodewords, eccLen: layout.ECCodewordsPerBlock})
			if group.DataCodewords > maxDataLen {
				maxDataLen = group.DataCodewords
			}
		}
	}

	expectedLen := layout.TotalDataCodewords() + layout.ECCodewordsPerBlock*len(layouts)
	if len(codewords) < expectedLen {
		return nil, nil, fmt.Errorf("decoder: got %d codewords, expected at least %d", len(codewords), expectedLen)
	}
	if len(codewords) > expectedLen {
		codewords = codewords[:expectedLen]
	}

	blocks := make([][]byte, len(layouts))
	for i, l := range layouts {
		blocks[i] = make([]byte, l.dataLen+l.eccLen)
	}

	idx := 0
	for col := 0; col < maxDataLen; col++ {
		for bi, l := range layouts {
			if col < l.dataLen {
				blocks[bi][col] = codewords[idx]
				idx++
			}
		}
	}
	eccLen := layout.ECCodewordsPerBlock
	for col := 0; col < eccLen; col++ {
		for bi, l := range layouts {
			blocks[bi][l.dataLen+col] = codewords[idx]
			idx++
		}
	}

	var out []byte
	results := make([]BlockResult, len(layouts))
	for bi, l := range layouts {
		syndromes := polynomial.Syndromes(blocks[bi], l.eccLen)
		hadErrors := polynomial.HasErrors(syndromes)

		corrected, err := polynomial.Decode(blocks[bi], l.eccLen)
		results[bi] = BlockResult{
			BlockIndex:          bi,
			NumDataCodewords:    l.dataLen,
			NumECCodewords:      l.eccLen,
			CorrectionSucceeded: err == nil,
		}
		if err != nil {
			return nil, results, fmt.Errorf("decoder: block %d: %w", bi, err)
		}
		if hadErrors {
			results[bi].ErrorsFound = countDiffering(blocks[bi], corrected)
		}
		out = append(out, corrected[:l.dataLen]...)
	}

	return out, results, nil
}

func countDiffering(a, b []byte) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}

// DecodeSegments runs the SegmentDecoder (component O) over corrected
// data bytes and assembles a human-readable message from the
// text-bearing segments.
func DecodeSegments(data []byte, v *version.Version) ([]segment.Segment, string, error) {
	segs, err := segment.DecodeSegments(data, v.Number)
	message := assembleMessage(segs)
	return segs, message, err
}

func assembleMessage(segs []segment.Segment) string {
	var out []byte
	for _, s := range segs {
		switch s.Mode {
		case segment.Numeric, segment.Alphanumeric, segment.Kanji:
			out = append(out, s.Text...)
		case segment.Byte:
			out = append(out, s.Bytes...)
		}
	}
	return string(out)
}
