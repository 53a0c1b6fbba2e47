// Package encoder implements the EncoderPipeline (component J): fitting
// segments to the smallest QR version that holds them, padding to capacity,
// splitting and interleaving Reed-Solomon blocks, and handing the result to
// the matrix builder.
package encoder

import (
	"fmt"

	"github.com/jalphad/qrforge/bitio"
	"github.com/jalphad/qrforge/polynomial"
	"github.com/jalphad/qrforge/qrcode/matrix"
	"github.com/jalphad/qrforge/qrcode/segment"
	"github.com/jalphad/qrforge/qrcode/version"
)

// Result is a fully-built QR symbol plus the version and mask it was built
// with, since both are chosen automatically when requested.
type Result struct {
	Matrix  *matrix.Matrix
	Version *version.Version
	Level   version.ECLevel
	Mask    int
}

// Encode fits segs to a QR version, pads and error-corrects the payload,
// and builds the final matrix. requestedVersion of 0 means auto-select the
// smallest version that fits; a positive value pins the version, failing
// with ErrDataOverflow if the segments don't fit it.
func Encode(segs []segment.Segment, level version.ECLevel, requestedVersion int) (*Result, error) {
	v, err := chooseVersion(segs, level, requestedVersion)
	if err != nil {
		return nil, err
	}

	capacityBits := v.ECBlocksFor(level).TotalDataCodewords() * 8

	buf := bitio.NewBitBuffer()
	for _, s := range segs {
		if err := s.AppendTo(buf, v.Number); err != nil {
			return nil, fmt.Errorf("encoder: %w", err)
		}
	}
	if buf.LengthInBits() > capacityBits {
		return nil, fmt.Errorf("encoder: %w: segments exceed version %d capacity", ErrDataOverflow, v.Number)
	}

	terminatorBits := 4
	if remaining := capacityBits - buf.LengthInBits(); remaining < terminatorBits {
		terminatorBits = remaining
	}
	buf.Put(0, terminatorBits)
	buf.PadToByteBoundary()
	padToCapacity(buf, capacityBits)

	interleaved := splitEncodeInterleave(buf.Bytes(), v, level)

	m, mask, err := matrix.Build(v, level, interleaved)
	if err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}
	return &Result{Matrix: m, Version: v, Level: level, Mask: mask}, nil
}

func chooseVersion(segs []segment.Segment, level version.ECLevel, requestedVersion int) (*version.Version, error) {
	if requestedVersion != 0 {
		v, err := version.ForNumber(requestedVersion)
		if err != nil {
			return nil, fmt.Errorf("encoder: %w", err)
		}
		if fits(segs, v, level) {
			return v, nil
		}
		return nil, fmt.Errorf("encoder: %w: segments do not fit version %d", ErrDataOverflow, requestedVersion)
	}

	for n := 1; n <= 40; n++ {
		v, err := version.ForNumber(n)
		if err != nil {
			return nil, err
		}
		if fits(segs, v, level) {
			return v, nil
		}
	}
	return nil, ErrDataOverflow
}

func fits(segs []segment.Segment, v *version.Version, level version.ECLevel) bool {
	total := 0
	for _, s := range segs {
		n, err := s.BitLength(v.Number)
		if err != nil {
			return false
		}
		total += n
	}
	return total <= v.ECBlocksFor(level).TotalDataCodewords()*8
}

// padToCapacity appends alternating 0xEC/0x11 pad bytes until buf holds
// exactly capacityBits bits (buf must already be byte-aligned).
func padToCapacity(buf *bitio.BitBuffer, capacityBits int) {
	pads := [2]byte{0xEC, 0x11}
	i := 0
	for buf.LengthInBits() < capacityBits {
		buf.Put(uint32(pads[i%2]), 8)
		i++
	}
}

// splitEncodeInterleave splits data into the RS blocks laid out by
// v/level, computes each block's error-correction codewords, and
// interleaves data columns followed by ECC columns, per spec.md §4.J.
func splitEncodeInterleave(data []byte, v *version.Version, level version.ECLevel) []byte {
	layout := v.ECBlocksFor(level)

	type block struct {
		data []byte
		ecc  []byte
	}
	var blocks []block
	offset := 0
	maxDataLen := 0
	for _, group := range layout.Blocks {
		for i := 0; i < group.Count; i++ {
			d := data[offset : offset+group.DataCodewords]
			offset += group.DataCodewords
			ecc := polynomial.Encode(d, layout.ECCodewordsPerBlock)
			blocks = append(blocks, block{data: d, ecc: ecc})
			if len(d) > maxDataLen {
				maxDataLen = len(d)
			}
		}
	}

	out := make([]byte, 0, offset+layout.ECCodewordsPerBlock*len(blocks))
	for col := 0; col < maxDataLen; col++ {
		for _, b := range blocks {
			if col < len(b.data) {
				out = append(out, b.data[col])
			}
		}
	}
	for col := 0; col < layout.ECCodewordsPerBlock; col++ {
		for _, b := range blocks {
			out = append(out, b.ecc[col])
		}
	}
	return out
}
