package decoder

import "github.com/jalphad/qrforge/qrcode/segment"

// DecodeResult contains the result of QR code decoding: the human-readable
// message, the raw segments it came from, and per-block error-correction
// diagnostics.
type DecodeResult struct {
	// Message is the decoded text, concatenated from the text-bearing
	// segments (Numeric, Alphanumeric, Byte, Kanji) in order.
	Message string

	// Segments is the full tagged segment sequence, including any ECI or
	// StructuredAppend headers the stream carried.
	Segments []segment.Segment

	// Version and Mask record which symbol version and mask pattern were
	// recovered from the format/version info.
	Version int
	Mask    int

	// BlockResults contains error-correction details for each RS block.
	BlockResults []BlockResult

	// NumErrorsCorrected is the total number of symbol errors found across
	// all blocks.
	NumErrorsCorrected int
}

// BlockResult contains error correction details for a single Reed-Solomon
// block.
type BlockResult struct {
	// BlockIndex identifies which block this result is for (0-based).
	BlockIndex int

	// NumDataCodewords is the number of data codewords in this block.
	NumDataCodewords int

	// NumECCodewords is the number of error correction codewords in this
	// block.
	NumECCodewords int

	// ErrorsFound is the number of codeword positions that differed
	// between the received and corrected block.
	ErrorsFound int

	// CorrectionSucceeded indicates if correction worked for this block.
	// Correction fails when errors exceed the block's correction capacity.
	CorrectionSucceeded bool
}
