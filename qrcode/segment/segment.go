// Package segment implements the Segmenter (component G) and the
// segment-decoding half of SegmentDecoder (component O): bit-packing and
// unpacking for the four QR encoding modes, plus the decode-only ECI and
// StructuredAppend header tags.
package segment

import (
	"fmt"
	"strings"

	"github.com/jalphad/qrforge/bitio"
	"github.com/jalphad/qrforge/qrcode/sjis"
)

// Mode identifies a segment's encoding.
type Mode int

const (
	Numeric Mode = iota
	Alphanumeric
	Byte
	Kanji
	// ECI and StructuredAppend are decode-only tags: the encoder never
	// produces them (spec Non-goals exclude ECI interpretation and
	// structured-append encoding), but the decoder must recognise and
	// report their headers.
	ECI
	StructuredAppend
	terminator
)

// modeIndicator is the 4-bit mode header written immediately before a
// segment's character-count field.
func modeIndicator(m Mode) byte {
	switch m {
	case Numeric:
		return 0b0001
	case Alphanumeric:
		return 0b0010
	case Byte:
		return 0b0100
	case Kanji:
		return 0b1000
	case ECI:
		return 0b0111
	case StructuredAppend:
		return 0b0011
	case terminator:
		return 0b0000
	}
	panic(fmt.Sprintf("segment: invalid mode %d", m))
}

func modeFromIndicator(indicator byte) (Mode, bool) {
	switch indicator {
	case 0b0001:
		return Numeric, true
	case 0b0010:
		return Alphanumeric, true
	case 0b0100:
		return Byte, true
	case 0b1000:
		return Kanji, true
	case 0b0111:
		return ECI, true
	case 0b0011:
		return StructuredAppend, true
	case 0b0000:
		return terminator, true
	}
	return 0, false
}

// sizeClass maps a version to the 0/1/2 index VersionTables' three char-
// count-width columns use: small (1-9), mid (10-26), large (27-40).
func sizeClass(version int) int {
	switch {
	case version <= 9:
		return 0
	case version <= 26:
		return 1
	default:
		return 2
	}
}

var charCountBitsByMode = [4][3]int{
	{10, 12, 14}, // Numeric
	{9, 11, 13},  // Alphanumeric
	{8, 16, 16},  // Byte
	{8, 10, 12},  // Kanji
}

// CharCountBits returns the character-count indicator width for mode at
// the given version.
func CharCountBits(m Mode, version int) int {
	return charCountBitsByMode[m][sizeClass(version)]
}

const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// Segment is one tagged chunk of a QR payload: the mode it was (or, for
// ECI/StructuredAppend, will be) encoded with, its character count, and
// either the source text (Numeric/Alphanumeric/Kanji) or raw bytes
// (Byte), or raw header fields (ECI/StructuredAppend).
type Segment struct {
	Mode     Mode
	Text     string // Numeric, Alphanumeric, Kanji source text
	Bytes    []byte // Byte-mode payload
	NumChars int

	// ECI / StructuredAppend decode-only fields.
	ECIAssignment    int
	StructuredIndex  int
	StructuredTotal  int
	StructuredParity byte
}

// NewNumeric validates digits are all '0'-'9' and builds a Numeric segment.
func NewNumeric(digits string) (Segment, error) {
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Segment{}, fmt.Errorf("segment: %w: %q is not numeric", errEncoding, digits)
		}
	}
	return Segment{Mode: Numeric, Text: digits, NumChars: len(digits)}, nil
}

// NewAlphanumeric upper-cases text, validates the result is within the
// 45-character alphanumeric set and builds an Alphanumeric segment.
func NewAlphanumeric(text string) (Segment, error) {
	up := strings.ToUpper(text)
	for _, r := range up {
		if strings.IndexRune(alphanumericCharset, r) < 0 {
			return Segment{}, fmt.Errorf("segment: %w: %q is not alphanumeric", errEncoding, text)
		}
	}
	return Segment{Mode: Alphanumeric, Text: up, NumChars: len(up)}, nil
}

// NewByte wraps data (expected to already be UTF-8) as a Byte segment.
func NewByte(data []byte) Segment {
	return Segment{Mode: Byte, Bytes: data, NumChars: len(data)}
}

// FromText implements the Segmenter's raw-string entry point: a caller
// that doesn't want to build typed segments itself gets its string wrapped
// as a single Byte segment (UTF-8), matching spec.md's mode=auto contract.
func FromText(text string) Segment {
	return NewByte([]byte(text))
}

// NewKanji shift-jis-encodes text and builds a Kanji segment; text must
// consist entirely of characters representable in the JIS X 0208 ranges
// ISO/IEC 18004 permits.
func NewKanji(text string) (Segment, error) {
	encoded, err := sjis.ToShiftJIS(text)
	if err != nil {
		return Segment{}, fmt.Errorf("segment: %w: %v", errEncoding, err)
	}
	if len(encoded)%2 != 0 {
		return Segment{}, fmt.Errorf("segment: %w: odd-length shift-jis encoding", errEncoding)
	}
	return Segment{Mode: Kanji, Text: text, NumChars: len(encoded) / 2}, nil
}

// BitLength returns the total number of bits this segment contributes at
// the given version, including its mode indicator and char-count field.
func (s Segment) BitLength(version int) (int, error) {
	header := 4 + CharCountBits(s.Mode, version)
	switch s.Mode {
	case Numeric:
		n := len(s.Text)
		groups := n / 3
		rem := n % 3
		bits := groups * 10
		switch rem {
		case 1:
			bits += 4
		case 2:
			bits += 7
		}
		return header + bits, nil
	case Alphanumeric:
		n := len(s.Text)
		bits := (n / 2) * 11
		if n%2 == 1 {
			bits += 6
		}
		return header + bits, nil
	case Byte:
		return header + len(s.Bytes)*8, nil
	case Kanji:
		return header + s.NumChars*13, nil
	}
	return 0, fmt.Errorf("segment: %w: cannot size mode %d", errEncoding, s.Mode)
}

// AppendTo packs the segment's mode indicator, character count, and body
// bits into buf for the given version.
func (s Segment) AppendTo(buf *bitio.BitBuffer, version int) error {
	buf.Put(uint32(modeIndicator(s.Mode)), 4)
	countBits := CharCountBits(s.Mode, version)
	buf.Put(uint32(s.NumChars), countBits)

	switch s.Mode {
	case Numeric:
		return appendNumeric(buf, s.Text)
	case Alphanumeric:
		return appendAlphanumeric(buf, s.Text)
	case Byte:
		for _, b := range s.Bytes {
			buf.Put(uint32(b), 8)
		}
		return nil
	case Kanji:
		return appendKanji(buf, s.Text)
	}
	return fmt.Errorf("segment: %w: cannot encode mode %d", errEncoding, s.Mode)
}

func appendNumeric(buf *bitio.BitBuffer, digits string) error {
	for i := 0; i < len(digits); i += 3 {
		group := digits[i:min(i+3, len(digits))]
		value := 0
		for _, r := range group {
			value = value*10 + int(r-'0')
		}
		switch len(group) {
		case 3:
			buf.Put(uint32(value), 10)
		case 2:
			buf.Put(uint32(value), 7)
		case 1:
			buf.Put(uint32(value), 4)
		}
	}
	return nil
}

func appendAlphanumeric(buf *bitio.BitBuffer, text string) error {
	charValue := func(r rune) (int, error) {
		idx := strings.IndexRune(alphanumericCharset, r)
		if idx < 0 {
			return 0, fmt.Errorf("segment: %w: %q not alphanumeric", errEncoding, r)
		}
		return idx, nil
	}
	runes := []rune(text)
	for i := 0; i < len(runes); i += 2 {
		if i+1 < len(runes) {
			a, err := charValue(runes[i])
			if err != nil {
				return err
			}
			b, err := charValue(runes[i+1])
			if err != nil {
				return err
			}
			buf.Put(uint32(a*45+b), 11)
		} else {
			a, err := charValue(runes[i])
			if err != nil {
				return err
			}
			buf.Put(uint32(a), 6)
		}
	}
	return nil
}

func appendKanji(buf *bitio.BitBuffer, text string) error {
	encoded, err := sjis.ToShiftJIS(text)
	if err != nil {
		return fmt.Errorf("segment: %w: %v", errEncoding, err)
	}
	for i := 0; i < len(encoded); i += 2 {
		packed, err := sjis.Pack13(encoded[i], encoded[i+1])
		if err != nil {
			return fmt.Errorf("segment: %w: %v", errEncoding, err)
		}
		buf.Put(uint32(packed), 13)
	}
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
