// Package sjis provides the Unicode <-> Shift-JIS conversion and the
// 13-bit QR Kanji-mode packing ISO/IEC 18004 §8.4.5 defines, grounded on
// the other_examples reference (inkstray-rsc-qr's coding/qr.go) that uses
// golang.org/x/text/encoding/japanese for the same purpose. x/text is
// already an indirect dependency of the teacher's module (pulled in
// transitively); this package promotes it to a direct one rather than
// hand-transcribing a 7,070-entry Unicode<->Shift-JIS table by hand,
// which no retrieved source actually supplies.
package sjis

import (
	"fmt"

	"golang.org/x/text/encoding/japanese"
)

var (
	encoder = japanese.ShiftJIS.NewEncoder()
	decoder = japanese.ShiftJIS.NewDecoder()
)

// ToShiftJIS converts a Unicode string to its Shift-JIS byte encoding.
func ToShiftJIS(s string) ([]byte, error) {
	out, err := encoder.String(s)
	if err != nil {
		return nil, fmt.Errorf("sjis: encode %q: %w", s, err)
	}
	return []byte(out), nil
}

// FromShiftJIS converts Shift-JIS bytes back to a Unicode string.
func FromShiftJIS(b []byte) (string, error) {
	out, err := decoder.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("sjis: decode: %w", err)
	}
	return string(out), nil
}

// Pack13 packs one Shift-JIS two-byte code (hi, lo) into the 13-bit value
// QR Kanji mode stores per symbol, following spec §4.G exactly: subtract
// 0x8140 for codes in [0x8140,0x9FFC], or 0xC140 for codes in
// [0xE040,0xEBBF], then combine the adjusted bytes as hi*0xC0+lo.
func Pack13(hi, lo byte) (uint16, error) {
	code := uint16(hi)<<8 | uint16(lo)
	switch {
	case code >= 0x8140 && code <= 0x9FFC:
		code -= 0x8140
	case code >= 0xE040 && code <= 0xEBBF:
		code -= 0xC140
	default:
		return 0, fmt.Errorf("sjis: code %#04x outside kanji range", code)
	}
	adjHi := code >> 8
	adjLo := code & 0xFF
	return adjHi*0xC0 + adjLo, nil
}

// Unpack13 reverses Pack13, recovering the original Shift-JIS byte pair
// from a 13-bit packed value.
func Unpack13(value uint16) (hi, lo byte, err error) {
	if value > 0x1FFF {
		return 0, 0, fmt.Errorf("sjis: value %#x exceeds 13 bits", value)
	}
	adjHi := value / 0xC0
	adjLo := value % 0xC0
	base := adjHi<<8 | adjLo

	var code uint16
	if adjHi <= 0x1E {
		code = base + 0x8140
	} else {
		code = base + 0xC140
	}
	return byte(code >> 8), byte(code), nil
}
