package segment

import (
	"errors"
	"fmt"

	"github.com/jalphad/qrforge/bitio"
	"github.com/jalphad/qrforge/qrcode/sjis"
)

// DecodeSegments reads data codewords as a sequence of typed segments
// until a terminator (mode indicator 0000) or the stream runs out.
// On stream underflow it returns the segments gathered so far alongside
// ErrEndOfSegments, per spec.md §4.O ("stream underflow returns the
// chunks gathered so far").
func DecodeSegments(data []byte, version int) ([]Segment, error) {
	stream := bitio.NewBitStream(data)
	var segments []Segment

	for {
		if stream.Available() < 4 {
			return segments, nil
		}
		indicatorBits, err := stream.Read(4)
		if err != nil {
			return segments, nil
		}
		mode, ok := modeFromIndicator(byte(indicatorBits))
		if !ok {
			return segments, fmt.Errorf("segment: %w: unknown mode indicator %#b", errEncoding, indicatorBits)
		}
		if mode == terminator {
			return segments, nil
		}

		seg, err := decodeOne(stream, mode, version)
		if errors.Is(err, bitio.ErrEndOfStream) {
			return segments, ErrEndOfSegments
		}
		if err != nil {
			return segments, err
		}
		segments = append(segments, seg)
	}
}

func decodeOne(stream *bitio.BitStream, mode Mode, version int) (Segment, error) {
	switch mode {
	case Numeric:
		return decodeNumeric(stream, version)
	case Alphanumeric:
		return decodeAlphanumeric(stream, version)
	case Byte:
		return decodeByte(stream, version)
	case Kanji:
		return decodeKanji(stream, version)
	case ECI:
		return decodeECI(stream)
	case StructuredAppend:
		return decodeStructuredAppend(stream)
	}
	return Segment{}, fmt.Errorf("segment: cannot decode mode %d", mode)
}

func decodeNumeric(stream *bitio.BitStream, version int) (Segment, error) {
	count, err := stream.Read(CharCountBits(Numeric, version))
	if err != nil {
		return Segment{}, err
	}
	remaining := int(count)
	digits := make([]byte, 0, count)
	for remaining > 0 {
		switch {
		case remaining >= 3:
			v, err := stream.Read(10)
			if err != nil {
				return Segment{}, err
			}
			if v > 999 {
				return Segment{}, fmt.Errorf("segment: %w: numeric group %d out of range", errEncoding, v)
			}
			digits = append(digits, byte('0'+v/100), byte('0'+(v/10)%10), byte('0'+v%10))
			remaining -= 3
		case remaining == 2:
			v, err := stream.Read(7)
			if err != nil {
				return Segment{}, err
			}
			if v > 99 {
				return Segment{}, fmt.Errorf("segment: %w: numeric group %d out of range", errEncoding, v)
			}
			digits = append(digits, byte('0'+v/10), byte('0'+v%10))
			remaining = 0
		case remaining == 1:
			v, err := stream.Read(4)
			if err != nil {
				return Segment{}, err
			}
			if v > 9 {
				return Segment{}, fmt.Errorf("segment: %w: numeric digit %d out of range", errEncoding, v)
			}
			digits = append(digits, byte('0'+v))
			remaining = 0
		}
	}
	return Segment{Mode: Numeric, Text: string(digits), NumChars: int(count)}, nil
}

func decodeAlphanumeric(stream *bitio.BitStream, version int) (Segment, error) {
	count, err := stream.Read(CharCountBits(Alphanumeric, version))
	if err != nil {
		return Segment{}, err
	}
	remaining := int(count)
	chars := make([]byte, 0, count)
	for remaining > 0 {
		if remaining >= 2 {
			v, err := stream.Read(11)
			if err != nil {
				return Segment{}, err
			}
			if int(v) >= 45*45 {
				return Segment{}, fmt.Errorf("segment: %w: alphanumeric pair %d out of range", errEncoding, v)
			}
			chars = append(chars, alphanumericCharset[v/45], alphanumericCharset[v%45])
			remaining -= 2
		} else {
			v, err := stream.Read(6)
			if err != nil {
				return Segment{}, err
			}
			if int(v) >= len(alphanumericCharset) {
				return Segment{}, fmt.Errorf("segment: %w: alphanumeric char %d out of range", errEncoding, v)
			}
			chars = append(chars, alphanumericCharset[v])
			remaining = 0
		}
	}
	return Segment{Mode: Alphanumeric, Text: string(chars), NumChars: int(count)}, nil
}

func decodeByte(stream *bitio.BitStream, version int) (Segment, error) {
	count, err := stream.Read(CharCountBits(Byte, version))
	if err != nil {
		return Segment{}, err
	}
	data := make([]byte, count)
	for i := range data {
		v, err := stream.Read(8)
		if err != nil {
			return Segment{}, err
		}
		data[i] = byte(v)
	}
	return Segment{Mode: Byte, Bytes: data, Text: string(data), NumChars: int(count)}, nil
}

func decodeKanji(stream *bitio.BitStream, version int) (Segment, error) {
	count, err := stream.Read(CharCountBits(Kanji, version))
	if err != nil {
		return Segment{}, err
	}
	raw := make([]byte, 0, count*2)
	for i := 0; i < int(count); i++ {
		packed, err := stream.Read(13)
		if err != nil {
			return Segment{}, err
		}
		hi, lo, err := sjis.Unpack13(uint16(packed))
		if err != nil {
			return Segment{}, fmt.Errorf("segment: %w: %v", errEncoding, err)
		}
		raw = append(raw, hi, lo)
	}
	text, err := sjis.FromShiftJIS(raw)
	if err != nil {
		return Segment{}, fmt.Errorf("segment: %w: %v", errEncoding, err)
	}
	return Segment{Mode: Kanji, Text: text, NumChars: int(count)}, nil
}

// decodeECI reads the 7/14/21-bit ECI assignment number, selected by the
// number of leading 1-bits in the designator prefix, per spec.md §4.O.
// The value is reported, never interpreted (ECI interpretation is a
// Non-goal).
func decodeECI(stream *bitio.BitStream) (Segment, error) {
	first, err := stream.Read(1)
	if err != nil {
		return Segment{}, err
	}
	var assignment uint32
	switch first {
	case 0:
		assignment, err = stream.Read(7)
	default:
		second, err2 := stream.Read(1)
		if err2 != nil {
			return Segment{}, err2
		}
		if second == 0 {
			assignment, err = stream.Read(14)
		} else {
			assignment, err = stream.Read(21)
		}
	}
	if err != nil {
		return Segment{}, err
	}
	return Segment{Mode: ECI, ECIAssignment: int(assignment)}, nil
}

// decodeStructuredAppend reads the fixed 16-bit structured-append header
// (4-bit index, 4-bit total, 8-bit parity) and reports it without
// attempting to reassemble the sequence (encoding structured append is a
// Non-goal; decoding the header is supported).
func decodeStructuredAppend(stream *bitio.BitStream) (Segment, error) {
	index, err := stream.Read(4)
	if err != nil {
		return Segment{}, err
	}
	total, err := stream.Read(4)
	if err != nil {
		return Segment{}, err
	}
	parity, err := stream.Read(8)
	if err != nil {
		return Segment{}, err
	}
	return Segment{
		Mode:             StructuredAppend,
		StructuredIndex:  int(index),
		StructuredTotal:  int(total),
		StructuredParity: byte(parity),
	}, nil
}
