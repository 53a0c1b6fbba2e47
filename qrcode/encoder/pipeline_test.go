package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalphad/qrforge/bitio"
	"github.com/jalphad/qrforge/qrcode/segment"
	"github.com/jalphad/qrforge/qrcode/version"
)

func TestEncodeAutoVersionPicksSmallestFit(t *testing.T) {
	seg, err := segment.NewNumeric("12345")
	require.NoError(t, err)

	result, err := Encode([]segment.Segment{seg}, version.ECLevelM, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Version.Number)
	assert.GreaterOrEqual(t, result.Mask, 0)
	assert.LessOrEqual(t, result.Mask, 7)
}

func TestEncodeRespectsRequestedVersion(t *testing.T) {
	seg, err := segment.NewAlphanumeric("HELLO")
	require.NoError(t, err)

	result, err := Encode([]segment.Segment{seg}, version.ECLevelL, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Version.Number)
}

func TestEncodeFailsWhenRequestedVersionTooSmall(t *testing.T) {
	seg := segment.NewByte(make([]byte, 500))

	_, err := Encode([]segment.Segment{seg}, version.ECLevelH, 1)
	require.ErrorIs(t, err, ErrDataOverflow)
}

func TestEncodeOverflowsEveryVersion(t *testing.T) {
	seg := segment.NewByte(make([]byte, 1<<20))

	_, err := Encode([]segment.Segment{seg}, version.ECLevelL, 0)
	require.ErrorIs(t, err, ErrDataOverflow)
}

func TestSplitEncodeInterleaveProducesExpectedLength(t *testing.T) {
	v, err := version.ForNumber(5)
	require.NoError(t, err)
	level := version.ECLevelQ
	layout := v.ECBlocksFor(level)
	data := make([]byte, layout.TotalDataCodewords())
	for i := range data {
		data[i] = byte(i)
	}

	interleaved := splitEncodeInterleave(data, v, level)
	assert.Equal(t, v.NumRawDataModules()/8, len(interleaved))
}

func TestPadToCapacityAlternatesBytes(t *testing.T) {
	buf := bitio.NewBitBuffer()
	padToCapacity(buf, 32)
	assert.Equal(t, []byte{0xEC, 0x11, 0xEC, 0x11}, buf.Bytes())
}
