package polynomial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedCodeword(data []byte, numECCodewords int) []byte {
	ecc := Encode(data, numECCodewords)
	return append(append([]byte{}, data...), ecc...)
}

func TestDecodeNoErrorsReturnsCopy(t *testing.T) {
	data := []byte{0x10, 0x20, 0x0C, 0x56, 0x61, 0x80, 0xEC, 0x11}
	codeword := encodedCodeword(data, 10)

	corrected, err := Decode(codeword, 10)
	require.NoError(t, err)
	assert.Equal(t, codeword, corrected)
}

func TestDecodeCorrectsSingleByteError(t *testing.T) {
	data := []byte{0x10, 0x20, 0x0C, 0x56, 0x61, 0x80, 0xEC, 0x11}
	codeword := encodedCodeword(data, 10)

	corrupted := append([]byte{}, codeword...)
	corrupted[3] ^= 0xFF

	corrected, err := Decode(corrupted, 10)
	require.NoError(t, err)
	assert.Equal(t, codeword, corrected)
}

func TestDecodeCorrectsMaximumCorrectableErrors(t *testing.T) {
	data := []byte{0x10, 0x20, 0x0C, 0x56, 0x61, 0x80, 0xEC, 0x11, 0x01, 0x02}
	numEC := 10 // corrects up to 5 byte errors
	codeword := encodedCodeword(data, numEC)

	corrupted := append([]byte{}, codeword...)
	corrupted[0] ^= 0x11
	corrupted[2] ^= 0x22
	corrupted[5] ^= 0x33
	corrupted[9] ^= 0x44
	corrupted[11] ^= 0x55

	corrected, err := Decode(corrupted, numEC)
	require.NoError(t, err)
	assert.Equal(t, codeword, corrected)
}

func TestDecodeFailsWhenTooManyErrors(t *testing.T) {
	data := []byte{0x10, 0x20, 0x0C, 0x56, 0x61, 0x80}
	numEC := 6 // corrects up to 3 byte errors
	codeword := encodedCodeword(data, numEC)

	corrupted := append([]byte{}, codeword...)
	for i := 0; i < len(corrupted); i++ {
		corrupted[i] ^= byte(i + 1)
	}

	_, err := Decode(corrupted, numEC)
	require.Error(t, err)
}

func TestSyndromesAllZeroWhenNoErrors(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	codeword := encodedCodeword(data, 8)

	syndromes := Syndromes(codeword, 8)
	assert.False(t, HasErrors(syndromes))
}

func TestSyndromesNonzeroWhenCorrupted(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	codeword := encodedCodeword(data, 8)
	codeword[0] ^= 1

	syndromes := Syndromes(codeword, 8)
	assert.True(t, HasErrors(syndromes))
}
