package gf256

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpLogAreInverses(t *testing.T) {
	for i := 0; i < 255; i++ {
		got, err := Log(EXP[i])
		require.NoError(t, err)
		assert.Equal(t, i, got)
	}
}

func TestAddIsXor(t *testing.T) {
	assert.Equal(t, byte(0x00), Add(0x53, 0x53))
	assert.Equal(t, byte(0xFF), Add(0x0F, 0xF0))
}

func TestMulZero(t *testing.T) {
	assert.Equal(t, byte(0), Mul(0, 0x42))
	assert.Equal(t, byte(0), Mul(0x42, 0))
}

func TestMulAndDivRoundTrip(t *testing.T) {
	for a := 1; a < 256; a++ {
		for b := 1; b < 256; b++ {
			product := Mul(byte(a), byte(b))
			quotient, err := Div(product, byte(b))
			require.NoError(t, err)
			assert.Equal(t, byte(a), quotient)
		}
	}
}

func TestInverse(t *testing.T) {
	for a := 1; a < 256; a++ {
		inv, err := Inverse(byte(a))
		require.NoError(t, err)
		assert.Equal(t, byte(1), Mul(byte(a), inv))
	}
}

func TestLogAndInverseOfZeroFail(t *testing.T) {
	_, err := Log(0)
	require.Error(t, err)

	_, err = Inverse(0)
	require.Error(t, err)

	var de *DomainError
	require.ErrorAs(t, err, &de)
}

func TestExpNormalisesModulo255(t *testing.T) {
	assert.Equal(t, EXP[0], Exp(255))
	assert.Equal(t, EXP[10], Exp(-245))
}

func TestDivByZero(t *testing.T) {
	_, err := Div(1, 0)
	require.Error(t, err)
}
