package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalphad/qrforge/qrcode/version"
)

func TestStampFinderCenterDarkSeparatorLight(t *testing.T) {
	v, err := version.ForNumber(1)
	require.NoError(t, err)
	m := newEmpty(v.Dimension())
	stampFunctionPatterns(m, v)

	// Top-left finder's center module is always dark.
	assert.True(t, m.At(3, 3))
	// The separator ring (Chebyshev distance 4) around a finder is light.
	assert.False(t, m.At(3, 3+4))
}

func TestTimingPatternAlternates(t *testing.T) {
	v, err := version.ForNumber(1)
	require.NoError(t, err)
	m := newEmpty(v.Dimension())
	stampTiming(m)

	for i := 8; i < v.Dimension()-8; i++ {
		assert.Equal(t, i%2 == 0, m.At(6, i), "row 6 col %d", i)
		assert.Equal(t, i%2 == 0, m.At(i, 6), "row %d col 6", i)
	}
}

func TestPlacementOrderSkipsTimingColumn(t *testing.T) {
	v, err := version.ForNumber(1)
	require.NoError(t, err)
	m := newEmpty(v.Dimension())
	stampFunctionPatterns(m, v)
	order := placementOrder(m)

	for _, pos := range order {
		assert.NotEqual(t, 6, pos[1], "zig-zag scan must skip column 6")
		assert.False(t, m.IsFunction(pos[0], pos[1]))
	}
}

func TestBuildProducesExpectedSize(t *testing.T) {
	v, err := version.ForNumber(1)
	require.NoError(t, err)
	codewords := make([]byte, v.NumRawDataModules()/8)
	for i := range codewords {
		codewords[i] = byte(i)
	}

	m, maskID, err := Build(v, version.ECLevelM, codewords)
	require.NoError(t, err)
	assert.Equal(t, v.Dimension(), m.Size())
	assert.GreaterOrEqual(t, maskID, 0)
	assert.LessOrEqual(t, maskID, 7)
}

func TestBuildRejectsWrongCodewordLength(t *testing.T) {
	v, err := version.ForNumber(1)
	require.NoError(t, err)
	_, _, err = Build(v, version.ECLevelM, []byte{0x00})
	require.Error(t, err)
}

func TestMaskUnmaskRoundTrip(t *testing.T) {
	v, err := version.ForNumber(1)
	require.NoError(t, err)
	m := newEmpty(v.Dimension())
	stampFunctionPatterns(m, v)
	order := placementOrder(m)
	codewords := make([]byte, v.NumRawDataModules()/8)
	for i := range codewords {
		codewords[i] = byte(i*7 + 3)
	}
	placeData(m, codewords, order)

	before := append([]bool(nil), m.modules...)
	applyMask(m, 3)
	Unmask(m, 3)
	assert.Equal(t, before, m.modules)
}

func TestReadCodewordsInvertsPlaceData(t *testing.T) {
	v, err := version.ForNumber(2)
	require.NoError(t, err)
	m := newEmpty(v.Dimension())
	stampFunctionPatterns(m, v)
	order := placementOrder(m)
	numBytes := v.NumRawDataModules() / 8
	codewords := make([]byte, numBytes)
	for i := range codewords {
		codewords[i] = byte(i*31 + 11)
	}
	placeData(m, codewords, order)

	got := ReadCodewords(m, numBytes)
	assert.Equal(t, codewords, got)
}

func TestPenaltyScoreRule2Blocks(t *testing.T) {
	v, err := version.ForNumber(1)
	require.NoError(t, err)
	m := newEmpty(v.Dimension())
	// All-dark matrix: every 2x2 block scores, and row/column runs score too.
	for i := range m.modules {
		m.modules[i] = true
	}
	score := m.penaltyScore()
	assert.Greater(t, score, 0)
}

func TestMaskPredicatesMatchSpecTable(t *testing.T) {
	assert.True(t, maskPredicates[0](2, 2))
	assert.False(t, maskPredicates[0](1, 2))
	assert.True(t, maskPredicates[1](0, 5))
	assert.False(t, maskPredicates[1](1, 5))
	assert.True(t, maskPredicates[2](5, 0))
	assert.True(t, maskPredicates[3](1, 2))
}
