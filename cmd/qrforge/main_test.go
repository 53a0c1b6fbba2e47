package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalphad/qrforge/qrcode/version"
)

func TestParseLevelAcceptsAllFourLevels(t *testing.T) {
	cases := map[string]version.ECLevel{
		"L": version.ECLevelL,
		"m": version.ECLevelM,
		"Q": version.ECLevelQ,
		"h": version.ECLevelH,
	}
	for input, want := range cases {
		got, err := parseLevel(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseLevelRejectsUnknown(t *testing.T) {
	_, err := parseLevel("Z")
	require.Error(t, err)
}
