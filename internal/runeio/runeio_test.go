package runeio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuslvm/tusl/internal/runeio"
)

func TestWriteRuneASCIIPassesThrough(t *testing.T) {
	var b strings.Builder
	n, err := runeio.WriteRune(&b, 'A')
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "A", b.String())
}

func TestWriteRuneC1RangeUsesEscapeForm(t *testing.T) {
	var b strings.Builder
	_, err := runeio.WriteRune(&b, 0x84)
	require.NoError(t, err)
	assert.Equal(t, "\x1bD", b.String())
}

func TestWriteRuneHighCodepointPassesThroughUTF8(t *testing.T) {
	var b strings.Builder
	_, err := runeio.WriteRune(&b, '€')
	require.NoError(t, err)
	assert.Equal(t, "€", b.String())
}

func TestWriteStringMixesRangesCorrectly(t *testing.T) {
	var b strings.Builder
	_, err := runeio.WriteString(&b, "a"+string(rune(0x84))+"z")
	require.NoError(t, err)
	assert.Equal(t, "a\x1bDz", b.String())
}
