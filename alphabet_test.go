package strindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabetFoobar(t *testing.T) {
	alpha, err := NewAlphabet([]byte("foobar"))
	require.NoError(t, err)

	assert.Equal(t, int32(6), alpha.Size())

	codes := map[byte]int32{'a': 1, 'b': 2, 'f': 3, 'o': 4, 'r': 5}
	for b, c := range codes {
		dst := make([]byte, 1)
		require.NoError(t, alpha.MapToBytes(dst, []byte{b}))
		assert.Equal(t, byte(c), dst[0], "code of %q", b)
		assert.Equal(t, b, alpha.Decode(c), "revmap of %d", c)
	}
}

func TestAlphabetMapping(t *testing.T) {
	alpha, err := NewAlphabet([]byte("foobar"))
	require.NoError(t, err)

	t.Run("map to bytes", func(t *testing.T) {
		dst := make([]byte, 6)
		require.NoError(t, alpha.MapToBytes(dst, []byte("foobar")))
		assert.Equal(t, []byte{3, 4, 4, 2, 1, 5}, dst)
	})

	t.Run("map to ints appends sentinel", func(t *testing.T) {
		dst := make([]int32, 7)
		require.NoError(t, alpha.MapToInts(dst, []byte("foobar")))
		assert.Equal(t, []int32{3, 4, 4, 2, 1, 5, 0}, dst)
	})

	t.Run("wrong destination size", func(t *testing.T) {
		assert.ErrorIs(t, alpha.MapToBytes(make([]byte, 3), []byte("foobar")), ErrSize)
		assert.ErrorIs(t, alpha.MapToInts(make([]int32, 6), []byte("foobar")), ErrSize)
		assert.ErrorIs(t, alpha.RevMap(make([]byte, 3), []byte("foobar")), ErrSize)
	})

	t.Run("byte outside the alphabet", func(t *testing.T) {
		assert.ErrorIs(t, alpha.MapToBytes(make([]byte, 3), []byte("qux")), ErrMapping)
		assert.ErrorIs(t, alpha.MapToInts(make([]int32, 4), []byte("qux")), ErrMapping)
		_, err := alpha.Code([]byte("qux"))
		assert.ErrorIs(t, err, ErrMapping)
	})

	t.Run("sentinel byte in text", func(t *testing.T) {
		_, err := NewAlphabet([]byte{'a', 0, 'b'})
		assert.ErrorIs(t, err, ErrMapping)
	})
}

func TestAlphabetRoundTrip(t *testing.T) {
	tests := map[string]struct {
		text []byte
	}{
		"plain word":  {[]byte("mississippi")},
		"dna":         {[]byte("ACGTACGT")},
		"single char": {[]byte("a")},
		"random":      {genRandText(200, 16)},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			alpha, err := NewAlphabet(tc.text)
			require.NoError(t, err)

			coded := make([]byte, len(tc.text))
			require.NoError(t, alpha.MapToBytes(coded, tc.text))
			back := make([]byte, len(coded))
			require.NoError(t, alpha.RevMap(back, coded))
			assert.Equal(t, tc.text, back)
		})
	}
}
